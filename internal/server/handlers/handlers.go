// Package handlers provides HTTP request handlers for the controlled list
// server.
package handlers

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/refselect/internal/server/cache"
	"github.com/agentstation/refselect/pkg/controlledlists"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	lists     *controlledlists.Registry
	cache     *cache.Cache
	logger    *zerolog.Logger
	startTime time.Time
}

// New creates a new Handlers instance.
func New(lists *controlledlists.Registry, cache *cache.Cache, logger *zerolog.Logger, startTime time.Time) *Handlers {
	return &Handlers{
		lists:     lists,
		cache:     cache,
		logger:    logger,
		startTime: startTime,
	}
}
