// Package server provides a development HTTP server for controlled lists.
// It serves lists loaded from fixtures in the tree and flat shapes a list
// search client expects.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/agentstation/refselect/internal/server/cache"
	"github.com/agentstation/refselect/internal/server/middleware"
	"github.com/agentstation/refselect/pkg/constants"
	"github.com/agentstation/refselect/pkg/controlledlists"
	"github.com/agentstation/refselect/pkg/errors"
	"github.com/agentstation/refselect/pkg/logging"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	lists     *controlledlists.Registry
	cache     *cache.Cache
	registry  *prometheus.Registry
	metrics   *middleware.Metrics
	logger    *zerolog.Logger
	config    Config
	startTime time.Time
	http      *http.Server
}

// New creates a new server serving lists.
func New(lists *controlledlists.Registry, cfg Config, logger *zerolog.Logger) (*Server, error) {
	logger = logging.OrDefault(logger)

	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = DefaultConfig().CacheTTL
	}
	if cfg.AuthEnabled && cfg.AuthToken == "" {
		return nil, errors.NewConfigError("server", "auth enabled without a token", nil)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := middleware.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Int("lists", lists.Len()).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("Server instance created")

	return &Server{
		lists:     lists,
		cache:     cache.New(cfg.CacheTTL, cfg.CacheTTL*2),
		registry:  reg,
		metrics:   metrics,
		logger:    logger,
		config:    cfg,
		startTime: time.Now(),
	}, nil
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.http = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Host, s.config.Port),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("Controlled list server listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown stops the HTTP server and drops cached responses.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down controlled list server")
	s.cache.Clear()
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Cache returns the server's response cache.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// Registry returns the Prometheus registry the server exposes.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
