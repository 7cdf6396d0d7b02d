package server

import (
	"time"

	"github.com/agentstation/refselect/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	// Server settings
	Host string
	Port int

	// PathPrefix is prepended to the list routes, e.g. "/plugins".
	PathPrefix string

	// CORS settings
	CORSEnabled bool
	CORSOrigins []string

	// Token authentication for list routes
	AuthEnabled bool
	AuthToken   string
	AuthHeader  string

	// RateLimit is requests per minute per client; 0 disables limiting
	RateLimit  int
	// TrustProxy keys the rate limit on X-Forwarded-For; enable only
	// behind a proxy that sets that header
	TrustProxy bool

	// CacheTTL is how long rendered list responses are reused
	CacheTTL time.Duration

	// HTTP timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Features
	MetricsEnabled bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:           "localhost",
		Port:           8000,
		CORSEnabled:    true,
		AuthHeader:     "X-API-Key",
		RateLimit:      300,
		CacheTTL:       constants.DefaultCacheTTL,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    120 * time.Second,
		MetricsEnabled: true,
	}
}
