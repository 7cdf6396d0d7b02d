package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agentstation/refselect/internal/server/handlers"
	"github.com/agentstation/refselect/internal/server/middleware"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(s.lists, s.cache, s.logger, s.startTime)
	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /health", h.HandleHealth)

	mux.HandleFunc("GET "+prefix+"/controlled_lists", h.HandleListLists)
	mux.HandleFunc("GET "+prefix+"/controlled_list/{id}", h.HandleGetList)
	mux.HandleFunc("GET "+prefix+"/controlled_list/{id}/resolve", h.HandleResolve)

	if s.config.MetricsEnabled {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		}))
	}
}

// applyMiddleware wraps handler with middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config

	if cfg.AuthEnabled {
		authConfig := middleware.DefaultAuthConfig()
		authConfig.Enabled = true
		authConfig.Token = cfg.AuthToken
		if cfg.AuthHeader != "" {
			authConfig.HeaderName = cfg.AuthHeader
		}
		handler = middleware.Auth(authConfig, s.logger)(handler)
	}

	if cfg.RateLimit > 0 {
		handler = middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimit, cfg.TrustProxy, s.logger))(handler)
	}

	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = cfg.CORSOrigins
		} else {
			corsConfig.AllowAll = true
		}
		handler = middleware.CORS(corsConfig)(handler)
	}

	// Metrics, logging and recovery are always on
	handler = s.metrics.Instrument(handler)
	handler = middleware.Logger(s.logger)(handler)
	handler = middleware.Recovery(s.logger)(handler)

	return handler
}
