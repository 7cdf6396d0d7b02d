package listclient

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/refselect/internal/transport"
)

// Option configures a Client.
type Option func(*config)

type config struct {
	pathTemplate string
	auth         transport.Authenticator
	token        string
	httpClient   *http.Client
	timeout      time.Duration
	cacheTTL     time.Duration
	metrics      *Metrics
	logger       *zerolog.Logger
}

// WithPathTemplate sets the search path; {id} is replaced by the list id.
func WithPathTemplate(tpl string) Option {
	return func(c *config) {
		if tpl != "" {
			c.pathTemplate = tpl
		}
	}
}

// WithAuth sets how token is attached to requests.
func WithAuth(auth transport.Authenticator, token string) Option {
	return func(c *config) {
		c.auth = auth
		c.token = token
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) {
		c.httpClient = hc
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithCacheTTL sets how long result pages are reused. Zero disables the
// page cache.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *config) {
		c.cacheTTL = ttl
	}
}

// WithMetrics records request metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
