package transport

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/agentstation/refselect/pkg/constants"
	"github.com/agentstation/refselect/pkg/errors"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client performs authenticated requests against the list service.
type Client struct {
	http  *http.Client
	auth  Authenticator
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the request timeout. A client supplied through
// WithHTTPClient is copied first so the caller's value is never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d <= 0 {
			return
		}
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

// WithToken sets the credential the authenticator applies.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// New creates a new transport client with the specified authenticator.
// A nil authenticator sends no credentials.
func New(auth Authenticator, opts ...Option) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	c := &Client{
		http: &http.Client{Timeout: DefaultHTTPTimeout},
		auth: auth,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do performs an HTTP request with authentication applied.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.token != "" {
		c.auth.Apply(req, c.token)
	}

	req.Header.Set("Accept", "application/json")
	if req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req.WithContext(ctx))
	if err != nil {
		target := req.Method + " " + req.URL.String()
		switch ctx.Err() {
		case context.Canceled:
			err = fmt.Errorf("%w: %w", errors.ErrCanceled, err)
		case context.DeadlineExceeded:
			err = fmt.Errorf("%w: %w", errors.ErrTimeout, err)
		}
		return nil, errors.WrapResource("send", "request", target, err)
	}
	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+url, err)
	}
	return c.Do(ctx, req)
}
