// Package listclient searches a remote controlled list service for the
// options a reference select control offers.
//
// Searches always request the flat serialization of a list, in which every
// item carries its depth instead of nested children. Result pages are
// cached per list and term for a short time.
package listclient

import (
	"context"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/agentstation/refselect/internal/transport"
	"github.com/agentstation/refselect/pkg/constants"
	"github.com/agentstation/refselect/pkg/errors"
	"github.com/agentstation/refselect/pkg/logging"
	"github.com/agentstation/refselect/pkg/references"
)

const serviceName = "controlled-lists"

// Client queries a controlled list service.
type Client struct {
	baseURL string
	cfg     config
	http    *transport.Client
	pages   *gocache.Cache
	logger  *zerolog.Logger
}

// searchResponse is the flat list payload.
type searchResponse struct {
	Items []references.Option `json:"items"`
}

// New creates a client for the service at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	cfg := config{
		pathTemplate: constants.DefaultListPath,
		timeout:      constants.DefaultHTTPTimeout,
		cacheTTL:     constants.DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if _, err := transport.BuildURL(baseURL, cfg.pathTemplate, "", nil); err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: baseURL,
		cfg:     cfg,
		http: transport.New(cfg.auth,
			transport.WithHTTPClient(cfg.httpClient),
			transport.WithTimeout(cfg.timeout),
			transport.WithToken(cfg.token),
		),
		logger: logging.OrDefault(cfg.logger),
	}
	if cfg.cacheTTL > 0 {
		c.pages = gocache.New(cfg.cacheTTL, 2*cfg.cacheTTL)
	}
	return c, nil
}

// Search returns the options of list listID whose labels match term. An
// empty term returns every item. All results come back in one page.
func (c *Client) Search(ctx context.Context, listID, term string) (*references.OptionPage, error) {
	key := listID + "\x00" + term
	if c.pages != nil {
		if cached, ok := c.pages.Get(key); ok {
			c.cfg.metrics.recordRequest(listID, OutcomeCached, 0)
			page := cached.(references.OptionPage)
			return &page, nil
		}
	}

	params := url.Values{"flat": {"true"}}
	if term != "" {
		params.Set("term", term)
	}
	endpoint, err := transport.BuildURL(c.baseURL, c.cfg.pathTemplate, listID, params)
	if err != nil {
		return nil, err
	}

	logger := c.logger.With().Str("list_id", listID).Str("term", term).Logger()
	start := time.Now()

	resp, err := c.http.Get(ctx, endpoint)
	if err != nil {
		c.cfg.metrics.recordRequest(listID, OutcomeTransport, time.Since(start))
		logger.Debug().Err(err).Msg("List search request failed")
		return nil, err
	}

	var body searchResponse
	if err := transport.DecodeResponse(resp, serviceName, &body); err != nil {
		outcome := OutcomeDecode
		var apiErr *errors.APIError
		if errors.As(err, &apiErr) {
			outcome = OutcomeHTTP
		}
		c.cfg.metrics.recordRequest(listID, outcome, time.Since(start))
		logger.Debug().Err(err).Msg("List search response rejected")
		return nil, err
	}

	took := time.Since(start)
	c.cfg.metrics.recordRequest(listID, OutcomeOK, took)
	c.cfg.metrics.recordResults(len(body.Items))

	page := references.OptionPage{Results: body.Items}
	if page.Results == nil {
		page.Results = []references.Option{}
	}
	if c.pages != nil {
		c.pages.SetDefault(key, page)
	}

	logger.Debug().
		Int("results", len(page.Results)).
		Dur("took", took).
		Msg("List search completed")

	return &page, nil
}

// Invalidate drops cached pages. With no list ids every page is dropped.
func (c *Client) Invalidate(listIDs ...string) {
	if c.pages == nil {
		return
	}
	if len(listIDs) == 0 {
		c.pages.Flush()
		return
	}
	for key := range c.pages.Items() {
		for _, id := range listIDs {
			if strings.HasPrefix(key, id+"\x00") {
				c.pages.Delete(key)
			}
		}
	}
}
