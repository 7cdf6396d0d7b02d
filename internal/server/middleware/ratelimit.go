package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/agentstation/refselect/internal/server/response"
)

// RateLimiter counts requests per client address in fixed windows.
// A search control fires one request per quiet period while the user
// types, so the limit should leave room for that.
type RateLimiter struct {
	visitors   *gocache.Cache
	limit      int
	window     time.Duration
	trustProxy bool
	logger     *zerolog.Logger
}

// NewRateLimiter creates a limiter allowing limit requests per minute per
// client. With trustProxy set the client is taken from X-Forwarded-For,
// which is only safe behind a proxy that overwrites that header.
func NewRateLimiter(limit int, trustProxy bool, logger *zerolog.Logger) *RateLimiter {
	rl := newRateLimiter(limit, time.Minute, logger)
	rl.trustProxy = trustProxy
	return rl
}

func newRateLimiter(limit int, window time.Duration, logger *zerolog.Logger) *RateLimiter {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &RateLimiter{
		visitors: gocache.New(window, 5*time.Minute),
		limit:    limit,
		window:   window,
		logger:   logger,
	}
}

// allow records a request from client and reports whether it fits the
// current window.
func (rl *RateLimiter) allow(client string) bool {
	// Add only succeeds when the window is absent or expired.
	_ = rl.visitors.Add(client, 0, rl.window)
	n, err := rl.visitors.IncrementInt(client, 1)
	if err != nil {
		// The window expired between Add and IncrementInt.
		return true
	}
	return n <= rl.limit
}

// RateLimit middleware rejects clients that exceed the limiter's budget.
func RateLimit(rl *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientAddr(r, rl.trustProxy)
			if !rl.allow(client) {
				rl.logger.Warn().
					Str("client", client).
					Str("path", r.URL.Path).
					Msg("Rate limit exceeded")
				w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
				response.JSON(w, http.StatusTooManyRequests,
					response.Fail("RATE_LIMITED", "Rate limit exceeded", "Too many requests. Please try again later."))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientAddr returns the remote host. The first X-Forwarded-For hop is
// used instead only when trustForwarded is set; clients can forge it.
func clientAddr(r *http.Request, trustForwarded bool) string {
	if fwd := r.Header.Get("X-Forwarded-For"); trustForwarded && fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
