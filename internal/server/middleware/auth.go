package middleware

import (
	"crypto/subtle"
	"net/http"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/refselect/internal/matcher"
	"github.com/agentstation/refselect/internal/server/response"
)

// AuthConfig holds token authentication configuration. PublicPaths are
// glob patterns, e.g. "/docs/*".
type AuthConfig struct {
	Enabled     bool
	Token       string
	HeaderName  string
	PublicPaths []string
}

// DefaultAuthConfig returns default authentication configuration.
func DefaultAuthConfig() AuthConfig {
	return AuthConfig{
		HeaderName:  "X-API-Key",
		PublicPaths: []string{"/health", "/metrics", "/favicon.ico"},
	}
}

// Auth middleware requires the configured token on every non-public path.
// The token may arrive in the configured header, as a Bearer authorization
// header, or as a raw authorization header.
func Auth(config AuthConfig, logger *zerolog.Logger) func(http.Handler) http.Handler {
	public, err := matcher.NewSet(matcher.Glob, config.PublicPaths)
	if err != nil {
		logger.Error().Err(err).Msg("Invalid public path pattern, matching public paths literally")
	}
	isPublic := func(p string) bool {
		return public.Match(p) || slices.Contains(config.PublicPaths, p)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.Enabled || r.Method == http.MethodOptions || isPublic(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			token := extractToken(r, config.HeaderName)
			if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(config.Token)) != 1 {
				logger.Warn().
					Str("path", r.URL.Path).
					Str("remote_addr", r.RemoteAddr).
					Bool("token_provided", token != "").
					Msg("Authentication failed")

				response.Unauthorized(w, "Invalid or missing API token",
					"Provide a valid token in the "+config.HeaderName+" or Authorization header")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func extractToken(r *http.Request, header string) string {
	if token := r.Header.Get(header); token != "" {
		return token
	}
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return token
	}
	return auth
}
