package transport

import (
	"net/http"
	"strings"
)

// Authenticator applies credentials to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request, token string)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request, _ string) {}

// BearerAuth sends the token as a Bearer authorization header.
type BearerAuth struct{}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
}

// HeaderAuth sends the token verbatim in a custom header.
type HeaderAuth struct {
	Header string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(req *http.Request, token string) {
	req.Header.Set(a.Header, token)
}

// QueryAuth sends the token as a query parameter.
type QueryAuth struct {
	Param string
}

// Apply implements the Authenticator interface for QueryAuth.
func (a *QueryAuth) Apply(req *http.Request, token string) {
	if req.URL == nil {
		return
	}
	query := req.URL.Query()
	query.Set(a.Param, token)
	req.URL.RawQuery = query.Encode()
}

// ParseAuth returns the authenticator named by scheme: "none", "bearer",
// "header:<name>" or "query:<param>". Unknown schemes fall back to bearer.
func ParseAuth(scheme string) Authenticator {
	if scheme == "" || scheme == "none" {
		return &NoAuth{}
	}
	if header, ok := strings.CutPrefix(scheme, "header:"); ok && header != "" {
		return &HeaderAuth{Header: header}
	}
	if param, ok := strings.CutPrefix(scheme, "query:"); ok && param != "" {
		return &QueryAuth{Param: param}
	}
	return &BearerAuth{}
}
