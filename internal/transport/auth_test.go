package transport

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newRequest(t *testing.T, rawURL string) *http.Request {
	t.Helper()
	u, err := url.Parse(rawURL)
	assert.NoError(t, err)
	return &http.Request{URL: u, Header: make(http.Header)}
}

func TestNoAuth(t *testing.T) {
	req := newRequest(t, "https://lists.example.com/controlled_list/1")
	(&NoAuth{}).Apply(req, "secret")
	assert.Empty(t, req.Header)
	assert.Empty(t, req.URL.RawQuery)
}

func TestBearerAuth(t *testing.T) {
	req := newRequest(t, "https://lists.example.com/controlled_list/1")
	(&BearerAuth{}).Apply(req, "secret")
	assert.Equal(t, "Bearer secret", req.Header.Get("Authorization"))
}

func TestHeaderAuth(t *testing.T) {
	req := newRequest(t, "https://lists.example.com/controlled_list/1")
	(&HeaderAuth{Header: "X-Api-Key"}).Apply(req, "secret")
	assert.Equal(t, "secret", req.Header.Get("X-Api-Key"))
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestQueryAuth(t *testing.T) {
	auth := &QueryAuth{Param: "key"}

	req := newRequest(t, "https://lists.example.com/controlled_list/1?flat=true")
	auth.Apply(req, "secret")
	assert.Equal(t, "secret", req.URL.Query().Get("key"))
	assert.Equal(t, "true", req.URL.Query().Get("flat"))

	assert.NotPanics(t, func() {
		auth.Apply(&http.Request{Header: make(http.Header)}, "secret")
	})
}

func TestParseAuth(t *testing.T) {
	tests := []struct {
		scheme string
		want   Authenticator
	}{
		{scheme: "", want: &NoAuth{}},
		{scheme: "none", want: &NoAuth{}},
		{scheme: "bearer", want: &BearerAuth{}},
		{scheme: "header:X-Token", want: &HeaderAuth{Header: "X-Token"}},
		{scheme: "query:api_key", want: &QueryAuth{Param: "api_key"}},
		{scheme: "header:", want: &BearerAuth{}},
		{scheme: "mystery", want: &BearerAuth{}},
	}

	for _, tt := range tests {
		t.Run(tt.scheme, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAuth(tt.scheme))
		})
	}
}
