package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/refselect/pkg/errors"
)

func TestClient_Get(t *testing.T) {
	var gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"uri":"u1"}]}`))
	}))
	defer srv.Close()

	c := New(&BearerAuth{}, WithToken("secret"), WithTimeout(time.Second))
	resp, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)

	var body struct {
		Items []struct {
			URI string `json:"uri"`
		} `json:"items"`
	}
	require.NoError(t, DecodeResponse(resp, "lists", &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "u1", body.Items[0].URI)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
}

func TestClient_TimeoutDoesNotModifyCallerClient(t *testing.T) {
	own := &http.Client{Timeout: 5 * time.Minute}

	c := New(nil, WithHTTPClient(own), WithTimeout(time.Second))

	assert.Equal(t, 5*time.Minute, own.Timeout)
	assert.Equal(t, time.Second, c.http.Timeout)
	assert.NotSame(t, own, c.http)

	// Without a timeout option the supplied client is used as is.
	c = New(nil, WithHTTPClient(own))
	assert.Same(t, own, c.http)
}

func TestClient_NoTokenNoAuth(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	resp, err := New(&BearerAuth{}).Get(context.Background(), srv.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Empty(t, gotAuth)
}

func TestClient_Canceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(nil).Get(ctx, srv.URL)
	require.Error(t, err)
	assert.True(t, errors.IsCanceled(err))
}

func TestDecodeResponse_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		unavailable bool
		notFound    bool
		parse       bool
	}{
		{name: "server error", status: http.StatusBadGateway, body: "upstream down", unavailable: true},
		{name: "missing list", status: http.StatusNotFound, body: `{"message":"nope"}`, notFound: true},
		{name: "bad json", status: http.StatusOK, body: `{"items":`, parse: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			resp, err := New(nil).Get(context.Background(), srv.URL)
			require.NoError(t, err)

			var target map[string]any
			err = DecodeResponse(resp, "lists", &target)
			require.Error(t, err)
			assert.Equal(t, tt.unavailable, errors.IsUnavailable(err))
			assert.Equal(t, tt.notFound, errors.IsNotFound(err))

			var parseErr *errors.ParseError
			assert.Equal(t, tt.parse, errors.As(err, &parseErr))

			var apiErr *errors.APIError
			if errors.As(err, &apiErr) {
				assert.Equal(t, srv.URL, apiErr.Endpoint)
			}
		})
	}
}

func TestBuildURL(t *testing.T) {
	got, err := BuildURL("https://lists.example.com/api/", "/controlled_list/{id}", "abc",
		url.Values{"flat": {"true"}, "term": {"red"}})
	require.NoError(t, err)
	assert.Equal(t, "https://lists.example.com/api/controlled_list/abc?flat=true&term=red", got)

	got, err = BuildURL("http://localhost:8000", "lists/{id}", "a b", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/lists/a%20b", got)

	_, err = BuildURL("not a url", "/x", "", nil)
	assert.True(t, errors.IsValidationError(err))
}
