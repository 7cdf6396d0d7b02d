package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// TestDefaultCORSConfig tests default CORS configuration.
func TestDefaultCORSConfig(t *testing.T) {
	config := DefaultCORSConfig()

	if config.AllowAll {
		t.Error("expected AllowAll=false by default")
	}
	if len(config.AllowedMethods) != 2 {
		t.Errorf("expected read-only methods, got %v", config.AllowedMethods)
	}
}

// TestCORS tests the CORS middleware with various scenarios.
func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		config     CORSConfig
		origin     string
		wantOrigin string
		wantVary   bool
	}{
		{
			name:       "allow all",
			config:     CORSConfig{AllowAll: true},
			origin:     "https://app.example.com",
			wantOrigin: "*",
		},
		{
			name:       "specific origin allowed",
			config:     CORSConfig{AllowedOrigins: []string{"https://app.example.com"}},
			origin:     "https://app.example.com",
			wantOrigin: "https://app.example.com",
			wantVary:   true,
		},
		{
			name:       "origin not allowed",
			config:     CORSConfig{AllowedOrigins: []string{"https://app.example.com"}},
			origin:     "https://evil.example.com",
			wantOrigin: "",
		},
		{
			name:       "empty origin list allows all",
			config:     CORSConfig{},
			origin:     "https://any.example.com",
			wantOrigin: "*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/controlled_lists", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()

			CORS(tt.config)(okHandler()).ServeHTTP(w, req)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if vary := w.Header().Get("Vary") == "Origin"; vary != tt.wantVary {
				t.Errorf("Vary: Origin = %v, want %v", vary, tt.wantVary)
			}
			if w.Code != http.StatusOK {
				t.Errorf("expected request to pass through, got %d", w.Code)
			}
		})
	}
}

// TestCORS_PreflightShortCircuit tests that OPTIONS never reaches the handler.
func TestCORS_PreflightShortCircuit(t *testing.T) {
	called := false
	handler := CORS(DefaultCORSConfig())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/controlled_list/abc", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if called {
		t.Error("preflight reached the handler")
	}
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Methods") != "GET, OPTIONS" {
		t.Errorf("unexpected methods header %q", w.Header().Get("Access-Control-Allow-Methods"))
	}
}

// TestIsOriginAllowed tests origin matching.
func TestIsOriginAllowed(t *testing.T) {
	if !isOriginAllowed("https://a", []string{"*"}) {
		t.Error("wildcard should allow any origin")
	}
	if !isOriginAllowed("https://a", []string{"https://b", "https://a"}) {
		t.Error("listed origin should be allowed")
	}
	if isOriginAllowed("https://a", []string{"https://b"}) {
		t.Error("unlisted origin should not be allowed")
	}
}
