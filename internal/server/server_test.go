package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agentstation/refselect/internal/transport"
	"github.com/agentstation/refselect/pkg/controlledlists"
	"github.com/agentstation/refselect/pkg/listclient"
	"github.com/agentstation/refselect/pkg/logging"
	"github.com/agentstation/refselect/pkg/references"
	"github.com/agentstation/refselect/pkg/selection"
)

func newTestServer(t *testing.T, cfg Config) (*httptest.Server, *controlledlists.Registry) {
	t.Helper()

	lists, err := controlledlists.LoadDir(filepath.Join("..", "..", "pkg", "controlledlists", "testdata"))
	if err != nil {
		t.Fatalf("loading fixtures: %v", err)
	}
	reg := controlledlists.NewRegistry(lists...)

	srv, err := New(reg, cfg, logging.NewNopLogger())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return ts, reg
}

func colorsID(t *testing.T, reg *controlledlists.Registry) string {
	t.Helper()
	for _, l := range reg.List() {
		if l.Name == "Colors" {
			return l.ID
		}
	}
	t.Fatal("colors fixture missing")
	return ""
}

func getJSON(t *testing.T, url string, target any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			t.Fatalf("decoding %s: %v", url, err)
		}
	}
	return resp
}

// TestServer_ListLists tests the list index in both shapes.
func TestServer_ListLists(t *testing.T) {
	ts, _ := newTestServer(t, DefaultConfig())

	var tree struct {
		ControlledLists []struct {
			Name  string            `json:"name"`
			Items []json.RawMessage `json:"items"`
		} `json:"controlled_lists"`
	}
	getJSON(t, ts.URL+"/controlled_lists", &tree)
	if len(tree.ControlledLists) != 2 {
		t.Fatalf("expected 2 lists, got %d", len(tree.ControlledLists))
	}
	if n := len(tree.ControlledLists[0].Items); n != 2 {
		t.Errorf("expected 2 top level items in tree shape, got %d", n)
	}

	getJSON(t, ts.URL+"/controlled_lists?flat=true", &tree)
	if n := len(tree.ControlledLists[0].Items); n != 4 {
		t.Errorf("expected 4 items in flat shape, got %d", n)
	}
}

// TestServer_GetListFlat tests the flat search endpoint and its cache.
func TestServer_GetListFlat(t *testing.T) {
	ts, reg := newTestServer(t, DefaultConfig())
	id := colorsID(t, reg)

	var body struct {
		Items []references.Option `json:"items"`
	}
	resp := getJSON(t, ts.URL+"/controlled_list/"+id+"?flat=true&term=rot", &body)
	if resp.Header.Get("X-Cache") != "MISS" {
		t.Errorf("first request should miss the cache")
	}
	if len(body.Items) != 1 {
		t.Fatalf("expected 1 match, got %d", len(body.Items))
	}
	item := body.Items[0]
	if item.Depth != 1 || item.ListID != id || item.ListItemID == "" || item.URI == "" {
		t.Errorf("unexpected option %+v", item)
	}

	resp = getJSON(t, ts.URL+"/controlled_list/"+id+"?term=rot&flat=true", nil)
	if resp.Header.Get("X-Cache") != "HIT" {
		t.Errorf("reordered query should hit the cache")
	}
}

// TestServer_Resolve tests resolving ids and label text into references.
func TestServer_Resolve(t *testing.T) {
	ts, reg := newTestServer(t, DefaultConfig())
	id := colorsID(t, reg)
	list, err := reg.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	blue, _ := list.FindByLabel("Blue")

	var body struct {
		Value references.Value `json:"value"`
	}
	resp := getJSON(t, ts.URL+"/controlled_list/"+id+"/resolve?value=Rot&value="+blue.ID, &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := references.DisplayValue(body.Value, "en", ""); got != "Red, Blue" {
		t.Errorf("display = %q", got)
	}

	var missing struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	resp = getJSON(t, ts.URL+"/controlled_list/"+id+"/resolve?value=Purple", &missing)
	if resp.StatusCode != http.StatusNotFound || missing.Error.Code != "NOT_FOUND" {
		t.Errorf("unknown label: status %d, code %q", resp.StatusCode, missing.Error.Code)
	}

	if resp := getJSON(t, ts.URL+"/controlled_list/"+id+"/resolve", nil); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing value: status %d", resp.StatusCode)
	}
}

// TestServer_NotFound tests the error envelope for unknown lists.
func TestServer_NotFound(t *testing.T) {
	ts, _ := newTestServer(t, DefaultConfig())

	var body struct {
		Data  any `json:"data"`
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	resp := getJSON(t, ts.URL+"/controlled_list/4b1c0f3e-0000-4000-8000-000000000000?flat=true", &body)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if body.Error.Code != "NOT_FOUND" {
		t.Errorf("error code = %q", body.Error.Code)
	}
}

// TestServer_HealthAndMetrics tests the operational endpoints.
func TestServer_HealthAndMetrics(t *testing.T) {
	ts, _ := newTestServer(t, DefaultConfig())

	var health struct {
		Data struct {
			Status    string `json:"status"`
			Lists     int    `json:"lists"`
			Timestamp string `json:"timestamp"`
		} `json:"data"`
	}
	getJSON(t, ts.URL+"/health", &health)
	if health.Data.Status != "healthy" || health.Data.Lists != 2 {
		t.Errorf("unexpected health %+v", health.Data)
	}
	if health.Data.Timestamp == "" {
		t.Error("health missing timestamp")
	}

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(raw), "refselect_server_requests_total") {
		t.Error("metrics output missing request counter")
	}
}

// TestServer_PathPrefix tests mounting the list routes under a prefix.
func TestServer_PathPrefix(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PathPrefix = "/plugins"
	ts, _ := newTestServer(t, cfg)

	if resp := getJSON(t, ts.URL+"/plugins/controlled_lists", nil); resp.StatusCode != http.StatusOK {
		t.Errorf("prefixed route status = %d", resp.StatusCode)
	}
	if resp := getJSON(t, ts.URL+"/controlled_lists", nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("unprefixed route status = %d", resp.StatusCode)
	}
}

// TestServer_AuthRequiresToken tests that New rejects auth without a token.
func TestServer_AuthRequiresToken(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AuthEnabled = true
	if _, err := New(controlledlists.NewRegistry(), cfg, logging.NewNopLogger()); err == nil {
		t.Fatal("expected an error")
	}
}

// TestServer_RateLimit tests that a configured limit rejects excess requests.
func TestServer_RateLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimit = 2
	ts, _ := newTestServer(t, cfg)

	for i := range 2 {
		if resp := getJSON(t, ts.URL+"/controlled_lists", nil); resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d status = %d", i, resp.StatusCode)
		}
	}
	if resp := getJSON(t, ts.URL+"/controlled_lists", nil); resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", resp.StatusCode)
	}
}

// TestServer_ReconcilerEndToEnd drives a reconciler through the list client
// against the server: search, render, select, then restore.
func TestServer_ReconcilerEndToEnd(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AuthEnabled = true
	cfg.AuthToken = "tok"
	ts, reg := newTestServer(t, cfg)
	listID := colorsID(t, reg)

	unauthorized, err := listclient.New(ts.URL, listclient.WithLogger(logging.NewNopLogger()))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := unauthorized.Search(context.Background(), listID, ""); err == nil {
		t.Fatal("expected unauthorized search to fail")
	}

	client, err := listclient.New(ts.URL,
		listclient.WithLogger(logging.NewNopLogger()),
		listclient.WithAuth(&transport.BearerAuth{}, "tok"),
	)
	if err != nil {
		t.Fatal(err)
	}

	value := selection.NewObservable[references.Value](nil)
	rec, err := selection.New(selection.Config{ControlledList: listID, MultiValue: true}, value, client,
		selection.WithLogger(logging.NewNopLogger()), selection.WithIndent("-"))
	if err != nil {
		t.Fatal(err)
	}
	defer rec.Close()

	page := rec.FetchOptions(context.Background(), "")
	if len(page.Results) != 4 {
		t.Fatalf("expected 4 options, got %d", len(page.Results))
	}

	var rendered []string
	var ids []references.SelectionID
	for _, opt := range page.Results {
		rendered = append(rendered, rec.RenderOptionLabel(opt))
		if !opt.Disabled {
			ids = append(ids, opt.SelectionID())
		}
	}
	if got := strings.Join(rendered, "|"); got != "Blue|Warm colors|-Orange|-Red" {
		t.Errorf("rendered = %s", got)
	}

	if err := rec.Select(ids...); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got := rec.DisplayValue(); got != "Blue, Orange, Red" {
		t.Errorf("display value = %q", got)
	}
	if err := references.Validate(value.Get(), true); err != nil {
		t.Errorf("selected value invalid: %v", err)
	}

	// A fresh reconciler over the stored value restores its rows.
	var restored []selection.SelectedEntry
	again, err := selection.New(selection.Config{ControlledList: listID, MultiValue: true}, value, client,
		selection.WithLogger(logging.NewNopLogger()),
		selection.WithControl(selection.ControlFunc(func(e selection.SelectedEntry) {
			restored = append(restored, e)
		})))
	if err != nil {
		t.Fatal(err)
	}
	defer again.Close()

	again.InitializeSelection(nil)
	if len(restored) != 3 || restored[2].Text != "Red" {
		t.Errorf("restored rows = %+v", restored)
	}
}
