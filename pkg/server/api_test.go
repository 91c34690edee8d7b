package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/probekit/netprobe/pkg/check"
	"github.com/probekit/netprobe/pkg/config"
	"github.com/probekit/netprobe/pkg/store"
)

// newTestServer builds a Server over a tiny battery without starting the
// scheduler or the listener.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := config.Default()
	cfg.Checks = []config.CheckSpec{
		{Name: "ok", Type: config.TypeCommand, Description: "always passes",
			Command: "true", Timeout: 5 * time.Second},
		{Name: "bad", Type: config.TypeCommand, Description: "always fails",
			Command: "exit 1", Timeout: 5 * time.Second},
	}

	s, err := NewServer(cfg, logger)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return s
}

// seedRun inserts one completed run directly into the store.
func seedRun(s *Server, timestamp string) {
	rr := check.NewRunResult(2)
	rr.Set("ok", check.CommandResult{Description: "always passes", Command: "true", Success: true})
	rr.Set("bad", check.CommandResult{Description: "always fails", Command: "exit 1", Success: false, ReturnCode: 1, Stderr: "nope"})
	s.store.Add(timestamp, rr)
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestAPILatest_EmptyStore(t *testing.T) {
	s := newTestServer(t)
	w := get(t, s.routes(), "/api/latest")

	if w.Code != http.StatusOK {
		t.Errorf("emptiness is data, not a transport error: expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["error"] != noResultsMessage {
		t.Errorf("expected %q, got %q", noResultsMessage, body["error"])
	}
}

func TestAPILatest_WithResults(t *testing.T) {
	s := newTestServer(t)
	older := "2026-08-01T10:00:00.000000000Z"
	newer := "2026-08-01T10:05:00.000000000Z"
	seedRun(s, older)
	seedRun(s, newer)

	w := get(t, s.routes(), "/api/latest")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Timestamp string                     `json:"timestamp"`
		Results   map[string]json.RawMessage `json:"results"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Timestamp != newer {
		t.Errorf("expected latest timestamp %s, got %s", newer, body.Timestamp)
	}
	if len(body.Results) != 2 {
		t.Errorf("expected 2 results, got %d", len(body.Results))
	}
}

func TestAPIResults_WholeStore(t *testing.T) {
	s := newTestServer(t)
	seedRun(s, "2026-08-01T10:00:00.000000000Z")
	seedRun(s, "2026-08-01T10:05:00.000000000Z")

	w := get(t, s.routes(), "/api/results")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Result().Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}

	var body map[string]map[string]json.RawMessage
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(body))
	}
	for ts, results := range body {
		if len(results) != 2 {
			t.Errorf("run %s has %d results, expected 2", ts, len(results))
		}
	}
}

func TestAPISummary(t *testing.T) {
	s := newTestServer(t)
	seedRun(s, "2026-08-01T10:00:00.000000000Z")

	w := get(t, s.routes(), "/api/summary")

	var body summaryResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Total != 2 || body.Passed != 1 || body.Failed != 1 {
		t.Errorf("expected 1/2 passed, got %+v", body)
	}
	if len(body.Failures) != 1 || body.Failures[0] != "bad" {
		t.Errorf("expected failures [bad], got %v", body.Failures)
	}
}

func TestAPISummary_EmptyStore(t *testing.T) {
	s := newTestServer(t)
	w := get(t, s.routes(), "/api/summary")

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["error"] != noResultsMessage {
		t.Errorf("expected %q, got %q", noResultsMessage, body["error"])
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	w := get(t, s.routes(), "/healthz")

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Errorf("expected 'ok', got %q", w.Body.String())
	}
}

func TestMethodGuard(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/latest", nil)
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 for POST, got %d", w.Code)
	}
}

func TestNoCacheHeaders(t *testing.T) {
	s := newTestServer(t)
	w := get(t, s.routes(), "/api/latest")

	if cc := w.Result().Header.Get("Cache-Control"); !strings.Contains(cc, "no-cache") {
		t.Errorf("expected no-cache header, got %q", cc)
	}
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t)
	seedRun(s, store.Timestamp(time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)))

	w := get(t, s.routes(), "/metrics")
	body := w.Body.String()

	if !strings.Contains(body, `netprobe_check_success{check="ok"} 1`) {
		t.Errorf("expected passing check metric, got:\n%s", body)
	}
	if !strings.Contains(body, `netprobe_check_success{check="bad"} 0`) {
		t.Errorf("expected failing check metric, got:\n%s", body)
	}
	if !strings.Contains(body, "netprobe_checks_total 2") {
		t.Errorf("expected total metric, got:\n%s", body)
	}
	if !strings.Contains(body, "netprobe_checks_passed 1") {
		t.Errorf("expected passed metric, got:\n%s", body)
	}
}

func TestMetrics_EmptyStore(t *testing.T) {
	s := newTestServer(t)
	w := get(t, s.routes(), "/metrics")

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "netprobe_check_success{") {
		t.Error("expected no per-check series before the first run")
	}
}

func TestRunOnce_PopulatesStore(t *testing.T) {
	s := newTestServer(t)

	s.runOnce(context.Background())

	run, ok := s.store.Latest()
	if !ok {
		t.Fatal("expected a run in the store")
	}
	if run.Results.Len() != s.runner.Size() {
		t.Errorf("expected %d results, got %d", s.runner.Size(), run.Results.Len())
	}
	for _, name := range []string{"ok", "bad"} {
		if _, ok := run.Results.Get(name); !ok {
			t.Errorf("expected result for %q", name)
		}
	}
}
