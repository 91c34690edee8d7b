package server

import (
	"encoding/json"
	"net/http"

	"github.com/probekit/netprobe/pkg/check"
	"github.com/probekit/netprobe/pkg/resolver"
)

// noResultsMessage is the indicator returned while the first run is still
// in progress. Check failures and emptiness are data, not transport errors,
// so it goes out with HTTP 200.
const noResultsMessage = "No test results available yet"

// writeJSON serializes v with the JSON content type.
func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Errorf("Failed to encode response: %v", err)
	}
}

// handleResults returns the entire store: a JSON object mapping run
// timestamps to their results. Timestamps are fixed-width ISO-8601, so the
// sorted key order Go's JSON encoder emits is chronological order.
func (s *Server) handleResults(w http.ResponseWriter, _ *http.Request) {
	runs := s.store.All()
	out := make(map[string]*check.RunResult, len(runs))
	for _, run := range runs {
		out[run.Timestamp] = run.Results
	}
	s.writeJSON(w, out)
}

// handleLatest returns the run with the greatest timestamp, or the
// no-results indicator when the store is empty.
func (s *Server) handleLatest(w http.ResponseWriter, _ *http.Request) {
	run, ok := s.store.Latest()
	if !ok {
		s.writeJSON(w, map[string]string{"error": noResultsMessage})
		return
	}
	s.writeJSON(w, run)
}

// summaryResponse is the compact latest-run summary.
type summaryResponse struct {
	Timestamp string   `json:"timestamp"`
	Total     int      `json:"total"`
	Passed    int      `json:"passed"`
	Failed    int      `json:"failed"`
	Failures  []string `json:"failures"`
}

// handleSummary returns pass/fail counts for the latest run.
func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	run, ok := s.store.Latest()
	if !ok {
		s.writeJSON(w, map[string]string{"error": noResultsMessage})
		return
	}

	failed := run.Results.Failed()
	if failed == nil {
		failed = []string{}
	}
	s.writeJSON(w, summaryResponse{
		Timestamp: run.Timestamp,
		Total:     run.Results.Len(),
		Passed:    run.Results.Passed(),
		Failed:    len(failed),
		Failures:  failed,
	})
}

// handleResolvers returns the host's parsed resolver configuration.
func (s *Server) handleResolvers(w http.ResponseWriter, _ *http.Request) {
	info, err := resolver.ReadConfig("")
	if err != nil {
		s.writeJSON(w, map[string]string{"error": err.Error()})
		return
	}
	s.writeJSON(w, info)
}

// handleHealthz is a plain liveness probe.
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
