package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/probekit/netprobe/pkg/store"
)

// handleMetrics writes Prometheus-formatted metrics for the latest run.
func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")

	w.Write([]byte("# HELP netprobe_check_success Whether the check passed in the latest run (1=pass, 0=fail).\n"))
	w.Write([]byte("# TYPE netprobe_check_success gauge\n"))
	w.Write([]byte("# HELP netprobe_checks_total Number of checks in the latest run.\n"))
	w.Write([]byte("# TYPE netprobe_checks_total gauge\n"))
	w.Write([]byte("# HELP netprobe_checks_passed Number of passing checks in the latest run.\n"))
	w.Write([]byte("# TYPE netprobe_checks_passed gauge\n"))
	w.Write([]byte("# HELP netprobe_last_run_timestamp_seconds Unix time of the latest completed run.\n"))
	w.Write([]byte("# TYPE netprobe_last_run_timestamp_seconds gauge\n"))

	run, ok := s.store.Latest()
	if !ok {
		return
	}

	for _, name := range run.Results.Names() {
		result, _ := run.Results.Get(name)
		val := 0
		if result.Passed() {
			val = 1
		}
		w.Write(fmt.Appendf([]byte{},
			"netprobe_check_success{check=\"%s\"} %d\n",
			sanitizePrometheusLabel(name), val,
		))
	}

	w.Write(fmt.Appendf([]byte{}, "netprobe_checks_total %d\n", run.Results.Len()))
	w.Write(fmt.Appendf([]byte{}, "netprobe_checks_passed %d\n", run.Results.Passed()))

	if ts, err := time.Parse(store.TimestampLayout, run.Timestamp); err == nil {
		w.Write(fmt.Appendf([]byte{}, "netprobe_last_run_timestamp_seconds %d\n", ts.Unix()))
	}
}

// sanitizePrometheusLabel escapes backslash, double-quote, and newline
// characters in a Prometheus label value per the exposition format spec.
func sanitizePrometheusLabel(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}
