package server

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/probekit/netprobe/pkg/check"
)

//go:embed templates/*
var templateFiles embed.FS

var dashboardTmpl = template.Must(template.ParseFS(templateFiles, "templates/dashboard.html"))

// stdoutLimit caps how much captured stdout the dashboard shows per check.
const stdoutLimit = 1000

// dashboardView is the template data for the dashboard page. A nil Run
// renders the "tests are running" placeholder.
type dashboardView struct {
	Timestamp string
	Total     int
	Passed    int
	Checks    []dashboardCheck
}

type dashboardCheck struct {
	Description string
	Passed      bool
	Command     string
	URL         string
	Output      string
	Error       string
}

// handleDashboard renders the HTML summary of the latest run. With an
// empty store it renders a placeholder page, never an error.
func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	run, ok := s.store.Latest()
	if !ok {
		if err := dashboardTmpl.ExecuteTemplate(w, "dashboard.html", nil); err != nil {
			s.logger.Errorf("Failed to render dashboard: %v", err)
		}
		return
	}

	view := dashboardView{
		Timestamp: run.Timestamp,
		Total:     run.Results.Len(),
		Passed:    run.Results.Passed(),
	}
	for _, name := range run.Results.Names() {
		result, _ := run.Results.Get(name)
		view.Checks = append(view.Checks, viewCheck(name, result))
	}

	if err := dashboardTmpl.ExecuteTemplate(w, "dashboard.html", &view); err != nil {
		s.logger.Errorf("Failed to render dashboard: %v", err)
	}
}

// viewCheck flattens a Result into the fields the template shows.
func viewCheck(name string, result check.Result) dashboardCheck {
	dc := dashboardCheck{
		Description: result.Label(),
		Passed:      result.Passed(),
	}
	if dc.Description == "" {
		dc.Description = name
	}

	switch r := result.(type) {
	case check.CommandResult:
		dc.Command = r.Command
		if r.Success {
			dc.Output = truncate(r.Stdout, stdoutLimit)
		} else {
			dc.Error = r.Stderr
		}
	case check.RequestResult:
		dc.URL = r.URL
		if r.Success {
			dc.Output = r.ContentPreview
		} else {
			dc.Error = r.Error
		}
	case check.Failure:
		dc.Error = r.Error
	}
	return dc
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
