package server

import (
	"context"
	"time"

	"github.com/probekit/netprobe/pkg/check"
	"github.com/probekit/netprobe/pkg/store"
)

// scheduler runs the battery once immediately, then repeatedly after a
// fixed pause, for the lifetime of the process. The pause is measured from
// the end of one run to the start of the next, so a slow run never causes
// overlapping runs.
func (s *Server) scheduler(ctx context.Context) {
	defer s.wg.Done()

	s.logger.Info("Running initial check battery...")
	s.runOnce(ctx)

	for {
		select {
		case <-time.After(s.cfg.Interval):
			s.runOnce(ctx)
		case <-s.done:
			s.logger.Info("Scheduler received shutdown signal.")
			return
		}
	}
}

// runOnce executes one full pass and inserts the completed RunResult into
// the store under the current timestamp. The store insert happens only
// after the run is fully built, so readers never observe a partial run.
func (s *Server) runOnce(ctx context.Context) {
	timestamp := store.Timestamp(time.Now())
	s.logger.Infof("Running checks at %s", timestamp)

	rr := s.runner.Run(ctx)

	select {
	case <-s.done:
		// Shutdown raced the run; drop the result rather than publish
		// a pass that was cut short by context cancellation.
		return
	default:
	}

	s.store.Add(timestamp, rr)
	s.logFailures(rr)
}

// logFailures emits one warning per failed check with its captured detail.
func (s *Server) logFailures(rr *check.RunResult) {
	for _, name := range rr.Failed() {
		result, _ := rr.Get(name)
		entry := s.logger.WithField("check", name)
		switch r := result.(type) {
		case check.CommandResult:
			entry.Warnf("FAILED: %s (return code %d): %s", r.Description, r.ReturnCode, r.Stderr)
		case check.RequestResult:
			entry.Warnf("FAILED: %s: %s", r.Description, r.Error)
		case check.Failure:
			entry.Warnf("FAILED: %s: %s", r.Description, r.Error)
		default:
			entry.Warnf("FAILED: %s", result.Label())
		}
	}
}
