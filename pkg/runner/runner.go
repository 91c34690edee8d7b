// Package runner executes the configured check battery and collects one
// complete RunResult per pass.
package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/probekit/netprobe/pkg/check"
)

// Entry pairs a unique check name with its configured Check. Entry order
// is the registry's declared order and is preserved in the RunResult.
type Entry struct {
	Name        string
	Description string
	Check       check.Check
}

// Runner executes a fixed, ordered battery of checks.
type Runner struct {
	entries []Entry
	logger  *logrus.Logger
}

// New creates a Runner over the given battery. Entry names must be unique.
func New(entries []Entry, logger *logrus.Logger) (*Runner, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("runner: at least one check is required")
	}

	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("runner: check name must not be empty")
		}
		if _, dup := seen[e.Name]; dup {
			return nil, fmt.Errorf("runner: duplicate check name %q", e.Name)
		}
		seen[e.Name] = struct{}{}
		if e.Check == nil {
			return nil, fmt.Errorf("runner: check %q has no implementation", e.Name)
		}
	}

	return &Runner{entries: entries, logger: logger}, nil
}

// Names returns the battery's check names in declared order.
func (r *Runner) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

// Size returns the number of checks in the battery.
func (r *Runner) Size() int {
	return len(r.entries)
}

// Run executes every check in the battery and returns a RunResult with
// exactly one entry per check, keyed by the check's declared name.
//
// Checks are independent and run concurrently; the RunResult still lists
// them in declared order. A misbehaving check implementation (panic) is
// converted into a failed result for that name and never aborts the run.
func (r *Runner) Run(ctx context.Context) *check.RunResult {
	start := time.Now()

	results := make([]check.Result, len(r.entries))
	var wg sync.WaitGroup
	for i, e := range r.entries {
		wg.Add(1)
		go func(i int, e Entry) {
			defer wg.Done()
			results[i] = r.runOne(ctx, e)
		}(i, e)
	}
	wg.Wait()

	rr := check.NewRunResult(len(r.entries))
	for i, e := range r.entries {
		rr.Set(e.Name, results[i])
	}

	r.logger.WithFields(logrus.Fields{
		"checks":  rr.Len(),
		"passed":  rr.Passed(),
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Info("run complete")

	return rr
}

// runOne executes a single check, converting a panic inside the check
// implementation into a synthetic failed result.
func (r *Runner) runOne(ctx context.Context, e Entry) (result check.Result) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.WithField("check", e.Name).Errorf("check panicked: %v", p)
			result = check.Failure{
				Description: e.Description,
				Success:     false,
				Error:       fmt.Sprintf("check panicked: %v", p),
			}
		}
	}()
	return e.Check.Run(ctx)
}
