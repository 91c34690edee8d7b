// Package store holds the in-memory history of check runs.
//
// The store maps ISO-8601 timestamps to completed RunResults. Exactly one
// writer (the scheduler) appends runs; any number of readers (the HTTP
// handlers) read concurrently. Entries are never mutated after insertion,
// so a reader always observes either the prior latest run or the fully
// completed new one, never a partial run.
package store

import (
	"sync"
	"time"

	"github.com/probekit/netprobe/pkg/check"
)

// TimestampLayout is the fixed-width UTC ISO-8601 layout used for run
// keys. Fixed width keeps lexicographic order identical to chronological
// order, which is what makes the "latest = maximum key" rule valid.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z"

// DefaultMaxRuns is the default retention bound: roughly 24 hours of
// history at the default 5-minute interval.
const DefaultMaxRuns = 288

// Run pairs a timestamp key with its RunResult.
type Run struct {
	Timestamp string           `json:"timestamp"`
	Results   *check.RunResult `json:"results"`
}

// Store is the process-wide run history. It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	order   []string // timestamps in insertion (chronological) order
	runs    map[string]*check.RunResult
	maxRuns int
}

// New creates a Store that retains at most maxRuns entries, evicting the
// oldest when the bound is exceeded. maxRuns <= 0 disables eviction.
func New(maxRuns int) *Store {
	return &Store{
		runs:    make(map[string]*check.RunResult),
		maxRuns: maxRuns,
	}
}

// Timestamp formats t as a store key.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Add inserts a completed run under the given timestamp key. The RunResult
// must not be mutated by the caller afterwards.
func (s *Store) Add(timestamp string, rr *check.RunResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[timestamp]; !exists {
		s.order = append(s.order, timestamp)
	}
	s.runs[timestamp] = rr

	if s.maxRuns > 0 {
		for len(s.order) > s.maxRuns {
			oldest := s.order[0]
			s.order = s.order[1:]
			delete(s.runs, oldest)
		}
	}
}

// Len returns the number of retained runs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Latest returns the run with the maximum timestamp key, or ok=false when
// the store is empty.
func (s *Store) Latest() (Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.order) == 0 {
		return Run{}, false
	}

	max := s.order[0]
	for _, ts := range s.order[1:] {
		if ts > max {
			max = ts
		}
	}
	return Run{Timestamp: max, Results: s.runs[max]}, true
}

// All returns every retained run in chronological order. The RunResults
// are shared immutable values; only the slice is fresh.
func (s *Store) All() []Run {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Run, 0, len(s.order))
	for _, ts := range s.order {
		out = append(out, Run{Timestamp: ts, Results: s.runs[ts]})
	}
	return out
}
