package store

import (
	"sync"
	"testing"
	"time"

	"github.com/probekit/netprobe/pkg/check"
)

func runWith(names ...string) *check.RunResult {
	rr := check.NewRunResult(len(names))
	for _, n := range names {
		rr.Set(n, check.CommandResult{Description: n, Success: true})
	}
	return rr
}

func TestLatest_Empty(t *testing.T) {
	s := New(0)
	if _, ok := s.Latest(); ok {
		t.Error("expected no latest run on an empty store")
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d", s.Len())
	}
}

func TestLatest_ReturnsMaxTimestamp(t *testing.T) {
	s := New(0)
	t1 := "2026-08-01T10:00:00.000000000Z"
	t2 := "2026-08-01T11:00:00.000000000Z"
	t3 := "2026-08-01T12:00:00.000000000Z"

	// Insert out of order; latest is still the maximum key.
	s.Add(t2, runWith("a"))
	s.Add(t3, runWith("b"))
	s.Add(t1, runWith("c"))

	run, ok := s.Latest()
	if !ok {
		t.Fatal("expected a latest run")
	}
	if run.Timestamp != t3 {
		t.Errorf("expected latest %s, got %s", t3, run.Timestamp)
	}
	if _, ok := run.Results.Get("b"); !ok {
		t.Error("expected the T3 run's results")
	}
}

func TestAll_ChronologicalOrder(t *testing.T) {
	s := New(0)
	stamps := []string{
		"2026-08-01T10:00:00.000000000Z",
		"2026-08-01T10:05:00.000000000Z",
		"2026-08-01T10:10:00.000000000Z",
	}
	for _, ts := range stamps {
		s.Add(ts, runWith("x"))
	}

	all := s.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(all))
	}
	for i, ts := range stamps {
		if all[i].Timestamp != ts {
			t.Errorf("expected %s at index %d, got %s", ts, i, all[i].Timestamp)
		}
	}
}

func TestRetention_EvictsOldest(t *testing.T) {
	s := New(2)
	s.Add("2026-08-01T10:00:00.000000000Z", runWith("a"))
	s.Add("2026-08-01T10:05:00.000000000Z", runWith("b"))
	s.Add("2026-08-01T10:10:00.000000000Z", runWith("c"))

	if s.Len() != 2 {
		t.Fatalf("expected retention bound of 2, got %d", s.Len())
	}

	all := s.All()
	if all[0].Timestamp != "2026-08-01T10:05:00.000000000Z" {
		t.Errorf("expected oldest run evicted, got %s first", all[0].Timestamp)
	}

	run, _ := s.Latest()
	if run.Timestamp != "2026-08-01T10:10:00.000000000Z" {
		t.Errorf("latest should be unaffected by eviction, got %s", run.Timestamp)
	}
}

func TestRetention_Unbounded(t *testing.T) {
	s := New(0)
	for i := 0; i < 100; i++ {
		s.Add(Timestamp(time.Date(2026, 8, 1, 0, i, 0, 0, time.UTC)), runWith("x"))
	}
	if s.Len() != 100 {
		t.Errorf("expected all 100 runs retained, got %d", s.Len())
	}
}

func TestTimestamp_FixedWidthSortable(t *testing.T) {
	earlier := Timestamp(time.Date(2026, 8, 1, 10, 0, 5, 0, time.UTC))
	later := Timestamp(time.Date(2026, 8, 1, 10, 0, 5, 500_000_000, time.UTC))

	if len(earlier) != len(later) {
		t.Errorf("timestamps must be fixed width: %q vs %q", earlier, later)
	}
	if !(earlier < later) {
		t.Errorf("lexicographic order must match chronological order: %q vs %q", earlier, later)
	}
}

// Readers must never observe a partially populated run while the scheduler
// is inserting new ones. Run with -race to catch synchronization bugs.
func TestConcurrentReadsDuringWrites(t *testing.T) {
	const registrySize = 5
	s := New(0)
	names := []string{"a", "b", "c", "d", "e"}

	var wg sync.WaitGroup
	stop := make(chan struct{})

	// One writer, like the scheduler.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			ts := Timestamp(time.Date(2026, 8, 1, 0, 0, 0, i, time.UTC))
			s.Add(ts, runWith(names...))
		}
		close(stop)
	}()

	// Many readers, like the API handlers.
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				for _, run := range s.All() {
					if run.Results.Len() != registrySize {
						t.Errorf("observed partial run with %d entries", run.Results.Len())
						return
					}
				}
				if run, ok := s.Latest(); ok && run.Results.Len() != registrySize {
					t.Errorf("latest run has %d entries", run.Results.Len())
					return
				}
			}
		}()
	}

	wg.Wait()
}
