package check

import (
	"bytes"
	"encoding/json"
)

// RunResult maps check names to their Results for one complete pass over
// the registry. Names are unique within a run and iteration order is the
// registry's declared order, which is preserved through JSON serialization.
//
// A RunResult is built once by the runner and never mutated after being
// handed to the store, so concurrent readers need no synchronization.
type RunResult struct {
	names   []string
	results map[string]Result
}

// NewRunResult creates an empty RunResult sized for n checks.
func NewRunResult(n int) *RunResult {
	return &RunResult{
		names:   make([]string, 0, n),
		results: make(map[string]Result, n),
	}
}

// Set records the result for a named check. Setting an existing name
// replaces its result without changing its position.
func (rr *RunResult) Set(name string, result Result) {
	if _, ok := rr.results[name]; !ok {
		rr.names = append(rr.names, name)
	}
	rr.results[name] = result
}

// Get returns the result for a named check.
func (rr *RunResult) Get(name string) (Result, bool) {
	r, ok := rr.results[name]
	return r, ok
}

// Names returns the check names in declaration order.
func (rr *RunResult) Names() []string {
	out := make([]string, len(rr.names))
	copy(out, rr.names)
	return out
}

// Len returns the number of results.
func (rr *RunResult) Len() int {
	return len(rr.names)
}

// Passed returns how many results succeeded.
func (rr *RunResult) Passed() int {
	n := 0
	for _, name := range rr.names {
		if rr.results[name].Passed() {
			n++
		}
	}
	return n
}

// Failed returns the names of failed checks in declaration order.
func (rr *RunResult) Failed() []string {
	var out []string
	for _, name := range rr.names {
		if !rr.results[name].Passed() {
			out = append(out, name)
		}
	}
	return out
}

// MarshalJSON serializes the RunResult as a JSON object whose keys appear
// in declaration order.
func (rr *RunResult) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range rr.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(rr.results[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
