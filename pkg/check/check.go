// Package check defines the core interfaces and types for connectivity checks.
//
// A Check represents a single configured probe that can be executed on a
// schedule. Two check variants exist: command checks run an external process
// and capture its exit code and output streams, while request checks issue
// an HTTP GET and capture the response. Both implement the Check interface
// with their own logic and configuration.
//
// Results are captured as Result values, which share a uniform pass/fail
// surface (Passed, Label) regardless of variant. The variant-specific detail
// fields serialize flat, matching the shape the dashboard and JSON API expose.
//
// The Registry provides type discovery, allowing check variants to be
// registered by name and instantiated from configuration at runtime.
package check

import "context"

// Check is the interface that all check variants must implement.
type Check interface {
	// Type returns the registered name of this check variant
	// (e.g. "command", "request").
	Type() string

	// Run executes the check and returns a Result. All failure modes are
	// captured in the Result; Run never returns an error to its caller.
	// The provided context can be used for cancellation and timeouts.
	Run(ctx context.Context) Result
}
