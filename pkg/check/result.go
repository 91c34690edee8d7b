package check

// Result is the outcome of a single check execution. Exactly one concrete
// variant backs each value: CommandResult for command checks, RequestResult
// for request checks, or Failure for a check implementation that misbehaved.
// Consumers that only need pass/fail coloring must rely on Passed() alone.
type Result interface {
	// Passed reports whether the check succeeded.
	Passed() bool

	// Label returns the human-readable description of the check.
	Label() string
}

// CommandResult is the outcome of a command check: one external process
// invocation with its captured streams and exit code.
type CommandResult struct {
	Description string `json:"description"`
	Command     string `json:"command"`
	Success     bool   `json:"success"`
	Stdout      string `json:"stdout"`
	Stderr      string `json:"stderr"`

	// ReturnCode is the process exit code. -1 is reserved for timeouts
	// and spawn failures, distinct from any real exit code.
	ReturnCode int `json:"return_code"`
}

// Passed reports whether the command exited zero.
func (r CommandResult) Passed() bool { return r.Success }

// Label returns the check description.
func (r CommandResult) Label() string { return r.Description }

// RequestResult is the outcome of a request check: one HTTP GET with its
// captured response, or the transport error it failed with.
type RequestResult struct {
	Description string `json:"description"`
	URL         string `json:"url"`

	// Success means a response was received, regardless of status code.
	// A 404 or 500 still counts as success; only transport-level failures
	// (DNS, connect, TLS, timeout) are failures.
	Success bool `json:"success"`

	// StatusCode is absent on transport failure.
	StatusCode *int `json:"status_code,omitempty"`

	ResponseSize   int               `json:"response_size"`
	Headers        map[string]string `json:"headers"`
	ContentPreview string            `json:"content_preview"`

	// Error is present only on failure.
	Error string `json:"error,omitempty"`
}

// Passed reports whether a response was received.
func (r RequestResult) Passed() bool { return r.Success }

// Label returns the check description.
func (r RequestResult) Label() string { return r.Description }

// Failure is a synthetic failed result produced by the runner when a check
// implementation panics or otherwise escapes its own error capture. It
// carries no variant detail beyond the error text.
type Failure struct {
	Description string `json:"description"`
	Success     bool   `json:"success"`
	Error       string `json:"error"`
}

// Passed always reports false.
func (r Failure) Passed() bool { return r.Success }

// Label returns the check description.
func (r Failure) Label() string { return r.Description }
