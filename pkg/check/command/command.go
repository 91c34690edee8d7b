// Package command implements the command check variant.
//
// A command check runs its configured command line through the shell,
// capturing standard output, standard error, and the process exit code.
// The check succeeds when the process exits zero. Timeouts and spawn
// failures are reported with the reserved return code -1, never as errors.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/probekit/netprobe/pkg/check"
)

const (
	// TypeName is the registered name for this check variant.
	TypeName = "command"

	// DefaultTimeout is the default command timeout.
	DefaultTimeout = 30 * time.Second

	// TimeoutReturnCode is the reserved exit code reported for timeouts
	// and spawn failures, distinct from any real process exit code.
	TimeoutReturnCode = -1
)

// waitDelay bounds how long Wait blocks on lingering pipeline children
// holding the output pipes after the shell itself has been killed.
const waitDelay = 2 * time.Second

// Command implements check.Check by running a shell command line.
type Command struct {
	command     string
	description string
	timeout     time.Duration
}

// Option is a functional option for configuring a Command check.
type Option func(*Command) error

// WithTimeout sets the command timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Command) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %v", d)
		}
		c.timeout = d
		return nil
	}
}

// New creates a Command check for the given command line and description.
func New(cmdline string, description string, opts ...Option) (*Command, error) {
	if cmdline == "" {
		return nil, fmt.Errorf("command: command line must not be empty")
	}

	c := &Command{
		command:     cmdline,
		description: description,
		timeout:     DefaultTimeout,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("command: %w", err)
		}
	}

	return c, nil
}

// Type returns the check variant name.
func (c *Command) Type() string {
	return TypeName
}

// Run executes the command line and returns a CommandResult.
//
// The command runs under "/bin/sh -c" so that the configured battery can
// use pipelines and redirections. The registry is fixed, trusted
// configuration; no untrusted input reaches the command string.
func (c *Command) Run(ctx context.Context) check.Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", c.command)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return check.CommandResult{
			Description: c.description,
			Command:     c.command,
			Success:     false,
			Stdout:      "",
			Stderr:      fmt.Sprintf("Command timed out after %.0f seconds", c.timeout.Seconds()),
			ReturnCode:  TimeoutReturnCode,
		}
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Process ran and exited nonzero; report its real exit code.
			return check.CommandResult{
				Description: c.description,
				Command:     c.command,
				Success:     false,
				Stdout:      stdout.String(),
				Stderr:      stderr.String(),
				ReturnCode:  exitErr.ExitCode(),
			}
		}
		// Spawn failure: shell missing, fork error, etc.
		return check.CommandResult{
			Description: c.description,
			Command:     c.command,
			Success:     false,
			Stdout:      "",
			Stderr:      err.Error(),
			ReturnCode:  TimeoutReturnCode,
		}
	}

	return check.CommandResult{
		Description: c.description,
		Command:     c.command,
		Success:     true,
		Stdout:      stdout.String(),
		Stderr:      stderr.String(),
		ReturnCode:  0,
	}
}

// Factory creates a Command check from a config map.
//
// Required keys: "command" (string), "description" (string).
// Optional key: "timeout" (string parseable by time.ParseDuration).
func Factory(config map[string]any) (check.Check, error) {
	cmdline, ok := config["command"].(string)
	if !ok || cmdline == "" {
		return nil, fmt.Errorf("command: config missing required key 'command'")
	}

	description, _ := config["description"].(string)

	var opts []Option

	if v, ok := config["timeout"]; ok {
		ts, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("command: 'timeout' must be a duration string, got %T", v)
		}
		d, err := time.ParseDuration(ts)
		if err != nil {
			return nil, fmt.Errorf("command: invalid timeout %q: %w", ts, err)
		}
		opts = append(opts, WithTimeout(d))
	}

	return New(cmdline, description, opts...)
}
