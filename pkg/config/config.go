// Package config provides configuration loading and validation.
//
// Configuration is a YAML file; every field is optional and falls back to
// a default. The default check battery covers basic connectivity (ping,
// DNS lookup, HTTP/HTTPS fetch, TLS certificate inspection, interface and
// route introspection) plus the Secret Network endpoints the probe was
// originally deployed to diagnose. The battery is data, not logic: checks
// are opaque command lines and URLs executed with a fixed timeout.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultListen       = ":8080"
	DefaultInterval     = 300 * time.Second
	DefaultCheckTimeout = 30 * time.Second
	DefaultMaxRuns      = 288
	DefaultLogLevel     = "info"
)

// Check variant names accepted in the "type" field.
const (
	TypeCommand = "command"
	TypeRequest = "request"
)

// CheckSpec declares a single check in the battery.
type CheckSpec struct {
	// Name is the unique, stable key the check's results are stored under.
	Name string `yaml:"name"`

	// Type selects the check variant: "command" or "request".
	Type string `yaml:"type"`

	// Description is the human label shown on the dashboard.
	Description string `yaml:"description"`

	// Command is the shell command line (command checks only).
	Command string `yaml:"command,omitempty"`

	// URL is the target of the HTTP GET (request checks only).
	URL string `yaml:"url,omitempty"`

	// Timeout bounds one execution of this check.
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// SkipVerify disables TLS certificate verification (request checks only).
	SkipVerify bool `yaml:"skip_verify,omitempty"`
}

// Config holds the complete daemon configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	// Interval is the pause between the end of one run and the start of
	// the next.
	Interval time.Duration `yaml:"interval"`

	// MaxRuns bounds how many runs the store retains; 0 keeps everything.
	MaxRuns int `yaml:"max_runs"`

	// LogLevel is a logrus level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// LogFile, when set, sends logs to a rotated file instead of stderr.
	LogFile string `yaml:"log_file"`

	// Checks is the ordered battery. Empty means the default battery.
	Checks []CheckSpec `yaml:"checks"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Listen:   DefaultListen,
		Interval: DefaultInterval,
		MaxRuns:  DefaultMaxRuns,
		LogLevel: DefaultLogLevel,
		Checks:   DefaultChecks(),
	}
}

// Load reads and validates the YAML file at path. An empty path returns
// the default configuration.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not read config %s: %w", path, err)
	}

	// Start from a zero Checks list so a file with its own battery fully
	// replaces the default one.
	cfg.Checks = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("could not parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.MaxRuns < 0 {
		c.MaxRuns = DefaultMaxRuns
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if len(c.Checks) == 0 {
		c.Checks = DefaultChecks()
	}
	for i := range c.Checks {
		if c.Checks[i].Timeout <= 0 {
			c.Checks[i].Timeout = DefaultCheckTimeout
		}
	}
}

func (c *Config) validate() error {
	seen := make(map[string]struct{}, len(c.Checks))
	for i, spec := range c.Checks {
		if spec.Name == "" {
			return fmt.Errorf("check at index %d has no name", i)
		}
		if _, dup := seen[spec.Name]; dup {
			return fmt.Errorf("duplicate check name %q", spec.Name)
		}
		seen[spec.Name] = struct{}{}

		switch spec.Type {
		case TypeCommand:
			if spec.Command == "" {
				return fmt.Errorf("command check %q has no command", spec.Name)
			}
			if spec.URL != "" {
				return fmt.Errorf("command check %q must not set url", spec.Name)
			}
		case TypeRequest:
			if spec.URL == "" {
				return fmt.Errorf("request check %q has no url", spec.Name)
			}
			if spec.Command != "" {
				return fmt.Errorf("request check %q must not set command", spec.Name)
			}
		default:
			return fmt.Errorf("check %q has unknown type %q", spec.Name, spec.Type)
		}
	}
	return nil
}

// FactoryConfig converts a CheckSpec into the raw config map consumed by
// the check variant factories.
func (s CheckSpec) FactoryConfig() map[string]any {
	cfg := map[string]any{
		"description": s.Description,
		"timeout":     s.Timeout.String(),
	}
	switch s.Type {
	case TypeCommand:
		cfg["command"] = s.Command
	case TypeRequest:
		cfg["url"] = s.URL
		if s.SkipVerify {
			cfg["skip_verify"] = true
		}
	}
	return cfg
}
