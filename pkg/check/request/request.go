// Package request implements the request check variant.
//
// A request check issues an HTTP GET to its configured URL and captures the
// status code, headers, body size, and a content preview. The check succeeds
// whenever a response is received: the success flag tracks reachability, not
// response health, so a 404 or 500 still counts as success. Only transport
// failures (DNS, connect, TLS, timeout) fail the check.
package request

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/probekit/netprobe/pkg/check"
)

const (
	// TypeName is the registered name for this check variant.
	TypeName = "request"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// PreviewLimit is the maximum number of characters kept from the
	// response body as the content preview.
	PreviewLimit = 500

	// EmptyBodyPreview is the preview reported for an empty response body.
	EmptyBodyPreview = "No content"
)

// maxBodyBytes caps how much of a response body is read for sizing and
// preview, protecting against endpoints that stream forever.
const maxBodyBytes = 10 << 20

// Request implements check.Check using a single HTTP GET.
type Request struct {
	url         string
	description string
	timeout     time.Duration
	skipVerify  bool
	client      *http.Client
}

// Option is a functional option for configuring a Request check.
type Option func(*Request) error

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Request) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %v", d)
		}
		r.timeout = d
		return nil
	}
}

// WithSkipVerify sets whether to skip TLS certificate verification.
func WithSkipVerify(skip bool) Option {
	return func(r *Request) error {
		r.skipVerify = skip
		return nil
	}
}

// New creates a Request check for the given URL and description.
func New(url string, description string, opts ...Option) (*Request, error) {
	if url == "" {
		return nil, fmt.Errorf("request: url must not be empty")
	}

	r := &Request{
		url:         url,
		description: description,
		timeout:     DefaultTimeout,
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("request: %w", err)
		}
	}

	r.client = &http.Client{
		Timeout: r.timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: r.skipVerify},
		},
	}

	return r, nil
}

// Type returns the check variant name.
func (r *Request) Type() string {
	return TypeName
}

// Run issues the HTTP GET and returns a RequestResult.
func (r *Request) Run(ctx context.Context) check.Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return r.failure(err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return r.failure(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return r.failure(fmt.Errorf("reading response body: %w", err))
	}

	headers := make(map[string]string, len(resp.Header))
	for name := range resp.Header {
		headers[name] = resp.Header.Get(name)
	}

	status := resp.StatusCode
	return check.RequestResult{
		Description:    r.description,
		URL:            r.url,
		Success:        true,
		StatusCode:     &status,
		ResponseSize:   len(body),
		Headers:        headers,
		ContentPreview: preview(body),
	}
}

// failure builds the RequestResult for a transport-level failure:
// no status code, empty headers, empty preview.
func (r *Request) failure(err error) check.RequestResult {
	return check.RequestResult{
		Description:    r.description,
		URL:            r.url,
		Success:        false,
		ResponseSize:   0,
		Headers:        map[string]string{},
		ContentPreview: "",
		Error:          err.Error(),
	}
}

// preview returns the first PreviewLimit characters of the body, or
// EmptyBodyPreview when the body is empty. Truncation is by rune so a
// multibyte sequence is never split.
func preview(body []byte) string {
	if len(body) == 0 {
		return EmptyBodyPreview
	}
	runes := []rune(string(body))
	if len(runes) > PreviewLimit {
		runes = runes[:PreviewLimit]
	}
	return string(runes)
}

// Factory creates a Request check from a config map.
//
// Required keys: "url" (string), "description" (string).
// Optional keys:
//   - "timeout" (string) — duration string (e.g. "30s")
//   - "skip_verify" (bool) — skip TLS cert verification (default: false)
func Factory(config map[string]any) (check.Check, error) {
	url, ok := config["url"].(string)
	if !ok || url == "" {
		return nil, fmt.Errorf("request: config missing required key 'url'")
	}

	description, _ := config["description"].(string)

	var opts []Option

	if v, ok := config["timeout"]; ok {
		ts, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("request: 'timeout' must be a duration string, got %T", v)
		}
		d, err := time.ParseDuration(ts)
		if err != nil {
			return nil, fmt.Errorf("request: invalid timeout %q: %w", ts, err)
		}
		opts = append(opts, WithTimeout(d))
	}

	if v, ok := config["skip_verify"]; ok {
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("request: 'skip_verify' must be a bool, got %T", v)
		}
		opts = append(opts, WithSkipVerify(b))
	}

	return New(url, description, opts...)
}
