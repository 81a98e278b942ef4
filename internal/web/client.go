// Package web provides the HTTP client used to fetch platform pages and
// assets.
package web

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

const (
	// DefaultTimeout bounds a single page or asset fetch.
	DefaultTimeout = 30 * time.Second

	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/120.0.0.0 Safari/537.36 synthcheck/1.0"
)

// Client is a thin wrapper over net/http that sets a browser-like User-Agent
// and optionally traces requests to stderr.
type Client struct {
	httpClient *http.Client
	verbose    bool
}

type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithVerbose enables request tracing to stderr.
func WithVerbose(verbose bool) Option {
	return func(c *Client) {
		c.verbose = verbose
	}
}

// WithTransport overrides the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		if rt != nil {
			c.httpClient.Transport = rt
		}
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ValidateURL rejects anything that is not an absolute http(s) URL.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid URL %q: missing host", raw)
	}
	return nil
}

// Get fetches url and returns the response. Non-2xx statuses are returned as
// errors with the body closed.
func (c *Client) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	if ctx == nil {
		return nil, fmt.Errorf("Get: nil context")
	}
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	if c.verbose {
		fmt.Fprintf(os.Stderr, "GET %s\n", rawURL)
	}
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	if c.verbose {
		fmt.Fprintf(os.Stderr, "GET %s -> %d (%s)\n", rawURL, resp.StatusCode, time.Since(start).Round(time.Millisecond))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return resp, fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}
	return resp, nil
}
