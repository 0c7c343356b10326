// Package httpclient provides the HTTP transport shared by the registry clients
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout is the default timeout for HTTP requests
	DefaultTimeout = 10 * time.Second

	// DefaultDownloadTimeout bounds a single artifact download
	DefaultDownloadTimeout = 5 * time.Minute

	// MaxResponseSize is the maximum allowed size of a JSON response (16MB)
	MaxResponseSize = 16 * 1024 * 1024

	// UserAgent is the user agent string for HTTP requests
	UserAgent = "plugmanager/1.0"
)

// Client is an interface for HTTP operations
type Client interface {
	// Get performs an HTTP GET request and returns the response body
	Get(ctx context.Context, url string) ([]byte, error)
	// Download streams the body of url into w and returns the bytes written
	Download(ctx context.Context, url string, w io.Writer) (int64, error)
}

// Option configures a DefaultClient
type Option func(*DefaultClient)

// WithRateLimit paces outgoing requests to at most rps per second.
// A non-positive rps disables pacing.
func WithRateLimit(rps float64) Option {
	return func(c *DefaultClient) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithDownloadTimeout overrides DefaultDownloadTimeout
func WithDownloadTimeout(d time.Duration) Option {
	return func(c *DefaultClient) {
		if d > 0 {
			c.downloads.Timeout = d
		}
	}
}

// DefaultClient is the default HTTP client implementation
type DefaultClient struct {
	client    *http.Client
	downloads *http.Client
	limiter   *rate.Limiter
}

// NewDefaultClient creates a new default HTTP client with the specified timeout
// If timeout is 0, uses DefaultTimeout
func NewDefaultClient(timeout time.Duration, opts ...Option) *DefaultClient {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	c := &DefaultClient{
		client:    &http.Client{Timeout: timeout},
		downloads: &http.Client{Timeout: DefaultDownloadTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs an HTTP GET request
func (c *DefaultClient) Get(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.do(ctx, c.client, url, "application/json")
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.ContentLength > MaxResponseSize {
		return nil, fmt.Errorf("response size %d bytes exceeds maximum allowed size of %d bytes",
			resp.ContentLength, MaxResponseSize)
	}

	// +1 to detect if limit exceeded
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, fmt.Errorf("response size exceeds maximum allowed size of %d bytes", MaxResponseSize)
	}

	return body, nil
}

// Download performs an HTTP GET request and copies the body into w
func (c *DefaultClient) Download(ctx context.Context, url string, w io.Writer) (int64, error) {
	resp, err := c.do(ctx, c.downloads, url, "*/*")
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("failed to read response body: %w", err)
	}
	return n, nil
}

func (c *DefaultClient) do(ctx context.Context, client *http.Client, url, accept string) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", accept)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, NewHTTPError(resp.StatusCode, url, resp.Status)
	}
	return resp, nil
}
