package poller

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxDrainSize caps how much of a response body is read before the body is
// closed. Reading the body to EOF lets the transport reuse the connection.
const maxDrainSize = 1 << 20 // 1MB

// DefaultTimeout is the client-side timeout applied to every GET.
const DefaultTimeout = 10 * time.Second

// a single target only ever has one request in flight
const (
	defaultMaxIdleConns        = 4
	defaultMaxIdleConnsPerHost = 2
	defaultIdleConnTimeout     = 90 * time.Second
)

// Response holds the result of an HTTP request made by [Client].
type Response struct {
	// StatusCode is the HTTP status code (e.g., 200, 404, 500).
	// Zero if the request failed before receiving a response.
	StatusCode int

	// Latency is the total time taken for the request.
	Latency time.Duration

	// Error contains any transport-level error.
	// nil indicates the request completed (though status may indicate a failure).
	Error error
}

// Client is an HTTP client wrapper used by [Poller] for its GET requests.
//
// Client uses per-request timeouts via context rather than a global timeout
// so that a cancelled parent context aborts the in-flight request at once.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new [Client] with a pooled, keep-alive transport.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			// no default timeout - we use per-request timeouts via context
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
				DisableKeepAlives:   false,
			},
		},
	}
}

// Get performs a GET request with no body and returns a structured [Response].
//
// The timeout is applied via context cancellation. Get always returns a
// Response; errors are captured in the Error field rather than returned
// separately.
func (c *Client) Get(ctx context.Context, url string, timeout time.Duration) Response {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{
			Latency: time.Since(start),
			Error:   fmt.Errorf("failed to create request: %w", err),
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{
			Latency: time.Since(start),
			Error:   fmt.Errorf("request failed: %w", err),
		}
	}
	defer func() { _ = resp.Body.Close() }()

	// the body is not inspected, but draining it keeps the connection reusable
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainSize))

	return Response{
		StatusCode: resp.StatusCode,
		Latency:    time.Since(start),
	}
}

// Close closes all idle connections in the client's connection pool.
//
// Safe to call multiple times and on a nil receiver. After Close, the client
// remains usable but new connections will be established as needed.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}
