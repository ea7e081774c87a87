package urlcaller

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"
)

// workerConfig holds mutable state during Worker construction.
type workerConfig struct {
	url        string
	delay      time.Duration
	timeout    time.Duration
	statusAddr string
	logger     *slog.Logger
	callbacks  []func(Outcome)
}

// Option is a function that configures a [Worker] during construction.
//
// Option implements the functional options pattern. Options return an error
// if validation fails.
//
// Built-in options: [WithURL], [WithDelay], [WithTimeout], [WithLogger],
// [WithStatusAddr], [WithOutcomeCallback].
type Option func(*workerConfig) error

// WithURL sets the URL to poll.
//
// The URL must use the http or https scheme and name a host. An empty URL is
// accepted here and reported by [New] as [ErrMissingURL].
func WithURL(rawURL string) Option {
	return func(cfg *workerConfig) error {
		if rawURL == "" {
			cfg.url = ""
			return nil
		}

		parsedURL, err := url.Parse(rawURL)
		if err != nil {
			return fmt.Errorf("invalid URL: %w", err)
		}
		if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			return fmt.Errorf("URL scheme must be http or https, got %q", parsedURL.Scheme)
		}
		if parsedURL.Host == "" {
			return errors.New("URL must have a host")
		}

		cfg.url = rawURL
		return nil
	}
}

// WithDelay sets the idle period between the end of one poll and the start of
// the next.
//
// The delay does not include request time: a poll that takes 300ms with a
// one second delay starts the next poll 1.3s after the previous one started.
// Zero polls back to back. Defaults to zero.
//
// Returns an error if the duration is negative.
func WithDelay(d time.Duration) Option {
	return func(cfg *workerConfig) error {
		if d < 0 {
			return errors.New("delay cannot be negative")
		}
		cfg.delay = d
		return nil
	}
}

// WithTimeout sets the per-request timeout. Defaults to 10 seconds.
//
// A request that exceeds the timeout is logged as a transport error and the
// loop continues.
//
// Returns an error if the duration is zero or negative.
func WithTimeout(d time.Duration) Option {
	return func(cfg *workerConfig) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		cfg.timeout = d
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the worker.
//
// If not specified, [slog.Default] is used.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//	w, err := urlcaller.New(
//	    urlcaller.WithURL("https://api.example.com/health"),
//	    urlcaller.WithLogger(logger),
//	)
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *workerConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithStatusAddr enables the status server on addr, for example ":8081".
//
// The server exposes GET /healthz and GET /api/status. It is disabled unless
// this option is given a non-empty address.
func WithStatusAddr(addr string) Option {
	return func(cfg *workerConfig) error {
		cfg.statusAddr = addr
		return nil
	}
}

// WithOutcomeCallback registers a function to be called after every completed
// poll.
//
// Multiple callbacks may be registered; they execute in registration order on
// the polling goroutine, so the next poll does not start until they return.
// Callbacks must be non-blocking. Panics are recovered and logged; they do
// not stop the loop.
//
// A poll aborted by cancellation produces no callback.
//
// Nil callbacks are silently ignored.
func WithOutcomeCallback(cb func(Outcome)) Option {
	return func(cfg *workerConfig) error {
		if cb == nil {
			return nil
		}
		cfg.callbacks = append(cfg.callbacks, cb)
		return nil
	}
}
