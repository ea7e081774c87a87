package urlcaller

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jpalmerr/urlcaller/internal/poller"
	"github.com/jpalmerr/urlcaller/internal/server"
	"github.com/jpalmerr/urlcaller/internal/store"
)

var (
	// ErrMissingURL is returned by [New] when no URL is configured.
	ErrMissingURL = poller.ErrMissingURL

	// ErrAlreadyStarted is returned by [Worker.Run] on every call after the first.
	ErrAlreadyStarted = poller.ErrAlreadyStarted
)

// Worker polls a single URL on a fixed delay until its context is cancelled.
//
// Worker is created using [New] with functional options and started with
// [Worker.Run]. The typical lifecycle is:
//
//	w, err := urlcaller.New(urlcaller.WithURL("https://api.example.com/health"))
//	if err != nil {
//	    slog.Error("failed to create worker", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	w.Run(ctx) // blocks until context cancelled
type Worker struct {
	url        string
	delay      time.Duration
	timeout    time.Duration
	statusAddr string
	logger     *slog.Logger
	callbacks  []func(Outcome)

	store  *store.MemoryStore
	poller *poller.Poller

	mu      sync.Mutex
	started bool
}

// New creates a [Worker] with the given options.
//
// A URL must be configured via [WithURL]; otherwise New returns
// [ErrMissingURL] and no request is ever made. Other options have defaults:
//   - Delay: 0 (poll back to back)
//   - Timeout: 10 seconds per request
//   - Status server: disabled
//   - Logger: [slog.Default]
//
// Example:
//
//	w, err := urlcaller.New(
//	    urlcaller.WithURL("https://api.example.com/health"),
//	    urlcaller.WithDelay(5 * time.Second),
//	    urlcaller.WithStatusAddr(":8081"),
//	)
func New(opts ...Option) (*Worker, error) {
	cfg := &workerConfig{
		timeout: poller.DefaultTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.url == "" {
		return nil, ErrMissingURL
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	w := &Worker{
		url:        cfg.url,
		delay:      cfg.delay,
		timeout:    cfg.timeout,
		statusAddr: cfg.statusAddr,
		logger:     logger,
		callbacks:  cfg.callbacks,
		store:      store.NewMemoryStore(cfg.url),
	}

	p, err := poller.NewPoller(poller.Settings{
		URL:           w.url,
		Delay:         w.delay,
		Timeout:       w.timeout,
		Observer:      w.observe,
		OnStateChange: func(s poller.State) { w.store.SetState(s.String()) },
	}, logger)
	if err != nil {
		return nil, err
	}
	w.poller = p

	return w, nil
}

// Run starts the status server, if configured, and polls until ctx is
// cancelled.
//
// Each iteration issues one GET, logs the outcome and waits for the
// configured delay. Non-success statuses and transport errors are logged and
// never stop the loop.
//
// Returns nil on graceful shutdown. Returns an error if the status server
// cannot bind.
//
// Run may only be called once, whether or not the first call succeeded.
// Later calls return [ErrAlreadyStarted] before binding or polling anything.
func (w *Worker) Run(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return ErrAlreadyStarted
	}
	w.started = true
	w.mu.Unlock()

	w.logger.Info("worker starting", "url", w.url, "delay", w.delay.String())

	if w.statusAddr != "" {
		srv := server.NewServer(w.store, w.statusAddr, w.logger)
		if err := srv.Start(ctx); err != nil {
			return fmt.Errorf("failed to start status server: %w", err)
		}
	}

	if err := w.poller.Run(ctx); err != nil {
		return err
	}

	w.logger.Info("worker stopped")
	return nil
}

// URL returns the polled URL.
func (w *Worker) URL() string {
	return w.url
}

// Delay returns the configured idle period between polls.
func (w *Worker) Delay() time.Duration {
	return w.delay
}

// Timeout returns the per-request timeout.
func (w *Worker) Timeout() time.Duration {
	return w.timeout
}

// Snapshot returns the worker state and poll counters at this moment.
// Safe for concurrent use, including while [Worker.Run] is executing.
func (w *Worker) Snapshot() Snapshot {
	return fromStoreSnapshot(w.store.Snapshot())
}

// observe runs on the loop goroutine after every completed poll.
// The store is updated before callbacks fire.
func (w *Worker) observe(o poller.Outcome) {
	w.store.Record(toStoreResult(o))

	if len(w.callbacks) == 0 {
		return
	}
	public := toPublicOutcome(o)
	for _, cb := range w.callbacks {
		invokeCallbackSafe(cb, public, w.logger)
	}
}

// toStoreResult converts a poller outcome to a store result.
func toStoreResult(o poller.Outcome) store.Result {
	var errStr *string
	if o.Error != nil {
		s := o.Error.Error()
		errStr = &s
	}

	return store.Result{
		PollID:         o.PollID,
		URL:            o.URL,
		Success:        o.Success(),
		StatusCode:     o.StatusCode,
		ResponseTimeMs: o.Latency.Milliseconds(),
		CheckedAt:      o.StartedAt,
		Error:          errStr,
	}
}

func toPublicOutcome(o poller.Outcome) Outcome {
	return Outcome{
		PollID:     o.PollID,
		URL:        o.URL,
		StartedAt:  o.StartedAt,
		Latency:    o.Latency,
		StatusCode: o.StatusCode,
		Error:      o.Error,
	}
}

// invokeCallbackSafe calls an outcome callback with panic recovery.
// Panics are logged with a correlation ID and stack trace but do not propagate.
func invokeCallbackSafe(cb func(Outcome), outcome Outcome, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("outcome callback panicked",
				"correlation_id", uuid.NewString(),
				"panic", r,
				"poll_id", outcome.PollID,
				"stack", string(debug.Stack()),
			)
		}
	}()
	cb(outcome)
}
