// Package urlcaller provides a background worker that repeatedly issues an
// HTTP GET to a single configured URL, logs every outcome and waits a fixed
// delay between calls until it is cancelled.
//
// # Quick Start
//
//	w, _ := urlcaller.New(
//	    urlcaller.WithURL("https://api.example.com/health"),
//	    urlcaller.WithDelay(5 * time.Second),
//	)
//
//	// Set up graceful shutdown on SIGINT/SIGTERM
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	w.Run(ctx) // blocks until context is cancelled
//
// # Loop Semantics
//
// Exactly one request is in flight at a time. The delay is measured from the
// end of one poll to the start of the next. A non-2xx status and a transport
// error are each logged at error level and the loop carries on; there is no
// retry, backoff or escalation. Cancelling the context aborts an in-flight
// request or the current delay, and the aborted poll is not reported as a
// failure.
//
// # Configuration
//
// The worker is configured with functional options. The config package
// loads the same settings from layered files (appsettings.json, an
// environment overlay, .env) and environment variables, and
// config.BuildOptions converts them to options.
//
// # Architecture
//
//   - internal/poller: the poll loop and its pooled HTTP client
//   - internal/store: in-memory counters and the last outcome
//   - internal/server: optional /healthz and /api/status endpoints
//   - internal/logging: slog handler construction
//
// The internal packages are not part of the public API and may change
// without notice.
package urlcaller
