// Package server provides the optional status listener for urlcaller.
//
// This package is internal to urlcaller and exposes two read-only routes:
//
//   - GET /healthz: 200 "ok" while the poller runs, 503 once it has stopped
//   - GET /api/status: JSON snapshot of the latest poll outcome and counters
//
// The server supports graceful shutdown via context cancellation, with a
// 5-second timeout for in-flight requests.
//
// Users of the urlcaller library should not need to interact with this
// package directly. The server is started by urlcaller.Worker.Run when a
// status address is configured.
package server
