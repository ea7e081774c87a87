package store

import "time"

// Result represents a single poll outcome in storage.
//
// Result is decoupled from the poller's internal types and is shaped for
// JSON serialization by the status API.
type Result struct {
	// PollID identifies the poll in log records.
	PollID string `json:"poll_id"`

	// URL is the target URL that was polled.
	URL string `json:"url"`

	// Success is true for a 2xx response.
	Success bool `json:"success"`

	// StatusCode is the HTTP status code, zero on transport errors.
	StatusCode int `json:"status_code"`

	// ResponseTimeMs is the request latency in milliseconds.
	ResponseTimeMs int64 `json:"response_time_ms"`

	// CheckedAt is when the poll started.
	CheckedAt time.Time `json:"checked_at"`

	// Error contains the transport error message, nil otherwise.
	Error *string `json:"error"`
}

// Snapshot is a point-in-time view of the poller.
type Snapshot struct {
	URL                 string     `json:"url"`
	State               string     `json:"state"`
	Polls               int64      `json:"polls"`
	Failures            int64      `json:"failures"`
	ConsecutiveFailures int64      `json:"consecutive_failures"`
	LastResult          *Result    `json:"last_result"`
	LastSuccessAt       *time.Time `json:"last_success_at"`
}

// Store defines the interface for recording outcomes and reading snapshots.
//
// Store implementations must be safe for concurrent access: the poll loop
// writes while the status server reads.
type Store interface {
	// Record stores a poll result and updates the counters.
	Record(result Result)

	// SetState records the poller's lifecycle state.
	SetState(state string)

	// Snapshot returns a copy of the current view.
	Snapshot() Snapshot
}
