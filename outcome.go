package urlcaller

import (
	"errors"
	"time"

	"github.com/jpalmerr/urlcaller/internal/store"
)

// Outcome holds the result of one poll.
//
// Outcome is passed by value to callbacks registered with
// [WithOutcomeCallback] and holds no shared references.
type Outcome struct {
	// PollID uniquely identifies the poll. It matches the poll_id attribute
	// of the log records written for the same poll.
	PollID string

	// URL is the target URL that was polled.
	URL string

	// StartedAt is when the GET was issued.
	StartedAt time.Time

	// Latency is the time taken to complete the HTTP request.
	Latency time.Duration

	// StatusCode is the HTTP status code returned by the target.
	// Zero if the request failed before receiving a response.
	StatusCode int

	// Error contains any transport-level error, including the per-request
	// timeout. nil means a response was received, whatever its status.
	Error error
}

// Success reports whether the target responded with a 2xx status.
func (o Outcome) Success() bool {
	return o.Error == nil && o.StatusCode >= 200 && o.StatusCode < 300
}

// Snapshot is a point-in-time view of a [Worker].
type Snapshot struct {
	// URL is the polled URL.
	URL string

	// State is "idle", "requesting" or "stopped".
	State string

	// Polls counts completed polls. Polls aborted by shutdown are not counted.
	Polls int64

	// Failures counts polls that did not succeed.
	Failures int64

	// ConsecutiveFailures counts failures since the last success.
	ConsecutiveFailures int64

	// LastStatusCode is the status code of the most recent poll.
	LastStatusCode int

	// LastError is the transport error of the most recent poll, if any.
	LastError error

	// LastCheckedAt is when the most recent poll started. Zero before the
	// first poll completes.
	LastCheckedAt time.Time

	// LastSuccessAt is when the most recent successful poll started.
	LastSuccessAt time.Time
}

func fromStoreSnapshot(s store.Snapshot) Snapshot {
	snap := Snapshot{
		URL:                 s.URL,
		State:               s.State,
		Polls:               s.Polls,
		Failures:            s.Failures,
		ConsecutiveFailures: s.ConsecutiveFailures,
	}
	if r := s.LastResult; r != nil {
		snap.LastStatusCode = r.StatusCode
		snap.LastCheckedAt = r.CheckedAt
		if r.Error != nil {
			snap.LastError = errors.New(*r.Error)
		}
	}
	if s.LastSuccessAt != nil {
		snap.LastSuccessAt = *s.LastSuccessAt
	}
	return snap
}
