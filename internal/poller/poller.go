package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrMissingURL is returned by [NewPoller] when no target URL is configured.
	ErrMissingURL = errors.New("url is missing from configuration")

	// ErrAlreadyStarted is returned by [Poller.Run] on every call after the first.
	ErrAlreadyStarted = errors.New("poller already started")
)

// State is the lifecycle state of a [Poller].
type State int32

const (
	// StateIdle means the poller is waiting for its next tick.
	StateIdle State = iota
	// StateRequesting means a GET is in flight.
	StateRequesting
	// StateStopped is terminal and only reached through cancellation.
	StateStopped
)

// String returns the lower-case name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequesting:
		return "requesting"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Outcome holds the result of one poll.
type Outcome struct {
	// PollID uniquely identifies the poll in log records.
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

	// Error contains any transport-level error.
	Error error
}

// Success reports whether the poll reached the target and got a 2xx status.
func (o Outcome) Success() bool {
	return o.Error == nil && o.StatusCode >= 200 && o.StatusCode < 300
}

// Settings configures a [Poller].
type Settings struct {
	// URL is the target of every GET. Required.
	URL string

	// Delay is the idle period between the end of one poll and the start of
	// the next. Zero polls back to back.
	Delay time.Duration

	// Timeout is the per-request timeout. Zero means [DefaultTimeout].
	Timeout time.Duration

	// Observer, if set, receives every completed outcome from the loop
	// goroutine. It must not block.
	Observer func(Outcome)

	// OnStateChange, if set, is called from the loop goroutine after every
	// state transition.
	OnStateChange func(State)
}

// Poller issues a GET to a single URL on a fixed delay until cancelled.
//
// Poller owns one [Client] for its whole lifetime: the client is created by
// [NewPoller] and its idle connections are released when [Poller.Run]
// returns. Exactly one request is in flight at a time.
type Poller struct {
	url      string
	delay    time.Duration
	timeout  time.Duration
	observer func(Outcome)
	onState  func(State)
	client   *Client
	logger   *slog.Logger

	state atomic.Int32

	mu      sync.Mutex
	started bool
}

// NewPoller validates settings and creates a [Poller] in [StateIdle].
//
// Returns [ErrMissingURL] if the URL is empty. This is the only fatal
// condition of the loop and is reported before any request is made.
func NewPoller(settings Settings, logger *slog.Logger) (*Poller, error) {
	if settings.URL == "" {
		return nil, ErrMissingURL
	}
	if settings.Delay < 0 {
		return nil, fmt.Errorf("delay cannot be negative, got %s", settings.Delay)
	}
	if settings.Timeout < 0 {
		return nil, fmt.Errorf("timeout cannot be negative, got %s", settings.Timeout)
	}

	timeout := settings.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Poller{
		url:      settings.URL,
		delay:    settings.Delay,
		timeout:  timeout,
		observer: settings.Observer,
		onState:  settings.OnStateChange,
		client:   NewClient(),
		logger:   logger,
	}, nil
}

// State returns the current lifecycle state. Safe for concurrent use.
func (p *Poller) State() State {
	return State(p.state.Load())
}

// URL returns the polled URL.
func (p *Poller) URL() string {
	return p.url
}

// Run polls until ctx is cancelled and then returns nil.
//
// Each iteration issues one GET, logs the outcome and waits for the
// configured delay. Non-success statuses and transport errors are logged and
// never stop the loop. Cancellation is observed both while the request is in
// flight and while waiting, so Run returns within one suspension point.
//
// Run may only be called once; later calls return [ErrAlreadyStarted].
func (p *Poller) Run(ctx context.Context) error {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return ErrAlreadyStarted
	}
	p.started = true
	p.mu.Unlock()

	defer p.client.Close()
	defer p.setState(StateStopped)

	for {
		if ctx.Err() != nil {
			return nil
		}

		p.setState(StateRequesting)
		outcome := p.poll(ctx)
		p.setState(StateIdle)

		// a request aborted by shutdown is not a failure of the target
		if ctx.Err() != nil {
			p.logger.Debug("poll cancelled", "url", p.url, "poll_id", outcome.PollID)
			return nil
		}

		p.report(outcome)

		if !wait(ctx, p.delay) {
			return nil
		}
	}
}

// poll performs a single GET and returns its outcome.
func (p *Poller) poll(ctx context.Context) Outcome {
	pollID := uuid.NewString()
	p.logger.Info("about to call", "url", p.url, "poll_id", pollID)

	startedAt := time.Now()
	resp := p.client.Get(ctx, p.url, p.timeout)

	return Outcome{
		PollID:     pollID,
		URL:        p.url,
		StartedAt:  startedAt,
		Latency:    resp.Latency,
		StatusCode: resp.StatusCode,
		Error:      resp.Error,
	}
}

// report logs an outcome and hands it to the observer.
//
// Status failures and transport errors are handled the same way: one error
// record and nothing else.
func (p *Poller) report(o Outcome) {
	attrs := []any{
		"url", o.URL,
		"poll_id", o.PollID,
		"latency_ms", o.Latency.Milliseconds(),
	}

	switch {
	case o.Error != nil:
		p.logger.Error("transport error calling url", append(attrs, "error", o.Error.Error())...)
	case !o.Success():
		p.logger.Error("non-success status", append(attrs, "status_code", o.StatusCode)...)
	default:
		p.logger.Debug("poll succeeded", append(attrs, "status_code", o.StatusCode)...)
	}

	if p.observer != nil {
		p.observer(o)
	}
}

func (p *Poller) setState(s State) {
	if State(p.state.Swap(int32(s))) == s {
		return
	}
	if p.onState != nil {
		p.onState(s)
	}
}

// wait blocks for d or until ctx is done. It reports whether the full delay
// elapsed.
func wait(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
