package urlcaller

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestNew_Valid(t *testing.T) {
	w, err := New(WithURL("https://example.com/health"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if w.URL() != "https://example.com/health" {
		t.Errorf("URL() = %q, want %q", w.URL(), "https://example.com/health")
	}
}

func TestNew_MissingURL(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"no options", nil},
		{"empty url", []Option{WithURL("")}},
		{"delay only", []Option{WithDelay(time.Second)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts...)
			if !errors.Is(err, ErrMissingURL) {
				t.Errorf("New() error = %v, want ErrMissingURL", err)
			}
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	w, err := New(WithURL("https://example.com"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if w.Delay() != 0 {
		t.Errorf("Delay() = %v, want %v", w.Delay(), time.Duration(0))
	}
	if w.Timeout() != 10*time.Second {
		t.Errorf("Timeout() = %v, want %v", w.Timeout(), 10*time.Second)
	}

	snap := w.Snapshot()
	if snap.State != "idle" {
		t.Errorf("Snapshot().State = %q, want %q", snap.State, "idle")
	}
	if snap.Polls != 0 {
		t.Errorf("Snapshot().Polls = %d, want 0", snap.Polls)
	}
}

func TestWithURL_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr string
	}{
		{"no scheme", "example.com/health", "scheme"},
		{"ftp scheme", "ftp://example.com", "scheme"},
		{"no host", "http:///health", "host"},
		{"unparseable", "http://[::1]:namedport", "invalid URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(WithURL(tt.url))
			if err == nil {
				t.Fatalf("New() expected error for %q, got nil", tt.url)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("New() error = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestWithURL_LastWins(t *testing.T) {
	w, err := New(
		WithURL("https://first.example.com"),
		WithURL("https://second.example.com"),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if w.URL() != "https://second.example.com" {
		t.Errorf("URL() = %q, want %q", w.URL(), "https://second.example.com")
	}
}

func TestWithDelay(t *testing.T) {
	tests := []struct {
		name    string
		delay   time.Duration
		wantErr bool
	}{
		{"zero", 0, false},
		{"positive", 30 * time.Second, false},
		{"negative", -1 * time.Millisecond, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := New(WithURL("https://example.com"), WithDelay(tt.delay))
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && w.Delay() != tt.delay {
				t.Errorf("Delay() = %v, want %v", w.Delay(), tt.delay)
			}
		})
	}
}

func TestWithTimeout(t *testing.T) {
	w, err := New(WithURL("https://example.com"), WithTimeout(2*time.Second))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if w.Timeout() != 2*time.Second {
		t.Errorf("Timeout() = %v, want %v", w.Timeout(), 2*time.Second)
	}
}

func TestWithTimeout_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
	}{
		{"zero", 0},
		{"negative", -1 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(WithURL("https://example.com"), WithTimeout(tt.timeout))
			if err == nil {
				t.Errorf("New() expected error for timeout %v, got nil", tt.timeout)
			}
		})
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	w, err := New(WithURL("https://example.com"), WithLogger(logger))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if w.logger != logger {
		t.Error("logger was not set correctly")
	}
}

func TestWithLogger_Nil(t *testing.T) {
	_, err := New(WithURL("https://example.com"), WithLogger(nil))
	if err == nil {
		t.Error("New() expected error for nil logger, got nil")
	}
	if err != nil && !strings.Contains(err.Error(), "logger cannot be nil") {
		t.Errorf("New() error = %v, want error containing 'logger cannot be nil'", err)
	}
}

func TestWithLogger_DefaultUsed(t *testing.T) {
	w, err := New(WithURL("https://example.com"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if w.logger == nil {
		t.Error("logger should default to slog.Default(), got nil")
	}
}

func TestWithStatusAddr(t *testing.T) {
	w, err := New(WithURL("https://example.com"), WithStatusAddr(":8081"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if w.statusAddr != ":8081" {
		t.Errorf("statusAddr = %q, want %q", w.statusAddr, ":8081")
	}
}

func TestWithOutcomeCallback_NilIgnored(t *testing.T) {
	w, err := New(WithURL("https://example.com"), WithOutcomeCallback(nil))
	if err != nil {
		t.Fatalf("New() error = %v, want nil (nil callback should be accepted)", err)
	}
	if len(w.callbacks) != 0 {
		t.Errorf("len(callbacks) = %d, want 0", len(w.callbacks))
	}
}

func TestOutcome_Success(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		want    bool
	}{
		{"200", Outcome{StatusCode: 200}, true},
		{"204", Outcome{StatusCode: 204}, true},
		{"301", Outcome{StatusCode: 301}, false},
		{"503", Outcome{StatusCode: 503}, false},
		{"transport error", Outcome{Error: errors.New("refused")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.outcome.Success(); got != tt.want {
				t.Errorf("Success() = %v, want %v", got, tt.want)
			}
		})
	}
}
