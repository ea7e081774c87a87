package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    slog.Level
		wantErr bool
	}{
		{name: "", want: slog.LevelInfo},
		{name: "debug", want: slog.LevelDebug},
		{name: "INFO", want: slog.LevelInfo},
		{name: "Information", want: slog.LevelInfo},
		{name: "warn", want: slog.LevelWarn},
		{name: "warning", want: slog.LevelWarn},
		{name: " error ", want: slog.LevelError},
		{name: "Trace", want: slog.LevelDebug},
		{name: "Critical", want: slog.LevelError},
		{name: "None", want: LevelNone},
		{name: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestNew_LevelNoneWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "None", FormatJSON)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Error("dropped")

	if buf.Len() != 0 {
		t.Errorf("output = %q, want empty", buf.String())
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "info", "json")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("about to call", "url", "http://example.test/health")
	logger.Debug("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), buf.String())
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if record["msg"] != "about to call" {
		t.Errorf("msg = %v, want %q", record["msg"], "about to call")
	}
	if record["url"] != "http://example.test/health" {
		t.Errorf("url = %v, want %q", record["url"], "http://example.test/health")
	}
}

func TestNew_TextDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "debug", "text")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug("poll succeeded", "status_code", 200)

	out := buf.String()
	if !strings.Contains(out, "level=DEBUG") || !strings.Contains(out, "status_code=200") {
		t.Errorf("output = %q, want text record with level=DEBUG and status_code=200", out)
	}
}

func TestNew_Invalid(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "loud", "json"); err == nil {
		t.Error("New() with unknown level: error = nil, want error")
	}
	if _, err := New(&bytes.Buffer{}, "info", "xml"); err == nil {
		t.Error("New() with unknown format: error = nil, want error")
	}
}
