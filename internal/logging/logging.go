// Package logging builds the structured logger used by urlcaller.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// LevelNone is above every level slog emits, so a logger at LevelNone
// writes nothing.
const LevelNone = slog.Level(math.MaxInt)

// ParseLevel maps a level name to a [slog.Level].
//
// Accepted names are debug, info, warn (or warning) and error, case
// insensitive, plus the appsettings names trace (debug), information
// (info), critical (error) and none ([LevelNone]). An empty name means info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace", "debug":
		return slog.LevelDebug, nil
	case "", "info", "information":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error", "critical":
		return slog.LevelError, nil
	case "none":
		return LevelNone, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (expected trace, debug, info, warn, error, critical or none)", name)
	}
}

// New creates a logger writing to w with the given level and format.
//
// An empty format means JSON.
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case FormatText:
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (expected json or text)", format)
	}
}
