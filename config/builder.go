package config

import (
	"io"
	"log/slog"

	"github.com/jpalmerr/urlcaller"
	"github.com/jpalmerr/urlcaller/internal/logging"
)

// NewLogger builds the logger described by the Logging section.
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	return logging.New(w, c.Logging.Level, c.Logging.Format)
}

// BuildOptions converts parsed configuration into SDK options.
//
// The request timeout is not configurable from files and stays at the SDK
// default. The logger is supplied by the caller.
func BuildOptions(cfg *Config, logger *slog.Logger) []urlcaller.Option {
	opts := []urlcaller.Option{
		urlcaller.WithURL(cfg.Worker.URL),
		urlcaller.WithDelay(cfg.Worker.Delay()),
	}

	if cfg.Status.Addr != "" {
		opts = append(opts, urlcaller.WithStatusAddr(cfg.Status.Addr))
	}

	if logger != nil {
		opts = append(opts, urlcaller.WithLogger(logger))
	}

	return opts
}
