package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/urlcaller"
	"github.com/jpalmerr/urlcaller/config"
)

const (
	shutdownTimeout = 10 * time.Second
)

// runCmd starts the worker.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start polling the configured URL",
	Long: `Start the urlcaller worker.

The worker will:
  - Load the base config file, the environment overlay, the .env file and
    environment variables, in that order
  - Issue a GET to Worker.url, log the outcome and wait Worker.delayInMs
    before the next call
  - Serve /healthz and /api/status if Status.addr is set

The worker runs until interrupted (Ctrl+C) or receives SIGTERM.

Example:
  urlcaller run
  urlcaller run -c /etc/urlcaller/appsettings.json -e Production`,
	RunE: runWorker,
}

func init() {
	rootCmd.AddCommand(runCmd)
	addConfigFlags(runCmd)
}

func runWorker(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	logger.Info("config loaded",
		"url", cfg.Worker.URL,
		"delay_ms", cfg.Worker.DelayInMs,
		"status_addr", cfg.Status.Addr,
	)

	w, err := urlcaller.New(config.BuildOptions(cfg, logger)...)
	if err != nil {
		return fmt.Errorf("failed to create worker: %w", err)
	}

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// run worker - blocks until context cancelled
	errChan := make(chan error, 1)
	go func() {
		errChan <- w.Run(ctx)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("worker error: %w", err)
		}
		logger.Info("shutdown complete")
		return nil

	case <-ctx.Done():
		// signal received, wait for graceful shutdown with timeout
		select {
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("worker error: %w", err)
			}
			logger.Info("shutdown complete")
			return nil
		case <-time.After(shutdownTimeout):
			logger.Warn("shutdown timed out",
				"timeout", shutdownTimeout.String(),
				"action", "forcing exit",
			)
			return nil
		}
	}
}
