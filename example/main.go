package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpalmerr/urlcaller"
)

func main() {
	// start mock server (see mock_server.go)
	go StartMockHealthServer(":9999")
	time.Sleep(100 * time.Millisecond)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	w, err := urlcaller.New(
		urlcaller.WithURL("http://localhost:9999/health"),
		urlcaller.WithDelay(time.Second),
		urlcaller.WithTimeout(2*time.Second),
		urlcaller.WithStatusAddr(":8081"),
		urlcaller.WithLogger(logger),
		urlcaller.WithOutcomeCallback(func(o urlcaller.Outcome) {
			if !o.Success() {
				fmt.Printf("  ALERT: %s returned %d\n", o.URL, o.StatusCode)
			}
		}),
	)
	if err != nil {
		slog.Error("failed to create worker", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("  urlcaller demo")
	fmt.Println()
	fmt.Println("  Polling http://localhost:9999/health every second.")
	fmt.Println("  The mock flips between 200 and 503 every 5-15 seconds.")
	fmt.Println("  Status: http://localhost:8081/api/status")
	fmt.Println()
	fmt.Println("  Press Ctrl+C to stop")
	fmt.Println()

	// set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := w.Run(ctx); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
