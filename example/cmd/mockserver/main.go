// Standalone mock server for trying the CLI.
//
// Usage:
//
//	go run ./example/cmd/mockserver
//
// Then in another terminal:
//
//	go run ./cmd/urlcaller run -c example/appsettings.json
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"
	"time"
)

func main() {
	addr := flag.String("addr", ":9999", "listen address")
	failEvery := flag.Int("fail-every", 4, "return 503 on every Nth request; 0 never fails")
	hangEvery := flag.Int("hang-every", 0, "hang past the client timeout on every Nth request; 0 never hangs")
	flag.Parse()

	fmt.Printf("Mock health server starting on %s\n", *addr)
	fmt.Printf("Every %dth request returns 503\n", *failEvery)
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	var count atomic.Int64

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		n := count.Add(1)

		if *hangEvery > 0 && n%int64(*hangEvery) == 0 {
			slog.Info("hanging request", "request", n)
			select {
			case <-r.Context().Done():
			case <-time.After(30 * time.Second):
			}
			return
		}

		if *failEvery > 0 && n%int64(*failEvery) == 0 {
			slog.Info("failing request", "request", n)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusOK)
	})

	if err := http.ListenAndServe(*addr, nil); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
