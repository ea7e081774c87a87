package main

import (
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

// flakyState flips the mock between healthy and failing periods.
type flakyState struct {
	mu           sync.Mutex
	failing      bool
	nextChangeAt time.Time
}

// nextPeriod returns how long the current healthy or failing period lasts.
func nextPeriod() time.Duration {
	return time.Duration(5+rand.Intn(11)) * time.Second
}

// StartMockHealthServer runs a mock /health endpoint that alternates between
// 200 and 503 every 5-15 seconds.
// Call this in a goroutine before starting the worker.
func StartMockHealthServer(addr string) {
	state := &flakyState{nextChangeAt: time.Now().Add(nextPeriod())}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		// simulate small latency variance
		time.Sleep(time.Duration(50+rand.Intn(150)) * time.Millisecond)

		state.mu.Lock()
		if time.Now().After(state.nextChangeAt) {
			state.failing = !state.failing
			state.nextChangeAt = time.Now().Add(nextPeriod())
			slog.Info("mock status change", "failing", state.failing)
		}
		failing := state.failing
		state.mu.Unlock()

		if failing {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("mock server error", "error", err)
	}
}
