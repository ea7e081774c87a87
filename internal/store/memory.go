package store

import (
	"sync"
)

// MemoryStore is an in-memory implementation of [Store].
type MemoryStore struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// NewMemoryStore creates a new in-memory [Store] for the given URL.
//
// The store starts in state "idle" with no results.
func NewMemoryStore(url string) *MemoryStore {
	return &MemoryStore{
		snapshot: Snapshot{URL: url, State: "idle"},
	}
}

// Record stores result as the latest outcome.
//
// Failures increment both failure counters; a success resets the
// consecutive count and moves LastSuccessAt forward.
func (m *MemoryStore) Record(result Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snapshot.Polls++
	if result.Success {
		m.snapshot.ConsecutiveFailures = 0
		checkedAt := result.CheckedAt
		m.snapshot.LastSuccessAt = &checkedAt
	} else {
		m.snapshot.Failures++
		m.snapshot.ConsecutiveFailures++
	}
	m.snapshot.LastResult = &result
}

// SetState records the poller's lifecycle state.
func (m *MemoryStore) SetState(state string) {
	m.mu.Lock()
	m.snapshot.State = state
	m.mu.Unlock()
}

// Snapshot returns a copy of the current view.
//
// Pointer fields are copied so callers cannot mutate the store.
func (m *MemoryStore) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := m.snapshot
	if snap.LastResult != nil {
		r := *snap.LastResult
		if r.Error != nil {
			e := *r.Error
			r.Error = &e
		}
		snap.LastResult = &r
	}
	if snap.LastSuccessAt != nil {
		t := *snap.LastSuccessAt
		snap.LastSuccessAt = &t
	}
	return snap
}
