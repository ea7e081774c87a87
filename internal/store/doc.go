// Package store keeps the latest poll outcome in memory.
//
// This package is internal to urlcaller. It holds a transient snapshot of
// the poller: its state, the most recent outcome and running counters. The
// snapshot is read by the status server and by urlcaller.Worker.Snapshot.
// Nothing is persisted, and the counters never influence the poll loop.
//
// The main components are:
//
//   - [Store]: Interface for recording outcomes and reading snapshots
//   - [MemoryStore]: Mutex-guarded in-memory implementation
//   - [Result], [Snapshot]: JSON-ready representations
package store
