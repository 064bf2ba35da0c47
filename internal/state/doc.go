// Package state provides thread-safe state shared between gateway requests,
// the background loader and the UI.
//
// # Overview
//
// Two producers write into a Store:
//
//   - the loader, which calls SetItems once the first GET /todo succeeds
//   - the gateway client, which reports every request through
//     RequestStarted and RequestFinished (Store satisfies gateway.Observer)
//
// The UI reads a Snapshot on each tick. It replaces its list when
// Snapshot.Generation moves past the last generation it applied, and
// renders the connection indicator from InFlight and IsOffline.
//
//	store := &state.Store{}
//	client, _ := gateway.NewClient(url, gateway.WithObserver(store))
//
// # Concurrency Model
//
// Writes take the write lock; Snapshot takes the read lock and returns a
// copy, so the UI never shares a slice with a writer. No lock is held
// during network I/O or rendering.
//
// # Error Semantics
//
// A failed request keeps previously loaded items and records the error in
// LastError. Any successful request clears LastError and resets
// ConsecutiveFailures. Two failures in a row mark the gateway offline.
package state
