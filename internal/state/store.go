package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/ticklist/internal/todo"
)

// Snapshot represents the latest gateway data available to the UI.
type Snapshot struct {
	Items               []todo.Item
	Loaded              bool
	Generation          uint64 // bumped on every successful load
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed requests
	InFlight            int
}

// IsOffline returns true when the gateway has failed several requests in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates the background loader, gateway requests and the UI.
// The zero value is ready to use.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// SetItems records a successfully loaded collection.
func (s *Store) SetItems(items []todo.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Items = cloneItems(items)
	s.snapshot.Loaded = true
	s.snapshot.Generation++
	s.snapshot.LastUpdated = time.Now()
}

// RequestStarted counts a gateway request as in flight.
func (s *Store) RequestStarted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.InFlight++
}

// RequestFinished records the outcome of a gateway request. Previous data
// is kept on error; the error is recorded for visibility.
func (s *Store) RequestFinished(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot.InFlight > 0 {
		s.snapshot.InFlight--
	}
	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Items = cloneItems(s.snapshot.Items)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneItems(items []todo.Item) []todo.Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]todo.Item, len(items))
	copy(dup, items)
	return dup
}
