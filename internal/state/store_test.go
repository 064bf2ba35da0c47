package state

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/five82/ticklist/internal/todo"
)

func TestStore_SetItemsAndSnapshotClone(t *testing.T) {
	var s Store

	before := time.Now()
	s.SetItems([]todo.Item{{ID: "1", Text: "a"}, {ID: "2", Text: "b"}})

	snap := s.Snapshot()
	if !snap.Loaded || snap.Generation != 1 {
		t.Fatalf("snapshot Loaded=%v Generation=%d, want true/1", snap.Loaded, snap.Generation)
	}
	if len(snap.Items) != 2 || snap.Items[0].ID != "1" {
		t.Fatalf("snapshot items = %#v, want 2 items", snap.Items)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Items[0].Text = "mutated"
	if s.Snapshot().Items[0].Text != "a" {
		t.Fatalf("Snapshot should clone items")
	}

	s.SetItems(nil)
	snap = s.Snapshot()
	if snap.Generation != 2 || snap.Items != nil || !snap.Loaded {
		t.Fatalf("empty load = %#v, want generation 2 with no items", snap)
	}
}

func TestStore_FailureKeepsPreviousItems(t *testing.T) {
	var s Store
	s.SetItems([]todo.Item{{ID: "1", Text: "a"}})

	origErr := errors.New("boom")
	s.RequestStarted()
	s.RequestFinished(origErr)

	snap := s.Snapshot()
	if len(snap.Items) != 1 || snap.Generation != 1 {
		t.Fatalf("items changed on error: %#v", snap)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("cloned error should wrap the original")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	if snap := s.Snapshot(); snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("fresh store = %#v, want online with 0 failures", snap)
	}

	for i, wantOffline := range []bool{false, true, true} {
		s.RequestStarted()
		s.RequestFinished(errors.New("fail"))
		snap := s.Snapshot()
		if snap.ConsecutiveFailures != i+1 {
			t.Fatalf("ConsecutiveFailures = %d, want %d", snap.ConsecutiveFailures, i+1)
		}
		if snap.IsOffline() != wantOffline {
			t.Fatalf("IsOffline() = %v after %d failures, want %v", snap.IsOffline(), i+1, wantOffline)
		}
	}

	s.RequestStarted()
	s.RequestFinished(nil)
	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() || snap.LastError != nil {
		t.Fatalf("success should reset failures, got %#v", snap)
	}
}

func TestStore_InFlightCount(t *testing.T) {
	var s Store
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		s.RequestStarted()
	}
	if got := s.Snapshot().InFlight; got != 10 {
		t.Fatalf("InFlight = %d, want 10", got)
	}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.RequestFinished(nil)
		}()
	}
	wg.Wait()
	if got := s.Snapshot().InFlight; got != 0 {
		t.Fatalf("InFlight = %d, want 0", got)
	}

	s.RequestFinished(nil)
	if got := s.Snapshot().InFlight; got != 0 {
		t.Fatalf("InFlight went negative: %d", got)
	}
}
