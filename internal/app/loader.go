package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/ticklist/internal/state"
	"github.com/five82/ticklist/internal/todo"
)

const (
	defaultRetryInterval = 2 * time.Second
	maxBackoff           = 30 * time.Second
)

// Lister fetches the whole collection.
type Lister interface {
	List(ctx context.Context) ([]todo.Item, error)
}

// StartLoader fetches the initial collection in the background and stores
// it once a request succeeds. Failed attempts are retried with exponential
// backoff. The returned channel is closed when the loader stops.
func StartLoader(ctx context.Context, store *state.Store, lister Lister, interval time.Duration, log zerolog.Logger) <-chan struct{} {
	if interval <= 0 {
		interval = defaultRetryInterval
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		load(ctx, store, lister, interval, log)
	}()
	return done
}

func load(ctx context.Context, store *state.Store, lister Lister, interval time.Duration, log zerolog.Logger) {
	failures := 0
	for {
		items, err := lister.List(ctx)
		if err == nil {
			store.SetItems(items)
			log.Info().Int("items", len(items)).Int("attempts", failures+1).Msg("initial load complete")
			return
		}
		if ctx.Err() != nil {
			return
		}

		wait := calculateBackoff(failures, interval)
		failures++
		log.Warn().Err(err).Int("failures", failures).Dur("retry_in", wait).Msg("initial load failed")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// calculateBackoff doubles base once per failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}
