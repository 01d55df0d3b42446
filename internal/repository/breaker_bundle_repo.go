package repository

import (
	"context"
	"errors"

	"tablepos/internal/infra"
)

// BackendFailure is the breaker's Trips func for bundle stores: a corrupt
// payload or a cancelled request says nothing about backend health.
func BackendFailure(err error) bool {
	return !errors.Is(err, ErrCorruptBundle) && !errors.Is(err, context.Canceled)
}

// BreakerStore routes saves and loads through a circuit breaker so a dead
// backend fails fast instead of delaying every register action.
type BreakerStore struct {
	next BundleStore
	cb   *infra.CircuitBreaker
}

func NewBreakerStore(next BundleStore, cb *infra.CircuitBreaker) *BreakerStore {
	return &BreakerStore{next: next, cb: cb}
}

func (s *BreakerStore) Load(ctx context.Context, name string, dst any) (bool, error) {
	var found bool
	err := s.cb.Execute(func() error {
		var err error
		found, err = s.next.Load(ctx, name, dst)
		return err
	})
	return found, err
}

func (s *BreakerStore) Save(ctx context.Context, name string, v any) error {
	return s.cb.Execute(func() error { return s.next.Save(ctx, name, v) })
}

// Ping bypasses the breaker so /health reports the backend itself.
func (s *BreakerStore) Ping(ctx context.Context) error { return s.next.Ping(ctx) }

// BreakerState exposes the breaker for health reporting.
func (s *BreakerStore) BreakerState() infra.CBState { return s.cb.State() }
