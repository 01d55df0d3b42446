// Package state owns the authoritative in-memory POS state and mirrors it to
// a BundleStore. All writers go through Mutate, which is the only critical
// section in the program.
package state

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tablepos/internal/migration"
	"tablepos/internal/model"
	"tablepos/internal/repository"

	"github.com/rs/zerolog/log"
)

// ErrLoadFailed wraps read errors that stop Load from restoring state.
var ErrLoadFailed = errors.New("state could not be loaded from storage")

// Bundle names a persisted collection.
type Bundle string

const (
	BundleMenu          Bundle = "menu"
	BundleOrders        Bundle = "orders"
	BundleSummaries     Bundle = "daily_summaries"
	BundleDiscounts     Bundle = "discounts"
	BundleSettings      Bundle = "settings"
	BundleSchemaVersion Bundle = "schema_version"
)

// Bundles lists every persisted bundle in load order.
var Bundles = []Bundle{BundleMenu, BundleOrders, BundleSummaries, BundleDiscounts, BundleSettings, BundleSchemaVersion}

// Snapshot is one consistent view of the POS state.
// Cart is the in-progress order at the register and is never persisted.
type Snapshot struct {
	Menu      []model.MenuItem
	Orders    []model.Order
	Summaries []model.DailySummary
	Discounts []model.DiscountRule
	Settings  model.Settings
	Cart      model.Cart
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{Settings: s.Settings, Cart: s.Cart.Clone()}
	out.Menu = append([]model.MenuItem(nil), s.Menu...)
	out.Discounts = append([]model.DiscountRule(nil), s.Discounts...)
	out.Orders = make([]model.Order, len(s.Orders))
	for i, o := range s.Orders {
		out.Orders[i] = o.Clone()
	}
	out.Summaries = make([]model.DailySummary, len(s.Summaries))
	for i, d := range s.Summaries {
		out.Summaries[i] = d.Clone()
	}
	return out
}

type schemaVersion struct {
	Version int `json:"version"`
}

// Store serialises every read and write of the POS state.
type Store struct {
	mu      sync.Mutex
	snap    Snapshot
	version int
	bundles repository.BundleStore
	dirty   map[Bundle]bool // bundles whose last save failed
}

// New returns a Store seeded with defaults. Call Load to restore saved state.
func New(bundles repository.BundleStore) *Store {
	return &Store{snap: Defaults(), bundles: bundles, dirty: map[Bundle]bool{}}
}

// Load restores every bundle, falling back to its default when absent or
// corrupt, then brings the orders up to the latest schema version.
//
// A bundle that cannot be read for any other reason (timeout, open breaker,
// locked file) aborts the load: the Store keeps its previous state and
// nothing is migrated or saved, so stored data is never replaced by
// defaults. Callers may retry. A failure to persist migrated orders is also
// returned; the in-memory state is usable in that case.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next Snapshot
	var ver schemaVersion
	err := errors.Join(
		loadOr(ctx, s.bundles, BundleMenu, &next.Menu, false, defaultMenu),
		loadOr(ctx, s.bundles, BundleOrders, &next.Orders, false, func() []model.Order { return []model.Order{} }),
		loadOr(ctx, s.bundles, BundleSummaries, &next.Summaries, false, func() []model.DailySummary { return []model.DailySummary{} }),
		loadOr(ctx, s.bundles, BundleDiscounts, &next.Discounts, false, defaultDiscounts),
		// settings written by older builds lack newer fields; those keep their defaults
		loadOr(ctx, s.bundles, BundleSettings, &next.Settings, true, model.DefaultSettings),
		loadOr(ctx, s.bundles, BundleSchemaVersion, &ver, false, func() schemaVersion { return schemaVersion{} }),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	if !next.Settings.DineInMode.Valid() {
		next.Settings.DineInMode = model.DineInPrePay
	}

	migrated, rep := migration.Run(next.Orders, ver.Version)
	next.Orders = migrated
	s.snap = next
	s.version = rep.To
	s.dirty = map[Bundle]bool{}

	if !rep.Changed() {
		log.Info().Int("schema_version", s.version).Int("orders", len(next.Orders)).Msg("state loaded")
		return nil
	}
	log.Info().Int("from", rep.From).Int("to", rep.To).Interface("touched", rep.Touched).Msg("orders migrated")
	if err := s.bundles.Save(ctx, string(BundleOrders), s.snap.Orders); err != nil {
		log.Error().Err(err).Str("bundle", string(BundleOrders)).Msg("save migrated orders")
		s.dirty[BundleOrders] = true
		s.dirty[BundleSchemaVersion] = true
		return err
	}
	if err := s.bundles.Save(ctx, string(BundleSchemaVersion), schemaVersion{Version: s.version}); err != nil {
		log.Error().Err(err).Str("bundle", string(BundleSchemaVersion)).Msg("save schema version")
		s.dirty[BundleSchemaVersion] = true
		return err
	}
	return nil
}

// loadOr decodes a bundle into dst. With seeded set, decoding starts from
// def() so a struct keeps the fields an older payload lacks; otherwise it
// starts from the zero value so stored records never inherit fields from the
// defaults. A missing or corrupt bundle yields def(). Any other error is
// returned and dst is left alone.
func loadOr[T any](ctx context.Context, bundles repository.BundleStore, name Bundle, dst *T, seeded bool, def func() T) error {
	var v T
	if seeded {
		v = def()
	}
	found, err := bundles.Load(ctx, string(name), &v)
	switch {
	case errors.Is(err, repository.ErrCorruptBundle):
		log.Warn().Err(err).Str("bundle", string(name)).Msg("corrupt bundle, using default")
		*dst = def()
	case err != nil:
		log.Error().Err(err).Str("bundle", string(name)).Msg("load bundle")
		return fmt.Errorf("bundle %q: %w", name, err)
	case !found:
		*dst = def()
	default:
		*dst = v
	}
	return nil
}

// Snapshot returns a deep copy that callers may read freely.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// SchemaVersion reports the migration version of the loaded orders.
func (s *Store) SchemaVersion() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Mutate runs fn against a private copy of the state. When ctx is already
// done or fn returns an error nothing changes. Otherwise the copy becomes the
// state and every touched bundle is saved. Save failures are logged, not
// returned: memory stays authoritative.
func (s *Store) Mutate(ctx context.Context, fn func(*Snapshot) error, touched ...Bundle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	next := s.snap.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	s.snap = next

	for _, b := range touched {
		if err := s.bundles.Save(ctx, string(b), s.value(b)); err != nil {
			log.Error().Err(err).Str("bundle", string(b)).Msg("mirror save failed")
			s.dirty[b] = true
			continue
		}
		delete(s.dirty, b)
	}
	return nil
}

// Dirty lists bundles whose latest value has not reached storage, in
// Bundles order.
func (s *Store) Dirty() []Bundle {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Bundle
	for _, b := range Bundles {
		if s.dirty[b] {
			out = append(out, b)
		}
	}
	return out
}

// Resync saves the current value of every dirty bundle. It stops at the
// first failure and returns how many bundles were written.
func (s *Store) Resync(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := 0
	for _, b := range Bundles {
		if !s.dirty[b] {
			continue
		}
		if err := s.bundles.Save(ctx, string(b), s.value(b)); err != nil {
			return saved, err
		}
		delete(s.dirty, b)
		saved++
	}
	return saved, nil
}

func (s *Store) value(b Bundle) any {
	switch b {
	case BundleMenu:
		return s.snap.Menu
	case BundleOrders:
		return s.snap.Orders
	case BundleSummaries:
		return s.snap.Summaries
	case BundleDiscounts:
		return s.snap.Discounts
	case BundleSettings:
		return s.snap.Settings
	case BundleSchemaVersion:
		return schemaVersion{Version: s.version}
	default:
		return nil
	}
}
