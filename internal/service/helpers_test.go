package service_test

import (
	"context"
	"testing"
	"time"

	"tablepos/internal/dto"
	"tablepos/internal/model"
	"tablepos/internal/repository"
	"tablepos/internal/service"
	"tablepos/internal/state"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// ── Fixtures ──────────────────────────────────────────────────────────────────

// fakeClock advances one minute per call so orders get distinct timestamps.
type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 5, 10, 11, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	now := c.t
	c.t = c.t.Add(time.Minute)
	return now
}

func (c *fakeClock) Set(t time.Time) { c.t = t }

type env struct {
	mem      *repository.MemoryBundleStore
	store    *state.Store
	clock    *fakeClock
	cart     service.CartService
	orders   service.OrderService
	catalog  service.CatalogService
	closing  service.SettlementService
	settings service.SettingsService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	mem := repository.NewMemoryBundleStore()
	st := state.New(mem)
	require.NoError(t, st.Load(context.Background()))
	require.NoError(t, st.Mutate(context.Background(), func(s *state.Snapshot) error {
		s.Menu = []model.MenuItem{
			{ID: "noodle", Name: "Noodles", Price: decimal.NewFromInt(100), Category: "Main", IsAvailable: true},
			{ID: "rice", Name: "Rice", Price: decimal.NewFromInt(50), Category: "Main", IsAvailable: true},
			{ID: "tea", Name: "Tea", Price: decimal.NewFromInt(30), Category: "Drinks", IsAvailable: false},
		}
		s.Discounts = []model.DiscountRule{
			{ID: "ten", Name: "10% off", Type: model.DiscountPercentage, Value: decimal.RequireFromString("0.9")},
			{ID: "fifty", Name: "50 off", Type: model.DiscountAmount, Value: decimal.NewFromInt(50)},
		}
		return nil
	}))

	clock := newFakeClock()
	return &env{
		mem:      mem,
		store:    st,
		clock:    clock,
		cart:     service.NewCartService(st),
		orders:   service.NewOrderService(st, clock.Now),
		catalog:  service.NewCatalogService(st),
		closing:  service.NewSettlementService(st, clock.Now, time.UTC),
		settings: service.NewSettingsService(st),
	}
}

func (e *env) addToCart(t *testing.T, ids ...string) {
	t.Helper()
	for _, id := range ids {
		_, err := e.cart.AddItem(context.Background(), id)
		require.NoError(t, err)
	}
}

func (e *env) postPay(t *testing.T) {
	t.Helper()
	mode := string(model.DineInPostPay)
	_, err := e.settings.Update(context.Background(), dtoSettingsMode(mode))
	require.NoError(t, err)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dtoSettingsMode(mode string) dto.UpdateSettingsRequest {
	return dto.UpdateSettingsRequest{DineInMode: &mode}
}

func dtoPrice(p decimal.Decimal) dto.UpdateMenuItemRequest {
	return dto.UpdateMenuItemRequest{Price: &p}
}
