package state

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"tablepos/internal/model"
	"tablepos/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmptyStoreUsesDefaults(t *testing.T) {
	st := New(repository.NewMemoryBundleStore())
	require.NoError(t, st.Load(context.Background()))

	snap := st.Snapshot()
	assert.Equal(t, model.DefaultSettings(), snap.Settings)
	assert.NotEmpty(t, snap.Menu)
	assert.NotEmpty(t, snap.Discounts)
	assert.Empty(t, snap.Orders)
	assert.Empty(t, snap.Summaries)
}

func TestLoad_CorruptBundleFallsBack(t *testing.T) {
	mem := repository.NewMemoryBundleStore()
	mem.PutRaw(string(BundleMenu), []byte("{{{"))
	mem.PutRaw(string(BundleSettings), []byte(`{"storeName":"Corner Cafe"}`))

	st := New(mem)
	require.NoError(t, st.Load(context.Background()))

	snap := st.Snapshot()
	assert.Equal(t, defaultMenu(), snap.Menu)
	assert.Equal(t, "Corner Cafe", snap.Settings.StoreName)
	// fields absent from the payload keep their defaults
	assert.Equal(t, model.DineInPrePay, snap.Settings.DineInMode)
	assert.True(t, snap.Settings.EnableCreditCard)
}

// failingLoadStore serves Save and Ping from the wrapped store but fails
// every Load, like a backend that is down at startup.
type failingLoadStore struct {
	*repository.MemoryBundleStore
	err error
}

func (f failingLoadStore) Load(context.Context, string, any) (bool, error) {
	return false, f.err
}

func TestLoad_ReadErrorKeepsStoredData(t *testing.T) {
	mem := repository.NewMemoryBundleStore()
	orders := []byte(`[{"id":"o1","orderNo":"T001","status":"unclosed","paymentStatus":"paid","total":"100"}]`)
	mem.PutRaw(string(BundleOrders), orders)
	mem.PutRaw(string(BundleSchemaVersion), []byte(`{"version":2}`))
	menu := []byte(`[{"id":"x1","name":"Soup","price":"4","category":"Soups","isAvailable":true}]`)
	mem.PutRaw(string(BundleMenu), menu)

	st := New(failingLoadStore{MemoryBundleStore: mem, err: errors.New("connection refused")})
	err := st.Load(context.Background())

	require.ErrorIs(t, err, ErrLoadFailed)
	assert.Empty(t, st.Dirty())

	raw, ok := mem.Raw(string(BundleOrders))
	require.True(t, ok)
	assert.JSONEq(t, string(orders), string(raw))
	raw, ok = mem.Raw(string(BundleMenu))
	require.True(t, ok)
	assert.JSONEq(t, string(menu), string(raw))
	raw, ok = mem.Raw(string(BundleSchemaVersion))
	require.True(t, ok)
	assert.JSONEq(t, `{"version":2}`, string(raw))
}

func TestLoad_RetryAfterReadError(t *testing.T) {
	mem := repository.NewMemoryBundleStore()
	mem.PutRaw(string(BundleOrders), []byte(`[{"id":"o1","orderNo":"T001","status":"unclosed","paymentStatus":"paid","total":"100"}]`))
	mem.PutRaw(string(BundleSchemaVersion), []byte(`{"version":2}`))

	st := New(failingLoadStore{MemoryBundleStore: mem, err: errors.New("timeout")})
	require.Error(t, st.Load(context.Background()))

	st = New(mem)
	require.NoError(t, st.Load(context.Background()))
	snap := st.Snapshot()
	require.Len(t, snap.Orders, 1)
	assert.Equal(t, "o1", snap.Orders[0].ID)
}

func TestLoad_StoredRecordsDoNotInheritDefaults(t *testing.T) {
	mem := repository.NewMemoryBundleStore()
	mem.PutRaw(string(BundleMenu), []byte(`[{"id":"x1","name":"Soup","price":"4"}]`))
	mem.PutRaw(string(BundleDiscounts), []byte(`[{"id":"r1","name":"Half"}]`))

	st := New(mem)
	require.NoError(t, st.Load(context.Background()))

	snap := st.Snapshot()
	require.Len(t, snap.Menu, 1)
	assert.Equal(t, "x1", snap.Menu[0].ID)
	assert.Empty(t, snap.Menu[0].Category)
	assert.False(t, snap.Menu[0].IsAvailable)
	require.Len(t, snap.Discounts, 1)
	assert.Empty(t, snap.Discounts[0].Type)
	assert.True(t, snap.Discounts[0].Value.IsZero())
}

func TestLoad_MigratesLegacyOrders(t *testing.T) {
	mem := repository.NewMemoryBundleStore()
	mem.PutRaw(string(BundleOrders), []byte(`[
		{"id":"o1","orderNo":"T001","status":"voided","total":"100"},
		{"id":"o2","orderNo":"T002","status":"unclosed","total":"50"}
	]`))

	st := New(mem)
	require.NoError(t, st.Load(context.Background()))

	snap := st.Snapshot()
	require.Len(t, snap.Orders, 2)
	assert.True(t, snap.Orders[0].IsVoided)
	assert.Equal(t, model.OrderUnclosed, snap.Orders[0].Status)
	assert.Equal(t, "legacy void", snap.Orders[0].VoidReason)
	assert.Equal(t, model.PaymentPaid, snap.Orders[1].PaymentStatus)

	raw, ok := mem.Raw(string(BundleSchemaVersion))
	require.True(t, ok)
	var ver schemaVersion
	require.NoError(t, json.Unmarshal(raw, &ver))
	assert.Equal(t, st.SchemaVersion(), ver.Version)

	raw, ok = mem.Raw(string(BundleOrders))
	require.True(t, ok)
	var saved []model.Order
	require.NoError(t, json.Unmarshal(raw, &saved))
	assert.True(t, saved[0].IsVoided)
}

func TestMutate_ErrorLeavesStateUntouched(t *testing.T) {
	mem := repository.NewMemoryBundleStore()
	st := New(mem)
	require.NoError(t, st.Load(context.Background()))
	before := st.Snapshot()

	boom := errors.New("boom")
	err := st.Mutate(context.Background(), func(s *Snapshot) error {
		s.Menu = nil
		s.Settings.StoreName = "changed"
		return boom
	}, BundleMenu, BundleSettings)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, before, st.Snapshot())
	_, saved := mem.Raw(string(BundleMenu))
	assert.False(t, saved)
}

func TestMutate_SavesTouchedBundles(t *testing.T) {
	mem := repository.NewMemoryBundleStore()
	st := New(mem)
	require.NoError(t, st.Load(context.Background()))

	err := st.Mutate(context.Background(), func(s *Snapshot) error {
		s.Settings.StoreName = "Noodle Bar"
		s.Cart = append(s.Cart, model.CartLine{ItemID: "m-001", Name: "x", Price: decimal.NewFromInt(1), Quantity: 1})
		return nil
	}, BundleSettings)
	require.NoError(t, err)

	raw, ok := mem.Raw(string(BundleSettings))
	require.True(t, ok)
	var saved model.Settings
	require.NoError(t, json.Unmarshal(raw, &saved))
	assert.Equal(t, "Noodle Bar", saved.StoreName)
	assert.Len(t, st.Snapshot().Cart, 1)
}

func TestMutate_SaveFailureKeepsMemory(t *testing.T) {
	mem := repository.NewMemoryBundleStore()
	st := New(mem)
	require.NoError(t, st.Load(context.Background()))
	mem.SaveErr = errors.New("offline")

	err := st.Mutate(context.Background(), func(s *Snapshot) error {
		s.Settings.StoreName = "Offline Shop"
		return nil
	}, BundleSettings)

	require.NoError(t, err)
	assert.Equal(t, "Offline Shop", st.Snapshot().Settings.StoreName)
	assert.Equal(t, []Bundle{BundleSettings}, st.Dirty())
}

func TestResync_WritesDirtyBundles(t *testing.T) {
	mem := repository.NewMemoryBundleStore()
	st := New(mem)
	require.NoError(t, st.Load(context.Background()))

	mem.SaveErr = errors.New("offline")
	require.NoError(t, st.Mutate(context.Background(), func(s *Snapshot) error {
		s.Settings.StoreName = "Back Online"
		return nil
	}, BundleSettings, BundleMenu))

	n, err := st.Resync(context.Background())
	require.Error(t, err)
	assert.Zero(t, n)
	assert.Len(t, st.Dirty(), 2)

	mem.SaveErr = nil
	n, err = st.Resync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Empty(t, st.Dirty())

	raw, ok := mem.Raw(string(BundleSettings))
	require.True(t, ok)
	var saved model.Settings
	require.NoError(t, json.Unmarshal(raw, &saved))
	assert.Equal(t, "Back Online", saved.StoreName)
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	st := New(repository.NewMemoryBundleStore())
	require.NoError(t, st.Mutate(context.Background(), func(s *Snapshot) error {
		s.Orders = append(s.Orders, model.Order{ID: "o1", Items: []model.CartLine{{ItemID: "a", Quantity: 1}}})
		return nil
	}))

	snap := st.Snapshot()
	snap.Orders[0].Items[0].Quantity = 99
	snap.Menu[0].Name = "tampered"

	fresh := st.Snapshot()
	assert.Equal(t, 1, fresh.Orders[0].Items[0].Quantity)
	assert.NotEqual(t, "tampered", fresh.Menu[0].Name)
}
