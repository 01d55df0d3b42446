package service_test

import (
	"context"
	"testing"

	"tablepos/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddMergesLines(t *testing.T) {
	e := newEnv(t)
	e.addToCart(t, "noodle", "rice", "noodle")

	cart := e.cart.Get(context.Background())
	require.Len(t, cart.Lines, 2)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
	assert.Equal(t, 3, cart.ItemCount)
	assert.True(t, dec("250").Equal(cart.Subtotal))
}

func TestCart_AddRejectsUnknownAndUnavailable(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.cart.AddItem(ctx, "ghost")
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = e.cart.AddItem(ctx, "tea")
	assert.ErrorIs(t, err, service.ErrItemUnavailable)
	assert.ErrorIs(t, err, service.ErrInvalid)
	assert.Empty(t, e.cart.Get(ctx).Lines)
}

func TestCart_SetQuantity(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.addToCart(t, "noodle", "rice")

	cart, err := e.cart.SetQuantity(ctx, "rice", 4)
	require.NoError(t, err)
	assert.True(t, dec("300").Equal(cart.Subtotal))

	cart, err = e.cart.SetQuantity(ctx, "noodle", 0)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "rice", cart.Lines[0].ItemID)

	_, err = e.cart.SetQuantity(ctx, "rice", -1)
	assert.ErrorIs(t, err, service.ErrInvalidQuantity)

	_, err = e.cart.SetQuantity(ctx, "noodle", 1)
	assert.ErrorIs(t, err, service.ErrCartLineNotFound)
}

func TestCart_PriceCapturedAtAdd(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.addToCart(t, "noodle")

	price := dec("999")
	_, err := e.catalog.UpdateMenuItem(ctx, "noodle", dtoPrice(price))
	require.NoError(t, err)
	e.addToCart(t, "noodle")

	cart := e.cart.Get(ctx)
	require.Len(t, cart.Lines, 1)
	assert.True(t, dec("100").Equal(cart.Lines[0].Price))
	assert.Equal(t, 2, cart.Lines[0].Quantity)
}

func TestCart_Clear(t *testing.T) {
	e := newEnv(t)
	e.addToCart(t, "noodle")
	cart, err := e.cart.Clear(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
	assert.Empty(t, e.cart.Get(context.Background()).Lines)
}

func TestCart_ClearCancelledKeepsCart(t *testing.T) {
	e := newEnv(t)
	e.addToCart(t, "noodle")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.cart.Clear(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, e.cart.Get(context.Background()).Lines, 1)
}
