package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"tablepos/internal/dto"
	"tablepos/internal/settlement"
	"tablepos/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClose_AcrossTwoDates(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.clock.Set(time.Date(2024, 5, 9, 20, 0, 0, 0, time.UTC))
	e.addToCart(t, "noodle")
	_, err := e.orders.Checkout(ctx, dto.CheckoutRequest{OrderType: "dineIn", PaymentRequest: cashPayment("100")})
	require.NoError(t, err)

	e.clock.Set(time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC))
	e.addToCart(t, "rice", "rice")
	_, err = e.orders.Checkout(ctx, dto.CheckoutRequest{OrderType: "takeOut", PaymentRequest: cashPayment("100")})
	require.NoError(t, err)
	e.addToCart(t, "noodle")
	voided, err := e.orders.Checkout(ctx, dto.CheckoutRequest{OrderType: "takeOut", PaymentRequest: cashPayment("100")})
	require.NoError(t, err)
	_, err = e.orders.Void(ctx, voided.ID, "wrong order")
	require.NoError(t, err)

	res, err := e.closing.Close(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Closed)
	require.Len(t, res.Summaries, 2)

	first, second := res.Summaries[0], res.Summaries[1]
	assert.Equal(t, "2024-05-09", first.Date)
	assert.True(t, dec("100").Equal(first.Total))
	assert.Equal(t, 1, first.OrderCount)

	assert.Equal(t, "2024-05-10", second.Date)
	assert.True(t, dec("100").Equal(second.Total))
	assert.Equal(t, 1, second.OrderCount)
	assert.Equal(t, 1, second.VoidedCount)
	assert.Equal(t, map[string]int{"Rice": 2}, second.ItemSales)
	assert.Len(t, second.RelatedOrders, 2)

	all := e.orders.List(ctx, dto.OrderListQuery{Limit: 50, IncludeClosed: true})
	for _, o := range all.Data {
		assert.Equal(t, "closed", o.Status, o.OrderNo)
	}

	again, err := e.closing.Close(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Closed)
	assert.Empty(t, again.Summaries)
	assert.Equal(t, 2, e.closing.ListSummaries(ctx, dto.SummaryListQuery{Limit: 20}).Total)
}

func TestClose_RefusedWhilePending(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.postPay(t)

	e.addToCart(t, "rice")
	_, err := e.orders.Checkout(ctx, dto.CheckoutRequest{OrderType: "takeOut", PaymentRequest: cashPayment("50")})
	require.NoError(t, err)
	e.addToCart(t, "noodle")
	pending, err := e.orders.Checkout(ctx, dto.CheckoutRequest{OrderType: "dineIn"})
	require.NoError(t, err)

	_, err = e.closing.Close(ctx)
	var blocked *settlement.PendingPaymentsError
	require.True(t, errors.As(err, &blocked))
	assert.Equal(t, 1, blocked.Count)

	list := e.orders.List(ctx, dto.OrderListQuery{Limit: 50})
	assert.Equal(t, 2, list.Total, "nothing closed")
	assert.Equal(t, 0, e.closing.ListSummaries(ctx, dto.SummaryListQuery{Limit: 20}).Total)

	// a voided pending order no longer blocks
	_, err = e.orders.Void(ctx, pending.ID, "walked out")
	require.NoError(t, err)
	res, err := e.closing.Close(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Closed)
	assert.Equal(t, 1, res.Summaries[0].VoidedCount)
}

func TestClosedOrdersAreFinal(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.addToCart(t, "rice")
	o, err := e.orders.Checkout(ctx, dto.CheckoutRequest{OrderType: "takeOut", PaymentRequest: cashPayment("50")})
	require.NoError(t, err)
	_, err = e.closing.Close(ctx)
	require.NoError(t, err)

	_, err = e.orders.Void(ctx, o.ID, "too late")
	assert.Error(t, err)

	// numbering continues within the same date
	e.addToCart(t, "rice")
	next, err := e.orders.Checkout(ctx, dto.CheckoutRequest{OrderType: "takeOut", PaymentRequest: cashPayment("50")})
	require.NoError(t, err)
	assert.Equal(t, "T002", next.OrderNo)
}

func TestSummaries_GetFilterAndPDF(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	for _, day := range []int{7, 8, 9} {
		e.clock.Set(time.Date(2024, 5, day, 12, 0, 0, 0, time.UTC))
		e.addToCart(t, "rice")
		_, err := e.orders.Checkout(ctx, dto.CheckoutRequest{OrderType: "takeOut", PaymentRequest: cashPayment("50")})
		require.NoError(t, err)
		_, err = e.closing.Close(ctx)
		require.NoError(t, err)
	}

	list := e.closing.ListSummaries(ctx, dto.SummaryListQuery{Limit: 20})
	require.Len(t, list.Data, 3)
	assert.Equal(t, "2024-05-09", list.Data[0].Date, "most recent close first")

	ranged := e.closing.ListSummaries(ctx, dto.SummaryListQuery{From: "2024-05-08", To: "2024-05-08", Limit: 20})
	require.Len(t, ranged.Data, 1)

	got, err := e.closing.GetSummary(ctx, ranged.Data[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-08", got.Date)
	assert.Len(t, got.RelatedOrders, 1)

	var buf bytes.Buffer
	require.NoError(t, e.closing.WriteSummaryPDF(ctx, got.ID, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	_, err = e.closing.GetSummary(ctx, "missing")
	assert.ErrorIs(t, err, service.ErrNotFound)
}
