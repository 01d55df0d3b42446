package lifecycle

import (
	"testing"
	"time"

	"tablepos/internal/model"
	"tablepos/internal/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noon = time.Date(2026, 3, 14, 12, 30, 5, 0, time.UTC)

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func sampleCart() model.Cart {
	return model.Cart{
		{ItemID: "a", Name: "Coffee", Price: dec("60"), Quantity: 2},
		{ItemID: "b", Name: "Bagel", Price: dec("80"), Quantity: 1},
	}
}

func prePay() model.Settings { return model.DefaultSettings() }

func postPay() model.Settings {
	s := model.DefaultSettings()
	s.DineInMode = model.DineInPostPay
	return s
}

func TestCreate_EmptyCartRejected(t *testing.T) {
	_, err := Create(nil, model.OrderTypeTakeOut, Payment{Method: model.PaymentCash, CashReceived: "100"}, nil, prePay(), noon)
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestCreate_CashPaid(t *testing.T) {
	o, err := Create(sampleCart(), model.OrderTypeTakeOut, Payment{Method: model.PaymentCash, CashReceived: "500"}, nil, prePay(), noon)
	require.NoError(t, err)

	assert.NotEmpty(t, o.ID)
	assert.Equal(t, "T001", o.OrderNo)
	assert.Equal(t, "2026-03-14", o.Date)
	assert.Equal(t, "12:30:05", o.Time)
	assert.Equal(t, "200", o.Total.String())
	assert.Equal(t, "500", o.CashReceived.String())
	assert.Equal(t, "300", o.Change.String())
	assert.Equal(t, model.PaymentPaid, o.PaymentStatus)
	assert.Equal(t, model.OrderUnclosed, o.Status)
	assert.False(t, o.IsVoided)
	require.NotNil(t, o.PaidAt)
}

func TestCreate_InsufficientCashBlocked(t *testing.T) {
	_, err := Create(sampleCart(), model.OrderTypeTakeOut, Payment{Method: model.PaymentCash, CashReceived: "150"}, nil, prePay(), noon)
	assert.ErrorIs(t, err, ErrInsufficientCash)
}

func TestCreate_CardNeedsNoCash(t *testing.T) {
	o, err := Create(sampleCart(), model.OrderTypeDineIn, Payment{Method: model.PaymentCredit}, nil, prePay(), noon)
	require.NoError(t, err)
	assert.Equal(t, "200", o.CashReceived.String())
	assert.True(t, o.Change.IsZero())
}

func TestCreate_DisabledMethodRejected(t *testing.T) {
	s := prePay()
	s.EnableMobilePayment = false
	_, err := Create(sampleCart(), model.OrderTypeTakeOut, Payment{Method: model.PaymentMobile}, nil, s, noon)
	assert.ErrorIs(t, err, ErrPaymentMethodDisabled)
}

func TestCreate_PrePayRequiresMethod(t *testing.T) {
	_, err := Create(sampleCart(), model.OrderTypeDineIn, Payment{}, nil, prePay(), noon)
	assert.ErrorIs(t, err, ErrPaymentMethodRequired)
}

func TestCreate_PostPayDineInIsPending(t *testing.T) {
	o, err := Create(sampleCart(), model.OrderTypeDineIn, Payment{}, nil, postPay(), noon)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPending, o.PaymentStatus)
	assert.Equal(t, "200", o.Total.String())
	assert.Empty(t, o.PaymentMethod)
	assert.Nil(t, o.PaidAt)
	assert.True(t, o.IsPending())
}

func TestCreate_PostPayTakeOutStillPaysNow(t *testing.T) {
	_, err := Create(sampleCart(), model.OrderTypeTakeOut, Payment{}, nil, postPay(), noon)
	assert.ErrorIs(t, err, ErrPaymentMethodRequired)
}

func TestCreate_PostPayDineInWithMethodIsPaid(t *testing.T) {
	o, err := Create(sampleCart(), model.OrderTypeDineIn, Payment{Method: model.PaymentCredit}, nil, postPay(), noon)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPaid, o.PaymentStatus)
}

func TestCreate_AppliesDiscount(t *testing.T) {
	p := Payment{
		Method:       model.PaymentCash,
		CashReceived: "200",
		Discount:     pricing.Discount{Name: "Member", Type: model.DiscountPercentage, Value: dec("0.9")},
	}
	o, err := Create(sampleCart(), model.OrderTypeTakeOut, p, nil, prePay(), noon)
	require.NoError(t, err)
	assert.Equal(t, "200", o.Subtotal.String())
	assert.Equal(t, "180", o.Total.String())
	assert.Equal(t, "20", o.Discount.String())
	assert.Equal(t, "Member", o.DiscountName)
	assert.Equal(t, "20", o.Change.String())
}

func TestCreate_ItemsAreSnapshot(t *testing.T) {
	cart := sampleCart()
	o, err := Create(cart, model.OrderTypeTakeOut, Payment{Method: model.PaymentCredit}, nil, prePay(), noon)
	require.NoError(t, err)

	cart[0].Quantity = 99
	assert.Equal(t, 2, o.Items[0].Quantity)
}

func TestNextOrderNo_PerDateAndType(t *testing.T) {
	existing := []model.Order{
		{Date: "2026-03-14", OrderType: model.OrderTypeDineIn},
		{Date: "2026-03-14", OrderType: model.OrderTypeDineIn, IsVoided: true},
		{Date: "2026-03-14", OrderType: model.OrderTypeTakeOut},
		{Date: "2026-03-13", OrderType: model.OrderTypeDineIn, Status: model.OrderClosed},
	}
	assert.Equal(t, "D003", NextOrderNo(model.OrderTypeDineIn, "2026-03-14", existing))
	assert.Equal(t, "T002", NextOrderNo(model.OrderTypeTakeOut, "2026-03-14", existing))
	assert.Equal(t, "T001", NextOrderNo(model.OrderTypeTakeOut, "2026-03-15", existing))
}

func TestNextOrderNo_SequenceAcrossCreates(t *testing.T) {
	var orders []model.Order
	for i := 0; i < 3; i++ {
		o, err := Create(sampleCart(), model.OrderTypeDineIn, Payment{Method: model.PaymentCredit}, orders, prePay(), noon)
		require.NoError(t, err)
		orders = append(orders, o)
	}
	take, err := Create(sampleCart(), model.OrderTypeTakeOut, Payment{Method: model.PaymentCredit}, orders, prePay(), noon)
	require.NoError(t, err)

	assert.Equal(t, "D001", orders[0].OrderNo)
	assert.Equal(t, "D003", orders[2].OrderNo)
	assert.Equal(t, "T001", take.OrderNo)
}

func TestSettle_PendingBecomesPaid(t *testing.T) {
	o, err := Create(sampleCart(), model.OrderTypeDineIn, Payment{}, nil, postPay(), noon)
	require.NoError(t, err)

	later := noon.Add(40 * time.Minute)
	p := Payment{
		Method:       model.PaymentCash,
		CashReceived: "1000",
		Discount:     pricing.Discount{Name: "Coupon", Type: model.DiscountAmount, Value: dec("50")},
	}
	paid, err := Settle(o, p, postPay(), later)
	require.NoError(t, err)

	assert.Equal(t, model.PaymentPaid, paid.PaymentStatus)
	assert.Equal(t, "150", paid.Total.String())
	assert.Equal(t, "850", paid.Change.String())
	assert.Equal(t, o.OrderNo, paid.OrderNo)
	assert.Equal(t, o.Items, paid.Items)
	require.NotNil(t, paid.PaidAt)
	assert.Equal(t, later, *paid.PaidAt)
	// original value untouched
	assert.Equal(t, model.PaymentPending, o.PaymentStatus)

	_, err = Settle(paid, p, postPay(), later)
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestSettle_InsufficientCashKeepsPending(t *testing.T) {
	o, err := Create(sampleCart(), model.OrderTypeDineIn, Payment{}, nil, postPay(), noon)
	require.NoError(t, err)

	out, err := Settle(o, Payment{Method: model.PaymentCash, CashReceived: "10"}, postPay(), noon)
	assert.ErrorIs(t, err, ErrInsufficientCash)
	assert.Equal(t, model.PaymentPending, out.PaymentStatus)
}

func TestSettle_VoidedRejected(t *testing.T) {
	o, err := Create(sampleCart(), model.OrderTypeDineIn, Payment{}, nil, postPay(), noon)
	require.NoError(t, err)
	o, err = Void(o, "customer left", noon)
	require.NoError(t, err)

	_, err = Settle(o, Payment{Method: model.PaymentCredit}, postPay(), noon)
	assert.ErrorIs(t, err, ErrAlreadyVoided)
}

func TestVoid_RequiresReason(t *testing.T) {
	o := model.Order{Status: model.OrderUnclosed, PaymentStatus: model.PaymentPaid}
	_, err := Void(o, "   ", noon)
	assert.ErrorIs(t, err, ErrVoidReasonRequired)
}

func TestVoid_IsMonotonic(t *testing.T) {
	o := model.Order{Status: model.OrderUnclosed, PaymentStatus: model.PaymentPaid}
	voided, err := Void(o, "wrong table", noon)
	require.NoError(t, err)
	assert.True(t, voided.IsVoided)
	assert.Equal(t, "wrong table", voided.VoidReason)

	again, err := Void(voided, "second reason", noon.Add(time.Minute))
	assert.ErrorIs(t, err, ErrAlreadyVoided)
	assert.True(t, again.IsVoided)
	assert.Equal(t, "wrong table", again.VoidReason)
	assert.Equal(t, noon, *again.VoidedAt)
}

func TestVoid_PendingAllowed(t *testing.T) {
	o := model.Order{Status: model.OrderUnclosed, PaymentStatus: model.PaymentPending}
	voided, err := Void(o, "duplicate", noon)
	require.NoError(t, err)
	assert.False(t, voided.IsPending())
}

func TestVoid_ClosedRejected(t *testing.T) {
	o := model.Order{Status: model.OrderClosed, PaymentStatus: model.PaymentPaid}
	_, err := Void(o, "too late", noon)
	assert.ErrorIs(t, err, ErrOrderClosed)
}

func TestQuote_ReportsShortfall(t *testing.T) {
	r, err := Quote(dec("800"), Payment{Method: model.PaymentCash, CashReceived: "500"}, prePay())
	assert.ErrorIs(t, err, ErrInsufficientCash)
	assert.Equal(t, "-300", r.Change.String())
	assert.Equal(t, "800", r.Total.String())
}
