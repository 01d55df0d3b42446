// Package lifecycle turns a priced cart into an Order and enforces the order
// state machine: pending → paid exactly once, void at most once, never after
// the order has been closed. Functions are pure; callers own persistence.
package lifecycle

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tablepos/internal/model"
	"tablepos/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

var (
	ErrCartEmpty             = errors.New("cart is empty")
	ErrInvalidOrderType      = errors.New("order type must be dineIn or takeOut")
	ErrPaymentMethodRequired = errors.New("payment method is required")
	ErrPaymentMethodDisabled = errors.New("payment method is not enabled")
	ErrInsufficientCash      = errors.New("cash received is less than the total")
	ErrNotPending            = errors.New("order is not awaiting payment")
	ErrAlreadyVoided         = errors.New("order is already voided")
	ErrOrderClosed           = errors.New("order is closed")
	ErrVoidReasonRequired    = errors.New("void reason is required")
)

// Payment is the cashier's decision at checkout confirmation.
// An empty Method on a post-pay dine-in order sends it to the kitchen unpaid.
type Payment struct {
	Method       model.PaymentMethod
	CashReceived string
	Discount     pricing.Discount
}

// Receipt is the priced outcome of a payment decision.
type Receipt struct {
	pricing.Breakdown
	CashReceived decimal.Decimal
	Change       decimal.Decimal
}

// Quote prices subtotal under p and checks whether confirmation is allowed.
// The receipt is returned even when err is ErrInsufficientCash so the
// register can show the shortfall.
func Quote(subtotal decimal.Decimal, p Payment, settings model.Settings) (Receipt, error) {
	b := pricing.Apply(subtotal, p.Discount)
	r := Receipt{Breakdown: b, CashReceived: b.Total, Change: decimal.Zero}

	if p.Method == "" {
		return r, ErrPaymentMethodRequired
	}
	if !p.Method.Valid() || !settings.MethodEnabled(p.Method) {
		return r, fmt.Errorf("%w: %s", ErrPaymentMethodDisabled, p.Method)
	}
	if p.Method == model.PaymentCash {
		r.CashReceived = pricing.ParseAmount(p.CashReceived)
		r.Change = pricing.CalculateChange(p.CashReceived, b.Total)
		if r.Change.IsNegative() {
			return r, ErrInsufficientCash
		}
	}
	return r, nil
}

// DefersPayment reports whether an order of this type, confirmed with this
// payment, is created unpaid (post-pay dine-in with no method chosen yet).
func DefersPayment(orderType model.OrderType, p Payment, settings model.Settings) bool {
	return orderType == model.OrderTypeDineIn &&
		settings.DineInMode == model.DineInPostPay &&
		p.Method == ""
}

// NextOrderNo returns the label for the next order of orderType on date:
// "D" or "T" followed by the 1-based sequence zero-padded to three digits.
// Only orders of the same date and type count, closed and voided included.
func NextOrderNo(orderType model.OrderType, date string, existing []model.Order) string {
	n := 0
	for _, o := range existing {
		if o.Date == date && o.OrderType == orderType {
			n++
		}
	}
	prefix := "T"
	if orderType == model.OrderTypeDineIn {
		prefix = "D"
	}
	return fmt.Sprintf("%s%03d", prefix, n+1)
}

// Create builds a new unclosed order from cart. existing is every order
// already recorded; it drives numbering only. now must already be in the
// business time zone.
func Create(cart model.Cart, orderType model.OrderType, p Payment, existing []model.Order, settings model.Settings, now time.Time) (model.Order, error) {
	if len(cart) == 0 {
		return model.Order{}, ErrCartEmpty
	}
	if !orderType.Valid() {
		return model.Order{}, ErrInvalidOrderType
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.Order{}, fmt.Errorf("order id: %w", err)
	}
	date := now.Format(dateLayout)
	subtotal := cart.Subtotal()

	o := model.Order{
		ID:        id.String(),
		OrderNo:   NextOrderNo(orderType, date, existing),
		Date:      date,
		Time:      now.Format(timeLayout),
		CreatedAt: now,
		OrderType: orderType,
		Items:     cart.Clone(),
		Subtotal:  subtotal,
		Status:    model.OrderUnclosed,
	}

	if DefersPayment(orderType, p, settings) {
		o.Total = subtotal
		o.Discount = decimal.Zero
		o.CashReceived = decimal.Zero
		o.Change = decimal.Zero
		o.PaymentStatus = model.PaymentPending
		return o, nil
	}

	r, err := Quote(subtotal, p, settings)
	if err != nil {
		return model.Order{}, err
	}
	applyReceipt(&o, p.Method, r, now)
	return o, nil
}

// Settle records payment for a pending order. The discount is priced against
// the order's own subtotal; the item snapshot is untouched.
func Settle(o model.Order, p Payment, settings model.Settings, now time.Time) (model.Order, error) {
	switch {
	case o.Status == model.OrderClosed:
		return o, ErrOrderClosed
	case o.IsVoided:
		return o, ErrAlreadyVoided
	case o.PaymentStatus != model.PaymentPending:
		return o, ErrNotPending
	}
	r, err := Quote(o.Subtotal, p, settings)
	if err != nil {
		return o, err
	}
	out := o.Clone()
	applyReceipt(&out, p.Method, r, now)
	return out, nil
}

// Void marks o as cancelled with reason. A voided order stays voided and its
// reason is never rewritten; closed orders cannot be voided.
func Void(o model.Order, reason string, now time.Time) (model.Order, error) {
	reason = strings.TrimSpace(reason)
	switch {
	case reason == "":
		return o, ErrVoidReasonRequired
	case o.Status == model.OrderClosed:
		return o, ErrOrderClosed
	case o.IsVoided:
		return o, ErrAlreadyVoided
	}
	out := o.Clone()
	out.IsVoided = true
	out.VoidReason = reason
	out.VoidedAt = &now
	return out, nil
}

func applyReceipt(o *model.Order, method model.PaymentMethod, r Receipt, now time.Time) {
	o.Subtotal = r.Subtotal
	o.Total = r.Total
	o.Discount = r.Discount
	o.DiscountName = r.DiscountName
	o.PaymentMethod = method
	o.CashReceived = r.CashReceived
	o.Change = r.Change
	o.PaymentStatus = model.PaymentPaid
	o.PaidAt = &now
}
