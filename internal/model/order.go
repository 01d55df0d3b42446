package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderType: "dineIn" | "takeOut"
type OrderType string

const (
	OrderTypeDineIn  OrderType = "dineIn"
	OrderTypeTakeOut OrderType = "takeOut"
)

func (t OrderType) Valid() bool {
	return t == OrderTypeDineIn || t == OrderTypeTakeOut
}

// PaymentMethod: "Cash" | "Credit" | "Mobile"
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "Cash"
	PaymentCredit PaymentMethod = "Credit"
	PaymentMobile PaymentMethod = "Mobile"
)

// PaymentMethods lists every method in display order.
var PaymentMethods = []PaymentMethod{PaymentCash, PaymentCredit, PaymentMobile}

func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentCredit || m == PaymentMobile
}

// OrderStatus: "unclosed" | "closed". Only moves forward.
type OrderStatus string

const (
	OrderUnclosed OrderStatus = "unclosed"
	OrderClosed   OrderStatus = "closed"
)

// PaymentStatus: "pending" | "paid". Pending only exists for post-pay dine-in.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// Order is the record produced by checkout.
// Items is a snapshot of the cart and never changes after creation.
// IsVoided and Status are monotonic; VoidReason is set iff IsVoided.
type Order struct {
	ID            string          `json:"id"`
	OrderNo       string          `json:"orderNo"`
	Date          string          `json:"date"` // YYYY-MM-DD, business-day date
	Time          string          `json:"time"` // HH:MM:SS
	CreatedAt     time.Time       `json:"createdAt"`
	OrderType     OrderType       `json:"orderType"`
	Items         []CartLine      `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Total         decimal.Decimal `json:"total"`
	Discount      decimal.Decimal `json:"discount"`
	DiscountName  string          `json:"discountName,omitempty"`
	PaymentMethod PaymentMethod   `json:"paymentMethod,omitempty"`
	CashReceived  decimal.Decimal `json:"cashReceived"`
	Change        decimal.Decimal `json:"change"`
	Status        OrderStatus     `json:"status"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
	IsVoided      bool            `json:"isVoided"`
	VoidReason    string          `json:"voidReason,omitempty"`
	VoidedAt      *time.Time      `json:"voidedAt,omitempty"`
}

// IsPending reports whether the order still awaits payment.
func (o Order) IsPending() bool {
	return o.PaymentStatus == PaymentPending && !o.IsVoided
}

// Clone returns a deep copy; the item snapshot is not shared.
func (o Order) Clone() Order {
	out := o
	if o.Items != nil {
		out.Items = make([]CartLine, len(o.Items))
		copy(out.Items, o.Items)
	}
	if o.PaidAt != nil {
		t := *o.PaidAt
		out.PaidAt = &t
	}
	if o.VoidedAt != nil {
		t := *o.VoidedAt
		out.VoidedAt = &t
	}
	return out
}
