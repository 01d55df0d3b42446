package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// DiscountSelection picks a stored rule by id, or enters a manual discount.
// RuleID wins when both are given.
type DiscountSelection struct {
	RuleID string          `json:"rule_id"`
	Type   string          `json:"type"  validate:"omitempty,oneof=percentage amount"`
	Value  decimal.Decimal `json:"value"`
}

// PaymentRequest is the cashier's confirmation. An empty method on a
// post-pay dine-in checkout sends the order to the kitchen unpaid.
type PaymentRequest struct {
	Method       string             `json:"payment_method" validate:"omitempty,oneof=Cash Credit Mobile"`
	CashReceived string             `json:"cash_received"`
	Discount     *DiscountSelection `json:"discount"       validate:"omitempty"`
}

// QuoteRequest previews a payment against the cart, or against a pending
// order when OrderID is set.
type QuoteRequest struct {
	PaymentRequest
	OrderType string `json:"order_type" validate:"omitempty,oneof=dineIn takeOut"`
	OrderID   string `json:"order_id"`
}

type CheckoutRequest struct {
	OrderType string `json:"order_type" validate:"required,oneof=dineIn takeOut"`
	PaymentRequest
}

type SettleRequest struct {
	Method       string             `json:"payment_method" validate:"required,oneof=Cash Credit Mobile"`
	CashReceived string             `json:"cash_received"`
	Discount     *DiscountSelection `json:"discount"       validate:"omitempty"`
}

type VoidRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=200"`
}

// OrderListQuery is bound from the query string of GET /v1/orders.
// Page 0 keeps the current page of the order view.
type OrderListQuery struct {
	Date          string `form:"date"`
	OrderType     string `form:"order_type"     validate:"omitempty,oneof=dineIn takeOut"`
	PaymentStatus string `form:"payment_status" validate:"omitempty,oneof=pending paid"`
	Voided        string `form:"voided"         validate:"omitempty,oneof=only hide"`
	IncludeClosed bool   `form:"include_closed"`
	Search        string `form:"q"`
	Page          int    `form:"page"           validate:"min=0"`
	Limit         int    `form:"limit,default=20" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type QuoteResponse struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	DiscountName string          `json:"discount_name,omitempty"`
	Total        decimal.Decimal `json:"total"`
	CashReceived decimal.Decimal `json:"cash_received"`
	Change       decimal.Decimal `json:"change"`
	CanConfirm   bool            `json:"can_confirm"`
	Blocker      string          `json:"blocker,omitempty"`
}

type OrderLineResponse struct {
	ItemID    string          `json:"item_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	OrderNo       string              `json:"order_no"`
	Date          string              `json:"date"`
	Time          string              `json:"time"`
	OrderType     string              `json:"order_type"`
	Items         []OrderLineResponse `json:"items"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	Discount      decimal.Decimal     `json:"discount"`
	DiscountName  string              `json:"discount_name,omitempty"`
	Total         decimal.Decimal     `json:"total"`
	PaymentMethod string              `json:"payment_method,omitempty"`
	CashReceived  decimal.Decimal     `json:"cash_received"`
	Change        decimal.Decimal     `json:"change"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"payment_status"`
	PaidAt        string              `json:"paid_at,omitempty"`
	IsVoided      bool                `json:"is_voided"`
	VoidReason    string              `json:"void_reason,omitempty"`
	VoidedAt      string              `json:"voided_at,omitempty"`
	CreatedAt     string              `json:"created_at"`
}

type OrderListResponse struct {
	Data       []OrderResponse `json:"data"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// DashboardResponse is the open business day at a glance.
type DashboardResponse struct {
	Pending      []OrderResponse            `json:"pending"`
	History      []OrderResponse            `json:"history"`
	PendingTotal decimal.Decimal            `json:"pending_total"`
	PendingCount int                        `json:"pending_count"`
	PaidTotal    decimal.Decimal            `json:"paid_total"`
	PaidCount    int                        `json:"paid_count"`
	VoidedCount  int                        `json:"voided_count"`
	ByMethod     map[string]decimal.Decimal `json:"by_method"`
}
