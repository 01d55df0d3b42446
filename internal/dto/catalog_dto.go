package dto

import "github.com/shopspring/decimal"

// ─── Filter ─────────────────────────────────────────────────────────────────

// MenuFilter is bound from the query string of GET /v1/menu.
type MenuFilter struct {
	Category      string `form:"category"`
	AvailableOnly bool   `form:"available_only"`
	Search        string `form:"q"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateMenuItemRequest struct {
	Name        string          `json:"name"         validate:"required,min=1,max=120"`
	Price       decimal.Decimal `json:"price"        validate:"min=0"`
	Category    string          `json:"category"     validate:"required,min=1,max=60"`
	IsAvailable *bool           `json:"is_available"` // nil = available
}

// UpdateMenuItemRequest is a partial update; nil fields are kept.
type UpdateMenuItemRequest struct {
	Name        *string          `json:"name"         validate:"omitempty,min=1,max=120"`
	Price       *decimal.Decimal `json:"price"        validate:"omitempty,min=0"`
	Category    *string          `json:"category"     validate:"omitempty,min=1,max=60"`
	IsAvailable *bool            `json:"is_available"`
}

type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" validate:"required"`
}

type CreateDiscountRuleRequest struct {
	Name  string          `json:"name"  validate:"required,min=1,max=80"`
	Type  string          `json:"type"  validate:"required,oneof=percentage amount"`
	Value decimal.Decimal `json:"value"`
}

// UpdateDiscountRuleRequest is a partial update; nil fields are kept.
type UpdateDiscountRuleRequest struct {
	Name  *string          `json:"name"  validate:"omitempty,min=1,max=80"`
	Type  *string          `json:"type"  validate:"omitempty,oneof=percentage amount"`
	Value *decimal.Decimal `json:"value"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MenuItemResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	IsAvailable bool            `json:"is_available"`
}

type DiscountRuleResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Value decimal.Decimal `json:"value"`
}
