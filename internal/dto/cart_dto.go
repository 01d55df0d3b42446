package dto

import "github.com/shopspring/decimal"

type AddCartItemRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

// SetCartQuantityRequest: quantity 0 removes the line.
type SetCartQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,min=0"`
}

type CartLineResponse struct {
	ItemID    string          `json:"item_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type CartResponse struct {
	Lines     []CartLineResponse `json:"lines"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
	ItemCount int                `json:"item_count"`
}
