package model

import "github.com/shopspring/decimal"

// DiscountType: "percentage" | "amount"
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountAmount     DiscountType = "amount"
)

func (t DiscountType) Valid() bool {
	return t == DiscountPercentage || t == DiscountAmount
}

// DiscountRule is a named, reusable discount offered at checkout.
// For percentage rules Value is the fraction of the subtotal the customer pays
// (0.9 = pay 90%). Values above 1 are legacy whole-number percents (90 = pay 90%).
// For amount rules Value is a flat deduction.
type DiscountRule struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Type  DiscountType    `json:"type"`
	Value decimal.Decimal `json:"value"`
}
