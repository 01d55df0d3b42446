package model

import (
	"github.com/shopspring/decimal"
)

// MenuItem is one orderable entry of the catalog.
// IsAvailable=false hides the item from the order flow without deleting it;
// orders keep their own copy of name and price, so history is unaffected.
type MenuItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	IsAvailable bool            `json:"isAvailable"`
}
