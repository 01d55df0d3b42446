package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySummary is the immutable result of one daily close for one date.
// Totals, ItemSales and TypeCount only count non-voided orders;
// RelatedOrders keeps every folded order, voided included, for audit.
type DailySummary struct {
	ID            string            `json:"id"`
	Date          string            `json:"date"`
	Total         decimal.Decimal   `json:"total"`
	OrderCount    int               `json:"orderCount"`
	VoidedCount   int               `json:"voidedCount"`
	ClosedAt      time.Time         `json:"closedAt"`
	ItemSales     map[string]int    `json:"itemSales"`
	TypeCount     map[OrderType]int `json:"typeCount"`
	RelatedOrders []Order           `json:"relatedOrders"`
}

// Clone returns a deep copy.
func (s DailySummary) Clone() DailySummary {
	out := s
	out.ItemSales = make(map[string]int, len(s.ItemSales))
	for k, v := range s.ItemSales {
		out.ItemSales[k] = v
	}
	out.TypeCount = make(map[OrderType]int, len(s.TypeCount))
	for k, v := range s.TypeCount {
		out.TypeCount[k] = v
	}
	out.RelatedOrders = make([]Order, len(s.RelatedOrders))
	for i, o := range s.RelatedOrders {
		out.RelatedOrders[i] = o.Clone()
	}
	return out
}
