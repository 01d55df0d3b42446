// Package query holds read-only projections over orders and summaries.
// Nothing is cached: every rollup is recomputed from the slice it is given.
package query

import (
	"sort"
	"strings"

	"tablepos/internal/model"

	"github.com/shopspring/decimal"
)

// Split partitions the unclosed orders into those awaiting payment and the
// history of paid or voided ones. Closed orders are ignored.
func Split(orders []model.Order) (pending, history []model.Order) {
	for _, o := range orders {
		if o.Status != model.OrderUnclosed {
			continue
		}
		if o.IsPending() {
			pending = append(pending, o)
		} else {
			history = append(history, o)
		}
	}
	return pending, history
}

// Rollup is the set of running totals shown for the open business day.
type Rollup struct {
	PendingTotal decimal.Decimal
	PendingCount int
	PaidTotal    decimal.Decimal
	PaidCount    int
	VoidedCount  int
	ByMethod     map[model.PaymentMethod]decimal.Decimal
}

// Summarize computes the rollup of the unclosed orders.
func Summarize(orders []model.Order) Rollup {
	r := Rollup{
		PendingTotal: decimal.Zero,
		PaidTotal:    decimal.Zero,
		ByMethod:     make(map[model.PaymentMethod]decimal.Decimal, len(model.PaymentMethods)),
	}
	for _, m := range model.PaymentMethods {
		r.ByMethod[m] = decimal.Zero
	}
	for _, o := range orders {
		if o.Status != model.OrderUnclosed {
			continue
		}
		switch {
		case o.IsVoided:
			r.VoidedCount++
		case o.PaymentStatus == model.PaymentPending:
			r.PendingTotal = r.PendingTotal.Add(o.Total)
			r.PendingCount++
		default:
			r.PaidTotal = r.PaidTotal.Add(o.Total)
			r.PaidCount++
			r.ByMethod[o.PaymentMethod] = r.ByMethod[o.PaymentMethod].Add(o.Total)
		}
	}
	return r
}

// OrderFilter narrows an order listing. Zero fields do not filter.
type OrderFilter struct {
	Date          string
	OrderType     model.OrderType
	PaymentStatus model.PaymentStatus
	VoidedOnly    bool
	HideVoided    bool
	IncludeClosed bool
	Search        string
}

// Match reports whether o passes every set criterion.
func (f OrderFilter) Match(o model.Order) bool {
	if !f.IncludeClosed && o.Status == model.OrderClosed {
		return false
	}
	if f.Date != "" && o.Date != f.Date {
		return false
	}
	if f.OrderType != "" && o.OrderType != f.OrderType {
		return false
	}
	if f.PaymentStatus != "" && o.PaymentStatus != f.PaymentStatus {
		return false
	}
	if f.VoidedOnly && !o.IsVoided {
		return false
	}
	if f.HideVoided && o.IsVoided {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		return matchesSearch(o, q)
	}
	return true
}

func matchesSearch(o model.Order, q string) bool {
	if strings.Contains(strings.ToLower(o.OrderNo), q) {
		return true
	}
	for _, l := range o.Items {
		if strings.Contains(strings.ToLower(l.Name), q) {
			return true
		}
	}
	return false
}

// FilterOrders returns matching orders newest first.
func FilterOrders(orders []model.Order, f OrderFilter) []model.Order {
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if f.Match(o) {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// SummaryFilter bounds a summary listing by inclusive YYYY-MM-DD dates.
type SummaryFilter struct {
	From string
	To   string
}

// FilterSummaries returns summaries in range, most recently closed first.
func FilterSummaries(summaries []model.DailySummary, f SummaryFilter) []model.DailySummary {
	out := make([]model.DailySummary, 0, len(summaries))
	for _, s := range summaries {
		if f.From != "" && s.Date < f.From {
			continue
		}
		if f.To != "" && s.Date > f.To {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ClosedAt.Equal(out[j].ClosedAt) {
			return out[i].ClosedAt.After(out[j].ClosedAt)
		}
		return out[i].Date > out[j].Date
	})
	return out
}
