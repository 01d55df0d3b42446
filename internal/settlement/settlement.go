// Package settlement folds every unclosed order into per-date daily
// summaries. Close is all-or-nothing: it either refuses with no change or
// returns the complete new summaries together with the closed orders.
package settlement

import (
	"fmt"
	"sort"
	"time"

	"tablepos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PendingPaymentsError blocks a close while unpaid, non-voided orders remain.
type PendingPaymentsError struct {
	Count int
}

func (e *PendingPaymentsError) Error() string {
	return fmt.Sprintf("%d order(s) still awaiting payment; settle or void them before closing", e.Count)
}

// Result is the outcome of one close. Orders is the full order collection
// with every folded order marked closed; Summaries holds one new summary per
// distinct date, oldest first. Both are empty-handed when nothing was open.
type Result struct {
	Orders    []model.Order
	Summaries []model.DailySummary
	Closed    int
}

// BlockingCount counts unclosed orders still awaiting payment.
func BlockingCount(orders []model.Order) int {
	n := 0
	for _, o := range orders {
		if o.Status == model.OrderUnclosed && o.IsPending() {
			n++
		}
	}
	return n
}

// Close folds the unclosed subset of orders. The input slice is not
// modified. With no unclosed orders it returns Closed == 0 and no summaries.
func Close(orders []model.Order, closedAt time.Time) (Result, error) {
	if n := BlockingCount(orders); n > 0 {
		return Result{}, &PendingPaymentsError{Count: n}
	}

	out := make([]model.Order, len(orders))
	groups := make(map[string][]int)
	var dates []string
	for i, o := range orders {
		out[i] = o.Clone()
		if o.Status != model.OrderUnclosed {
			continue
		}
		if _, seen := groups[o.Date]; !seen {
			dates = append(dates, o.Date)
		}
		groups[o.Date] = append(groups[o.Date], i)
	}
	if len(dates) == 0 {
		return Result{Orders: out}, nil
	}
	sort.Strings(dates)

	res := Result{Orders: out}
	for _, date := range dates {
		idx := groups[date]
		for _, i := range idx {
			out[i].Status = model.OrderClosed
		}
		related := make([]model.Order, 0, len(idx))
		for _, i := range idx {
			related = append(related, out[i].Clone())
		}
		s, err := Summarize(date, related, closedAt)
		if err != nil {
			return Result{}, err
		}
		res.Summaries = append(res.Summaries, s)
		res.Closed += len(idx)
	}
	return res, nil
}

// Summarize aggregates one date's orders. Voided orders only raise
// VoidedCount but are still kept in RelatedOrders.
func Summarize(date string, orders []model.Order, closedAt time.Time) (model.DailySummary, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return model.DailySummary{}, fmt.Errorf("summary id: %w", err)
	}
	s := model.DailySummary{
		ID:            id.String(),
		Date:          date,
		Total:         decimal.Zero,
		ClosedAt:      closedAt,
		ItemSales:     make(map[string]int),
		TypeCount:     make(map[model.OrderType]int),
		RelatedOrders: orders,
	}
	for _, o := range orders {
		if o.IsVoided {
			s.VoidedCount++
			continue
		}
		s.Total = s.Total.Add(o.Total)
		s.OrderCount++
		s.TypeCount[o.OrderType]++
		for _, line := range o.Items {
			s.ItemSales[line.Name] += line.Quantity
		}
	}
	return s, nil
}
