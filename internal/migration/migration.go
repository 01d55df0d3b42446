// Package migration upgrades persisted order records written by older
// builds. Steps are ordered and idempotent; the applied version is stored
// alongside the data so each step runs at most once per store.
package migration

import (
	"tablepos/internal/model"
)

// legacyVoided is the status older builds wrote instead of the isVoided flag.
const legacyVoided model.OrderStatus = "voided"

const legacyVoidReason = "legacy void"

// Step rewrites orders in place and reports how many records it touched.
type Step struct {
	Version     int
	Description string
	Apply       func(orders []model.Order) int
}

// Steps lists every migration, oldest first.
var Steps = []Step{
	{Version: 1, Description: "legacy voided status to isVoided flag", Apply: voidedStatusToFlag},
	{Version: 2, Description: "missing payment status defaults to paid", Apply: defaultPaymentStatus},
}

// Latest is the version a fully migrated store reports.
func Latest() int { return Steps[len(Steps)-1].Version }

// Report describes one Run.
type Report struct {
	From    int
	To      int
	Touched map[int]int // version → records rewritten
}

// Changed reports whether any step ran.
func (r Report) Changed() bool { return r.To != r.From }

// Run applies every step newer than from to a copy of orders.
func Run(orders []model.Order, from int) ([]model.Order, Report) {
	out := make([]model.Order, len(orders))
	for i, o := range orders {
		out[i] = o.Clone()
	}
	rep := Report{From: from, To: from, Touched: make(map[int]int)}
	for _, s := range Steps {
		if s.Version <= from {
			continue
		}
		rep.Touched[s.Version] = s.Apply(out)
		rep.To = s.Version
	}
	return out, rep
}

func voidedStatusToFlag(orders []model.Order) int {
	n := 0
	for i := range orders {
		o := &orders[i]
		if o.Status != legacyVoided {
			continue
		}
		o.Status = model.OrderUnclosed
		o.IsVoided = true
		if o.VoidReason == "" {
			o.VoidReason = legacyVoidReason
		}
		n++
	}
	return n
}

func defaultPaymentStatus(orders []model.Order) int {
	n := 0
	for i := range orders {
		if orders[i].PaymentStatus == "" {
			orders[i].PaymentStatus = model.PaymentPaid
			n++
		}
	}
	return n
}
