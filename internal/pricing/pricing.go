// Package pricing holds the pure money rules of checkout: discount
// application, final total, change and cart line merging. Nothing here
// touches state; every function returns new values.
package pricing

import (
	"strings"

	"tablepos/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Discount is a resolved discount choice, either from a stored rule or typed
// in manually at the register. The zero value means "no discount".
type Discount struct {
	Name  string
	Type  model.DiscountType
	Value decimal.Decimal
}

// IsZero reports whether no discount was chosen.
func (d Discount) IsZero() bool { return d.Type == "" }

// FromRule converts a stored rule into a Discount.
func FromRule(r model.DiscountRule) Discount {
	return Discount{Name: r.Name, Type: r.Type, Value: r.Value}
}

// PayRate normalises a percentage value into the fraction of the subtotal to pay.
// Values above 1 are legacy whole-number percents: 90 → 0.9.
func PayRate(value decimal.Decimal) decimal.Decimal {
	if value.GreaterThan(decimal.NewFromInt(1)) {
		return value.Div(hundred)
	}
	return value
}

// CalculateDiscount returns the amount the customer pays after applying a
// discount of the given type to total.
//
//	percentage: round(total * PayRate(value))   (100, 0.9) → 90, (150, 0.85) → 128
//	amount:     max(0, total - value)
//
// This is the only place a discount is applied; rule and manual entries both
// come through here.
func CalculateDiscount(total, value decimal.Decimal, kind model.DiscountType) decimal.Decimal {
	switch kind {
	case model.DiscountPercentage:
		payable := total.Mul(PayRate(value)).Round(0)
		if payable.IsNegative() {
			return decimal.Zero
		}
		return payable
	case model.DiscountAmount:
		return CalculateFinalTotal(total, value)
	default:
		return total
	}
}

// CalculateFinalTotal returns max(0, subtotal - discount).
func CalculateFinalTotal(subtotal, discount decimal.Decimal) decimal.Decimal {
	final := subtotal.Sub(discount)
	if final.IsNegative() {
		return decimal.Zero
	}
	return final
}

// CalculateChange parses the cash typed at the register and returns
// cash - finalTotal. The result may be negative; Cash confirmation must be
// blocked in that case. Unparseable input counts as zero.
func CalculateChange(cashReceived string, finalTotal decimal.Decimal) decimal.Decimal {
	return ParseAmount(cashReceived).Sub(finalTotal)
}

// ParseAmount reads a keypad/number string; blank or invalid input is zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Breakdown is the priced view of a subtotal under a discount.
type Breakdown struct {
	Subtotal     decimal.Decimal
	Discount     decimal.Decimal
	DiscountName string
	Total        decimal.Decimal
}

// Apply prices subtotal under d.
func Apply(subtotal decimal.Decimal, d Discount) Breakdown {
	if d.IsZero() {
		return Breakdown{Subtotal: subtotal, Discount: decimal.Zero, Total: subtotal}
	}
	total := CalculateDiscount(subtotal, d.Value, d.Type)
	return Breakdown{
		Subtotal:     subtotal,
		Discount:     subtotal.Sub(total),
		DiscountName: d.Name,
		Total:        total,
	}
}

// MergeCartLine returns a new cart with item added once: an existing line for
// item.ID gains one unit, otherwise a new line with quantity 1 is appended at
// the item's current price. The input cart is never modified.
func MergeCartLine(cart model.Cart, item model.MenuItem) model.Cart {
	out := cart.Clone()
	for i := range out {
		if out[i].ItemID == item.ID {
			out[i].Quantity++
			return out
		}
	}
	return append(out, model.CartLine{
		ItemID:   item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Quantity: 1,
	})
}

// SetLineQuantity returns a new cart where the line for itemID has quantity q.
// q == 0 removes the line. The second result is false when no such line exists.
func SetLineQuantity(cart model.Cart, itemID string, q int) (model.Cart, bool) {
	out := make(model.Cart, 0, len(cart))
	found := false
	for _, l := range cart {
		if l.ItemID != itemID {
			out = append(out, l)
			continue
		}
		found = true
		if q > 0 {
			l.Quantity = q
			out = append(out, l)
		}
	}
	if !found {
		return cart.Clone(), false
	}
	return out, true
}
