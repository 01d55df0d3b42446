package model

import "github.com/shopspring/decimal"

// CartLine is one line of the in-progress cart. Price is captured when the
// item is first added and never follows later catalog edits.
type CartLine struct {
	ItemID   string          `json:"itemId"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// LineTotal returns price * quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an ordered list of lines, at most one per ItemID.
type Cart []CartLine

// Subtotal sums every line total.
func (c Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c {
		sum = sum.Add(l.LineTotal())
	}
	return sum
}

// ItemCount sums quantities.
func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c {
		n += l.Quantity
	}
	return n
}

// Clone returns an independent copy of the cart.
func (c Cart) Clone() Cart {
	if c == nil {
		return nil
	}
	out := make(Cart, len(c))
	copy(out, c)
	return out
}
