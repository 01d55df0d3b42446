package service

import (
	"tablepos/internal/dto"
	"tablepos/internal/model"
	"tablepos/internal/pricing"
)

const manualDiscountName = "Manual discount"

// resolveDiscount turns a checkout selection into a pricing.Discount.
// Rule and manual entries are validated the same way and priced by the same
// function downstream.
func resolveDiscount(rules []model.DiscountRule, sel *dto.DiscountSelection) (pricing.Discount, error) {
	if sel == nil {
		return pricing.Discount{}, nil
	}
	if sel.RuleID != "" {
		i := discountIndex(rules, sel.RuleID)
		if i < 0 {
			return pricing.Discount{}, ErrDiscountNotFound
		}
		return pricing.FromRule(rules[i]), nil
	}
	if sel.Type == "" {
		return pricing.Discount{}, nil
	}
	kind := model.DiscountType(sel.Type)
	if err := validateDiscount(manualDiscountName, kind, sel.Value); err != nil {
		return pricing.Discount{}, err
	}
	return pricing.Discount{Name: manualDiscountName, Type: kind, Value: sel.Value}, nil
}
