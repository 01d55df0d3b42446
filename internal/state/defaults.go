package state

import (
	"tablepos/internal/model"

	"github.com/shopspring/decimal"
)

// Defaults is the state of a register that has never saved anything.
func Defaults() Snapshot {
	return Snapshot{
		Menu:      defaultMenu(),
		Orders:    []model.Order{},
		Summaries: []model.DailySummary{},
		Discounts: defaultDiscounts(),
		Settings:  model.DefaultSettings(),
	}
}

func defaultMenu() []model.MenuItem {
	item := func(id, name string, price int64, category string) model.MenuItem {
		return model.MenuItem{ID: id, Name: name, Price: decimal.NewFromInt(price), Category: category, IsAvailable: true}
	}
	return []model.MenuItem{
		item("m-001", "Beef Noodle Soup", 180, "Noodles"),
		item("m-002", "Dry Noodles", 90, "Noodles"),
		item("m-003", "Fried Rice", 120, "Rice"),
		item("m-004", "Braised Pork Rice", 80, "Rice"),
		item("m-005", "Side Greens", 50, "Sides"),
		item("m-006", "Black Tea", 35, "Drinks"),
	}
}

func defaultDiscounts() []model.DiscountRule {
	return []model.DiscountRule{
		{ID: "d-001", Name: "10% off", Type: model.DiscountPercentage, Value: decimal.RequireFromString("0.9")},
		{ID: "d-002", Name: "Staff meal", Type: model.DiscountPercentage, Value: decimal.RequireFromString("0.8")},
		{ID: "d-003", Name: "50 off", Type: model.DiscountAmount, Value: decimal.NewFromInt(50)},
	}
}
