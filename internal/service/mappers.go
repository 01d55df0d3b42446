package service

import (
	"sort"
	"time"

	"tablepos/internal/dto"
	"tablepos/internal/model"
)

func formatTime(t time.Time) string { return t.Format(time.RFC3339) }

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func menuItemToResponse(m model.MenuItem) dto.MenuItemResponse {
	return dto.MenuItemResponse{ID: m.ID, Name: m.Name, Price: m.Price, Category: m.Category, IsAvailable: m.IsAvailable}
}

func discountToResponse(r model.DiscountRule) dto.DiscountRuleResponse {
	return dto.DiscountRuleResponse{ID: r.ID, Name: r.Name, Type: string(r.Type), Value: r.Value}
}

func cartToResponse(c model.Cart) dto.CartResponse {
	lines := make([]dto.CartLineResponse, len(c))
	for i, l := range c {
		lines[i] = dto.CartLineResponse{
			ItemID: l.ItemID, Name: l.Name, Price: l.Price,
			Quantity: l.Quantity, LineTotal: l.LineTotal(),
		}
	}
	return dto.CartResponse{Lines: lines, Subtotal: c.Subtotal(), ItemCount: c.ItemCount()}
}

func orderToResponse(o model.Order) dto.OrderResponse {
	items := make([]dto.OrderLineResponse, len(o.Items))
	for i, l := range o.Items {
		items[i] = dto.OrderLineResponse{
			ItemID: l.ItemID, Name: l.Name, Price: l.Price,
			Quantity: l.Quantity, LineTotal: l.LineTotal(),
		}
	}
	return dto.OrderResponse{
		ID:            o.ID,
		OrderNo:       o.OrderNo,
		Date:          o.Date,
		Time:          o.Time,
		OrderType:     string(o.OrderType),
		Items:         items,
		Subtotal:      o.Subtotal,
		Discount:      o.Discount,
		DiscountName:  o.DiscountName,
		Total:         o.Total,
		PaymentMethod: string(o.PaymentMethod),
		CashReceived:  o.CashReceived,
		Change:        o.Change,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		PaidAt:        formatTimePtr(o.PaidAt),
		IsVoided:      o.IsVoided,
		VoidReason:    o.VoidReason,
		VoidedAt:      formatTimePtr(o.VoidedAt),
		CreatedAt:     formatTime(o.CreatedAt),
	}
}

func ordersToResponse(orders []model.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = orderToResponse(o)
	}
	return out
}

func summaryToListItem(s model.DailySummary) dto.SummaryListItem {
	return dto.SummaryListItem{
		ID:          s.ID,
		Date:        s.Date,
		Total:       s.Total,
		OrderCount:  s.OrderCount,
		VoidedCount: s.VoidedCount,
		ClosedAt:    formatTime(s.ClosedAt),
	}
}

func summaryToResponse(s model.DailySummary) dto.SummaryResponse {
	types := make(map[string]int, len(s.TypeCount))
	for k, v := range s.TypeCount {
		types[string(k)] = v
	}
	related := make([]model.Order, len(s.RelatedOrders))
	copy(related, s.RelatedOrders)
	sort.SliceStable(related, func(i, j int) bool { return related[i].CreatedAt.Before(related[j].CreatedAt) })
	return dto.SummaryResponse{
		SummaryListItem: summaryToListItem(s),
		ItemSales:       s.ItemSales,
		TypeCount:       types,
		RelatedOrders:   ordersToResponse(related),
	}
}

func settingsToResponse(s model.Settings) dto.SettingsResponse {
	return dto.SettingsResponse{
		DineInMode:          string(s.DineInMode),
		StoreName:           s.StoreName,
		EnableCreditCard:    s.EnableCreditCard,
		EnableMobilePayment: s.EnableMobilePayment,
	}
}
