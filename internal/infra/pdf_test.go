package infra

import (
	"bytes"
	"testing"
	"time"

	"tablepos/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSummaryPDF(t *testing.T) {
	s := model.DailySummary{
		ID:          "s1",
		Date:        "2026-03-14",
		Total:       decimal.RequireFromString("1234.5"),
		OrderCount:  12,
		VoidedCount: 1,
		ClosedAt:    time.Date(2026, 3, 14, 22, 5, 0, 0, time.UTC),
		ItemSales:   map[string]int{"Coffee": 9, "Bagel": 4},
		TypeCount:   map[model.OrderType]int{model.OrderTypeDineIn: 7, model.OrderTypeTakeOut: 5},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSummaryPDF(&buf, s, "Corner Cafe", time.UTC))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestItemsBySales(t *testing.T) {
	got := itemsBySales(map[string]int{"Tea": 2, "Coffee": 9, "Bagel": 2})
	assert.Equal(t, []string{"Coffee", "Bagel", "Tea"}, got)
}
