package infra

// pdf.go: daily close printout using go-pdf/fpdf.
// Thermal-receipt sized page (80mm wide) with:
//   - Store name header
//   - Business date and close timestamp
//   - Order / voided counts and count per order type
//   - Item sales table (name, quantity), best sellers first
//   - Bold revenue total

import (
	"fmt"
	"io"
	"sort"
	"time"

	"tablepos/internal/model"

	"github.com/go-pdf/fpdf"
)

// WriteSummaryPDF renders s and streams the document to w.
// loc is the business time zone used to print ClosedAt.
func WriteSummaryPDF(w io.Writer, s model.DailySummary, storeName string, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}

	// 80mm roll; height grows with the item list
	height := 90 + float64(len(s.ItemSales))*5
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 80, Ht: height},
	})
	pdf.SetMargins(5, 5, 5)
	pdf.SetAutoPageBreak(false, 5)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 10
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, tr(storeName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Daily Close Report", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, "Business date: "+s.Date, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, "Closed at: "+s.ClosedAt.In(loc).Format("2006-01-02 15:04:05"), "", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.Line(5, pdf.GetY(), pageW-5, pdf.GetY())
	pdf.Ln(2)

	// ── Counts ───────────────────────────────────────────────────────────────
	labelW := contentW * 0.7
	valueW := contentW * 0.3
	row := func(label, value string) {
		pdf.CellFormat(labelW, 4, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 4, value, "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "", 7)
	row("Orders", fmt.Sprintf("%d", s.OrderCount))
	row("Voided", fmt.Sprintf("%d", s.VoidedCount))
	row("Dine-in", fmt.Sprintf("%d", s.TypeCount[model.OrderTypeDineIn]))
	row("Take-out", fmt.Sprintf("%d", s.TypeCount[model.OrderTypeTakeOut]))
	pdf.Ln(2)

	// ── Item sales ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(labelW, 5, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 5, "Qty", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, name := range itemsBySales(s.ItemSales) {
		label := name
		if len([]rune(label)) > 28 {
			label = string([]rune(label)[:27]) + "..."
		}
		row(tr(label), fmt.Sprintf("%d", s.ItemSales[name]))
	}

	pdf.Ln(2)
	pdf.Line(5, pdf.GetY(), pageW-5, pdf.GetY())
	pdf.Ln(2)

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(labelW, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 6, "$"+s.Total.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: write summary: %w", err)
	}
	return nil
}

// itemsBySales orders item names by quantity sold, then by name.
func itemsBySales(sales map[string]int) []string {
	names := make([]string, 0, len(sales))
	for name := range sales {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if sales[names[i]] != sales[names[j]] {
			return sales[names[i]] > sales[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
