package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/salesreport/backend/internal/domain/report"
	"github.com/salesreport/backend/internal/infrastructure/printing"
	"github.com/salesreport/backend/internal/infrastructure/printing/printingtest"
)

func newTestEmitter() *Emitter {
	return NewEmitter(DefaultEmitterConfig(), printing.NewNumberFormatter(language.AmericanEnglish))
}

func rec(d, rep, a, p string, year, month int, amount, qty string) report.TransactionRecord {
	r := report.TransactionRecord{
		Distributor: d, SalesRep: rep, Agency: a, Product: p,
		Year: year, Month: month,
		NetAmount: decimal.RequireFromString(amount),
	}
	if qty != "" {
		r.Quantity = decimal.NewNullDecimal(decimal.RequireFromString(qty))
	}
	return r
}

func buildTree(t *testing.T, records []report.TransactionRecord, axis *report.ColumnModel, dims report.Dimensions) *report.AggregateTree {
	t.Helper()
	tree, err := report.BuildTree(records, axis, dims)
	require.NoError(t, err)
	return tree
}

func TestEmitter_SingleGroupScenario(t *testing.T) {
	axis := report.NewColumnModel([]report.MonthKey{{Year: 2024, Month: 1}, {Year: 2024, Month: 2}}, report.DefaultMonthNames())
	tree := buildTree(t, []report.TransactionRecord{rec("D1", "", "A1", "P1", 2024, 1, "100", "2")}, axis, report.DistributorAgency)

	canvas := printingtest.NewCanvas()
	newTestEmitter().Emit(canvas, printing.A4Landscape(20), tree, TitleBlock{Title: ReportTitle, DateRange: "2024-01-01 - 2024-02-29"})

	assert.Len(t, canvas.Find(ReportTitle), 1)
	assert.Len(t, canvas.Find("2024-01-01 - 2024-02-29"), 1)
	assert.Len(t, canvas.Find("Distributor: D1"), 1)
	assert.Len(t, canvas.Find("Distributor/Agency"), 1)
	assert.Len(t, canvas.Find("D1|A1"), 1)
	assert.Len(t, canvas.Find("D1 | A1"), 1)
	assert.Len(t, canvas.Find("Product Name"), 1)
	assert.Len(t, canvas.Find("2024/Jan"), 2, "summary and product headers")

	// Summary row: D1|A1, 100.00, -, 100.00
	row := canvas.Find("D1|A1")[0]
	cells := textsOnRow(canvas, row.Box.Y)
	assert.Equal(t, []string{"D1|A1", "100.00", "-", "100.00"}, cells)

	product := canvas.Find("P1")[0]
	assert.Equal(t, []string{"P1", "100.00 (2)", "-", "100.00 (2)"}, textsOnRow(canvas, product.Box.Y))

	assert.Len(t, canvas.Find("Total Amount"), 4, "two headers and two totals rows")
	assert.Empty(t, canvas.FindPrefix("Sales Representative"))
}

func TestEmitter_SalesRepGrouping(t *testing.T) {
	records := []report.TransactionRecord{
		rec("D1", "R1", "A1", "P1", 2024, 1, "10", "1"),
		rec("D1", "R2", "A1", "P2", 2024, 1, "20", "1"),
		rec("D2", "R1", "A3", "P1", 2024, 1, "5", ""),
	}
	axis := report.ColumnModelFromRecords(records, report.DefaultMonthNames())
	tree := buildTree(t, records, axis, report.DistributorSalesRepAgency)

	canvas := printingtest.NewCanvas()
	newTestEmitter().Emit(canvas, printing.A4Landscape(20), tree, TitleBlock{Title: ReportTitle})

	assert.Len(t, canvas.Find("Sales Representative: R1, R2"), 1)
	assert.Len(t, canvas.Find("Sales Representative: R1"), 1)
	assert.Len(t, canvas.Find("Distributor/SalesRep/Agency"), 2)
	assert.Len(t, canvas.Find("D1|R2|A1"), 1)
	assert.Len(t, canvas.Find("D1 | R2 | A1"), 1)
	assert.Len(t, canvas.Find("D2 | R1 | A3"), 1)
}

func TestEmitter_ManyMonthsClampsFontAndFitsWidth(t *testing.T) {
	var records []report.TransactionRecord
	for i, k := range report.MonthRange(report.MonthKey{Year: 2021, Month: 1}, report.MonthKey{Year: 2024, Month: 4}) {
		records = append(records, rec("D1", "", "A1", "P1", k.Year, k.Month, "1234567.89", "1000"))
		if i%2 == 0 {
			records = append(records, rec("D1", "", "A2", "P2", k.Year, k.Month, "1", "1"))
		}
	}
	axis := report.ColumnModelFromRecords(records, report.DefaultMonthNames())
	require.Equal(t, 40, axis.Len())
	tree := buildTree(t, records, axis, report.DistributorAgency)

	g := printing.A4Landscape(20)
	canvas := printingtest.NewCanvas()
	newTestEmitter().Emit(canvas, g, tree, TitleBlock{Title: ReportTitle})

	header := canvas.Find("Distributor/Agency")
	require.Len(t, header, 1)
	assert.Equal(t, 5.0, header[0].Font.Size)

	// Every table cell stays inside the content width.
	right := g.ContentLeft() + g.ContentWidth() + 1e-6
	for _, r := range canvas.Rects {
		assert.LessOrEqual(t, r.Box.X+r.Box.W, right)
	}
}

func TestEmitter_BreaksPagesForLongDistributors(t *testing.T) {
	var records []report.TransactionRecord
	for i := 0; i < 60; i++ {
		records = append(records, rec("D1", "", "A1", "Product "+string(rune('A'+i%26))+string(rune('a'+i/26)), 2024, 1, "1", "1"))
	}
	axis := report.ColumnModelFromRecords(records, report.DefaultMonthNames())
	tree := buildTree(t, records, axis, report.DistributorAgency)

	canvas := printingtest.NewCanvas()
	newTestEmitter().Emit(canvas, printing.A4Landscape(20), tree, TitleBlock{Title: ReportTitle})

	assert.Greater(t, canvas.PageCount(), 1)
	headers := canvas.Find("Product Name")
	assert.Equal(t, canvas.PageCount(), len(headers), "product header repeated on every page")
	// The totals row is the last thing drawn and carries the full sum.
	assert.NotEmpty(t, canvas.Find("60.00 (60)"))
}

// textsOnRow returns the texts whose box starts at y, in drawing order.
func textsOnRow(c *printingtest.Canvas, y float64) []string {
	var out []string
	for _, t := range c.Texts {
		if t.Box.Y == y {
			out = append(out, t.String())
		}
	}
	return out
}
