package report

import (
	"strings"

	"github.com/salesreport/backend/internal/domain/report"
	"github.com/salesreport/backend/internal/infrastructure/printing"
)

// ReportTitle is the fixed heading of the generated document.
const ReportTitle = "Distributor / Agency / Product Report"

// EmitterConfig tunes the document structure around the tables, in points.
type EmitterConfig struct {
	Layout        printing.LayoutConfig
	BaseFontSize  float64
	MinFontSize   float64
	TitleFontSize float64
	SubtitleSize  float64
	// DistributorReserve starts a new page for a distributor block when less
	// than this much space is left.
	DistributorReserve float64
	// AgencyReserve does the same for an agency section.
	AgencyReserve       float64
	SectionHeaderHeight float64
	DistributorSpacing  float64
	SummarySpacing      float64
	AgencySpacing       float64
}

// DefaultEmitterConfig returns the standard report look.
func DefaultEmitterConfig() EmitterConfig {
	return EmitterConfig{
		Layout:              printing.DefaultLayoutConfig(),
		BaseFontSize:        7,
		MinFontSize:         5,
		TitleFontSize:       12,
		SubtitleSize:        8,
		DistributorReserve:  150,
		AgencyReserve:       100,
		SectionHeaderHeight: 20,
		DistributorSpacing:  30,
		SummarySpacing:      20,
		AgencySpacing:       30,
	}
}

// TitleBlock is the text printed once at the top of the first page.
type TitleBlock struct {
	Title     string
	DateRange string
}

// Emitter walks an aggregate tree and places its tables on a canvas.
type Emitter struct {
	cfg    EmitterConfig
	format *printing.NumberFormatter
}

// NewEmitter creates an emitter that formats figures with format.
func NewEmitter(cfg EmitterConfig, format *printing.NumberFormatter) *Emitter {
	return &Emitter{cfg: cfg, format: format}
}

// Config returns the emitter settings.
func (e *Emitter) Config() EmitterConfig {
	return e.cfg
}

// Emit draws the title block and then, per distributor, the summary table
// followed by one product table per agency group. It returns the cursor
// after the last table.
func (e *Emitter) Emit(canvas printing.Canvas, g printing.PageGeometry, tree *report.AggregateTree, title TitleBlock) printing.PageCursor {
	engine := printing.NewEngine(canvas, e.cfg.Layout)
	fontSize := printing.FontSizeFor(tree.Axis.Len(), e.cfg.BaseFontSize, e.cfg.MinFontSize)
	labels := tree.Axis.Labels()
	withRep := tree.Dimensions.Has(report.DimSalesRep)

	cursor := printing.NewCursor(g)
	cursor = e.line(canvas, cursor, title.Title, printing.Bold(e.cfg.TitleFontSize), printing.AlignCenter, 0.3)
	if title.DateRange != "" {
		cursor = e.line(canvas, cursor, title.DateRange, printing.Regular(e.cfg.SubtitleSize), printing.AlignCenter, 1)
	}

	for _, d := range tree.Distributors {
		if cursor.Y > g.ContentTop()+10 {
			cursor = cursor.Advance(e.cfg.DistributorSpacing)
		}
		if cursor.NearBottom(e.cfg.DistributorReserve) {
			cursor = printing.NextPage(canvas, cursor)
		}

		cursor = e.line(canvas, cursor, "Distributor: "+d.Name, printing.Bold(e.cfg.TitleFontSize), printing.AlignLeft, 0.3)
		if withRep {
			if reps := salesRepsOf(d); len(reps) > 0 {
				cursor = e.line(canvas, cursor, "Sales Representative: "+strings.Join(reps, ", "),
					printing.Bold(e.cfg.SubtitleSize), printing.AlignLeft, 0.5)
			}
		}

		cursor = engine.RenderTable(e.summaryTable(tree, d, labels, withRep, fontSize), cursor)
		cursor = cursor.Advance(e.cfg.SummarySpacing)

		products := e.productTables(tree, d, labels, fontSize)
		layout := engine.Layout(joinTables(products), g)
		for i, agency := range d.Agencies {
			t := products[i]
			t.Layout = &layout

			if cursor.NearBottom(e.cfg.AgencyReserve) {
				cursor = printing.NextPage(canvas, cursor)
			}
			// Keep the section header with the table header and first row.
			cursor = printing.EnsureSpace(canvas, cursor, e.cfg.SectionHeaderHeight+engine.LeadHeight(t, layout))
			cursor = e.sectionHeader(canvas, cursor, sectionLabel(agency.Group.Key, withRep), layout.TotalWidth(), fontSize)
			cursor = engine.RenderTable(t, cursor)
			cursor = cursor.Advance(e.cfg.AgencySpacing)
		}
	}
	return cursor
}

func (e *Emitter) summaryTable(tree *report.AggregateTree, d *report.DistributorNode, labels []string, withRep bool, fontSize float64) printing.Table {
	first := "Distributor/Agency"
	if withRep {
		first = "Distributor/SalesRep/Agency"
	}
	groups := d.Summary()
	keys := tree.Axis.Keys()

	rows := make([][]string, len(groups))
	for i, g := range groups {
		row := make([]string, 0, len(keys)+2)
		row = append(row, summaryLabel(g.Key, withRep))
		for _, mk := range keys {
			row = append(row, e.format.AmountCell(g.Amount(mk), g.Quantity(mk)))
		}
		rows[i] = append(row, e.format.AmountCell(g.TotalAmount(), g.TotalQuantity()))
	}

	totals := report.SumGroups(groups, tree.Axis)
	totalRow := make([]string, 0, len(keys)+2)
	totalRow = append(totalRow, "Total Amount")
	for i := range keys {
		totalRow = append(totalRow, e.format.AmountCell(totals.Amounts[i], totals.Quantities[i]))
	}
	totalRow = append(totalRow, e.format.AmountCell(totals.TotalAmount, totals.TotalQuantity))

	return printing.Table{
		Headers:             headers(first, labels),
		Rows:                rows,
		Totals:              totalRow,
		HeaderAlign:         printing.AlignCenter,
		HighlightLastColumn: true,
		FontSize:            fontSize,
	}
}

// productTables builds one table per agency group of d, in group order.
func (e *Emitter) productTables(tree *report.AggregateTree, d *report.DistributorNode, labels []string, fontSize float64) []printing.Table {
	keys := tree.Axis.Keys()
	out := make([]printing.Table, len(d.Agencies))
	for i, agency := range d.Agencies {
		rows := make([][]string, len(agency.Products))
		for j, p := range agency.Products {
			row := make([]string, 0, len(keys)+2)
			row = append(row, p.Key.Product)
			for _, mk := range keys {
				row = append(row, e.format.AmountQuantityCell(p.Amount(mk), p.Quantity(mk)))
			}
			rows[j] = append(row, e.format.AmountQuantityCell(p.TotalAmount(), p.TotalQuantity()))
		}

		totals := report.SumGroups(agency.Products, tree.Axis)
		totalRow := make([]string, 0, len(keys)+2)
		totalRow = append(totalRow, "Total Amount")
		for k := range keys {
			totalRow = append(totalRow, e.format.AmountQuantityCell(totals.Amounts[k], totals.Quantities[k]))
		}
		totalRow = append(totalRow, e.format.AmountQuantityCell(totals.TotalAmount, totals.TotalQuantity))

		out[i] = printing.Table{
			Headers:             headers("Product Name", labels),
			Rows:                rows,
			Totals:              totalRow,
			HeaderAlign:         printing.AlignRight,
			HighlightLastColumn: true,
			FontSize:            fontSize,
		}
	}
	return out
}

// joinTables merges the rows of tables sharing headers so one layout fits all of them.
func joinTables(tables []printing.Table) printing.Table {
	if len(tables) == 0 {
		return printing.Table{}
	}
	joined := printing.Table{Headers: tables[0].Headers, FontSize: tables[0].FontSize}
	for _, t := range tables {
		joined.Rows = append(joined.Rows, t.Rows...)
		joined.Rows = append(joined.Rows, t.Totals)
	}
	return joined
}

// line draws one left or centred text block across the content width.
// gap is extra space below it, in lines.
func (e *Emitter) line(canvas printing.Canvas, cursor printing.PageCursor, text string, font printing.Font, align printing.Align, gap float64) printing.PageCursor {
	g := cursor.Geometry
	lineHeight := font.Size * e.cfg.Layout.LineHeightFactor
	lines := canvas.SplitText(text, g.ContentWidth(), font)
	h := float64(len(lines)) * lineHeight
	cursor = printing.EnsureSpace(canvas, cursor, h)
	canvas.Text(printing.Box{X: g.ContentLeft(), Y: cursor.Y, W: g.ContentWidth(), H: h}, lines, font, align, lineHeight)
	return cursor.Advance(h + gap*font.Size)
}

func (e *Emitter) sectionHeader(canvas printing.Canvas, cursor printing.PageCursor, label string, width, fontSize float64) printing.PageCursor {
	inset := e.cfg.Layout.TextInset
	h := e.cfg.SectionHeaderHeight
	box := printing.Box{X: cursor.Geometry.ContentLeft(), Y: cursor.Y, W: width, H: h}
	canvas.Rect(box, nil)

	font := printing.Bold(fontSize)
	inner := printing.Box{X: box.X + inset, Y: box.Y + inset, W: width - 2*inset, H: h - 2*inset}
	lines := canvas.SplitText(label, inner.W, font)
	canvas.Text(inner, lines[:1], font, printing.AlignLeft, e.cfg.Layout.LineHeight(fontSize))
	return cursor.Advance(h)
}

func headers(first string, labels []string) []string {
	out := make([]string, 0, len(labels)+2)
	out = append(out, first)
	out = append(out, labels...)
	return append(out, "Total Amount")
}

func summaryLabel(k report.GroupKey, withRep bool) string {
	if withRep {
		return k.Distributor + "|" + k.SalesRep + "|" + k.Agency
	}
	return k.Distributor + "|" + k.Agency
}

func sectionLabel(k report.GroupKey, withRep bool) string {
	if withRep {
		return k.Distributor + " | " + k.SalesRep + " | " + k.Agency
	}
	return k.Distributor + " | " + k.Agency
}

// salesRepsOf lists the distinct sales reps of a distributor in first-seen order.
func salesRepsOf(d *report.DistributorNode) []string {
	seen := make(map[string]bool)
	var reps []string
	for _, a := range d.Agencies {
		rep := a.Group.Key.SalesRep
		if rep == "" || seen[rep] {
			continue
		}
		seen[rep] = true
		reps = append(reps, rep)
	}
	return reps
}
