package printing

import "math"

// RowKind distinguishes the row bands of a table.
type RowKind int

const (
	RowHeader RowKind = iota
	RowData
	RowTotals
)

// Table is the input of one RenderTable call.
type Table struct {
	Headers []string
	Rows    [][]string
	// Totals is the optional closing row, drawn bold on TotalFill.
	Totals []string
	// Layout overrides the computed column layout, for tables that share widths.
	Layout *ColumnLayout
	// HeaderAlign applies to every header cell but the first, which is left aligned.
	HeaderAlign Align
	// HighlightLastColumn fills the last column of data rows with TotalColumnFill.
	HighlightLastColumn bool
	FontSize            float64
}

type tableState int

const (
	stateMeasuring tableState = iota
	statePlacingHeader
	statePlacingRow
	statePageBreak
	stateDone
)

// Engine lays tables out on a canvas.
type Engine struct {
	canvas Canvas
	cfg    LayoutConfig
}

// NewEngine creates a layout engine drawing on canvas.
func NewEngine(canvas Canvas, cfg LayoutConfig) *Engine {
	return &Engine{canvas: canvas, cfg: cfg}
}

// Canvas returns the drawing surface.
func (e *Engine) Canvas() Canvas {
	return e.canvas
}

// Config returns the layout tunables.
func (e *Engine) Config() LayoutConfig {
	return e.cfg
}

// Layout computes and normalizes the column layout of t against the page width.
func (e *Engine) Layout(t Table, g PageGeometry) ColumnLayout {
	if t.Layout != nil {
		return *t.Layout
	}
	rows := t.Rows
	if t.Totals != nil {
		rows = append(rows[:len(rows):len(rows)], t.Totals)
	}
	return ComputeLayout(e.canvas, t.Headers, rows, Regular(t.FontSize), e.cfg).
		Normalize(g.ContentWidth(), e.cfg.ColumnFloor)
}

// RenderTable draws t starting at cursor and returns the cursor below it.
// Rows are never split. When a row does not fit, the page is broken and the
// header is drawn again before the row. A table with no rows still gets its
// header. The engine never fails: text that does not fit is wrapped, and a
// row taller than a page is placed on a fresh page and allowed to overflow.
func (e *Engine) RenderTable(t Table, cursor PageCursor) PageCursor {
	var (
		layout       ColumnLayout
		headerHeight float64
		next         int
		rowsOnPage   int
		headerAtTop  bool
	)
	state := stateMeasuring

	for state != stateDone {
		switch state {
		case stateMeasuring:
			layout = e.Layout(t, cursor.Geometry)
			headerHeight = e.rowHeight(t.Headers, layout, Bold(t.FontSize), e.cfg.HeaderPadding)
			state = statePlacingHeader

		case statePlacingHeader:
			// Keep the header with the first row that follows it.
			need := headerHeight
			if next < len(t.Rows) {
				need += e.rowHeight(t.Rows[next], layout, Regular(t.FontSize), e.cfg.RowPadding)
			} else if t.Totals != nil {
				need += e.rowHeight(t.Totals, layout, Bold(t.FontSize), e.cfg.TotalsPadding)
			}
			if !cursor.Fits(need) && !cursor.AtTop() {
				state = statePageBreak
				continue
			}
			headerAtTop, rowsOnPage = cursor.AtTop(), 0
			cursor = e.drawRow(t, layout, t.Headers, RowHeader, 0, headerHeight, cursor)
			state = statePlacingRow

		case statePlacingRow:
			if next > len(t.Rows) || (next == len(t.Rows) && t.Totals == nil) {
				state = stateDone
				continue
			}
			kind, cells, font, pad := RowData, []string(nil), Regular(t.FontSize), e.cfg.RowPadding
			if next == len(t.Rows) {
				kind, cells, font, pad = RowTotals, t.Totals, Bold(t.FontSize), e.cfg.TotalsPadding
			} else {
				cells = t.Rows[next]
			}
			h := e.rowHeight(cells, layout, font, pad)
			// A row that cannot fit even directly under a fresh header overflows in place.
			if !cursor.Fits(h) && (rowsOnPage > 0 || !headerAtTop) {
				state = statePageBreak
				continue
			}
			cursor = e.drawRow(t, layout, cells, kind, next, h, cursor)
			rowsOnPage++
			next++

		case statePageBreak:
			cursor = NextPage(e.canvas, cursor)
			state = statePlacingHeader
		}
	}
	return cursor
}

// LeadHeight is the height of the header plus the row that must accompany
// it: the first data row, or the totals row of an empty table.
func (e *Engine) LeadHeight(t Table, layout ColumnLayout) float64 {
	h := e.rowHeight(t.Headers, layout, Bold(t.FontSize), e.cfg.HeaderPadding)
	switch {
	case len(t.Rows) > 0:
		h += e.rowHeight(t.Rows[0], layout, Regular(t.FontSize), e.cfg.RowPadding)
	case t.Totals != nil:
		h += e.rowHeight(t.Totals, layout, Bold(t.FontSize), e.cfg.TotalsPadding)
	}
	return h
}

// rowHeight is the tallest wrapped cell of the row plus padding.
func (e *Engine) rowHeight(cells []string, layout ColumnLayout, font Font, padding float64) float64 {
	lineHeight := e.cfg.LineHeight(font.Size)
	lines := 1
	for i, col := range layout.Columns {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		if n := len(e.canvas.SplitText(text, e.textWidth(col.Width), font)); n > lines {
			lines = n
		}
	}
	return math.Ceil(float64(lines))*lineHeight + padding
}

func (e *Engine) textWidth(colWidth float64) float64 {
	w := colWidth - 2*e.cfg.TextInset
	if w < 1 {
		return 1
	}
	return w
}

func (e *Engine) drawRow(t Table, layout ColumnLayout, cells []string, kind RowKind, index int, h float64, cursor PageCursor) PageCursor {
	font := Regular(t.FontSize)
	if kind != RowData {
		font = Bold(t.FontSize)
	}
	lineHeight := e.cfg.LineHeight(t.FontSize)
	last := len(layout.Columns) - 1

	x := cursor.Geometry.ContentLeft()
	for i, col := range layout.Columns {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		fill := cellFill(kind, index, i == last && t.HighlightLastColumn)
		box := Box{X: x, Y: cursor.Y, W: col.Width, H: h}
		e.canvas.Rect(box, &fill)

		inner := Box{X: x + e.cfg.TextInset, Y: cursor.Y + e.cfg.TextInset, W: e.textWidth(col.Width), H: h - 2*e.cfg.TextInset}
		e.canvas.Text(inner, e.canvas.SplitText(text, inner.W, font), font, cellAlign(kind, i, t.HeaderAlign), lineHeight)
		x += col.Width
	}
	return cursor.Advance(h)
}

func cellFill(kind RowKind, index int, totalColumn bool) Color {
	switch {
	case kind == RowHeader:
		return HeaderFill
	case kind == RowTotals:
		return TotalFill
	case totalColumn:
		return TotalColumnFill
	case index%2 == 0:
		return ZebraEvenFill
	}
	return ZebraOddFill
}

func cellAlign(kind RowKind, col int, headerAlign Align) Align {
	switch {
	case col == 0:
		return AlignLeft
	case kind == RowHeader:
		return headerAlign
	}
	return AlignRight
}
