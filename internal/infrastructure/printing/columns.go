package printing

// Column is one laid-out table column.
type Column struct {
	Header string
	Width  float64
}

// ColumnLayout is the ordered column set of a table. It is computed once per
// table and reused unchanged across page breaks.
type ColumnLayout struct {
	Columns []Column
}

// Widths returns the column widths in order.
func (l ColumnLayout) Widths() []float64 {
	out := make([]float64, len(l.Columns))
	for i, c := range l.Columns {
		out[i] = c.Width
	}
	return out
}

// TotalWidth is the sum of all column widths.
func (l ColumnLayout) TotalWidth() float64 {
	total := 0.0
	for _, c := range l.Columns {
		total += c.Width
	}
	return total
}

// Len returns the number of columns.
func (l ColumnLayout) Len() int {
	return len(l.Columns)
}

// ComputeLayout sizes every column to its widest header or cell text plus
// padding, capped at cfg.ColumnCap.
func ComputeLayout(m Measurer, headers []string, rows [][]string, font Font, cfg LayoutConfig) ColumnLayout {
	layout := ColumnLayout{Columns: make([]Column, len(headers))}
	for i, h := range headers {
		widest := m.StringWidth(h, font)
		for _, row := range rows {
			if i >= len(row) {
				continue
			}
			if w := m.StringWidth(row[i], font); w > widest {
				widest = w
			}
		}
		width := widest + cfg.ColumnPadding
		if cfg.ColumnCap > 0 && width > cfg.ColumnCap {
			width = cfg.ColumnCap
		}
		layout.Columns[i] = Column{Header: h, Width: width}
	}
	return layout
}

// Normalize scales the columns down proportionally when they exceed available.
// No column is shrunk below floor; the floor itself is lowered to
// available/columns when honouring it would make fitting impossible. Columns
// pinned at the floor give up their share and the rest is rescaled, so the
// result never exceeds available.
func (l ColumnLayout) Normalize(available, floor float64) ColumnLayout {
	n := len(l.Columns)
	total := l.TotalWidth()
	if n == 0 || total <= available || available <= 0 {
		return l
	}
	if floor*float64(n) > available {
		floor = available / float64(n)
	}

	out := ColumnLayout{Columns: make([]Column, n)}
	copy(out.Columns, l.Columns)
	pinned := make([]bool, n)

	for {
		free, flex := available, 0.0
		for i, c := range l.Columns {
			if pinned[i] {
				free -= out.Columns[i].Width
			} else {
				flex += c.Width
			}
		}
		if flex == 0 {
			break
		}
		ratio := free / flex
		changed := false
		for i, c := range l.Columns {
			if pinned[i] {
				continue
			}
			w := c.Width * ratio
			if w < floor {
				w = floor
				pinned[i] = true
				changed = true
			}
			out.Columns[i].Width = w
		}
		if !changed {
			break
		}
	}
	return out
}
