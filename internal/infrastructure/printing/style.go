package printing

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an RGB triple.
type Color struct {
	R, G, B int
}

// MustHex parses "#rrggbb" and panics on malformed input. It is meant for constants.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseHex parses "#rrggbb" or "rrggbb".
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, nil
}

// Table palette.
var (
	HeaderFill      = MustHex("#f0f0f0")
	ZebraEvenFill   = MustHex("#ffffff")
	ZebraOddFill    = MustHex("#f9f9f9")
	TotalFill       = MustHex("#d9edf7")
	TotalColumnFill = MustHex("#d9edf7")
)

// FontSizeFor shrinks the base size by one point per six month columns,
// never going below min.
func FontSizeFor(monthColumns int, base, min float64) float64 {
	size := base - float64(monthColumns/6)
	if size < min {
		return min
	}
	return size
}

// LayoutConfig holds the tunables of the layout engine, in points.
type LayoutConfig struct {
	// ColumnPadding is added to the widest content of a column.
	ColumnPadding float64
	// ColumnCap is the maximum computed column width.
	ColumnCap float64
	// ColumnFloor is the narrowest width normalization shrinks a column to.
	ColumnFloor float64
	// LineHeightFactor multiplies the font size to give the line height.
	LineHeightFactor float64
	HeaderPadding    float64
	RowPadding       float64
	TotalsPadding    float64
	// TextInset is the gap between a cell border and its text.
	TextInset float64
}

// DefaultLayoutConfig mirrors the historical report look.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		ColumnPadding:    10,
		ColumnCap:        50,
		ColumnFloor:      30,
		LineHeightFactor: 1.5,
		HeaderPadding:    10,
		RowPadding:       8,
		TotalsPadding:    10,
		TextInset:        5,
	}
}

// LineHeight returns the line height for a font size.
func (c LayoutConfig) LineHeight(fontSize float64) float64 {
	return fontSize * c.LineHeightFactor
}
