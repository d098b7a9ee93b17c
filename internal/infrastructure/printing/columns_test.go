package printing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeLayout(t *testing.T) {
	canvas := newRecordingCanvas()
	cfg := DefaultLayoutConfig()

	layout := ComputeLayout(canvas, []string{"Name", "2024/Jan", "Total Amount"}, [][]string{
		{"P1", "100.00", "100.00"},
		{"A much longer product name", "-", "1,234,567.00"},
	}, Regular(4), cfg)

	require.Equal(t, 3, layout.Len())
	// "Name" is 4 runes * 2 = 8, the long name 26 * 2 = 52, capped at 50.
	assert.Equal(t, 50.0, layout.Columns[0].Width)
	// "2024/Jan" is 8 runes * 2 = 16 plus padding.
	assert.Equal(t, 26.0, layout.Columns[1].Width)
	assert.Equal(t, "Total Amount", layout.Columns[2].Header)
	assert.Equal(t, 34.0, layout.Columns[2].Width)
}

func TestNormalize(t *testing.T) {
	t.Run("fits unchanged", func(t *testing.T) {
		l := ColumnLayout{Columns: []Column{{Width: 40}, {Width: 50}}}
		assert.Equal(t, l, l.Normalize(100, 30))
	})

	t.Run("scales proportionally", func(t *testing.T) {
		l := ColumnLayout{Columns: []Column{{Width: 100}, {Width: 100}}}
		n := l.Normalize(150, 30)
		assert.InDelta(t, 75, n.Columns[0].Width, 1e-9)
		assert.InDelta(t, 150, n.TotalWidth(), 1e-9)
	})

	t.Run("floor pins narrow columns and rescales the rest", func(t *testing.T) {
		l := ColumnLayout{Columns: []Column{{Width: 200}, {Width: 40}, {Width: 160}}}
		n := l.Normalize(200, 30)
		assert.Equal(t, 30.0, n.Columns[1].Width)
		assert.InDelta(t, 200, n.TotalWidth(), 1e-9)
		assert.InDelta(t, n.Columns[0].Width/n.Columns[2].Width, 200.0/160.0, 1e-9)
	})

	t.Run("floor is lowered when it cannot be honoured", func(t *testing.T) {
		cols := make([]Column, 42)
		for i := range cols {
			cols[i] = Column{Header: fmt.Sprint(i), Width: 50}
		}
		n := ColumnLayout{Columns: cols}.Normalize(801.89, 30)
		assert.LessOrEqual(t, n.TotalWidth(), 801.89+1e-6)
		for _, c := range n.Columns {
			assert.InDelta(t, 801.89/42, c.Width, 1e-9)
		}
	})

	t.Run("does not mutate the receiver", func(t *testing.T) {
		l := ColumnLayout{Columns: []Column{{Width: 100}, {Width: 100}}}
		_ = l.Normalize(100, 10)
		assert.Equal(t, 100.0, l.Columns[0].Width)
	})
}

func TestFontSizeFor(t *testing.T) {
	assert.Equal(t, 7.0, FontSizeFor(5, 7, 5))
	assert.Equal(t, 6.0, FontSizeFor(6, 7, 5))
	assert.Equal(t, 5.0, FontSizeFor(12, 7, 5))
	assert.Equal(t, 5.0, FontSizeFor(40, 7, 5))
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#d9edf7")
	require.NoError(t, err)
	assert.Equal(t, Color{R: 0xd9, G: 0xed, B: 0xf7}, c)

	_, err = ParseHex("#fff")
	assert.Error(t, err)
	_, err = ParseHex("zzzzzz")
	assert.Error(t, err)
}
