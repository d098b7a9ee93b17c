// Package printingtest provides a recording printing.Document for tests of
// code that draws reports.
package printingtest

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/salesreport/backend/internal/infrastructure/printing"
)

// CharWidth is the width of every rune as a fraction of the font size.
const CharWidth = 0.5

// Text is one recorded Text call.
type Text struct {
	Page  int
	Box   printing.Box
	Lines []string
	Font  printing.Font
	Align printing.Align
}

// String joins the wrapped lines back together.
func (t Text) String() string {
	return strings.Join(t.Lines, "")
}

// Rect is one recorded Rect call.
type Rect struct {
	Page int
	Box  printing.Box
	Fill *printing.Color
}

// Canvas records drawing calls and measures text deterministically:
// every rune is CharWidth * font size wide and wrapping breaks on runes.
type Canvas struct {
	Pages int
	Rects []Rect
	Texts []Text
}

// NewCanvas returns a canvas holding one empty page.
func NewCanvas() *Canvas {
	return &Canvas{Pages: 1}
}

// Factory matches the report pipeline's document factory and records the canvases it makes.
type Factory struct {
	Created []*Canvas
}

// New creates and records a canvas.
func (f *Factory) New(_ printing.PageGeometry, _ string) printing.Document {
	c := NewCanvas()
	f.Created = append(f.Created, c)
	return c
}

func (c *Canvas) StringWidth(s string, font printing.Font) float64 {
	return float64(len([]rune(s))) * font.Size * CharWidth
}

func (c *Canvas) SplitText(s string, width float64, font printing.Font) []string {
	perLine := int(math.Floor(width / (font.Size * CharWidth)))
	if perLine < 1 {
		perLine = 1
	}
	runes := []rune(s)
	if len(runes) == 0 {
		return []string{""}
	}
	var lines []string
	for len(runes) > perLine {
		lines = append(lines, string(runes[:perLine]))
		runes = runes[perLine:]
	}
	return append(lines, string(runes))
}

func (c *Canvas) AddPage() {
	c.Pages++
}

func (c *Canvas) PageCount() int {
	return c.Pages
}

func (c *Canvas) Rect(box printing.Box, fill *printing.Color) {
	var f *printing.Color
	if fill != nil {
		cp := *fill
		f = &cp
	}
	c.Rects = append(c.Rects, Rect{Page: c.Pages, Box: box, Fill: f})
}

func (c *Canvas) Text(box printing.Box, lines []string, font printing.Font, align printing.Align, _ float64) {
	c.Texts = append(c.Texts, Text{Page: c.Pages, Box: box, Lines: lines, Font: font, Align: align})
}

// WriteTo writes a plain-text dump of the recorded texts.
func (c *Canvas) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, t := range c.Texts {
		m, err := fmt.Fprintf(w, "%d\t%s\n", t.Page, t.String())
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// Find returns the recorded texts equal to s once unwrapped.
func (c *Canvas) Find(s string) []Text {
	var out []Text
	for _, t := range c.Texts {
		if t.String() == s {
			out = append(out, t)
		}
	}
	return out
}

// FindPrefix returns the recorded texts starting with prefix once unwrapped.
func (c *Canvas) FindPrefix(prefix string) []Text {
	var out []Text
	for _, t := range c.Texts {
		if strings.HasPrefix(t.String(), prefix) {
			out = append(out, t)
		}
	}
	return out
}

var _ printing.Document = (*Canvas)(nil)
