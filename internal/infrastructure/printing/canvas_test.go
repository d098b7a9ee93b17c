package printing

import (
	"io"
	"math"
	"strings"
)

// recordingCanvas is a Document double that records drawing calls and
// measures text as a fixed half-em per rune.
type recordingCanvas struct {
	pages int
	rects []recordedRect
	texts []recordedText
}

type recordedRect struct {
	Page int
	Box  Box
	Fill *Color
}

type recordedText struct {
	Page  int
	Box   Box
	Lines []string
	Font  Font
	Align Align
}

func newRecordingCanvas() *recordingCanvas {
	return &recordingCanvas{pages: 1}
}

func (c *recordingCanvas) StringWidth(s string, font Font) float64 {
	return float64(len([]rune(s))) * font.Size * 0.5
}

func (c *recordingCanvas) SplitText(s string, width float64, font Font) []string {
	perLine := int(math.Floor(width / (font.Size * 0.5)))
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

func (c *recordingCanvas) AddPage() {
	c.pages++
}

func (c *recordingCanvas) PageCount() int {
	return c.pages
}

func (c *recordingCanvas) Rect(box Box, fill *Color) {
	var f *Color
	if fill != nil {
		cp := *fill
		f = &cp
	}
	c.rects = append(c.rects, recordedRect{Page: c.pages, Box: box, Fill: f})
}

func (c *recordingCanvas) Text(box Box, lines []string, font Font, align Align, lineHeight float64) {
	c.texts = append(c.texts, recordedText{Page: c.pages, Box: box, Lines: lines, Font: font, Align: align})
}

func (c *recordingCanvas) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, "recorded")
	return int64(n), err
}

// textsMatching returns the texts whose joined lines equal s.
func (c *recordingCanvas) textsMatching(s string) []recordedText {
	var out []recordedText
	for _, t := range c.texts {
		if strings.Join(t.Lines, "") == s {
			out = append(out, t)
		}
	}
	return out
}

var _ Document = (*recordingCanvas)(nil)
