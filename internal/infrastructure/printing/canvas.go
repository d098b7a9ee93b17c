package printing

import "io"

// Align is the horizontal alignment of text inside a box.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Font selects the face used for measuring and drawing.
type Font struct {
	Bold bool
	Size float64
}

// Regular returns the regular face at size.
func Regular(size float64) Font {
	return Font{Size: size}
}

// Bold returns the bold face at size.
func Bold(size float64) Font {
	return Font{Bold: true, Size: size}
}

// Box is a rectangle in page coordinates, origin at the top-left corner.
type Box struct {
	X, Y, W, H float64
}

// Measurer answers text metrics for a font.
type Measurer interface {
	StringWidth(s string, font Font) float64
	// SplitText wraps s into lines no wider than width. It returns at least one line.
	SplitText(s string, width float64, font Font) []string
}

// Canvas is the drawing surface the layout engine writes to.
// The first page exists as soon as the canvas is created.
type Canvas interface {
	Measurer
	AddPage()
	PageCount() int
	// Rect strokes a box and, when fill is non-nil, fills it first.
	Rect(box Box, fill *Color)
	// Text draws pre-wrapped lines starting at the top of box.
	Text(box Box, lines []string, font Font, align Align, lineHeight float64)
}

// Document is a canvas that can serialize itself.
type Document interface {
	Canvas
	WriteTo(w io.Writer) (int64, error)
}
