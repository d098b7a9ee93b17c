package printing

// fitTolerance absorbs float drift from summing many row heights.
const fitTolerance = 1e-6

// PageCursor is the vertical write position of one emission. It is a value:
// every operation that moves it returns the updated cursor.
type PageCursor struct {
	Y        float64
	Page     int
	Geometry PageGeometry
}

// NewCursor places a cursor at the top of the first page.
func NewCursor(g PageGeometry) PageCursor {
	return PageCursor{Y: g.ContentTop(), Page: 1, Geometry: g}
}

// Advance moves the cursor down by h.
func (c PageCursor) Advance(h float64) PageCursor {
	c.Y += h
	return c
}

// Fits reports whether a block of height h fits above the bottom margin.
func (c PageCursor) Fits(h float64) bool {
	return c.Y+h <= c.Geometry.ContentBottom()+fitTolerance
}

// NearBottom reports whether less than reserve remains on the page.
func (c PageCursor) NearBottom(reserve float64) bool {
	return c.Y > c.Geometry.ContentBottom()-reserve
}

// AtTop reports whether nothing has been placed on the current page yet.
func (c PageCursor) AtTop() bool {
	return c.Y <= c.Geometry.ContentTop()+fitTolerance
}

// Remaining is the vertical space left on the page.
func (c PageCursor) Remaining() float64 {
	return c.Geometry.ContentBottom() - c.Y
}

// NextPage adds a page to the canvas and returns a cursor at its top.
func NextPage(canvas Canvas, c PageCursor) PageCursor {
	canvas.AddPage()
	return PageCursor{Y: c.Geometry.ContentTop(), Page: c.Page + 1, Geometry: c.Geometry}
}

// EnsureSpace breaks the page when a block of height h does not fit.
// A cursor already at the top of a page is kept even when h is taller than
// the page, so oversized blocks cannot cause an endless run of blank pages.
func EnsureSpace(canvas Canvas, c PageCursor, h float64) PageCursor {
	if c.Fits(h) || c.AtTop() {
		return c
	}
	return NextPage(canvas, c)
}
