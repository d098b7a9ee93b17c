package printing

// Page sizes in PDF points.
const (
	A4ShortSide = 595.28
	A4LongSide  = 841.89
)

// PageGeometry describes the page box and its margins, in points.
type PageGeometry struct {
	Width        float64
	Height       float64
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64
}

// A4Landscape returns an A4 landscape page with the same margin on every side.
func A4Landscape(margin float64) PageGeometry {
	return PageGeometry{
		Width:        A4LongSide,
		Height:       A4ShortSide,
		MarginTop:    margin,
		MarginRight:  margin,
		MarginBottom: margin,
		MarginLeft:   margin,
	}
}

// A4Portrait returns an A4 portrait page with the same margin on every side.
func A4Portrait(margin float64) PageGeometry {
	g := A4Landscape(margin)
	g.Width, g.Height = g.Height, g.Width
	return g
}

func (g PageGeometry) ContentLeft() float64 {
	return g.MarginLeft
}

func (g PageGeometry) ContentTop() float64 {
	return g.MarginTop
}

func (g PageGeometry) ContentBottom() float64 {
	return g.Height - g.MarginBottom
}

// ContentWidth is the horizontal space available to a table.
func (g PageGeometry) ContentWidth() float64 {
	return g.Width - g.MarginLeft - g.MarginRight
}

// ContentHeight is the vertical space between the top and bottom margins.
func (g PageGeometry) ContentHeight() float64 {
	return g.ContentBottom() - g.ContentTop()
}
