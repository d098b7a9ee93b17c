package printing

import (
	"bytes"
	"io"

	"github.com/jung-kurt/gofpdf"
)

const pdfFontFamily = "Helvetica"

// PDFCanvas draws on a gofpdf document using the core Helvetica faces.
type PDFCanvas struct {
	pdf       *gofpdf.Fpdf
	translate func(string) string
	font      Font
}

// NewPDFCanvas creates a PDF document for geometry and adds its first page.
func NewPDFCanvas(g PageGeometry, title string) *PDFCanvas {
	// gofpdf takes the portrait size and swaps it for landscape.
	orientation, size := "P", gofpdf.SizeType{Wd: g.Width, Ht: g.Height}
	if g.Width > g.Height {
		orientation, size = "L", gofpdf.SizeType{Wd: g.Height, Ht: g.Width}
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		Size:           size,
	})
	pdf.SetMargins(g.MarginLeft, g.MarginTop, g.MarginRight)
	pdf.SetAutoPageBreak(false, g.MarginBottom)
	pdf.SetCellMargin(0)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetTextColor(0, 0, 0)
	if title != "" {
		pdf.SetTitle(title, true)
	}
	pdf.SetCreator("salesreport", true)
	pdf.AddPage()

	c := &PDFCanvas{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
	c.use(Regular(10))
	return c
}

func (c *PDFCanvas) use(f Font) {
	if f == c.font {
		return
	}
	style := ""
	if f.Bold {
		style = "B"
	}
	c.pdf.SetFont(pdfFontFamily, style, f.Size)
	c.font = f
}

func (c *PDFCanvas) StringWidth(s string, font Font) float64 {
	c.use(font)
	return c.pdf.GetStringWidth(c.translate(s))
}

func (c *PDFCanvas) SplitText(s string, width float64, font Font) []string {
	c.use(font)
	if s == "" {
		return []string{""}
	}
	raw := c.pdf.SplitLines([]byte(c.translate(s)), width)
	if len(raw) == 0 {
		return []string{""}
	}
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = string(l)
	}
	return lines
}

func (c *PDFCanvas) AddPage() {
	c.pdf.AddPage()
}

func (c *PDFCanvas) PageCount() int {
	return c.pdf.PageCount()
}

func (c *PDFCanvas) Rect(box Box, fill *Color) {
	style := "D"
	if fill != nil {
		c.pdf.SetFillColor(fill.R, fill.G, fill.B)
		style = "FD"
	}
	c.pdf.Rect(box.X, box.Y, box.W, box.H, style)
}

// Text draws lines that came from SplitText, so they are already translated.
func (c *PDFCanvas) Text(box Box, lines []string, font Font, align Align, lineHeight float64) {
	c.use(font)
	alignStr := "L"
	switch align {
	case AlignCenter:
		alignStr = "C"
	case AlignRight:
		alignStr = "R"
	}
	for i, line := range lines {
		c.pdf.SetXY(box.X, box.Y+float64(i)*lineHeight)
		c.pdf.CellFormat(box.W, lineHeight, line, "", 0, alignStr+"T", false, 0, "")
	}
}

// WriteTo serializes the document. A drawing error recorded by gofpdf is
// returned here, since gofpdf defers errors until output.
func (c *PDFCanvas) WriteTo(w io.Writer) (int64, error) {
	if err := c.pdf.Error(); err != nil {
		return 0, NewRenderError(ErrCodeRenderFailed, "pdf generation failed", err)
	}
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return 0, NewRenderError(ErrCodeRenderFailed, "pdf output failed", err)
	}
	return buf.WriteTo(w)
}

var _ Document = (*PDFCanvas)(nil)
