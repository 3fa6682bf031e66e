package portfolio

import (
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/mcoot/folio/internal/dependencies/clock"
)

const fontFamily = "Helvetica"

// Renderer writes a block sequence as a document
type Renderer interface {
	Render(w io.Writer, title string, blocks []Block) error
}

// PDFRenderer lays blocks out on Letter pages with fpdf
type PDFRenderer struct {
	clock clock.Clock

	// Compress toggles stream compression. Disabled in tests to inspect text.
	Compress bool
}

// Ensure PDFRenderer implements Renderer
var _ Renderer = (*PDFRenderer)(nil)

// NewPDFRenderer creates a PDFRenderer. The clock stamps the creation date.
func NewPDFRenderer(clk clock.Clock) *PDFRenderer {
	return &PDFRenderer{clock: clk, Compress: true}
}

// Render writes the PDF for blocks to w
func (r *PDFRenderer) Render(w io.Writer, title string, blocks []Block) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetCompression(r.Compress)
	pdf.SetCreationDate(r.clock.Now())
	pdf.SetTitle(title, true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Core fonts are cp1252 encoded
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, b := range blocks {
		switch b.Kind {
		case KindTitle:
			pdf.SetFont(fontFamily, "B", 20)
			pdf.MultiCell(0, 10, tr(b.Text), "", "C", false)
			pdf.Ln(4)
		case KindField:
			pdf.SetFont(fontFamily, "B", 12)
			pdf.Write(7, tr(b.Label+": "))
			pdf.SetFont(fontFamily, "", 12)
			pdf.Write(7, tr(b.Text))
			pdf.Ln(7)
		case KindHeading:
			pdf.SetFont(fontFamily, "B", 14)
			pdf.MultiCell(0, 8, tr(b.Text), "B", "L", false)
			pdf.Ln(2)
		case KindItem:
			pdf.SetFont(fontFamily, "", 11)
			pdf.MultiCell(0, 6, tr("- "+b.Text), "", "L", false)
		case KindSubheading:
			pdf.SetFont(fontFamily, "B", 12)
			pdf.MultiCell(0, 7, tr(b.Text), "", "L", false)
		case KindText:
			pdf.SetFont(fontFamily, "", 11)
			pdf.MultiCell(0, 6, tr(b.Text), "", "L", false)
			pdf.Ln(2)
		case KindSpacer:
			pdf.Ln(6)
		}
	}

	return pdf.Output(w)
}
