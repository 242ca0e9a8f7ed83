// Package export writes a generated glass order to its output formats: the
// Sibglass request workbook, a PDF summary, QR-coded unit labels and a DXF
// layout of the panes.
package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/SibGlass/internal/model"
)

// PDFOptions controls PDF rendering.
type PDFOptions struct {
	// FontPath is a UTF-8 TrueType font. Without it the core Helvetica font
	// is used and characters outside cp1252 (Cyrillic) print as dots.
	FontPath string
}

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 10.0
	rowHeight    = 6.0
)

const utf8Family = "orderfont"

// document wraps an fpdf document with the font family and text translator
// chosen for PDFOptions.
type document struct {
	pdf    *fpdf.Fpdf
	family string
	tr     func(string) string
}

func newDocument(orientation string, opts PDFOptions) (*document, error) {
	pdf := fpdf.New(orientation, "mm", "A4", "")
	doc := &document{pdf: pdf, family: "Helvetica", tr: pdf.UnicodeTranslatorFromDescriptor("")}

	if opts.FontPath != "" {
		for _, style := range []string{"", "B", "I"} {
			pdf.AddUTF8Font(utf8Family, style, opts.FontPath)
		}
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("loading font %s: %w", opts.FontPath, err)
		}
		doc.family = utf8Family
		doc.tr = func(s string) string { return s }
	}
	return doc, nil
}

func (d *document) font(style string, size float64) {
	d.pdf.SetFont(d.family, style, size)
}

// cell writes txt at (x, y) in a box of width w.
func (d *document) cell(x, y, w, h float64, txt, border, align string, fill bool) {
	d.pdf.SetXY(x, y)
	d.pdf.CellFormat(w, h, d.tr(txt), border, 0, align, fill, 0, "")
}

// fit shortens txt with an ellipsis until it fits into w.
func (d *document) fit(txt string, w float64) string {
	if d.pdf.GetStringWidth(d.tr(txt)) <= w {
		return txt
	}
	runes := []rune(txt)
	for len(runes) > 0 && d.pdf.GetStringWidth(d.tr(string(runes)+"...")) > w {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

var tableColumns = []struct {
	title string
	width float64
	align string
}{
	{"No.", 10, "C"},
	{"Formula", 78, "L"},
	{"Width, mm", 18, "R"},
	{"Height, mm", 18, "R"},
	{"Qty", 14, "R"},
	{"Area, m²", 20, "R"},
	{"Total, m²", 22, "R"},
}

// ExportPDF writes an order summary: order details, one table row per order
// item and the totals.
func ExportPDF(path string, order model.Order, opts PDFOptions) error {
	if len(order.Items) == 0 {
		return fmt.Errorf("no order items to export")
	}

	doc, err := newDocument("P", opts)
	if err != nil {
		return err
	}
	pdf := doc.pdf
	pdf.SetTitle("Glass order "+order.ID, true)
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		doc.font("I", 8)
		pdf.SetTextColor(120, 120, 120)
		doc.cell(marginLeft, pageHeight-marginBottom, pageWidth-marginLeft-marginRight, 4,
			fmt.Sprintf("Order %s - page %d/{nb}", order.ID, pdf.PageNo()), "", "C", false)
		pdf.SetTextColor(0, 0, 0)
	})

	pdf.AddPage()
	y := renderOrderHeader(doc, order)
	y = renderTableHeader(doc, y)

	doc.font("", 9)
	for i, it := range order.Items {
		if y+rowHeight > pageHeight-marginBottom-6 {
			pdf.AddPage()
			y = renderTableHeader(doc, marginTop)
			doc.font("", 9)
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		values := []string{
			fmt.Sprintf("%d", it.Index),
			it.Formula,
			fmt.Sprintf("%d", it.Width),
			fmt.Sprintf("%d", it.Height),
			fmt.Sprintf("%d", it.Count),
			fmt.Sprintf("%.4f", it.Area()),
			fmt.Sprintf("%.4f", it.TotalArea()),
		}
		x := marginLeft
		for j, col := range tableColumns {
			doc.cell(x, y, col.width, rowHeight, doc.fit(values[j], col.width-1), "1", col.align, true)
			x += col.width
		}
		y += rowHeight
	}

	if y+20 > pageHeight-marginBottom {
		pdf.AddPage()
		y = marginTop
	}
	renderTotals(doc, order, y+4)

	return pdf.OutputFileAndClose(path)
}

// renderOrderHeader draws the title block and returns the y position below it.
func renderOrderHeader(doc *document, order model.Order) float64 {
	pdf := doc.pdf
	doc.font("B", 16)
	doc.cell(marginLeft, marginTop, pageWidth-marginLeft-marginRight, headerHeight,
		"Insulated glass order "+order.ID, "", "L", false)

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+headerHeight+1, pageWidth-marginRight, marginTop+headerHeight+1)

	y := marginTop + headerHeight + 5
	details := []struct {
		label string
		value string
	}{
		{"Customer", order.Customer},
		{"Delivery address", order.Address},
		{"Date", order.CreatedAt.Format("02.01.2006 15:04")},
	}
	for _, item := range details {
		doc.font("", 10)
		doc.cell(marginLeft, y, 40, 6, item.label+":", "", "L", false)
		doc.font("B", 10)
		doc.cell(marginLeft+40, y, pageWidth-marginLeft-marginRight-40, 6,
			doc.fit(item.value, pageWidth-marginLeft-marginRight-40), "", "L", false)
		y += 7
	}
	return y + 4
}

func renderTableHeader(doc *document, y float64) float64 {
	doc.font("B", 9)
	doc.pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for _, col := range tableColumns {
		doc.cell(x, y, col.width, rowHeight, col.title, "1", "C", true)
		x += col.width
	}
	return y + rowHeight
}

func renderTotals(doc *document, order model.Order, y float64) {
	totals := []struct {
		label string
		value string
	}{
		{"Order rows", fmt.Sprintf("%d", len(order.Items))},
		{"Glass units", fmt.Sprintf("%d", order.TotalCount())},
		{"Total area", fmt.Sprintf("%.4f m²", order.TotalArea())},
	}
	for _, item := range totals {
		doc.font("", 10)
		doc.cell(marginLeft+5, y, 40, 6, item.label+":", "", "L", false)
		doc.font("B", 10)
		doc.cell(marginLeft+45, y, 40, 6, item.value, "", "L", false)
		y += 6
	}
}
