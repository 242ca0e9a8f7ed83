package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/SibGlass/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each glass unit label's QR code.
type LabelInfo struct {
	OrderID  string `json:"order"`
	Index    int    `json:"item"`
	Unit     int    `json:"unit"` // 1..Of
	Of       int    `json:"of"`
	Formula  string `json:"formula"`
	Width    int    `json:"width_mm"`
	Height   int    `json:"height_mm"`
	Customer string `json:"customer,omitempty"`
}

// Label layout constants: 3 columns x 8 rows of 70 x 37.1 mm on A4.
const (
	labelMarginTop  = 0.0
	labelMarginLeft = 0.0
	labelWidth      = 70.0
	labelHeight     = 37.125
	labelCols       = 3
	labelRows       = 8
	labelsPerPage   = labelCols * labelRows
	qrSize          = 26.0
	labelPadding    = 3.0
)

// CollectLabelInfos returns one label per physical glass unit, so an item
// with Count 3 yields three labels.
func CollectLabelInfos(order model.Order) []LabelInfo {
	var labels []LabelInfo
	for _, it := range order.Items {
		for unit := 1; unit <= it.Count; unit++ {
			labels = append(labels, LabelInfo{
				OrderID:  order.ID,
				Index:    it.Index,
				Unit:     unit,
				Of:       it.Count,
				Formula:  it.Formula,
				Width:    it.Width,
				Height:   it.Height,
				Customer: order.Customer,
			})
		}
	}
	return labels
}

// ExportLabels generates a PDF sheet of QR-coded labels, one per glass unit.
func ExportLabels(path string, order model.Order, opts PDFOptions) error {
	labels := CollectLabelInfos(order)
	if len(labels) == 0 {
		return fmt.Errorf("no glass units to generate labels for")
	}

	doc, err := newDocument("P", opts)
	if err != nil {
		return err
	}
	doc.pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			doc.pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(doc, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for item %d: %w", label.Index, err)
		}
	}

	return doc.pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(doc *document, x, y float64, info LabelInfo) error {
	pdf := doc.pdf
	// Cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d_%d", info.Index, info.Unit)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, opts, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetTextColor(0, 0, 0)
	doc.font("B", 12)
	doc.cell(textX, y+labelPadding, textW, 5, fmt.Sprintf("#%d  %d/%d", info.Index, info.Unit, info.Of), "", "L", false)

	doc.font("", 9)
	doc.cell(textX, y+labelPadding+7, textW, 4, fmt.Sprintf("%d x %d mm", info.Width, info.Height), "", "L", false)

	// Formulas are long; split them over two lines at the segment dashes.
	doc.font("", 6)
	first, second := splitFormula(doc, info.Formula, textW)
	doc.cell(textX, y+labelPadding+13, textW, 3, first, "", "L", false)
	if second != "" {
		doc.cell(textX, y+labelPadding+16, textW, 3, doc.fit(second, textW), "", "L", false)
	}

	if info.Customer != "" {
		doc.font("I", 6)
		pdf.SetTextColor(100, 100, 100)
		doc.cell(textX, y+labelHeight-labelPadding-3, textW, 3, doc.fit(info.Customer, textW), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}

	return pdf.Error()
}

// splitFormula returns the longest dash-delimited prefix of formula that fits
// into w and the remainder.
func splitFormula(doc *document, formula string, w float64) (string, string) {
	if doc.pdf.GetStringWidth(doc.tr(formula)) <= w {
		return formula, ""
	}
	runes := []rune(formula)
	cut := -1
	for i, r := range runes {
		if r != '-' {
			continue
		}
		if doc.pdf.GetStringWidth(doc.tr(string(runes[:i+1]))) > w {
			break
		}
		cut = i + 1
	}
	if cut < 0 {
		return doc.fit(formula, w), ""
	}
	return string(runes[:cut]), string(runes[cut:])
}
