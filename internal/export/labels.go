package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/dtaplin21/panelgrid/internal/model"
)

// LabelInfo holds the data encoded into each panel label's QR code. Field
// crews scan a label to pull up the panel's placement record.
type LabelInfo struct {
	ProjectID   string  `json:"project"`
	PanelNumber string  `json:"panel"`
	RollNumber  string  `json:"roll"`
	Width       float64 `json:"width_ft"`
	Height      float64 `json:"height_ft"`
	X           float64 `json:"x_ft"`
	Y           float64 `json:"y_ft"`
	Rotation    float64 `json:"rotation"`
	Material    string  `json:"material,omitempty"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns,
// 10 rows per page on US Letter).
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per placed panel,
// laid out on a standard Avery 5160 label sheet.
func ExportLabels(path string, l model.Layout) error {
	labels := CollectLabelInfos(l)
	if len(labels) == 0 {
		return fmt.Errorf("no placed panels to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("render label for panel %q: %w", label.PanelNumber, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label cell at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, seq int, info LabelInfo) error {
	// Light border as a cutting guide.
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d", info.PanelNumber, seq)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	panelLabel := fmt.Sprintf("Panel %s", info.PanelNumber)
	if pdf.GetStringWidth(panelLabel) > textW {
		for len(panelLabel) > 0 && pdf.GetStringWidth(panelLabel+"...") > textW {
			panelLabel = panelLabel[:len(panelLabel)-1]
		}
		panelLabel += "..."
	}
	pdf.CellFormat(textW, 4.5, panelLabel, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.0f x %.0f ft  roll %s", info.Width, info.Height, info.RollNumber)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	posInfo := fmt.Sprintf("@ (%.0f, %.0f)", info.X, info.Y)
	pdf.CellFormat(textW, 3, posInfo, "", 1, "L", false, 0, "")

	if info.Rotation == 90 || info.Rotation == 270 {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, fmt.Sprintf("Rotated %.0f\xb0", info.Rotation), "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos extracts label data for every placed panel, in layout
// order. Exposed for tests and alternative label formats.
func CollectLabelInfos(l model.Layout) []LabelInfo {
	var labels []LabelInfo
	for _, p := range l.Panels {
		if !p.Placed {
			continue
		}
		labels = append(labels, LabelInfo{
			ProjectID:   l.ProjectID,
			PanelNumber: p.PanelNumber,
			RollNumber:  p.RollNumber,
			Width:       p.Width,
			Height:      p.Height,
			X:           p.X,
			Y:           p.Y,
			Rotation:    p.Rotation,
			Material:    p.Material,
		})
	}
	return labels
}
