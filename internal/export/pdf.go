// Package export renders persisted layouts to the formats field crews and
// CAD consumers use: PDF site drawings, Excel panel schedules, DXF geometry
// and QR-coded panel labels.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/dtaplin21/panelgrid/internal/model"
)

// panelColor represents an RGB fill for a rendered panel.
type panelColor struct {
	R, G, B int
}

// panelColors cycles across panels so adjacent seams read distinctly.
var panelColors = []panelColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF renders a layout as a site drawing page followed by a summary
// page with per-panel details.
func ExportPDF(path string, l model.Layout) error {
	if len(l.Panels) == 0 && len(l.Patches) == 0 && len(l.DestructiveTests) == 0 {
		return fmt.Errorf("layout %s has nothing to export", l.ProjectID)
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderSitePage(pdf, l)

	pdf.AddPage()
	renderSummaryPage(pdf, l)

	return pdf.OutputFileAndClose(path)
}

// renderSitePage draws the full site with panels, patches and test markers.
func renderSitePage(pdf *fpdf.Fpdf, l model.Layout) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Project %s: site %.0f x %.0f ft", l.ProjectID, l.Width, l.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Panels: %d | Patches: %d | Tests: %d | Utilization: %.1f%%",
		len(l.Panels), len(l.Patches), len(l.DestructiveTests), l.Utilization()*100)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	// Fit the site within the drawing area, preserving aspect.
	scaleX := drawWidth / l.Width
	scaleY := drawHeight / l.Height
	scale := math.Min(scaleX, scaleY)

	canvasW := l.Width * scale
	canvasH := l.Height * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Site background.
	pdf.SetFillColor(235, 230, 220)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, p := range l.Panels {
		if !p.Placed {
			continue
		}
		col := panelColors[i%len(panelColors)]
		pw := p.PlacedWidth() * scale
		ph := p.PlacedHeight() * scale
		px := offsetX + p.X*scale
		py := offsetY + p.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := p.PanelNumber
			dims := fmt.Sprintf("%.0fx%.0f", p.Width, p.Height)

			labelW := pdf.GetStringWidth(label)
			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			dimsW := pdf.GetStringWidth(dims)
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	// Patches as circles, tests as hatched squares.
	for _, pa := range l.Patches {
		pdf.SetFillColor(255, 220, 220)
		pdf.SetDrawColor(180, 0, 0)
		pdf.SetLineWidth(0.3)
		pdf.Circle(offsetX+pa.X*scale, offsetY+pa.Y*scale, pa.Radius*scale, "FD")
	}
	for _, dt := range l.DestructiveTests {
		pdf.SetFillColor(220, 220, 255)
		pdf.SetDrawColor(0, 0, 160)
		pdf.SetLineWidth(0.3)
		pdf.Rect(offsetX+dt.X*scale, offsetY+dt.Y*scale, dt.Width*scale, dt.Height*scale, "FD")
	}

	drawDimensionAnnotations(pdf, l, scale, offsetX, offsetY, canvasW, canvasH)
	drawPanelLegend(pdf, l, offsetY+canvasH+5)
}

// drawDimensionAnnotations adds site extent labels outside the drawing.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, l model.Layout, scale, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f ft", l.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f ft", l.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawPanelLegend renders a compact color legend under the drawing.
func drawPanelLegend(pdf *fpdf.Fpdf, l model.Layout, startY float64) {
	if len(l.Panels) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Panels:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range l.Panels {
		col := panelColors[i%len(panelColors)]
		label := fmt.Sprintf("%s (%.0fx%.0f)", p.PanelNumber, p.Width, p.Height)
		if p.Rotation == 90 || p.Rotation == 270 {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the per-panel detail table and test results.
func renderSummaryPage(pdf *fpdf.Fpdf, l model.Layout) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Panel Layout Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	summaryItems := []struct {
		label string
		value string
	}{
		{"Site", fmt.Sprintf("%.0f x %.0f ft", l.Width, l.Height)},
		{"Panels", fmt.Sprintf("%d", len(l.Panels))},
		{"Covered Area", fmt.Sprintf("%.0f sq ft", l.UsedArea())},
		{"Utilization", fmt.Sprintf("%.1f%%", l.Utilization()*100)},
		{"Patches", fmt.Sprintf("%d", len(l.Patches))},
		{"Destructive Tests", fmt.Sprintf("%d", len(l.DestructiveTests))},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Panel Schedule", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{30, 30, 40, 40, 35, 45}
	headers := []string{"Panel", "Roll", "Dimensions", "Position", "Rotation", "Material"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, p := range l.Panels {
		xPos = marginLeft
		position := "unplaced"
		if p.Placed {
			position = fmt.Sprintf("(%.0f, %.0f)", p.X, p.Y)
		}
		rowData := []string{
			p.PanelNumber,
			p.RollNumber,
			fmt.Sprintf("%.0f x %.0f ft", p.Width, p.Height),
			position,
			fmt.Sprintf("%.0f\xb0", p.Rotation),
			p.Material,
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if failed := failedTests(l); len(failed) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Failed Destructive Tests", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, dt := range failed {
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- sample %s at (%.0f, %.0f)", dt.SampleID, dt.X, dt.Y)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by PanelGrid - Panel Layout Engine", "", 0, "C", false, 0, "")
}

// labelFontSize returns a font size proportional to the rendered rectangle.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

// failedTests returns the destructive tests with a fail result.
func failedTests(l model.Layout) []model.DestructiveTest {
	var failed []model.DestructiveTest
	for _, dt := range l.DestructiveTests {
		if dt.Result == model.TestFail {
			failed = append(failed, dt)
		}
	}
	return failed
}
