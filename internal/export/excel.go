package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dtaplin21/panelgrid/internal/model"
)

const (
	scheduleSheet = "Panel Schedule"
	patchSheet    = "Patches"
	testSheet     = "Destructive Tests"
)

// ExportExcel writes the layout as a workbook: a panel schedule sheet plus
// sheets for patches and destructive tests when present.
func ExportExcel(path string, l model.Layout) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", scheduleSheet)
	if err := writePanelSchedule(f, l); err != nil {
		return err
	}

	if len(l.Patches) > 0 {
		if _, err := f.NewSheet(patchSheet); err != nil {
			return err
		}
		if err := writePatches(f, l); err != nil {
			return err
		}
	}
	if len(l.DestructiveTests) > 0 {
		if _, err := f.NewSheet(testSheet); err != nil {
			return err
		}
		if err := writeTests(f, l); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDDDDD"}},
	})
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string) error {
	style, err := headerStyle(f)
	if err != nil {
		return err
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func writePanelSchedule(f *excelize.File, l model.Layout) error {
	headers := []string{
		"Panel", "Roll", "Width (ft)", "Height (ft)", "X (ft)", "Y (ft)",
		"Rotation", "Shape", "Material", "Thickness", "Seam", "Placed", "Notes",
	}
	if err := writeHeaderRow(f, scheduleSheet, headers); err != nil {
		return err
	}
	if err := f.SetColWidth(scheduleSheet, "A", "M", 14); err != nil {
		return err
	}

	for i, p := range l.Panels {
		row := []any{
			p.PanelNumber, p.RollNumber, p.Width, p.Height, p.X, p.Y,
			p.Rotation, string(p.Shape), p.Material, p.Thickness, p.SeamType,
			p.Placed, p.Notes,
		}
		if err := setRow(f, scheduleSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writePatches(f *excelize.File, l model.Layout) error {
	headers := []string{"Patch", "X (ft)", "Y (ft)", "Radius (ft)", "Material", "Thickness", "Valid", "Notes"}
	if err := writeHeaderRow(f, patchSheet, headers); err != nil {
		return err
	}
	for i, p := range l.Patches {
		row := []any{p.PatchNumber, p.X, p.Y, p.Radius, p.Material, p.Thickness, p.Valid, p.Notes}
		if err := setRow(f, patchSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeTests(f *excelize.File, l model.Layout) error {
	headers := []string{"Sample", "X (ft)", "Y (ft)", "Width (ft)", "Height (ft)", "Result", "Notes"}
	if err := writeHeaderRow(f, testSheet, headers); err != nil {
		return err
	}
	for i, dt := range l.DestructiveTests {
		row := []any{dt.SampleID, dt.X, dt.Y, dt.Width, dt.Height, string(dt.Result), dt.Notes}
		if err := setRow(f, testSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}
