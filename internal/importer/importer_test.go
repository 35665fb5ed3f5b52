package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestDetectCSVDelimiter(t *testing.T) {
	cases := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "Panel,Width,Height,Roll\nP-1,40,100,R-101\nP-2,20,50,R-102\n", ','},
		{"semicolon", "Panel;Width;Height;Roll\nP-1;40;100;R-101\nP-2;20;50;R-102\n", ';'},
		{"tab", "Panel\tWidth\tHeight\tRoll\nP-1\t40\t100\tR-101\n", '\t'},
		{"pipe", "Panel|Width|Height|Roll\nP-1|40|100|R-101\n", '|'},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DetectCSVDelimiter([]byte(tc.data))
			if got != tc.want {
				t.Errorf("expected %q delimiter, got %q", tc.want, got)
			}
		})
	}
}

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Panel", "Roll", "Width", "Height", "Material"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Panel != 0 {
		t.Errorf("expected Panel at 0, got %d", mapping.Panel)
	}
	if mapping.Roll != 1 {
		t.Errorf("expected Roll at 1, got %d", mapping.Roll)
	}
	if mapping.Width != 2 {
		t.Errorf("expected Width at 2, got %d", mapping.Width)
	}
	if mapping.Height != 3 {
		t.Errorf("expected Height at 3, got %d", mapping.Height)
	}
	if mapping.Material != 4 {
		t.Errorf("expected Material at 4, got %d", mapping.Material)
	}
}

func TestDetectColumns_AliasesCaseInsensitive(t *testing.T) {
	row := []string{"PANEL #", "ROLL NO", "W", "LENGTH", "MIL"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Panel != 0 || mapping.Roll != 1 || mapping.Width != 2 || mapping.Height != 3 || mapping.Thickness != 4 {
		t.Errorf("unexpected mapping: %+v", mapping)
	}
}

func TestDetectColumns_NoHeaderFallsBackToPositional(t *testing.T) {
	row := []string{"P-1", "40", "100", "R-101"}
	mapping, isHeader := DetectColumns(row)

	if isHeader {
		t.Error("expected no header to be detected")
	}
	if mapping.Panel != 0 || mapping.Width != 1 || mapping.Height != 2 || mapping.Roll != 3 {
		t.Errorf("unexpected positional mapping: %+v", mapping)
	}
}

func TestImportCSVFromReader_FullSchedule(t *testing.T) {
	csvData := "Panel,Roll,Width,Height,Material,X,Y\n" +
		"P-001,R-101,40,100,HDPE,5,5\n" +
		"P-002,R-102,20,50,HDPE,47,5\n"

	result := ImportCSVFromReader(strings.NewReader(csvData), ',')

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}

	first := result.Items[0]
	if first.PanelNumber != "P-001" || first.RollNumber != "R-101" {
		t.Errorf("unexpected identity fields: %+v", first)
	}
	if first.Width != 40 || first.Height != 100 {
		t.Errorf("unexpected dimensions: %+v", first)
	}
	if first.Material != "HDPE" || first.X != 5 || first.Y != 5 {
		t.Errorf("unexpected optional fields: %+v", first)
	}
}

func TestImportCSVFromReader_QuantityExpandsRows(t *testing.T) {
	csvData := "Panel,Width,Height,Qty\nP-1,40,100,3\n"

	result := ImportCSVFromReader(strings.NewReader(csvData), ',')

	if len(result.Items) != 3 {
		t.Fatalf("expected 3 items from qty 3, got %d", len(result.Items))
	}
	if result.Items[0].PanelNumber != "P-1-1" || result.Items[2].PanelNumber != "P-1-3" {
		t.Errorf("expected ordinal suffixes, got %q and %q",
			result.Items[0].PanelNumber, result.Items[2].PanelNumber)
	}
}

func TestImportCSVFromReader_BadRowsReportedNotFatal(t *testing.T) {
	csvData := "Panel,Width,Height\n" +
		"P-1,40,100\n" +
		"P-2,forty,100\n" +
		"P-3,-5,100\n" +
		"P-4,20,50\n"

	result := ImportCSVFromReader(strings.NewReader(csvData), ',')

	if len(result.Items) != 2 {
		t.Fatalf("expected 2 good items, got %d", len(result.Items))
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 row errors, got %d: %v", len(result.Errors), result.Errors)
	}
}

func TestImportCSVFromReader_SkipsEmptyRows(t *testing.T) {
	csvData := "Panel,Width,Height\nP-1,40,100\n,,\nP-2,20,50\n"

	result := ImportCSVFromReader(strings.NewReader(csvData), ',')

	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
}

func TestImportCSV_DetectsSemicolonDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.csv")
	data := "Panel;Width;Height\nP-1;40;100\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a delimiter warning, got %v", result.Warnings)
	}
}

func TestImportCSV_MissingRequiredColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.csv")
	data := "Panel,Roll\nP-1,R-101\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path)

	if len(result.Errors) == 0 {
		t.Fatal("expected an error for missing width/height columns")
	}
}

func TestImportExcel_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Panel", "Width", "Height", "Roll"},
		{"P-001", 40, 100, "R-101"},
		{"P-002", 20, 50, "R-102"},
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	result := ImportExcel(path)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.Items[1].RollNumber != "R-102" {
		t.Errorf("unexpected roll number: %+v", result.Items[1])
	}
}
