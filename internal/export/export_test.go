package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dtaplin21/panelgrid/internal/model"
)

// buildTestLayout creates a realistic layout for export testing.
func buildTestLayout() model.Layout {
	l := model.NewLayout("proj-1", 200, 500)
	l.Panels = []model.Panel{
		{ID: "p1", PanelNumber: "P-001", RollNumber: "R-101", Width: 40, Height: 100,
			X: 5, Y: 5, Placed: true, Shape: model.ShapeRectangle, Material: "HDPE", Thickness: "60 mil"},
		{ID: "p2", PanelNumber: "P-002", RollNumber: "R-102", Width: 40, Height: 100,
			X: 47, Y: 5, Placed: true, Rotation: 90, Shape: model.ShapeRectangle, Material: "HDPE"},
		{ID: "p3", PanelNumber: "P-003", RollNumber: "R-103", Width: 20, Height: 50,
			Placed: false, Shape: model.ShapeRectangle},
	}
	l.Patches = []model.Patch{
		{ID: "pa1", PatchNumber: "PA-1", X: 100, Y: 150, Radius: 5, Valid: true},
	}
	l.DestructiveTests = []model.DestructiveTest{
		{ID: "dt1", SampleID: "S-1", X: 120, Y: 200, Width: 12, Height: 12, Result: model.TestFail},
	}
	return l
}

func assertFileWritten(t *testing.T, path string, minSize int64) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("file was not created: %v", err)
	}
	if info.Size() < minSize {
		t.Errorf("file seems too small: %d bytes", info.Size())
	}
}

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.pdf")

	if err := ExportPDF(path, buildTestLayout()); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertFileWritten(t, path, 500)
}

func TestExportPDF_EmptyLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	err := ExportPDF(path, model.NewLayout("proj-1", 100, 100))
	if err == nil {
		t.Fatal("expected error for empty layout, got nil")
	}
}

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, buildTestLayout()); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
	assertFileWritten(t, path, 500)
}

func TestExportLabels_NoPlacedPanels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	l := model.NewLayout("proj-1", 100, 100)
	l.Panels = []model.Panel{{ID: "p1", PanelNumber: "P-1", Placed: false}}

	if err := ExportLabels(path, l); err == nil {
		t.Fatal("expected error when no panels are placed, got nil")
	}
}

func TestCollectLabelInfos_PlacedPanelsOnly(t *testing.T) {
	labels := CollectLabelInfos(buildTestLayout())

	if len(labels) != 2 {
		t.Fatalf("expected 2 labels for 2 placed panels, got %d", len(labels))
	}
	if labels[0].PanelNumber != "P-001" {
		t.Errorf("expected P-001 first, got %s", labels[0].PanelNumber)
	}
	if labels[0].ProjectID != "proj-1" {
		t.Errorf("label missing project id: %+v", labels[0])
	}
	if labels[1].Rotation != 90 {
		t.Errorf("expected rotation carried onto label, got %g", labels[1].Rotation)
	}
}

func TestExportExcel_CreatesWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.xlsx")

	if err := ExportExcel(path, buildTestLayout()); err != nil {
		t.Fatalf("ExportExcel returned error: %v", err)
	}
	assertFileWritten(t, path, 1000)
}

func TestExportExcel_SkipsEmptyEntitySheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.xlsx")

	l := buildTestLayout()
	l.Patches = nil
	l.DestructiveTests = nil

	if err := ExportExcel(path, l); err != nil {
		t.Fatalf("ExportExcel returned error: %v", err)
	}
	assertFileWritten(t, path, 1000)
}

func TestExportDXF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.dxf")

	if err := ExportDXF(path, buildTestLayout()); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}
	assertFileWritten(t, path, 200)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	for _, want := range []string{"SITE", "PANELS", "PATCHES", "TESTS", "LWPOLYLINE", "CIRCLE"} {
		if !strings.Contains(content, want) {
			t.Errorf("drawing missing %q", want)
		}
	}
}

func TestExportDXF_NoSiteBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.dxf")

	if err := ExportDXF(path, model.Layout{ProjectID: "proj-1"}); err == nil {
		t.Fatal("expected error for missing site bounds, got nil")
	}
}
