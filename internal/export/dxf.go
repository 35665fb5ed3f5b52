package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/dtaplin21/panelgrid/internal/model"
)

// DXF layer names consumed by downstream CAD tooling.
const (
	layerSite    = "SITE"
	layerPanels  = "PANELS"
	layerPatches = "PATCHES"
	layerTests   = "TESTS"
)

// ExportDXF writes the layout geometry as a DXF drawing: the site boundary,
// one closed polyline per placed panel, circles for patches and squares for
// destructive tests, each on its own layer. Units are feet; the Y axis is
// flipped so the top-left-origin layout renders upright in CAD.
func ExportDXF(path string, l model.Layout) error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("layout %s has no site bounds", l.ProjectID)
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer(layerSite, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add site layer: %w", err)
	}
	drawRect(d, 0, 0, l.Width, l.Height, l.Height)

	if len(l.Panels) > 0 {
		if _, err := d.AddLayer(layerPanels, color.Green, table.LT_CONTINUOUS, true); err != nil {
			return fmt.Errorf("add panel layer: %w", err)
		}
		for _, p := range l.Panels {
			if !p.Placed {
				continue
			}
			drawRect(d, p.X, p.Y, p.PlacedWidth(), p.PlacedHeight(), l.Height)
		}
	}

	if len(l.Patches) > 0 {
		if _, err := d.AddLayer(layerPatches, color.Red, table.LT_CONTINUOUS, true); err != nil {
			return fmt.Errorf("add patch layer: %w", err)
		}
		for _, pa := range l.Patches {
			d.Circle(pa.X, l.Height-pa.Y, 0.0, pa.Radius)
		}
	}

	if len(l.DestructiveTests) > 0 {
		if _, err := d.AddLayer(layerTests, color.Cyan, table.LT_CONTINUOUS, true); err != nil {
			return fmt.Errorf("add test layer: %w", err)
		}
		for _, dt := range l.DestructiveTests {
			drawRect(d, dt.X, dt.Y, dt.Width, dt.Height, l.Height)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("write dxf: %w", err)
	}
	return nil
}

// drawRect emits a closed polyline for a rectangle given in layout
// coordinates, flipping Y against the site height.
func drawRect(d *drawing.Drawing, x, y, w, h, siteHeight float64) {
	top := siteHeight - y
	bottom := siteHeight - y - h
	d.LwPolyline(true,
		[]float64{x, bottom, 0},
		[]float64{x + w, bottom, 0},
		[]float64{x + w, top, 0},
		[]float64{x, top, 0},
	)
}
