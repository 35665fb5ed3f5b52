package engine

import (
	"github.com/dtaplin21/panelgrid/internal/model"
)

// GridPlacer lays panels out row-major: a cursor advances across the site,
// wrapping to a new row when the next panel would cross the right margin.
type GridPlacer struct {
	Settings model.PlacementSettings
}

// Place assigns positions in input order. Panels that cannot fit within
// the usable area at all are returned unplaced; the cursor is not advanced
// for them.
func (g *GridPlacer) Place(panels []model.Panel, site model.Site) PlaceResult {
	margin := g.Settings.Margin
	spacing := g.Settings.Spacing

	usableWidth := site.Width - 2*margin
	limitX := site.Width - margin
	limitY := site.Length - margin

	var result PlaceResult
	x, y := margin, margin
	rowHeight := 0.0

	for _, p := range panels {
		if p.Width > usableWidth {
			result.Unplaced = append(result.Unplaced, p)
			continue
		}

		// Wrap to the next row when this panel would cross the right margin.
		if x+p.Width > limitX {
			x = margin
			y += rowHeight + spacing
			rowHeight = 0
		}

		if y+p.Height > limitY {
			result.Unplaced = append(result.Unplaced, p)
			continue
		}

		p.X = x
		p.Y = y
		p.Rotation = 0
		p.Placed = true
		result.Placed = append(result.Placed, p)

		x += p.Width + spacing
		if p.Height > rowHeight {
			rowHeight = p.Height
		}
	}

	return result
}
