package engine

import (
	"github.com/dtaplin21/panelgrid/internal/model"
)

// quadrantAnchors are the quadrant centers as fractions of the site extents.
var quadrantAnchors = [4][2]float64{
	{0.25, 0.25},
	{0.75, 0.25},
	{0.25, 0.75},
	{0.75, 0.75},
}

// quadrantColumns is the width of the local grid laid out inside each quadrant.
const quadrantColumns = 3

// QuadrantPlacer partitions the site into four quadrants and assigns panel
// i to quadrant i mod 4, laying panels out in a small local grid centered
// on the quadrant anchor. Rotation alternates 0/90 degrees by quadrant
// parity so adjacent quadrants seam in opposite directions.
type QuadrantPlacer struct {
	Settings model.PlacementSettings
}

// Place distributes panels round-robin across quadrants. Panels landing
// outside the site after local-grid placement are returned unplaced.
func (q *QuadrantPlacer) Place(panels []model.Panel, site model.Site) PlaceResult {
	spacing := q.Settings.Spacing

	var result PlaceResult
	var quadrantCount [4]int

	for i, p := range panels {
		quad := i % 4
		idx := quadrantCount[quad]
		quadrantCount[quad]++

		if quad == 1 || quad == 3 {
			p.Rotation = 90
		} else {
			p.Rotation = 0
		}

		w := p.PlacedWidth()
		h := p.PlacedHeight()

		anchorX := quadrantAnchors[quad][0] * site.Width
		anchorY := quadrantAnchors[quad][1] * site.Length

		col := idx % quadrantColumns
		row := idx / quadrantColumns

		// Center the local grid cell on the quadrant anchor.
		p.X = anchorX + float64(col-1)*(w+spacing) - w/2
		p.Y = anchorY + float64(row)*(h+spacing) - h/2
		p.Placed = true

		if !p.InBounds(site) {
			p.Placed = false
			result.Unplaced = append(result.Unplaced, p)
			continue
		}
		result.Placed = append(result.Placed, p)
	}

	return result
}
