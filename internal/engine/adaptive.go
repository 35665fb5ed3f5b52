package engine

import (
	"github.com/dtaplin21/panelgrid/internal/model"
)

// TerrainDescriptor is a coarse characterization of the site surface used
// by terrain-aware placement and optimization.
type TerrainDescriptor struct {
	// Complexity grades surface irregularity in [0, 1].
	Complexity float64
	// ElevationVariation is the expected elevation spread in feet.
	ElevationVariation float64
}

// TerrainModel supplies terrain knowledge to the adaptive placer. The
// interface is the contract; the bundled FlatTerrain model is a documented
// stand-in, and callers with real survey data supply their own.
type TerrainModel interface {
	// Descriptor derives a coarse terrain descriptor for the site.
	Descriptor(site model.Site) TerrainDescriptor
	// OptimalPosition picks a position for the panel given what is already
	// placed. Implementations must return a position keeping the panel
	// within site bounds whenever one exists.
	OptimalPosition(p model.Panel, site model.Site, placed []model.Panel, desc TerrainDescriptor) (x, y float64, ok bool)
	// ElevationAdjustment estimates the extra material needed at a position.
	ElevationAdjustment(x, y float64, desc TerrainDescriptor) float64
}

// FlatTerrain is the identity terrain model: it derives a descriptor from
// the declared terrain type and places panels with a plain row cursor.
// Its numbers carry no survey meaning and exist only to exercise the hooks.
type FlatTerrain struct{}

// Descriptor maps the declared terrain type to fixed descriptor values.
func (FlatTerrain) Descriptor(site model.Site) TerrainDescriptor {
	switch site.Terrain {
	case model.TerrainComplex:
		return TerrainDescriptor{Complexity: 0.9, ElevationVariation: 8}
	case model.TerrainRolling:
		return TerrainDescriptor{Complexity: 0.5, ElevationVariation: 3}
	default:
		return TerrainDescriptor{Complexity: 0.1, ElevationVariation: 0}
	}
}

// OptimalPosition scans row-major for the first free position, stepping by
// half the panel size. With no elevation data there is nothing better to
// discriminate positions by.
func (FlatTerrain) OptimalPosition(p model.Panel, site model.Site, placed []model.Panel, _ TerrainDescriptor) (float64, float64, bool) {
	w := p.PlacedWidth()
	h := p.PlacedHeight()
	if w > site.Width || h > site.Length {
		return 0, 0, false
	}

	stepX := w / 2
	stepY := h / 2
	for y := 0.0; y+h <= site.Length; y += stepY {
		for x := 0.0; x+w <= site.Width; x += stepX {
			candidate := p
			candidate.X, candidate.Y = x, y
			candidate.Placed = true
			if !collidesAny(candidate, placed) {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

// ElevationAdjustment scales linearly with complexity. A real model would
// sample elevation at the position.
func (FlatTerrain) ElevationAdjustment(_, _ float64, desc TerrainDescriptor) float64 {
	return desc.Complexity * desc.ElevationVariation
}

func collidesAny(p model.Panel, placed []model.Panel) bool {
	for _, other := range placed {
		if p.Overlaps(other) {
			return true
		}
	}
	return false
}

// AdaptivePlacer places panels for irregular terrain, delegating position
// choice to a TerrainModel and recording an elevation adjustment on each
// placed panel for downstream passes.
type AdaptivePlacer struct {
	Settings model.PlacementSettings
	Terrain  TerrainModel
}

// Place positions each panel via the terrain model. Panels the model
// cannot position within bounds are returned unplaced.
func (a *AdaptivePlacer) Place(panels []model.Panel, site model.Site) PlaceResult {
	terrain := a.Terrain
	if terrain == nil {
		terrain = FlatTerrain{}
	}
	desc := terrain.Descriptor(site)

	var result PlaceResult
	for _, p := range panels {
		p.Rotation = 0
		x, y, ok := terrain.OptimalPosition(p, site, result.Placed, desc)
		if !ok {
			result.Unplaced = append(result.Unplaced, p)
			continue
		}
		p.X = x
		p.Y = y
		p.Placed = true
		p.ElevationAdjustment = terrain.ElevationAdjustment(x, y, desc)
		result.Placed = append(result.Placed, p)
	}
	return result
}
