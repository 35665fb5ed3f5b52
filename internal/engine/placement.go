// Package engine implements the spatial core of the layout generator:
// strategy selection, panel placement, conflict resolution and the
// optimization passes that run over placed panels.
package engine

import (
	"github.com/dtaplin21/panelgrid/internal/model"
)

// Strategy identifies a placement algorithm.
type Strategy string

const (
	StrategyGrid     Strategy = "grid"
	StrategyQuadrant Strategy = "quadrant"
	StrategyAdaptive Strategy = "adaptive"
	StrategyGenetic  Strategy = "genetic"
)

// PlaceResult is the outcome of one placement run. Panels that could not
// be fitted within site bounds are returned in Unplaced, never silently
// dropped; callers decide how to surface them.
type PlaceResult struct {
	Placed   []model.Panel
	Unplaced []model.Panel
}

// Placer assigns a position and rotation to each panel within site bounds.
type Placer interface {
	Place(panels []model.Panel, site model.Site) PlaceResult
}

// NewPlacer returns the placer implementing the given strategy.
func NewPlacer(s Strategy, settings model.PlacementSettings) Placer {
	switch s {
	case StrategyQuadrant:
		return &QuadrantPlacer{Settings: settings}
	case StrategyAdaptive:
		return &AdaptivePlacer{Settings: settings, Terrain: FlatTerrain{}}
	case StrategyGenetic:
		return &GeneticPlacer{
			Settings:  settings,
			Objective: UtilizationObjective{},
		}
	default:
		return &GridPlacer{Settings: settings}
	}
}

// SelectStrategy chooses a placement strategy from panel and site
// statistics. This is a heuristic dispatcher, not an optimizer; callers
// may bypass it and construct a Placer directly.
//
// Decision order (first match wins): few panels pack well per-quadrant;
// dense layouts and complex terrain need adaptive handling; large panel
// counts justify the population search; everything else uses the grid.
func SelectStrategy(panels []model.Panel, site model.Site) Strategy {
	n := len(panels)
	if n <= 4 {
		return StrategyQuadrant
	}

	var panelArea float64
	for _, p := range panels {
		panelArea += p.Area()
	}
	if site.Area() > 0 && panelArea/site.Area() > 0.8 {
		return StrategyAdaptive
	}

	if n > 20 {
		return StrategyGenetic
	}
	if site.Terrain == model.TerrainComplex {
		return StrategyAdaptive
	}
	return StrategyGrid
}
