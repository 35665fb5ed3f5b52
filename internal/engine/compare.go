package engine

import (
	"sort"

	"github.com/dtaplin21/panelgrid/internal/model"
)

// StrategyComparison holds the statistics for one placement strategy run
// over a common input, enabling side-by-side what-if comparison.
type StrategyComparison struct {
	Strategy    Strategy `json:"strategy"`
	Placed      int      `json:"placed"`
	Unplaced    int      `json:"unplaced"`
	Utilization float64  `json:"utilization"` // fraction of site area covered
	Conflicts   int      `json:"conflicts"`   // conflicts repaired post-placement
}

// AllStrategies lists every placement strategy in dispatch order.
var AllStrategies = []Strategy{StrategyGrid, StrategyQuadrant, StrategyAdaptive, StrategyGenetic}

// CompareStrategies runs every placement strategy over the same panels and
// site, resolves conflicts on each result, and returns the statistics
// sorted best-first: most panels placed, then fewest conflicts, then
// highest utilization.
func CompareStrategies(panels []model.Panel, site model.Site, settings model.PlacementSettings) []StrategyComparison {
	results := make([]StrategyComparison, 0, len(AllStrategies))

	for _, strategy := range AllStrategies {
		placer := NewPlacer(strategy, settings)
		placement := placer.Place(panels, site)
		resolved, conflicts := Resolve(placement.Placed, site, settings.ConflictGap)

		var covered float64
		for _, p := range resolved {
			covered += p.Area()
		}
		utilization := 0.0
		if site.Area() > 0 {
			utilization = covered / site.Area()
		}

		results = append(results, StrategyComparison{
			Strategy:    strategy,
			Placed:      len(resolved),
			Unplaced:    len(placement.Unplaced),
			Utilization: utilization,
			Conflicts:   len(conflicts),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Placed != results[j].Placed {
			return results[i].Placed > results[j].Placed
		}
		if results[i].Conflicts != results[j].Conflicts {
			return results[i].Conflicts < results[j].Conflicts
		}
		return results[i].Utilization > results[j].Utilization
	})

	return results
}
