package engine

import (
	"sort"

	"github.com/dtaplin21/panelgrid/internal/model"
)

// Goal identifies an optimization objective.
type Goal string

const (
	GoalMaterial Goal = "material"
	GoalLabor    Goal = "labor"
	GoalCost     Goal = "cost"
	GoalTerrain  Goal = "terrain"
	GoalBalanced Goal = "balanced"
)

// OptimizationPass reorders or annotates placed panels under an objective.
// Passes are pure functions over their input slice so they can be composed
// and tested independently.
type OptimizationPass interface {
	Goal() Goal
	Apply(panels []model.Panel, site model.Site) []model.Panel
}

// NewPass returns the pass implementing the given goal. Unknown goals get
// the balanced pass.
func NewPass(goal Goal, settings model.PlacementSettings) OptimizationPass {
	switch goal {
	case GoalMaterial:
		return MaterialPass{}
	case GoalLabor:
		return LaborPass{}
	case GoalCost:
		return CostPass{Model: DefaultCostModel()}
	case GoalTerrain:
		return TerrainPass{Terrain: FlatTerrain{}}
	default:
		return BalancedPass{Settings: settings}
	}
}

// MaterialPass sorts panels descending by area so that a downstream packer
// places large panels first, maximizing material efficiency.
type MaterialPass struct{}

func (MaterialPass) Goal() Goal { return GoalMaterial }

// Apply returns a copy sorted by area descending. The sort is stable so
// equal-area panels keep their input order.
func (MaterialPass) Apply(panels []model.Panel, _ model.Site) []model.Panel {
	out := make([]model.Panel, len(panels))
	copy(out, panels)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Area() > out[j].Area()
	})
	return out
}

// LaborPass groups panels sharing identical dimensions, emitting the
// groups concatenated. Adjacency of same-size panels reduces distinct
// setup operations for the installation crew.
type LaborPass struct{}

func (LaborPass) Goal() Goal { return GoalLabor }

// Apply concatenates dimension groups in first-seen order.
func (LaborPass) Apply(panels []model.Panel, _ model.Site) []model.Panel {
	type dims struct{ w, h float64 }
	groups := make(map[dims][]model.Panel)
	var order []dims

	for _, p := range panels {
		key := dims{p.Width, p.Height}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], p)
	}

	out := make([]model.Panel, 0, len(panels))
	for _, key := range order {
		out = append(out, groups[key]...)
	}
	return out
}

// CostModel estimates the installed cost of a panel. The bundled flat-rate
// model is a documented stand-in; callers needing real costing supply
// their own.
type CostModel interface {
	// PanelCost returns the estimated installed cost in dollars.
	PanelCost(p model.Panel) float64
	// SavingsFraction is the fraction of cost the optimization is assumed
	// to save. A stand-in constant in the default model.
	SavingsFraction() float64
}

// FlatRateCostModel prices panels at a fixed rate per square foot.
type FlatRateCostModel struct {
	CostPerSquareFoot float64
	Savings           float64
}

// DefaultCostModel returns the flat-rate stand-in used when no real cost
// model is supplied.
func DefaultCostModel() FlatRateCostModel {
	return FlatRateCostModel{CostPerSquareFoot: 0.85, Savings: 0.05}
}

func (m FlatRateCostModel) PanelCost(p model.Panel) float64 { return p.Area() * m.CostPerSquareFoot }
func (m FlatRateCostModel) SavingsFraction() float64        { return m.Savings }

// CostPass annotates panels with estimated savings from the cost model.
// Order is unchanged.
type CostPass struct {
	Model CostModel
}

func (CostPass) Goal() Goal { return GoalCost }

// Apply stamps EstimatedSavings on each panel.
func (c CostPass) Apply(panels []model.Panel, _ model.Site) []model.Panel {
	m := c.Model
	if m == nil {
		m = DefaultCostModel()
	}
	out := make([]model.Panel, len(panels))
	copy(out, panels)
	for i := range out {
		out[i].EstimatedSavings = m.PanelCost(out[i]) * m.SavingsFraction()
	}
	return out
}

// TerrainPass annotates placed panels with elevation adjustments from a
// terrain model. Order is unchanged.
type TerrainPass struct {
	Terrain TerrainModel
}

func (TerrainPass) Goal() Goal { return GoalTerrain }

// Apply stamps ElevationAdjustment on each placed panel.
func (t TerrainPass) Apply(panels []model.Panel, site model.Site) []model.Panel {
	terrain := t.Terrain
	if terrain == nil {
		terrain = FlatTerrain{}
	}
	desc := terrain.Descriptor(site)

	out := make([]model.Panel, len(panels))
	copy(out, panels)
	for i := range out {
		if out[i].Placed {
			out[i].ElevationAdjustment = terrain.ElevationAdjustment(out[i].X, out[i].Y, desc)
		}
	}
	return out
}

// BalancedPass is the default: material-efficiency ordering followed by a
// grid re-layout of the reordered panels.
type BalancedPass struct {
	Settings model.PlacementSettings
}

func (BalancedPass) Goal() Goal { return GoalBalanced }

// Apply re-sorts by area and re-places on the grid. Panels the grid cannot
// fit are appended unplaced so no panel is lost between passes.
func (b BalancedPass) Apply(panels []model.Panel, site model.Site) []model.Panel {
	sorted := MaterialPass{}.Apply(panels, site)

	placer := GridPlacer{Settings: b.Settings}
	result := placer.Place(sorted, site)

	out := make([]model.Panel, 0, len(panels))
	out = append(out, result.Placed...)
	for _, p := range result.Unplaced {
		p.Placed = false
		out = append(out, p)
	}
	return out
}
