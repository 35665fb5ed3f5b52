package engine

import (
	"fmt"
	"math"

	"github.com/dtaplin21/panelgrid/internal/gate"
	"github.com/dtaplin21/panelgrid/internal/model"
	"github.com/dtaplin21/panelgrid/internal/synth"
)

// Engine runs the full generation pipeline: requirements gate, panel
// synthesis, strategy selection, placement, optimization and conflict
// resolution. All stages are pure, CPU-bound computations; the engine
// holds configuration only and is safe to share across requests.
type Engine struct {
	Settings   model.PlacementSettings
	Thresholds gate.Thresholds

	// Goal selects the optimization pass; balanced when empty.
	Goal Goal

	// Terrain, Cost and Objective override the documented stand-in models
	// when a caller has real data. Nil selects the defaults.
	Terrain   TerrainModel
	Cost      CostModel
	Objective PlacementObjective
}

// New returns an engine with default settings and thresholds.
func New() *Engine {
	return &Engine{
		Settings:   model.DefaultSettings(),
		Thresholds: gate.DefaultThresholds(),
		Goal:       GoalBalanced,
	}
}

// Generate produces a layout proposal for the given requirements snapshot.
// An insufficient-information outcome is a normal result, not an error:
// the caller gets guidance listing the missing inputs and zero actions.
func (e *Engine) Generate(req model.Requirements) model.GenerationResult {
	confidence := gate.Score(req)

	if confidence < e.Thresholds.Low {
		return model.GenerationResult{
			Status:     model.StatusInsufficient,
			Confidence: confidence,
			Guidance:   gate.Guidance(gate.Missing(req)),
			Analysis:   model.Analysis{Summary: "requirements too incomplete to generate a layout"},
		}
	}

	var warnings []string

	panels := synth.Synthesize(req.PanelSpecs, req.Material, req.RollInventory)
	if len(panels) == 0 {
		return model.GenerationResult{
			Status:     model.StatusInsufficient,
			Confidence: confidence,
			Guidance:   gate.Guidance(gate.Missing(req)),
			Analysis:   model.Analysis{Summary: "no panels could be synthesized from the requirements"},
		}
	}

	site := req.Site
	derived := false
	if site.Width <= 0 || site.Length <= 0 {
		site = deriveSite(panels, e.Settings)
		derived = true
		warnings = append(warnings, fmt.Sprintf(
			"site dimensions missing; derived %gx%g ft bounds from panel dimensions", site.Width, site.Length))
	}

	strategy := SelectStrategy(panels, site)
	if derived {
		// Derived bounds are sized for a row-major layout; strategies that
		// spread panels toward the boundary would drop them.
		strategy = StrategyGrid
	}
	placer := e.placer(strategy)
	placement := placer.Place(panels, site)

	goal := e.Goal
	if goal == "" {
		goal = GoalBalanced
	}
	optimized := e.pass(goal).Apply(placement.Placed, site)

	// Optimization passes may re-place or only reorder; split out anything
	// a pass could not keep placed.
	placed := optimized[:0:0]
	unplaced := placement.Unplaced
	for _, p := range optimized {
		if p.Placed {
			placed = append(placed, p)
		} else {
			unplaced = append(unplaced, p)
		}
	}

	resolved, conflicts := Resolve(placed, site, e.Settings.ConflictGap)
	warnings = append(warnings, FormatConflictWarnings(conflicts)...)

	if len(unplaced) > 0 {
		warnings = append(warnings, fmt.Sprintf("%d panel(s) could not be placed within site bounds", len(unplaced)))
	}

	actions := buildActions(resolved, goal, site)

	status := e.Thresholds.StatusFor(confidence)
	if len(unplaced) > 0 && (status == model.StatusSuccess || status == model.StatusOptimal) {
		status = model.StatusPartial
	}

	var covered float64
	for _, p := range resolved {
		covered += p.Area()
	}
	utilization := 0.0
	if site.Area() > 0 {
		utilization = covered / site.Area()
	}

	return model.GenerationResult{
		Status:     status,
		Confidence: confidence,
		Actions:    actions,
		Analysis: model.Analysis{
			Strategy:        string(strategy),
			PanelsPlaced:    len(resolved),
			PanelsUnplaced:  len(unplaced),
			SiteUtilization: utilization,
			ConflictsFound:  len(conflicts),
			Summary: fmt.Sprintf("placed %d of %d panels with the %s strategy",
				len(resolved), len(panels), strategy),
		},
		Warnings: warnings,
		Guidance: gate.Guidance(gate.Missing(req)),
		Unplaced: unplaced,
	}
}

// placer builds the strategy placer, honoring injected models.
func (e *Engine) placer(s Strategy) Placer {
	switch s {
	case StrategyAdaptive:
		terrain := e.Terrain
		if terrain == nil {
			terrain = FlatTerrain{}
		}
		return &AdaptivePlacer{Settings: e.Settings, Terrain: terrain}
	case StrategyGenetic:
		objective := e.Objective
		if objective == nil {
			objective = UtilizationObjective{}
		}
		return &GeneticPlacer{Settings: e.Settings, Objective: objective}
	default:
		return NewPlacer(s, e.Settings)
	}
}

// pass builds the optimization pass, honoring injected models.
func (e *Engine) pass(goal Goal) OptimizationPass {
	switch goal {
	case GoalCost:
		m := e.Cost
		if m == nil {
			m = DefaultCostModel()
		}
		return CostPass{Model: m}
	case GoalTerrain:
		terrain := e.Terrain
		if terrain == nil {
			terrain = FlatTerrain{}
		}
		return TerrainPass{Terrain: terrain}
	default:
		return NewPass(goal, e.Settings)
	}
}

// deriveSite synthesizes site bounds large enough to grid-place all panels
// when the requirements carry no usable site dimensions.
func deriveSite(panels []model.Panel, settings model.PlacementSettings) model.Site {
	cols := int(math.Ceil(math.Sqrt(float64(len(panels)))))
	if cols < 1 {
		cols = 1
	}
	rows := int(math.Ceil(float64(len(panels)) / float64(cols)))

	var maxW, maxH float64
	for _, p := range panels {
		maxW = math.Max(maxW, p.Width)
		maxH = math.Max(maxH, p.Height)
	}

	return model.Site{
		Width:  float64(cols)*(maxW+settings.Spacing) + 2*settings.Margin,
		Length: float64(rows)*(maxH+settings.Spacing) + 2*settings.Margin,
	}
}

// buildActions converts placed panels into the ordered outbound action
// list, finishing with the advisory optimization record for the renderer.
func buildActions(placed []model.Panel, goal Goal, site model.Site) []model.Action {
	actions := make([]model.Action, 0, len(placed)+1)
	for i, p := range placed {
		actions = append(actions, model.CreatePanelAction{
			ID:          p.ID,
			X:           p.X,
			Y:           p.Y,
			Width:       p.Width,
			Height:      p.Height,
			Rotation:    p.Rotation,
			PanelNumber: p.PanelNumber,
			RollNumber:  p.RollNumber,
			Material:    p.Material,
			Thickness:   p.Thickness,
			Notes:       p.Notes,
			Priority:    i + 1,
		})
	}
	if len(placed) > 0 {
		actions = append(actions, model.OptimizeLayoutAction{
			Strategy:    string(goal),
			Constraints: site,
		})
	}
	return actions
}
