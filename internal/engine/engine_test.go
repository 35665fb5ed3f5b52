package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtaplin21/panelgrid/internal/model"
)

func completeRequirements() model.Requirements {
	return model.Requirements{
		PanelSpecs: model.PanelSpecifications{
			PanelCount:   3,
			Dimensions:   "20ft x 50ft",
			RollNumbers:  []string{"R-101", "R-102", "R-103"},
			PanelNumbers: []string{"P-001", "P-002", "P-003"},
		},
		Material: model.MaterialRequirements{
			PrimaryMaterial:  "HDPE",
			Thickness:        "60 mil",
			SeamRequirements: "fusion weld",
		},
		RollInventory: model.RollInventory{Rolls: []model.Roll{
			{ID: "r1", RollNumber: "R-101", Width: 22.5, Length: 520},
		}},
		Site:              model.Site{Width: 200, Length: 500, Terrain: model.TerrainFlat},
		InstallationNotes: "install east to west",
	}
}

func TestGenerate_InsufficientRequirementsReturnGuidanceNotError(t *testing.T) {
	result := New().Generate(model.Requirements{})

	assert.Equal(t, model.StatusInsufficient, result.Status)
	assert.Zero(t, result.Confidence)
	assert.Empty(t, result.Actions)
	assert.NotEmpty(t, result.Guidance)
}

func TestGenerate_NoSynthesizablePanelsIsInsufficient(t *testing.T) {
	// Enough extracted fields to clear the gate, but a zero panel count
	// means nothing can be synthesized.
	req := model.Requirements{
		PanelSpecs: model.PanelSpecifications{
			Dimensions:   "20ft x 50ft",
			RollNumbers:  []string{"R-101"},
			PanelNumbers: []string{"P-001"},
		},
	}

	result := New().Generate(req)

	assert.Equal(t, model.StatusInsufficient, result.Status)
	assert.GreaterOrEqual(t, result.Confidence, 30.0)
	assert.Empty(t, result.Actions)
}

func TestGenerate_CompleteRequirementsProduceFullLayout(t *testing.T) {
	result := New().Generate(completeRequirements())

	assert.Equal(t, model.StatusOptimal, result.Status)
	assert.Equal(t, 100.0, result.Confidence)
	assert.Empty(t, result.Unplaced)
	assert.Equal(t, 3, result.Analysis.PanelsPlaced)
	assert.Zero(t, result.Analysis.PanelsUnplaced)

	// One create per panel plus the trailing advisory optimization record.
	require.Len(t, result.Actions, 4)
	for i := 0; i < 3; i++ {
		create, ok := result.Actions[i].(model.CreatePanelAction)
		require.True(t, ok, "action %d should be a panel creation", i)
		assert.Equal(t, i+1, create.Priority)
		assert.NotEmpty(t, create.PanelNumber)
		assert.NotEmpty(t, create.RollNumber)
	}
	assert.Equal(t, model.ActionOptimizeLayout, result.Actions[3].ActionType())
}

func TestGenerate_SmallPanelCountSelectsQuadrantStrategy(t *testing.T) {
	result := New().Generate(completeRequirements())

	assert.Equal(t, string(StrategyQuadrant), result.Analysis.Strategy)
}

func TestGenerate_MissingSiteIsDerivedWithWarning(t *testing.T) {
	req := completeRequirements()
	req.Site = model.Site{}

	result := New().Generate(req)

	assert.NotEqual(t, model.StatusInsufficient, result.Status)
	assert.Equal(t, 3, result.Analysis.PanelsPlaced)
	assert.Equal(t, string(StrategyGrid), result.Analysis.Strategy)
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "site dimensions missing") {
			found = true
		}
	}
	assert.True(t, found, "expected a derived-site warning, got %v", result.Warnings)
}

func TestGenerate_UnplacedPanelsDowngradeToPartial(t *testing.T) {
	req := completeRequirements()
	req.PanelSpecs.PanelCount = 8
	req.PanelSpecs.Dimensions = "40ft x 50ft"
	req.Site = model.Site{Width: 100, Length: 60, Terrain: model.TerrainFlat}

	result := New().Generate(req)

	assert.Equal(t, model.StatusPartial, result.Status)
	assert.NotEmpty(t, result.Unplaced)
	assert.Equal(t, len(result.Unplaced), result.Analysis.PanelsUnplaced)
	for _, p := range result.Unplaced {
		assert.False(t, p.Placed)
	}
}

func TestGenerate_PartialConfidenceBand(t *testing.T) {
	req := model.Requirements{
		PanelSpecs: model.PanelSpecifications{
			PanelCount: 3,
			Dimensions: "20ft x 50ft",
		},
	}

	result := New().Generate(req)

	assert.Equal(t, model.StatusPartial, result.Status)
	assert.Equal(t, 40.0, result.Confidence)
	assert.NotEmpty(t, result.Actions)
	assert.NotEmpty(t, result.Guidance, "partial results still report what is missing")
}
