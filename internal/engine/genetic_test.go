package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtaplin21/panelgrid/internal/model"
)

func geneticSettings() model.PlacementSettings {
	s := testSettings()
	s.Genetic = model.GeneticConfig{
		PopulationSize: 10,
		Generations:    5,
		MutationRate:   0.1,
		Seed:           42,
	}
	return s
}

func TestGeneticPlacer_AllCandidatesStayInBounds(t *testing.T) {
	placer := GeneticPlacer{Settings: geneticSettings(), Objective: UtilizationObjective{}}
	site := model.Site{Width: 500, Length: 500}

	result := placer.Place(makePanels(25, 40, 50), site)

	require.Len(t, result.Placed, 25)
	assert.Empty(t, result.Unplaced)
	assertAllInBounds(t, result.Placed, site)
}

func TestGeneticPlacer_Deterministic(t *testing.T) {
	site := model.Site{Width: 500, Length: 500}
	panels := makePanels(10, 40, 50)

	a := GeneticPlacer{Settings: geneticSettings()}
	b := GeneticPlacer{Settings: geneticSettings()}

	first := a.Place(panels, site)
	second := b.Place(panels, site)

	require.Len(t, second.Placed, len(first.Placed))
	for i := range first.Placed {
		assert.Equal(t, first.Placed[i].X, second.Placed[i].X)
		assert.Equal(t, first.Placed[i].Y, second.Placed[i].Y)
		assert.Equal(t, first.Placed[i].Rotation, second.Placed[i].Rotation)
	}
}

func TestGeneticPlacer_OversizedPanelUnplacedBeforeSearch(t *testing.T) {
	placer := GeneticPlacer{Settings: geneticSettings()}
	site := model.Site{Width: 100, Length: 100}

	panels := append(makePanels(3, 40, 50), model.NewPanel("big", 300, 300))
	result := placer.Place(panels, site)

	assert.Len(t, result.Placed, 3)
	require.Len(t, result.Unplaced, 1)
	assert.Equal(t, "big", result.Unplaced[0].PanelNumber)
}

func TestGeneticPlacer_RotationGeneUsedWhenOnlyRotatedFits(t *testing.T) {
	placer := GeneticPlacer{Settings: geneticSettings()}
	// 80 wide does not fit a 60ft-wide site, but rotated to 80 tall it does.
	site := model.Site{Width: 60, Length: 100}

	result := placer.Place(makePanels(1, 80, 40), site)

	require.Len(t, result.Placed, 1)
	assert.Equal(t, 90.0, result.Placed[0].Rotation)
	assertAllInBounds(t, result.Placed, site)
}

// countingObjective verifies the objective is injectable and consulted for
// every candidate evaluation.
type countingObjective struct {
	calls *int
}

func (c countingObjective) Score(panels []model.Panel, site model.Site) float64 {
	*c.calls++
	return UtilizationObjective{}.Score(panels, site)
}

func TestGeneticPlacer_ObjectiveIsInjectable(t *testing.T) {
	calls := 0
	placer := GeneticPlacer{
		Settings:  geneticSettings(),
		Objective: countingObjective{calls: &calls},
	}
	site := model.Site{Width: 500, Length: 500}

	placer.Place(makePanels(5, 40, 50), site)

	// Initial population plus offspring in each generation.
	assert.Greater(t, calls, 10)
}

func TestUtilizationObjective_PenalizesOverlap(t *testing.T) {
	site := model.Site{Width: 100, Length: 100}

	separated := []model.Panel{
		{ID: "a", Width: 20, Height: 20, X: 0, Y: 0, Placed: true},
		{ID: "b", Width: 20, Height: 20, X: 50, Y: 50, Placed: true},
	}
	overlapping := []model.Panel{
		{ID: "a", Width: 20, Height: 20, X: 0, Y: 0, Placed: true},
		{ID: "b", Width: 20, Height: 20, X: 10, Y: 10, Placed: true},
	}

	obj := UtilizationObjective{}
	assert.Greater(t, obj.Score(separated, site), obj.Score(overlapping, site))
}

func TestCrossoverMidpoint_SplicesParents(t *testing.T) {
	p1 := individual{genes: []placementGene{{x: 1}, {x: 2}, {x: 3}, {x: 4}}}
	p2 := individual{genes: []placementGene{{x: 5}, {x: 6}, {x: 7}, {x: 8}}}

	child := crossoverMidpoint(p1, p2)

	require.Len(t, child.genes, 4)
	assert.Equal(t, 1.0, child.genes[0].x)
	assert.Equal(t, 2.0, child.genes[1].x)
	assert.Equal(t, 7.0, child.genes[2].x)
	assert.Equal(t, 8.0, child.genes[3].x)
}
