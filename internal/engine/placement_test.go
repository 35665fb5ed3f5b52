package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtaplin21/panelgrid/internal/model"
)

func testSettings() model.PlacementSettings {
	s := model.DefaultSettings()
	s.Margin = 5
	s.Spacing = 2
	return s
}

func makePanels(n int, w, h float64) []model.Panel {
	panels := make([]model.Panel, n)
	for i := range panels {
		panels[i] = model.NewPanel(fmt.Sprintf("%d", i+1), w, h)
	}
	return panels
}

func assertAllInBounds(t *testing.T, panels []model.Panel, site model.Site) {
	t.Helper()
	for _, p := range panels {
		assert.True(t, p.InBounds(site), "panel %s at (%g,%g) out of bounds", p.ID, p.X, p.Y)
	}
}

func TestGridPlacer_RowMajorAdvance(t *testing.T) {
	placer := GridPlacer{Settings: testSettings()}
	site := model.Site{Width: 100, Length: 200}

	result := placer.Place(makePanels(3, 20, 50), site)

	require.Len(t, result.Placed, 3)
	assert.Empty(t, result.Unplaced)

	assert.Equal(t, 5.0, result.Placed[0].X)
	assert.Equal(t, 5.0, result.Placed[0].Y)
	assert.Equal(t, 27.0, result.Placed[1].X)
	assert.Equal(t, 5.0, result.Placed[1].Y)
	assert.Equal(t, 49.0, result.Placed[2].X)
	assertAllInBounds(t, result.Placed, site)
}

func TestGridPlacer_WrapsToNextRow(t *testing.T) {
	placer := GridPlacer{Settings: testSettings()}
	site := model.Site{Width: 50, Length: 200}

	result := placer.Place(makePanels(2, 20, 50), site)

	require.Len(t, result.Placed, 2)
	// Second panel would cross the right margin at x=27, so it wraps.
	assert.Equal(t, 5.0, result.Placed[1].X)
	assert.Equal(t, 57.0, result.Placed[1].Y)
}

func TestGridPlacer_ReturnsUnplacedExplicitly(t *testing.T) {
	placer := GridPlacer{Settings: testSettings()}
	site := model.Site{Width: 100, Length: 60}

	// Only one row of 50ft panels fits a 60ft site length.
	result := placer.Place(makePanels(8, 40, 50), site)

	assert.Len(t, result.Placed, 2)
	assert.Len(t, result.Unplaced, 6)
	for _, p := range result.Unplaced {
		assert.False(t, p.Placed)
	}
}

func TestGridPlacer_PanelWiderThanSiteIsUnplaced(t *testing.T) {
	placer := GridPlacer{Settings: testSettings()}
	site := model.Site{Width: 30, Length: 200}

	wide := makePanels(1, 40, 10)
	narrow := makePanels(1, 10, 10)
	result := placer.Place(append(wide, narrow...), site)

	require.Len(t, result.Unplaced, 1)
	assert.Equal(t, 40.0, result.Unplaced[0].Width)
	// The narrow panel still lands at the origin cursor.
	require.Len(t, result.Placed, 1)
	assert.Equal(t, 5.0, result.Placed[0].X)
}

func TestQuadrantPlacer_RoundRobinWithAlternatingRotation(t *testing.T) {
	placer := QuadrantPlacer{Settings: testSettings()}
	site := model.Site{Width: 200, Length: 200}

	result := placer.Place(makePanels(4, 10, 20), site)

	require.Len(t, result.Placed, 4)
	assert.Empty(t, result.Unplaced)

	assert.Equal(t, 0.0, result.Placed[0].Rotation)
	assert.Equal(t, 90.0, result.Placed[1].Rotation)
	assert.Equal(t, 0.0, result.Placed[2].Rotation)
	assert.Equal(t, 90.0, result.Placed[3].Rotation)

	// Panels in opposite quadrants land in opposite halves of the site.
	assert.Less(t, result.Placed[0].X, site.Width/2)
	assert.Greater(t, result.Placed[3].X, site.Width/2)
	assertAllInBounds(t, result.Placed, site)
}

func TestQuadrantPlacer_DropsOutOfBoundsToUnplaced(t *testing.T) {
	placer := QuadrantPlacer{Settings: testSettings()}
	// Quadrant anchors sit too close to the boundary for 60ft panels.
	site := model.Site{Width: 80, Length: 80}

	result := placer.Place(makePanels(4, 60, 60), site)

	assert.Empty(t, result.Placed)
	assert.Len(t, result.Unplaced, 4)
}

func TestAdaptivePlacer_NoOverlapsAndElevationRecorded(t *testing.T) {
	placer := AdaptivePlacer{Settings: testSettings(), Terrain: FlatTerrain{}}
	site := model.Site{Width: 200, Length: 200, Terrain: model.TerrainComplex}

	result := placer.Place(makePanels(5, 40, 50), site)

	require.Len(t, result.Placed, 5)
	assertAllInBounds(t, result.Placed, site)
	for i, p := range result.Placed {
		assert.Greater(t, p.ElevationAdjustment, 0.0, "complex terrain should record an adjustment")
		for j := i + 1; j < len(result.Placed); j++ {
			assert.False(t, p.Overlaps(result.Placed[j]), "panels %d and %d overlap", i, j)
		}
	}
}

func TestAdaptivePlacer_OversizedPanelUnplaced(t *testing.T) {
	placer := AdaptivePlacer{Settings: testSettings(), Terrain: FlatTerrain{}}
	site := model.Site{Width: 50, Length: 50}

	result := placer.Place(makePanels(1, 100, 100), site)

	assert.Empty(t, result.Placed)
	assert.Len(t, result.Unplaced, 1)
}

func TestSelectStrategy_DecisionOrder(t *testing.T) {
	site := model.Site{Width: 1000, Length: 1000}

	assert.Equal(t, StrategyQuadrant, SelectStrategy(makePanels(4, 10, 10), site))

	// Coverage above 0.8 wins over panel count.
	dense := model.Site{Width: 100, Length: 100}
	assert.Equal(t, StrategyAdaptive, SelectStrategy(makePanels(10, 30, 30), dense))

	assert.Equal(t, StrategyGenetic, SelectStrategy(makePanels(21, 10, 10), site))

	complexSite := site
	complexSite.Terrain = model.TerrainComplex
	assert.Equal(t, StrategyAdaptive, SelectStrategy(makePanels(10, 10, 10), complexSite))

	assert.Equal(t, StrategyGrid, SelectStrategy(makePanels(10, 10, 10), site))
}

func TestNewPlacer_CoversEveryStrategy(t *testing.T) {
	settings := testSettings()
	assert.IsType(t, &GridPlacer{}, NewPlacer(StrategyGrid, settings))
	assert.IsType(t, &QuadrantPlacer{}, NewPlacer(StrategyQuadrant, settings))
	assert.IsType(t, &AdaptivePlacer{}, NewPlacer(StrategyAdaptive, settings))
	assert.IsType(t, &GeneticPlacer{}, NewPlacer(StrategyGenetic, settings))
}
