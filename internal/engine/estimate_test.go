package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateMaterial(t *testing.T) {
	// Two 10x10 panels with no seam allowance fill exactly two 10x10 rolls.
	panels := makePanels(2, 10, 10)

	est := EstimateMaterial(panels, 10, 10, 0, 10, 500)

	assert.InDelta(t, 200.0, est.TotalPanelArea, 1e-9)
	assert.InDelta(t, 100.0, est.RollArea, 1e-9)
	assert.InDelta(t, 2.0, est.RollsNeededExact, 1e-9)
	assert.Equal(t, 2, est.RollsNeededMin)
	// 10% waste pushes 2.0 rolls past a whole number, so buy three.
	assert.Equal(t, 3, est.RollsWithWaste)
	assert.InDelta(t, 1500.0, est.EstimatedCost, 1e-9)
}

func TestEstimateMaterial_SeamAllowancePadsBothAxes(t *testing.T) {
	panels := makePanels(1, 40, 100)

	est := EstimateMaterial(panels, 22.5, 520, 0.5, 0, 0)

	assert.InDelta(t, 40.5*100.5, est.TotalPanelArea, 1e-9)
	assert.Equal(t, 1, est.RollsNeededMin)
}

func TestEstimateMaterial_WasteNeverBelowMinimum(t *testing.T) {
	panels := makePanels(1, 10, 10)

	est := EstimateMaterial(panels, 100, 100, 0, 0, 0)

	assert.Equal(t, 1, est.RollsNeededMin)
	assert.Equal(t, 1, est.RollsWithWaste)
}

func TestEstimateMaterial_ZeroRollAreaGivesNoCounts(t *testing.T) {
	panels := makePanels(2, 10, 10)

	est := EstimateMaterial(panels, 0, 0, 0, 15, 500)

	assert.InDelta(t, 200.0, est.TotalPanelArea, 1e-9)
	assert.Zero(t, est.RollsNeededMin)
	assert.Zero(t, est.RollsWithWaste)
	assert.Zero(t, est.EstimatedCost)
}
