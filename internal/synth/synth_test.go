package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtaplin21/panelgrid/internal/model"
)

func TestParseDimensions(t *testing.T) {
	cases := []struct {
		in   string
		w, h float64
	}{
		{"20ft x 50ft", 20, 50},
		{"20 ft x 50 ft", 20, 50},
		{"40x100", 40, 100},
		{"15.5ft x 98ft", 15.5, 98},
		{"22.5' x 500'", 22.5, 500},
		{"not specified", 40, 100},
		{"", 40, 100},
		{"huge", 40, 100},
	}
	for _, c := range cases {
		w, h := ParseDimensions(c.in)
		assert.Equal(t, c.w, w, "width for %q", c.in)
		assert.Equal(t, c.h, h, "height for %q", c.in)
	}
}

func TestSynthesize_NoInventoryUsesPlaceholderRolls(t *testing.T) {
	// Three 20x50 panels with no inventory get placeholder rolls and the
	// fallback efficiency.
	panels := Synthesize(
		model.PanelSpecifications{PanelCount: 3, Dimensions: "20ft x 50ft"},
		model.MaterialRequirements{},
		model.RollInventory{},
	)

	require.Len(t, panels, 3)
	wantRolls := []string{"R-101", "R-102", "R-103"}
	for i, p := range panels {
		assert.Equal(t, 20.0, p.Width)
		assert.Equal(t, 50.0, p.Height)
		assert.Equal(t, wantRolls[i], p.RollNumber)
		assert.Equal(t, 0.8, p.RollEfficiency)
		assert.False(t, p.Placed)
	}
}

func TestSynthesize_MaterialFallbacks(t *testing.T) {
	panels := Synthesize(
		model.PanelSpecifications{PanelCount: 1, Dimensions: "40ft x 100ft"},
		model.MaterialRequirements{PrimaryMaterial: "not specified"},
		model.RollInventory{},
	)
	require.Len(t, panels, 1)
	assert.Equal(t, DefaultMaterial, panels[0].Material)
	assert.Equal(t, DefaultThickness, panels[0].Thickness)
	assert.Equal(t, DefaultSeamType, panels[0].SeamType)
}

func TestSynthesize_CopiesMaterialRequirements(t *testing.T) {
	panels := Synthesize(
		model.PanelSpecifications{PanelCount: 2, Dimensions: "40ft x 100ft"},
		model.MaterialRequirements{
			PrimaryMaterial:  "LLDPE",
			Thickness:        "40 mil",
			SeamRequirements: "extrusion weld",
		},
		model.RollInventory{},
	)
	require.Len(t, panels, 2)
	for _, p := range panels {
		assert.Equal(t, "LLDPE", p.Material)
		assert.Equal(t, "40 mil", p.Thickness)
		assert.Equal(t, "extrusion weld", p.SeamType)
	}
}

func TestSynthesize_UsesProvidedPanelNumbers(t *testing.T) {
	panels := Synthesize(
		model.PanelSpecifications{
			PanelCount:   3,
			Dimensions:   "40ft x 100ft",
			PanelNumbers: []string{"P-A", "P-B"},
		},
		model.MaterialRequirements{},
		model.RollInventory{},
	)
	require.Len(t, panels, 3)
	assert.Equal(t, "P-A", panels[0].PanelNumber)
	assert.Equal(t, "P-B", panels[1].PanelNumber)
	// Third panel has no provided number; falls back to its ordinal.
	assert.Equal(t, "3", panels[2].PanelNumber)
}

func TestSynthesize_ZeroCountYieldsNothing(t *testing.T) {
	assert.Empty(t, Synthesize(model.PanelSpecifications{}, model.MaterialRequirements{}, model.RollInventory{}))
}

func TestBestRollFor_PrefersTightestFit(t *testing.T) {
	inv := model.RollInventory{Rolls: []model.Roll{
		{ID: "r1", RollNumber: "R-1", Width: 100, Length: 1000}, // fits, wasteful
		{ID: "r2", RollNumber: "R-2", Width: 25, Length: 60},    // fits, tight
		{ID: "r3", RollNumber: "R-3", Width: 10, Length: 10},    // too small
	}}

	a := BestRollFor(1, inv, 20, 50)
	assert.Equal(t, "R-2", a.RollNumber)
	assert.InDelta(t, (20.0*50.0)/(25.0*60.0), a.Efficiency, 1e-9)
}

func TestBestRollFor_RequiresBothAxes(t *testing.T) {
	inv := model.RollInventory{Rolls: []model.Roll{
		{ID: "r1", RollNumber: "R-1", Width: 100, Length: 10}, // long enough in one axis only
	}}
	a := BestRollFor(4, inv, 20, 50)
	assert.Equal(t, "R-104", a.RollNumber)
	assert.Equal(t, FallbackEfficiency, a.Efficiency)
}

func TestBestRollFor_FallsBackToRollID(t *testing.T) {
	inv := model.RollInventory{Rolls: []model.Roll{
		{ID: "r9", Width: 30, Length: 60},
	}}
	a := BestRollFor(1, inv, 20, 50)
	assert.Equal(t, "r9", a.RollNumber)
}
