package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtaplin21/panelgrid/internal/model"
)

func chainLayout() model.Layout {
	return model.Layout{
		ProjectID: "proj-1",
		Panels: []model.Panel{
			{ID: "p1", RollNumber: "R-1", PanelNumber: "5", X: 10, Y: 20, Width: 40, Height: 100},
			{ID: "p2", RollNumber: "R-2", PanelNumber: "6", X: 60, Y: 20, Width: 40, Height: 100},
		},
	}
}

func TestResolvePanel_ExactIDWins(t *testing.T) {
	l := chainLayout()

	p, strategy := ResolvePanel(DefaultResolutionChain(), &l, "p1")

	require.NotNil(t, p)
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "id", strategy)
}

func TestResolvePanel_FallsBackToRollNumber(t *testing.T) {
	l := chainLayout()

	p, strategy := ResolvePanel(DefaultResolutionChain(), &l, "R-2")

	require.NotNil(t, p)
	assert.Equal(t, "p2", p.ID)
	assert.Equal(t, "roll_number", strategy)
}

func TestResolvePanel_FallsBackToPanelNumber(t *testing.T) {
	l := chainLayout()

	p, strategy := ResolvePanel(DefaultResolutionChain(), &l, "5")

	require.NotNil(t, p)
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "panel_number", strategy)
}

func TestResolvePanel_DerivedLegacyKey(t *testing.T) {
	l := chainLayout()

	key := DerivedKey("proj-1", l.Panels[1])
	assert.Equal(t, "panel-proj-1-60-20-40-100", key)

	p, strategy := ResolvePanel(DefaultResolutionChain(), &l, key)

	require.NotNil(t, p)
	assert.Equal(t, "p2", p.ID)
	assert.Equal(t, "derived_key", strategy)
}

func TestResolvePanel_OrderIsIDBeforeBusinessKeys(t *testing.T) {
	// A panel whose id collides with another panel's panel number must
	// resolve by id.
	l := model.Layout{
		ProjectID: "proj-1",
		Panels: []model.Panel{
			{ID: "5", PanelNumber: "a"},
			{ID: "p1", PanelNumber: "5"},
		},
	}

	p, strategy := ResolvePanel(DefaultResolutionChain(), &l, "5")

	require.NotNil(t, p)
	assert.Equal(t, "5", p.ID)
	assert.Equal(t, "id", strategy)
}

func TestResolvePanel_NoMatch(t *testing.T) {
	l := chainLayout()

	p, strategy := ResolvePanel(DefaultResolutionChain(), &l, "nope")

	assert.Nil(t, p)
	assert.Empty(t, strategy)
}

func TestResolvePanel_EmptyFieldsNeverMatchEmptyIdentifier(t *testing.T) {
	l := model.Layout{
		ProjectID: "proj-1",
		Panels:    []model.Panel{{ID: "p1"}},
	}

	p, _ := ResolvePanel(DefaultResolutionChain(), &l, "")

	assert.Nil(t, p, "blank roll and panel numbers must not match a blank identifier")
}
