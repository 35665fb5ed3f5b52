package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalActions_RoundTrip(t *testing.T) {
	rotation := 90.0
	actions := []Action{
		CreatePanelAction{
			ID: "p1", X: 5, Y: 5, Width: 40, Height: 100,
			PanelNumber: "P-001", RollNumber: "R-101", Priority: 1,
		},
		MovePanelAction{PanelID: "p2", X: 50, Y: 10, Rotation: &rotation},
		DeletePanelAction{PanelID: "p3"},
		OptimizeLayoutAction{Strategy: "balanced", Constraints: Site{Width: 200, Length: 500}},
	}

	data, err := MarshalActions(actions)
	require.NoError(t, err)

	decoded, err := UnmarshalActions(data)
	require.NoError(t, err)
	require.Len(t, decoded, 4)

	create, ok := decoded[0].(CreatePanelAction)
	require.True(t, ok)
	assert.Equal(t, "P-001", create.PanelNumber)
	assert.Equal(t, 1, create.Priority)

	move, ok := decoded[1].(MovePanelAction)
	require.True(t, ok)
	require.NotNil(t, move.Rotation)
	assert.Equal(t, 90.0, *move.Rotation)

	assert.Equal(t, ActionDeletePanel, decoded[2].ActionType())

	optimize, ok := decoded[3].(OptimizeLayoutAction)
	require.True(t, ok)
	assert.Equal(t, 200.0, optimize.Constraints.Width)
}

func TestMarshalActions_OrderAndTags(t *testing.T) {
	actions := []Action{
		CreatePanelAction{ID: "a", Priority: 1},
		CreatePanelAction{ID: "b", Priority: 2},
		OptimizeLayoutAction{Strategy: "material"},
	}

	data, err := MarshalActions(actions)
	require.NoError(t, err)

	var tagged []struct {
		Type ActionType `json:"type"`
	}
	require.NoError(t, json.Unmarshal(data, &tagged))
	require.Len(t, tagged, 3)
	assert.Equal(t, ActionCreatePanel, tagged[0].Type)
	assert.Equal(t, ActionCreatePanel, tagged[1].Type)
	assert.Equal(t, ActionOptimizeLayout, tagged[2].Type)
}

func TestUnmarshalActions_UnknownTypeIsError(t *testing.T) {
	data := []byte(`[{"type":"RESIZE_PANEL","payload":{}}]`)

	_, err := UnmarshalActions(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESIZE_PANEL")
}

func TestMarshalActions_EmptyList(t *testing.T) {
	data, err := MarshalActions(nil)
	require.NoError(t, err)

	decoded, err := UnmarshalActions(data)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}
