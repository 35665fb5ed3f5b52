package model

import (
	"encoding/json"
	"fmt"
)

// Status summarizes the outcome of one generation request.
type Status string

const (
	StatusInsufficient Status = "insufficient_information"
	StatusPartial      Status = "partial"
	StatusSuccess      Status = "success"
	StatusOptimal      Status = "optimal"
)

// ActionType tags the concrete action kinds in a generation result.
type ActionType string

const (
	ActionCreatePanel    ActionType = "CREATE_PANEL"
	ActionMovePanel      ActionType = "MOVE_PANEL"
	ActionDeletePanel    ActionType = "DELETE_PANEL"
	ActionOptimizeLayout ActionType = "OPTIMIZE_LAYOUT"
)

// Action is one placement instruction in a generation result. Concrete
// types are CreatePanelAction, MovePanelAction, DeletePanelAction and
// OptimizeLayoutAction.
type Action interface {
	ActionType() ActionType
}

// CreatePanelAction instructs the consumer to create a panel at a position.
type CreatePanelAction struct {
	ID          string  `json:"id"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Rotation    float64 `json:"rotation"`
	PanelNumber string  `json:"panel_number"`
	RollNumber  string  `json:"roll_number"`
	Material    string  `json:"material,omitempty"`
	Thickness   string  `json:"thickness,omitempty"`
	Notes       string  `json:"notes,omitempty"`
	Priority    int     `json:"priority"`
}

func (CreatePanelAction) ActionType() ActionType { return ActionCreatePanel }

// MovePanelAction instructs the consumer to reposition an existing panel.
type MovePanelAction struct {
	PanelID  string   `json:"panel_id"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Rotation *float64 `json:"rotation,omitempty"`
}

func (MovePanelAction) ActionType() ActionType { return ActionMovePanel }

// DeletePanelAction instructs the consumer to remove a panel.
type DeletePanelAction struct {
	PanelID string `json:"panel_id"`
}

func (DeletePanelAction) ActionType() ActionType { return ActionDeletePanel }

// OptimizeLayoutAction is advisory: it tells the rendering consumer which
// optimization strategy the engine applied. It is not consumed by the
// engine itself.
type OptimizeLayoutAction struct {
	Strategy    string `json:"strategy"`
	Constraints Site   `json:"constraints"`
}

func (OptimizeLayoutAction) ActionType() ActionType { return ActionOptimizeLayout }

// taggedAction is the wire form of an Action: the type tag plus the
// concrete payload, flattened.
type taggedAction struct {
	Type    ActionType      `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MarshalActions encodes an ordered action list with explicit type tags.
func MarshalActions(actions []Action) ([]byte, error) {
	tagged := make([]taggedAction, len(actions))
	for i, a := range actions {
		payload, err := json.Marshal(a)
		if err != nil {
			return nil, err
		}
		tagged[i] = taggedAction{Type: a.ActionType(), Payload: payload}
	}
	return json.Marshal(tagged)
}

// UnmarshalActions decodes a tagged action list, matching exhaustively on
// the type tag.
func UnmarshalActions(data []byte) ([]Action, error) {
	var tagged []taggedAction
	if err := json.Unmarshal(data, &tagged); err != nil {
		return nil, err
	}
	actions := make([]Action, 0, len(tagged))
	for _, t := range tagged {
		var (
			a   Action
			err error
		)
		switch t.Type {
		case ActionCreatePanel:
			var v CreatePanelAction
			err = json.Unmarshal(t.Payload, &v)
			a = v
		case ActionMovePanel:
			var v MovePanelAction
			err = json.Unmarshal(t.Payload, &v)
			a = v
		case ActionDeletePanel:
			var v DeletePanelAction
			err = json.Unmarshal(t.Payload, &v)
			a = v
		case ActionOptimizeLayout:
			var v OptimizeLayoutAction
			err = json.Unmarshal(t.Payload, &v)
			a = v
		default:
			return nil, fmt.Errorf("unknown action type %q", t.Type)
		}
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// Analysis summarizes what the engine did for one generation request.
type Analysis struct {
	Strategy        string  `json:"strategy"`
	PanelsPlaced    int     `json:"panels_placed"`
	PanelsUnplaced  int     `json:"panels_unplaced"`
	SiteUtilization float64 `json:"site_utilization"` // fraction of site area covered
	ConflictsFound  int     `json:"conflicts_found"`
	Summary         string  `json:"summary,omitempty"`
}

// GenerationResult is the ephemeral outcome of one generation request.
// It is returned to the caller and never persisted; the persisted artifact
// is the Layout the caller builds by applying Actions.
type GenerationResult struct {
	Status     Status   `json:"status"`
	Confidence float64  `json:"confidence"` // 0-100
	Actions    []Action `json:"-"`
	Analysis   Analysis `json:"analysis"`
	Warnings   []string `json:"warnings,omitempty"`
	Guidance   []string `json:"guidance,omitempty"`

	// Unplaced lists panels no strategy could fit within site bounds.
	// Callers must not assume every synthesized panel produced an action.
	Unplaced []Panel `json:"unplaced,omitempty"`
}
