package store

import (
	"fmt"

	"github.com/dtaplin21/panelgrid/internal/model"
)

// IdentifierStrategy matches a caller-supplied panel identifier against one
// identifying field. Strategies are tried in chain order; the first match
// wins, so an identifier that happens to equal both an id and a panel
// number resolves by id.
type IdentifierStrategy interface {
	// Name labels the strategy in diagnostics.
	Name() string
	// Resolve returns the matched panel, or nil.
	Resolve(l *model.Layout, identifier string) *model.Panel
}

// ExactIDStrategy matches the stable entity id.
type ExactIDStrategy struct{}

func (ExactIDStrategy) Name() string { return "id" }

func (ExactIDStrategy) Resolve(l *model.Layout, identifier string) *model.Panel {
	return l.FindPanelByID(identifier)
}

// RollNumberStrategy matches the roll-number business key.
type RollNumberStrategy struct{}

func (RollNumberStrategy) Name() string { return "roll_number" }

func (RollNumberStrategy) Resolve(l *model.Layout, identifier string) *model.Panel {
	for i := range l.Panels {
		if l.Panels[i].RollNumber != "" && l.Panels[i].RollNumber == identifier {
			return &l.Panels[i]
		}
	}
	return nil
}

// PanelNumberStrategy matches the human panel label. Panel numbers are not
// guaranteed unique across imports; the first match wins.
type PanelNumberStrategy struct{}

func (PanelNumberStrategy) Name() string { return "panel_number" }

func (PanelNumberStrategy) Resolve(l *model.Layout, identifier string) *model.Panel {
	for i := range l.Panels {
		if l.Panels[i].PanelNumber != "" && l.Panels[i].PanelNumber == identifier {
			return &l.Panels[i]
		}
	}
	return nil
}

// DerivedKeyStrategy matches the position-derived key older records were
// addressed by before stable ids existed.
type DerivedKeyStrategy struct{}

func (DerivedKeyStrategy) Name() string { return "derived_key" }

func (DerivedKeyStrategy) Resolve(l *model.Layout, identifier string) *model.Panel {
	for i := range l.Panels {
		if DerivedKey(l.ProjectID, l.Panels[i]) == identifier {
			return &l.Panels[i]
		}
	}
	return nil
}

// DerivedKey builds the legacy position-derived identifier for a panel.
func DerivedKey(projectID string, p model.Panel) string {
	return fmt.Sprintf("panel-%s-%g-%g-%g-%g", projectID, p.X, p.Y, p.Width, p.Height)
}

// DefaultResolutionChain returns the standard ordered fallback chain:
// exact id, then roll number, then panel number, then the derived legacy key.
func DefaultResolutionChain() []IdentifierStrategy {
	return []IdentifierStrategy{
		ExactIDStrategy{},
		RollNumberStrategy{},
		PanelNumberStrategy{},
		DerivedKeyStrategy{},
	}
}

// ResolvePanel runs the chain against a layout and returns the matched panel
// along with the name of the strategy that matched, or nil when nothing did.
func ResolvePanel(chain []IdentifierStrategy, l *model.Layout, identifier string) (*model.Panel, string) {
	for _, s := range chain {
		if p := s.Resolve(l, identifier); p != nil {
			return p, s.Name()
		}
	}
	return nil, ""
}
