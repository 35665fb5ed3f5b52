// Package model defines the core entities of the panel layout engine:
// panels, patches, destructive-test markers, the site they are placed on,
// and the persisted Layout aggregate.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Shape identifies the geometry of a panel entity.
type Shape string

const (
	ShapeRectangle     Shape = "rectangle"
	ShapeRightTriangle Shape = "right-triangle"
	ShapePatch         Shape = "patch"
)

// Valid reports whether s is one of the supported panel shapes.
func (s Shape) Valid() bool {
	switch s {
	case ShapeRectangle, ShapeRightTriangle, ShapePatch:
		return true
	}
	return false
}

// TerrainType classifies the installation site surface.
type TerrainType string

const (
	TerrainFlat    TerrainType = "flat"
	TerrainRolling TerrainType = "rolling"
	TerrainComplex TerrainType = "complex"
)

// Site describes the bounded installation area. Dimensions are in feet,
// with the origin at the top-left corner.
type Site struct {
	Width   float64     `json:"width"`
	Length  float64     `json:"length"`
	Terrain TerrainType `json:"terrain_type,omitempty"`
}

// Area returns the total site area in square feet.
func (s Site) Area() float64 {
	return s.Width * s.Length
}

// Panel represents a placed or unplaced geosynthetic sheet.
// Width and Height are in feet and must be positive. X and Y are only
// meaningful when Placed is true.
type Panel struct {
	ID          string  `json:"id"`
	PanelNumber string  `json:"panel_number"`
	RollNumber  string  `json:"roll_number"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Placed      bool    `json:"placed"`
	Rotation    float64 `json:"rotation"` // degrees, [0, 360)
	Shape       Shape   `json:"shape"`
	Material    string  `json:"material,omitempty"`
	Thickness   string  `json:"thickness,omitempty"`
	SeamType    string  `json:"seam_type,omitempty"`
	Notes       string  `json:"notes,omitempty"`
	Color       string  `json:"color,omitempty"`
	Fill        string  `json:"fill,omitempty"`

	// RollEfficiency records how well the assigned roll matches the panel
	// dimensions (1.0 = no waste). Advisory metadata from synthesis.
	RollEfficiency float64 `json:"roll_efficiency,omitempty"`

	// ElevationAdjustment is set by the adaptive placement strategy and
	// consumed by downstream terrain-aware passes.
	ElevationAdjustment float64 `json:"elevation_adjustment,omitempty"`

	// EstimatedSavings is stamped by the cost optimization pass.
	EstimatedSavings float64 `json:"estimated_savings,omitempty"`
}

// NewPanel creates an unplaced rectangular panel with a generated ID.
func NewPanel(number string, w, h float64) Panel {
	return Panel{
		ID:          uuid.New().String()[:8],
		PanelNumber: number,
		Width:       w,
		Height:      h,
		Shape:       ShapeRectangle,
	}
}

// Area returns the panel's footprint in square feet.
func (p Panel) Area() float64 {
	return p.Width * p.Height
}

// PlacedWidth returns the effective width considering rotation.
// Rotations of 90 and 270 degrees swap the axes.
func (p Panel) PlacedWidth() float64 {
	if rotationSwapsAxes(p.Rotation) {
		return p.Height
	}
	return p.Width
}

// PlacedHeight returns the effective height considering rotation.
func (p Panel) PlacedHeight() float64 {
	if rotationSwapsAxes(p.Rotation) {
		return p.Width
	}
	return p.Height
}

func rotationSwapsAxes(deg float64) bool {
	return deg == 90 || deg == 270
}

// Overlaps reports whether two placed panels' bounding boxes overlap.
// Panels that merely touch edges do not overlap.
func (p Panel) Overlaps(other Panel) bool {
	if !p.Placed || !other.Placed {
		return false
	}
	return p.X < other.X+other.PlacedWidth() &&
		p.X+p.PlacedWidth() > other.X &&
		p.Y < other.Y+other.PlacedHeight() &&
		p.Y+p.PlacedHeight() > other.Y
}

// InBounds reports whether a placed panel lies fully within the site.
func (p Panel) InBounds(site Site) bool {
	return p.X >= 0 && p.Y >= 0 &&
		p.X+p.PlacedWidth() <= site.Width &&
		p.Y+p.PlacedHeight() <= site.Length
}

// Patch represents a circular repair marker. X and Y locate the center.
// The radius is derived from the layout grid unit, not user-set.
type Patch struct {
	ID          string  `json:"id"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Radius      float64 `json:"radius"`
	Rotation    float64 `json:"rotation"`
	PatchNumber string  `json:"patch_number"`
	Material    string  `json:"material,omitempty"`
	Thickness   string  `json:"thickness,omitempty"`
	Notes       string  `json:"notes,omitempty"`
	Valid       bool    `json:"is_valid"`
}

// NewPatch creates a patch marker with a generated ID and the given radius.
func NewPatch(number string, x, y, radius float64) Patch {
	return Patch{
		ID:          uuid.New().String()[:8],
		X:           x,
		Y:           y,
		Radius:      radius,
		PatchNumber: number,
		Valid:       true,
	}
}

// TestResult is the outcome of a destructive sample test.
type TestResult string

const (
	TestPending TestResult = "pending"
	TestPass    TestResult = "pass"
	TestFail    TestResult = "fail"
)

// Valid reports whether r is a recognized test result.
func (r TestResult) Valid() bool {
	switch r {
	case TestPending, TestPass, TestFail:
		return true
	}
	return false
}

// DestructiveTest represents a square sample-location marker.
type DestructiveTest struct {
	ID       string     `json:"id"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Width    float64    `json:"width"`
	Height   float64    `json:"height"`
	Rotation float64    `json:"rotation"`
	SampleID string     `json:"sample_id"`
	Result   TestResult `json:"test_result"`
	Notes    string     `json:"notes,omitempty"`
}

// NewDestructiveTest creates a test marker with a generated ID and a
// pending result.
func NewDestructiveTest(sampleID string, x, y, size float64) DestructiveTest {
	return DestructiveTest{
		ID:       uuid.New().String()[:8],
		X:        x,
		Y:        y,
		Width:    size,
		Height:   size,
		SampleID: sampleID,
		Result:   TestPending,
	}
}

// Layout is the persisted aggregate for one project: all panels, patches
// and destructive tests plus the canvas bounds. It is created on first
// entity insertion and mutated exclusively through the store mutation API.
type Layout struct {
	ProjectID        string            `json:"project_id"`
	Panels           []Panel           `json:"panels"`
	Patches          []Patch           `json:"patches"`
	DestructiveTests []DestructiveTest `json:"destructive_tests"`
	Width            float64           `json:"width"`
	Height           float64           `json:"height"`
	Scale            float64           `json:"scale"`
	LastUpdated      time.Time         `json:"last_updated"`
}

// NewLayout creates an empty layout for a project with the given canvas bounds.
func NewLayout(projectID string, width, height float64) Layout {
	return Layout{
		ProjectID:        projectID,
		Panels:           []Panel{},
		Patches:          []Patch{},
		DestructiveTests: []DestructiveTest{},
		Width:            width,
		Height:           height,
		Scale:            1.0,
		LastUpdated:      time.Now().UTC(),
	}
}

// Site returns the layout canvas as a Site for bounds checks.
func (l Layout) Site() Site {
	return Site{Width: l.Width, Length: l.Height}
}

// FindPanelByID returns a pointer to the panel with the given ID, or nil.
func (l *Layout) FindPanelByID(id string) *Panel {
	for i := range l.Panels {
		if l.Panels[i].ID == id {
			return &l.Panels[i]
		}
	}
	return nil
}

// FindPatchByID returns a pointer to the patch with the given ID, or nil.
func (l *Layout) FindPatchByID(id string) *Patch {
	for i := range l.Patches {
		if l.Patches[i].ID == id {
			return &l.Patches[i]
		}
	}
	return nil
}

// FindTestByID returns a pointer to the destructive test with the given ID, or nil.
func (l *Layout) FindTestByID(id string) *DestructiveTest {
	for i := range l.DestructiveTests {
		if l.DestructiveTests[i].ID == id {
			return &l.DestructiveTests[i]
		}
	}
	return nil
}

// PanelIDs returns the IDs of all panels, used for NotFound diagnostics.
func (l *Layout) PanelIDs() []string {
	ids := make([]string, len(l.Panels))
	for i, p := range l.Panels {
		ids[i] = p.ID
	}
	return ids
}

// UsedArea returns the total area covered by placed panels in square feet.
func (l Layout) UsedArea() float64 {
	var total float64
	for _, p := range l.Panels {
		if p.Placed {
			total += p.Area()
		}
	}
	return total
}

// Utilization returns the fraction of the canvas covered by placed panels.
func (l Layout) Utilization() float64 {
	area := l.Width * l.Height
	if area == 0 {
		return 0
	}
	return l.UsedArea() / area
}

// ConflictType classifies a detected placement conflict.
type ConflictType string

const (
	ConflictOverlap  ConflictType = "overlap"
	ConflictBoundary ConflictType = "boundary"
)

// Severity grades how serious a conflict repair was.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Conflict is a structured record of one detected-and-repaired placement
// conflict, surfaced through GenerationResult warnings.
type Conflict struct {
	Type     ConflictType `json:"type"`
	IDs      []string     `json:"ids"`
	Severity Severity     `json:"severity"`
	Detail   string       `json:"detail,omitempty"`
}
