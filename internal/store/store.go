// Package store implements the persisted Layout aggregate and its mutation
// API: panel, patch and destructive-test CRUD against one JSON document per
// project. Every operation is a whole-document read-modify-write; an
// in-process lock serializes mutations, cross-process safety is the
// persistence layer's problem and is documented, not solved, here.
package store

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/dtaplin21/panelgrid/internal/model"
)

// Default canvas bounds for layouts created implicitly on first insertion,
// in feet.
const (
	DefaultCanvasWidth  = 1000.0
	DefaultCanvasHeight = 1000.0
)

// Store is the mutation API over persisted layouts.
type Store struct {
	db    Persistence
	chain []IdentifierStrategy
	mu    sync.Mutex

	// Settings supplies derived constants such as the patch radius.
	Settings model.PlacementSettings

	// CanvasWidth and CanvasHeight size layouts created on first insertion.
	CanvasWidth  float64
	CanvasHeight float64

	// CoerceNonFinite switches MovePanel from rejecting NaN/Inf coordinates
	// to the legacy behavior of coercing them to 0 with a warning.
	CoerceNonFinite bool
}

// NewStore returns a store over the given persistence with the default
// identifier-resolution chain and canvas bounds.
func NewStore(db Persistence) *Store {
	return &Store{
		db:           db,
		chain:        DefaultResolutionChain(),
		Settings:     model.DefaultSettings(),
		CanvasWidth:  DefaultCanvasWidth,
		CanvasHeight: DefaultCanvasHeight,
	}
}

// PanelInput carries caller-supplied fields for panel creation. Zero-value
// dimensions select the shape's defaults.
type PanelInput struct {
	PanelNumber string  `json:"panel_number"`
	RollNumber  string  `json:"roll_number"`
	Shape       string  `json:"shape"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Rotation    float64 `json:"rotation"`
	Material    string  `json:"material"`
	Thickness   string  `json:"thickness"`
	Notes       string  `json:"notes"`
	Color       string  `json:"color"`
	Fill        string  `json:"fill"`
}

// MoveRequest carries a panel reposition. Rotation is optional.
type MoveRequest struct {
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Rotation *float64 `json:"rotation,omitempty"`
}

// GetLayout returns the persisted layout for a project.
func (s *Store) GetLayout(projectID string) (model.Layout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok, err := s.db.Load(projectID)
	if err != nil {
		return model.Layout{}, err
	}
	if !ok {
		return model.Layout{}, notFound("layout", projectID, nil)
	}
	return l, nil
}

// CreatePanel validates the input, fills shape defaults, assigns a fresh id
// and appends the panel to the project layout, creating the layout on first
// insertion.
func (s *Store) CreatePanel(projectID string, in PanelInput) (model.Panel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.loadOrCreate(projectID)
	if err != nil {
		return model.Panel{}, err
	}

	p, err := s.buildPanel(l, in)
	if err != nil {
		return model.Panel{}, err
	}

	l.Panels = append(l.Panels, p)
	if err := s.save(l); err != nil {
		return model.Panel{}, err
	}
	return p, nil
}

// BatchResult is the per-item outcome of a batch creation.
type BatchResult struct {
	Index int
	Panel model.Panel
	Err   error
}

// BatchCreatePanels applies CreatePanel semantics per item, collecting
// per-item outcomes. Partial success is expected and persisted; failed
// items are reported, not rolled back.
func (s *Store) BatchCreatePanels(projectID string, items []PanelInput) ([]BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.loadOrCreate(projectID)
	if err != nil {
		return nil, err
	}

	results := make([]BatchResult, len(items))
	created := 0
	for i, in := range items {
		p, err := s.buildPanel(l, in)
		results[i] = BatchResult{Index: i, Panel: p, Err: err}
		if err != nil {
			continue
		}
		l.Panels = append(l.Panels, p)
		created++
	}

	if created > 0 {
		if err := s.save(l); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// MovePanel repositions a panel resolved through the identifier fallback
// chain. Non-finite coordinates are rejected unless CoerceNonFinite is set,
// in which case they are coerced to 0 and reported in the returned warnings.
func (s *Store) MovePanel(projectID, identifier string, mv MoveRequest) (model.Panel, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok, err := s.db.Load(projectID)
	if err != nil {
		return model.Panel{}, nil, err
	}
	if !ok {
		return model.Panel{}, nil, notFound("layout", projectID, nil)
	}

	p, _ := ResolvePanel(s.chain, &l, identifier)
	if p == nil {
		return model.Panel{}, nil, notFound("panel", identifier, l.PanelIDs())
	}

	var warnings []string
	x, y := mv.X, mv.Y
	if !finite(x) || !finite(y) {
		if !s.CoerceNonFinite {
			return model.Panel{}, nil, invalid("position", "x and y must be finite numbers")
		}
		if !finite(x) {
			x = 0
		}
		if !finite(y) {
			y = 0
		}
		warnings = append(warnings, fmt.Sprintf(
			"non-finite position for panel %s coerced to (%g, %g)", p.ID, x, y))
	}

	if mv.Rotation != nil {
		r := *mv.Rotation
		if !finite(r) || r < 0 || r >= 360 {
			return model.Panel{}, nil, invalid("rotation", "must be in [0, 360)")
		}
		p.Rotation = r
	}

	p.X = x
	p.Y = y
	p.Placed = true

	if err := s.save(l); err != nil {
		return model.Panel{}, nil, err
	}
	return *p, warnings, nil
}

// panelUpdatable is the whitelist of panel fields the update operation may
// touch.
var panelUpdatable = map[string]bool{
	"width": true, "height": true, "rotation": true, "x": true, "y": true,
	"panelNumber": true, "rollNumber": true, "shape": true, "material": true,
	"thickness": true, "notes": true, "color": true, "fill": true,
}

// UpdatePanelProperties applies a whitelisted partial update to a panel
// addressed by exact id. Unknown fields and empty updates are rejected.
func (s *Store) UpdatePanelProperties(projectID, id string, updates map[string]any) (model.Panel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok, err := s.db.Load(projectID)
	if err != nil {
		return model.Panel{}, err
	}
	if !ok {
		return model.Panel{}, notFound("layout", projectID, nil)
	}

	p := l.FindPanelByID(id)
	if p == nil {
		return model.Panel{}, notFound("panel", id, l.PanelIDs())
	}

	if len(updates) == 0 {
		return model.Panel{}, invalid("updates", "no updatable fields present")
	}
	for field := range updates {
		if !panelUpdatable[field] {
			return model.Panel{}, invalid(field, "not an updatable panel field")
		}
	}

	// Validate onto a copy, commit only when every field passes.
	cp := *p
	for field, value := range updates {
		if err := applyPanelField(&cp, field, value); err != nil {
			return model.Panel{}, err
		}
	}
	*p = cp

	if err := s.save(l); err != nil {
		return model.Panel{}, err
	}
	return *p, nil
}

func applyPanelField(p *model.Panel, field string, value any) error {
	switch field {
	case "width", "height":
		v, ok := floatValue(value)
		if !ok || !finite(v) || v <= 0 {
			return invalid(field, "must be a positive finite number")
		}
		if field == "width" {
			p.Width = v
		} else {
			p.Height = v
		}
	case "x", "y":
		v, ok := floatValue(value)
		if !ok || !finite(v) || v < 0 {
			return invalid(field, "must be a non-negative finite number")
		}
		if field == "x" {
			p.X = v
		} else {
			p.Y = v
		}
	case "rotation":
		v, ok := floatValue(value)
		if !ok || !finite(v) || v < 0 || v >= 360 {
			return invalid(field, "must be in [0, 360)")
		}
		p.Rotation = v
	case "shape":
		v, ok := value.(string)
		if !ok || !model.Shape(v).Valid() {
			return invalid(field, "must be one of rectangle, right-triangle, patch")
		}
		p.Shape = model.Shape(v)
	case "panelNumber", "rollNumber", "material", "thickness", "notes", "color", "fill":
		v, ok := value.(string)
		if !ok {
			return invalid(field, "must be a string")
		}
		switch field {
		case "panelNumber":
			p.PanelNumber = v
		case "rollNumber":
			p.RollNumber = v
		case "material":
			p.Material = v
		case "thickness":
			p.Thickness = v
		case "notes":
			p.Notes = v
		case "color":
			p.Color = v
		case "fill":
			p.Fill = v
		}
	}
	return nil
}

// DeletePanel removes a panel by exact id.
func (s *Store) DeletePanel(projectID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok, err := s.db.Load(projectID)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("layout", projectID, nil)
	}

	for i := range l.Panels {
		if l.Panels[i].ID == id {
			l.Panels = append(l.Panels[:i], l.Panels[i+1:]...)
			return s.save(l)
		}
	}
	return notFound("panel", id, l.PanelIDs())
}

// PatchInput carries caller-supplied fields for patch creation. The radius
// is derived from the grid unit, never caller-set.
type PatchInput struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	PatchNumber string  `json:"patch_number"`
	Material    string  `json:"material"`
	Thickness   string  `json:"thickness"`
	Notes       string  `json:"notes"`
}

// CreatePatch appends a circular repair marker centered at (x, y).
func (s *Store) CreatePatch(projectID string, in PatchInput) (model.Patch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !finite(in.X) || !finite(in.Y) || in.X < 0 || in.Y < 0 {
		return model.Patch{}, invalid("position", "x and y must be non-negative finite numbers")
	}

	l, err := s.loadOrCreate(projectID)
	if err != nil {
		return model.Patch{}, err
	}

	p := model.NewPatch(in.PatchNumber, in.X, in.Y, s.Settings.PatchRadius())
	p.Material = in.Material
	p.Thickness = in.Thickness
	p.Notes = in.Notes

	l.Patches = append(l.Patches, p)
	if err := s.save(l); err != nil {
		return model.Patch{}, err
	}
	return p, nil
}

var patchUpdatable = map[string]bool{
	"x": true, "y": true, "rotation": true, "patchNumber": true,
	"material": true, "thickness": true, "notes": true, "isValid": true,
}

// UpdatePatchProperties applies a whitelisted partial update to a patch.
func (s *Store) UpdatePatchProperties(projectID, id string, updates map[string]any) (model.Patch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok, err := s.db.Load(projectID)
	if err != nil {
		return model.Patch{}, err
	}
	if !ok {
		return model.Patch{}, notFound("layout", projectID, nil)
	}

	p := l.FindPatchByID(id)
	if p == nil {
		return model.Patch{}, notFound("patch", id, patchIDs(l))
	}

	if len(updates) == 0 {
		return model.Patch{}, invalid("updates", "no updatable fields present")
	}
	for field := range updates {
		if !patchUpdatable[field] {
			return model.Patch{}, invalid(field, "not an updatable patch field")
		}
	}

	cp := *p
	for field, value := range updates {
		if err := applyPatchField(&cp, field, value); err != nil {
			return model.Patch{}, err
		}
	}
	*p = cp

	if err := s.save(l); err != nil {
		return model.Patch{}, err
	}
	return *p, nil
}

func applyPatchField(p *model.Patch, field string, value any) error {
	switch field {
	case "x", "y":
		v, ok := floatValue(value)
		if !ok || !finite(v) || v < 0 {
			return invalid(field, "must be a non-negative finite number")
		}
		if field == "x" {
			p.X = v
		} else {
			p.Y = v
		}
	case "rotation":
		v, ok := floatValue(value)
		if !ok || !finite(v) || v < 0 || v >= 360 {
			return invalid(field, "must be in [0, 360)")
		}
		p.Rotation = v
	case "isValid":
		v, ok := value.(bool)
		if !ok {
			return invalid(field, "must be a boolean")
		}
		p.Valid = v
	case "patchNumber", "material", "thickness", "notes":
		v, ok := value.(string)
		if !ok {
			return invalid(field, "must be a string")
		}
		switch field {
		case "patchNumber":
			p.PatchNumber = v
		case "material":
			p.Material = v
		case "thickness":
			p.Thickness = v
		case "notes":
			p.Notes = v
		}
	}
	return nil
}

// DeletePatch removes a patch by id.
func (s *Store) DeletePatch(projectID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok, err := s.db.Load(projectID)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("layout", projectID, nil)
	}

	for i := range l.Patches {
		if l.Patches[i].ID == id {
			l.Patches = append(l.Patches[:i], l.Patches[i+1:]...)
			return s.save(l)
		}
	}
	return notFound("patch", id, patchIDs(l))
}

// TestInput carries caller-supplied fields for destructive-test creation.
// A zero size selects the default sample marker size.
type TestInput struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Size     float64 `json:"size"`
	SampleID string  `json:"sample_id"`
	Notes    string  `json:"notes"`
}

// CreateDestructiveTest appends a square sample marker with a pending result.
func (s *Store) CreateDestructiveTest(projectID string, in TestInput) (model.DestructiveTest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !finite(in.X) || !finite(in.Y) || in.X < 0 || in.Y < 0 {
		return model.DestructiveTest{}, invalid("position", "x and y must be non-negative finite numbers")
	}
	size := in.Size
	if size == 0 {
		size = model.DefaultTestSize
	}
	if !finite(size) || size <= 0 {
		return model.DestructiveTest{}, invalid("size", "must be a positive finite number")
	}

	l, err := s.loadOrCreate(projectID)
	if err != nil {
		return model.DestructiveTest{}, err
	}

	dt := model.NewDestructiveTest(in.SampleID, in.X, in.Y, size)
	dt.Notes = in.Notes

	l.DestructiveTests = append(l.DestructiveTests, dt)
	if err := s.save(l); err != nil {
		return model.DestructiveTest{}, err
	}
	return dt, nil
}

var testUpdatable = map[string]bool{
	"x": true, "y": true, "width": true, "height": true, "rotation": true,
	"sampleId": true, "testResult": true, "notes": true,
}

// UpdateDestructiveTest applies a whitelisted partial update to a test marker.
func (s *Store) UpdateDestructiveTest(projectID, id string, updates map[string]any) (model.DestructiveTest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok, err := s.db.Load(projectID)
	if err != nil {
		return model.DestructiveTest{}, err
	}
	if !ok {
		return model.DestructiveTest{}, notFound("layout", projectID, nil)
	}

	dt := l.FindTestByID(id)
	if dt == nil {
		return model.DestructiveTest{}, notFound("destructive test", id, testIDs(l))
	}

	if len(updates) == 0 {
		return model.DestructiveTest{}, invalid("updates", "no updatable fields present")
	}
	for field := range updates {
		if !testUpdatable[field] {
			return model.DestructiveTest{}, invalid(field, "not an updatable test field")
		}
	}

	cp := *dt
	for field, value := range updates {
		if err := applyTestField(&cp, field, value); err != nil {
			return model.DestructiveTest{}, err
		}
	}
	*dt = cp

	if err := s.save(l); err != nil {
		return model.DestructiveTest{}, err
	}
	return *dt, nil
}

func applyTestField(dt *model.DestructiveTest, field string, value any) error {
	switch field {
	case "x", "y":
		v, ok := floatValue(value)
		if !ok || !finite(v) || v < 0 {
			return invalid(field, "must be a non-negative finite number")
		}
		if field == "x" {
			dt.X = v
		} else {
			dt.Y = v
		}
	case "width", "height":
		v, ok := floatValue(value)
		if !ok || !finite(v) || v <= 0 {
			return invalid(field, "must be a positive finite number")
		}
		if field == "width" {
			dt.Width = v
		} else {
			dt.Height = v
		}
	case "rotation":
		v, ok := floatValue(value)
		if !ok || !finite(v) || v < 0 || v >= 360 {
			return invalid(field, "must be in [0, 360)")
		}
		dt.Rotation = v
	case "testResult":
		v, ok := value.(string)
		if !ok || !model.TestResult(v).Valid() {
			return invalid(field, "must be one of pending, pass, fail")
		}
		dt.Result = model.TestResult(v)
	case "sampleId", "notes":
		v, ok := value.(string)
		if !ok {
			return invalid(field, "must be a string")
		}
		if field == "sampleId" {
			dt.SampleID = v
		} else {
			dt.Notes = v
		}
	}
	return nil
}

// DeleteDestructiveTest removes a test marker by id.
func (s *Store) DeleteDestructiveTest(projectID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok, err := s.db.Load(projectID)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("layout", projectID, nil)
	}

	for i := range l.DestructiveTests {
		if l.DestructiveTests[i].ID == id {
			l.DestructiveTests = append(l.DestructiveTests[:i], l.DestructiveTests[i+1:]...)
			return s.save(l)
		}
	}
	return notFound("destructive test", id, testIDs(l))
}

// loadOrCreate returns the project layout, creating an empty one with the
// default canvas on first insertion.
func (s *Store) loadOrCreate(projectID string) (model.Layout, error) {
	l, ok, err := s.db.Load(projectID)
	if err != nil {
		return model.Layout{}, err
	}
	if !ok {
		l = model.NewLayout(projectID, s.CanvasWidth, s.CanvasHeight)
	}
	return l, nil
}

// buildPanel validates one creation input and constructs the panel. Shared
// by CreatePanel and BatchCreatePanels.
func (s *Store) buildPanel(l model.Layout, in PanelInput) (model.Panel, error) {
	shape := model.Shape(in.Shape)
	if in.Shape == "" {
		shape = model.ShapeRectangle
	}
	if !shape.Valid() {
		return model.Panel{}, invalid("shape", "must be one of rectangle, right-triangle, patch")
	}

	w, h := in.Width, in.Height
	if w == 0 && h == 0 {
		if shape == model.ShapePatch {
			w, h = model.DefaultPatchSize, model.DefaultPatchSize
		} else {
			w, h = model.DefaultPanelWidth, model.DefaultPanelHeight
		}
	}
	if !finite(w) || !finite(h) || w <= 0 || h <= 0 {
		return model.Panel{}, invalid("dimensions", "width and height must be positive finite numbers")
	}

	if !finite(in.X) || !finite(in.Y) || in.X < 0 || in.Y < 0 {
		return model.Panel{}, invalid("position", "x and y must be non-negative finite numbers")
	}
	if !finite(in.Rotation) || in.Rotation < 0 || in.Rotation >= 360 {
		return model.Panel{}, invalid("rotation", "must be in [0, 360)")
	}

	p := model.NewPanel(in.PanelNumber, w, h)
	p.Shape = shape
	p.RollNumber = in.RollNumber
	p.X = in.X
	p.Y = in.Y
	p.Rotation = in.Rotation
	p.Placed = true
	p.Material = in.Material
	p.Thickness = in.Thickness
	p.Notes = in.Notes
	p.Color = in.Color
	p.Fill = in.Fill

	// Bounds check uses rotation-aware extents against the canvas.
	if l.Width > 0 && l.Height > 0 && !p.InBounds(l.Site()) {
		return model.Panel{}, invalid("position", "panel extends past the canvas bounds")
	}
	return p, nil
}

func (s *Store) save(l model.Layout) error {
	l.LastUpdated = time.Now().UTC()
	return s.db.Save(l)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func floatValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func patchIDs(l model.Layout) []string {
	ids := make([]string, len(l.Patches))
	for i, p := range l.Patches {
		ids[i] = p.ID
	}
	return ids
}

func testIDs(l model.Layout) []string {
	ids := make([]string, len(l.DestructiveTests))
	for i, dt := range l.DestructiveTests {
		ids[i] = dt.ID
	}
	return ids
}
