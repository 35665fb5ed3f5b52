package model

import "strings"

// NotSpecified is the sentinel the document-extraction service emits for
// fields it could not find. A field holding this value does not count as
// present for confidence scoring.
const NotSpecified = "not specified"

// FieldPresent reports whether an extracted string field carries a real
// value rather than being empty or the extraction sentinel.
func FieldPresent(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, NotSpecified)
}

// PanelSpecifications holds the extracted panel requirements.
type PanelSpecifications struct {
	PanelCount   int      `json:"panel_count"`
	Dimensions   string   `json:"dimensions"` // e.g. "40ft x 100ft"
	RollNumbers  []string `json:"roll_numbers"`
	PanelNumbers []string `json:"panel_numbers"`
}

// MaterialRequirements holds the extracted material requirements.
type MaterialRequirements struct {
	PrimaryMaterial  string `json:"primary_material"`
	Thickness        string `json:"thickness"` // e.g. "60 mil"
	SeamRequirements string `json:"seam_requirements"`
}

// Roll is a raw-material inventory unit a panel may be cut from.
// Assignment is advisory metadata, not enforced inventory accounting.
type Roll struct {
	ID         string  `json:"id"`
	RollNumber string  `json:"roll_number"`
	Width      float64 `json:"width"`  // feet
	Length     float64 `json:"length"` // feet
	Material   string  `json:"material,omitempty"`
}

// RollInventory is the set of rolls available for assignment.
type RollInventory struct {
	Rolls []Roll `json:"rolls"`
}

// Requirements is the immutable input snapshot for one generation request,
// produced by the document-extraction collaborator.
type Requirements struct {
	PanelSpecs        PanelSpecifications  `json:"panel_specifications"`
	Material          MaterialRequirements `json:"material_requirements"`
	RollInventory     RollInventory        `json:"roll_inventory"`
	Site              Site                 `json:"site_dimensions"`
	InstallationNotes string               `json:"installation_notes"`
}
