// Package gate scores the completeness of extracted project requirements
// and decides whether layout generation may proceed.
package gate

import (
	"github.com/dtaplin21/panelgrid/internal/model"
)

// Point values per requirement sub-field. Panel specifications dominate:
// they contribute 70 of 100 points when complete, with material, roll
// inventory, site dimensions and installation notes sharing the rest.
const (
	pointsPanelCount   = 20.0
	pointsDimensions   = 20.0
	pointsRollNumbers  = 15.0
	pointsPanelNumbers = 15.0

	pointsPrimaryMaterial = 4.0
	pointsThickness       = 3.0
	pointsSeams           = 3.0

	pointsRollInventory = 8.0

	pointsSiteWidth   = 3.0
	pointsSiteLength  = 3.0
	pointsSiteTerrain = 2.0

	pointsInstallNotes = 4.0
)

// Thresholds holds the confidence cut-offs for generation. Below Low the
// request is refused outright; between Low and High generation proceeds
// flagged as partial; at or above High the result is success, and optimal
// once confidence reaches Optimal.
type Thresholds struct {
	Low     float64
	High    float64
	Optimal float64
}

// DefaultThresholds returns the standard gate policy.
func DefaultThresholds() Thresholds {
	return Thresholds{Low: 30, High: 70, Optimal: 90}
}

// StatusFor maps a confidence score to a generation status under t.
func (t Thresholds) StatusFor(confidence float64) model.Status {
	switch {
	case confidence < t.Low:
		return model.StatusInsufficient
	case confidence < t.High:
		return model.StatusPartial
	case confidence < t.Optimal:
		return model.StatusSuccess
	default:
		return model.StatusOptimal
	}
}

// Score computes a completeness confidence in [0, 100] for the given
// requirements. It is a pure function: each sub-field contributes a fixed
// point value only when present and non-placeholder, so adding a missing
// field never decreases the score.
func Score(req model.Requirements) float64 {
	var score float64

	if req.PanelSpecs.PanelCount > 0 {
		score += pointsPanelCount
	}
	if model.FieldPresent(req.PanelSpecs.Dimensions) {
		score += pointsDimensions
	}
	if len(req.PanelSpecs.RollNumbers) > 0 {
		score += pointsRollNumbers
	}
	if len(req.PanelSpecs.PanelNumbers) > 0 {
		score += pointsPanelNumbers
	}

	if model.FieldPresent(req.Material.PrimaryMaterial) {
		score += pointsPrimaryMaterial
	}
	if model.FieldPresent(req.Material.Thickness) {
		score += pointsThickness
	}
	if model.FieldPresent(req.Material.SeamRequirements) {
		score += pointsSeams
	}

	if len(req.RollInventory.Rolls) > 0 {
		score += pointsRollInventory
	}

	if req.Site.Width > 0 {
		score += pointsSiteWidth
	}
	if req.Site.Length > 0 {
		score += pointsSiteLength
	}
	if model.FieldPresent(string(req.Site.Terrain)) {
		score += pointsSiteTerrain
	}

	if model.FieldPresent(req.InstallationNotes) {
		score += pointsInstallNotes
	}

	return score
}

// Missing enumerates, per requirement category, which required sub-fields
// are absent. The report builds user guidance only; it never blocks
// computation directly.
func Missing(req model.Requirements) map[string][]string {
	missing := make(map[string][]string)

	add := func(category, reason string) {
		missing[category] = append(missing[category], reason)
	}

	if req.PanelSpecs.PanelCount <= 0 {
		add("panel_specifications", "panel count not specified")
	}
	if !model.FieldPresent(req.PanelSpecs.Dimensions) {
		add("panel_specifications", "panel dimensions not specified")
	}
	if len(req.PanelSpecs.RollNumbers) == 0 {
		add("panel_specifications", "roll numbers not specified")
	}
	if len(req.PanelSpecs.PanelNumbers) == 0 {
		add("panel_specifications", "panel numbers not specified")
	}

	if !model.FieldPresent(req.Material.PrimaryMaterial) {
		add("material_requirements", "primary material not specified")
	}
	if !model.FieldPresent(req.Material.Thickness) {
		add("material_requirements", "material thickness not specified")
	}
	if !model.FieldPresent(req.Material.SeamRequirements) {
		add("material_requirements", "seam requirements not specified")
	}

	if len(req.RollInventory.Rolls) == 0 {
		add("roll_inventory", "no rolls in inventory")
	}

	if req.Site.Width <= 0 {
		add("site_dimensions", "site width not specified")
	}
	if req.Site.Length <= 0 {
		add("site_dimensions", "site length not specified")
	}
	if !model.FieldPresent(string(req.Site.Terrain)) {
		add("site_dimensions", "terrain type not specified")
	}

	if !model.FieldPresent(req.InstallationNotes) {
		add("installation_notes", "installation notes not provided")
	}

	return missing
}

// Guidance flattens a Missing report into display-ready lines, one per
// absent sub-field, grouped by category.
func Guidance(missing map[string][]string) []string {
	categories := []string{
		"panel_specifications",
		"material_requirements",
		"roll_inventory",
		"site_dimensions",
		"installation_notes",
	}
	var lines []string
	for _, cat := range categories {
		for _, reason := range missing[cat] {
			lines = append(lines, cat+": "+reason)
		}
	}
	return lines
}
