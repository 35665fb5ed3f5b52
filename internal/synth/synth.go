// Package synth turns extracted panel requirements into a list of unplaced
// Panel entities, assigning a roll from inventory to each.
package synth

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/dtaplin21/panelgrid/internal/model"
)

// Fallback material properties used when the extracted requirements carry
// no usable values.
const (
	DefaultMaterial  = "HDPE"
	DefaultThickness = "60 mil"
	DefaultSeamType  = "fusion weld"
)

// FallbackEfficiency is recorded when no inventory roll fits a panel and a
// placeholder roll is synthesized instead.
const FallbackEfficiency = 0.8

// dimensionPattern matches strings like "40ft x 100ft", "40 x 100" or
// "40' x 100'".
var dimensionPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:ft|')?\s*[x×]\s*(\d+(?:\.\d+)?)\s*(?:ft|')?`)

// ParseDimensions extracts width and height in feet from an extracted
// dimension string. Unparseable input falls back to the standard
// 40ft x 100ft panel.
func ParseDimensions(s string) (width, height float64) {
	m := dimensionPattern.FindStringSubmatch(s)
	if m == nil {
		return model.DefaultPanelWidth, model.DefaultPanelHeight
	}
	w, errW := strconv.ParseFloat(m[1], 64)
	h, errH := strconv.ParseFloat(m[2], 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return model.DefaultPanelWidth, model.DefaultPanelHeight
	}
	return w, h
}

// RollAssignment records which roll a panel was assigned and how well the
// roll's dimensions match the panel's.
type RollAssignment struct {
	RollNumber string
	// Efficiency is 1.0 minus the unused-area fraction of the matched roll,
	// or FallbackEfficiency when a placeholder roll was synthesized.
	Efficiency float64
}

// BestRollFor selects the inventory roll whose dimensions cover the panel
// in both axes with the least waste. When none fits, it synthesizes a
// placeholder roll id "R-<100+i>" where i is the 1-based panel index.
func BestRollFor(i int, inv model.RollInventory, width, height float64) RollAssignment {
	bestEff := -1.0
	var best *model.Roll
	for idx := range inv.Rolls {
		r := &inv.Rolls[idx]
		if r.Width < width || r.Length < height {
			continue
		}
		rollArea := r.Width * r.Length
		if rollArea <= 0 {
			continue
		}
		eff := (width * height) / rollArea
		if eff > bestEff {
			bestEff = eff
			best = r
		}
	}
	if best == nil {
		return RollAssignment{
			RollNumber: fmt.Sprintf("R-%d", 100+i),
			Efficiency: FallbackEfficiency,
		}
	}
	num := best.RollNumber
	if num == "" {
		num = best.ID
	}
	return RollAssignment{RollNumber: num, Efficiency: bestEff}
}

// Synthesize builds one unplaced panel per required panel. Dimensions come
// from the extracted dimension string (falling back to 40x100), material
// properties from the material requirements (falling back to standard HDPE
// values), and each panel gets a roll assignment from inventory.
func Synthesize(specs model.PanelSpecifications, material model.MaterialRequirements, inv model.RollInventory) []model.Panel {
	if specs.PanelCount <= 0 {
		return nil
	}

	width, height := ParseDimensions(specs.Dimensions)

	mat := material.PrimaryMaterial
	if !model.FieldPresent(mat) {
		mat = DefaultMaterial
	}
	thickness := material.Thickness
	if !model.FieldPresent(thickness) {
		thickness = DefaultThickness
	}
	seam := material.SeamRequirements
	if !model.FieldPresent(seam) {
		seam = DefaultSeamType
	}

	panels := make([]model.Panel, 0, specs.PanelCount)
	for i := 1; i <= specs.PanelCount; i++ {
		number := strconv.Itoa(i)
		if len(specs.PanelNumbers) >= i && model.FieldPresent(specs.PanelNumbers[i-1]) {
			number = specs.PanelNumbers[i-1]
		}

		p := model.NewPanel(number, width, height)
		p.Material = mat
		p.Thickness = thickness
		p.SeamType = seam

		assignment := BestRollFor(i, inv, width, height)
		p.RollNumber = assignment.RollNumber
		p.RollEfficiency = assignment.Efficiency

		panels = append(panels, p)
	}
	return panels
}
