package engine

import (
	"math"

	"github.com/dtaplin21/panelgrid/internal/model"
)

// MaterialEstimate holds the results of a roll purchasing calculation.
type MaterialEstimate struct {
	TotalPanelArea   float64 `json:"total_panel_area"`   // sq ft, including seam allowance
	RollArea         float64 `json:"roll_area"`          // sq ft per roll
	RollsNeededExact float64 `json:"rolls_needed_exact"` // fractional roll count
	RollsNeededMin   int     `json:"rolls_needed_min"`   // ceiling of exact
	RollsWithWaste   int     `json:"rolls_with_waste"`   // recommended count including waste factor
	WastePercent     float64 `json:"waste_percent"`      // waste factor applied (e.g. 15 for 15%)
	EstimatedCost    float64 `json:"estimated_cost"`     // total cost if pricing available
	PricePerRoll     float64 `json:"price_per_roll"`     // price used for estimation
	SeamAllowance    float64 `json:"seam_allowance"`     // per-edge seam allowance used (ft)
}

// EstimateMaterial computes how many rolls to purchase for a panel set.
// Each panel is padded by the seam allowance on both axes, the way seam
// overlap consumes extra material in the field, and an additional waste
// percentage covers handling and detail work.
func EstimateMaterial(panels []model.Panel, rollWidth, rollLength, seamAllowance, wastePercent, pricePerRoll float64) MaterialEstimate {
	var totalArea float64
	for _, p := range panels {
		totalArea += (p.Width + seamAllowance) * (p.Height + seamAllowance)
	}

	rollArea := rollWidth * rollLength
	if rollArea <= 0 {
		return MaterialEstimate{
			TotalPanelArea: totalArea,
			WastePercent:   wastePercent,
			SeamAllowance:  seamAllowance,
		}
	}

	exact := totalArea / rollArea
	minRolls := int(math.Ceil(exact))

	wasteFactor := 1.0 + wastePercent/100.0
	withWaste := int(math.Ceil(exact * wasteFactor))
	if withWaste < minRolls {
		withWaste = minRolls
	}

	return MaterialEstimate{
		TotalPanelArea:   totalArea,
		RollArea:         rollArea,
		RollsNeededExact: exact,
		RollsNeededMin:   minRolls,
		RollsWithWaste:   withWaste,
		WastePercent:     wastePercent,
		EstimatedCost:    float64(withWaste) * pricePerRoll,
		PricePerRoll:     pricePerRoll,
		SeamAllowance:    seamAllowance,
	}
}
