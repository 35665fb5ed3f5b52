package engine

import (
	"fmt"

	"github.com/dtaplin21/panelgrid/internal/model"
)

// maxRepairPasses bounds the overlap repair loop. Shifting a panel right
// can itself introduce a new overlap, so the scan repeats until clean or
// the cap is hit; whatever overlap survives is reported as critical.
const maxRepairPasses = 3

// Resolve detects and repairs pairwise overlaps and out-of-bounds
// placements. Overlapping panels are separated by shifting the
// later panel right of the earlier one by gap feet; panels outside the
// site are clamped back in. Every repair, and every conflict that could
// not be repaired, is returned as a structured record.
func Resolve(panels []model.Panel, site model.Site, gap float64) ([]model.Panel, []model.Conflict) {
	resolved := make([]model.Panel, len(panels))
	copy(resolved, panels)

	var conflicts []model.Conflict

	for pass := 0; pass < maxRepairPasses; pass++ {
		repaired := false
		for i := 0; i < len(resolved); i++ {
			for j := i + 1; j < len(resolved); j++ {
				if !resolved[i].Overlaps(resolved[j]) {
					continue
				}
				resolved[j].X = resolved[i].X + resolved[i].PlacedWidth() + gap
				conflicts = append(conflicts, model.Conflict{
					Type:     model.ConflictOverlap,
					IDs:      []string{resolved[i].ID, resolved[j].ID},
					Severity: model.SeverityWarning,
					Detail:   fmt.Sprintf("panel %s shifted right of panel %s", resolved[j].ID, resolved[i].ID),
				})
				repaired = true
			}
		}
		if !repaired {
			break
		}
	}

	// Clamp out-of-bounds panels back into the site.
	for i := range resolved {
		p := &resolved[i]
		if !p.Placed || p.InBounds(site) {
			continue
		}

		severity := model.SeverityWarning
		maxX := site.Width - p.PlacedWidth()
		maxY := site.Length - p.PlacedHeight()
		if maxX < 0 || maxY < 0 {
			// Panel larger than the site: clamping to the origin is the
			// best available repair, but the violation remains.
			severity = model.SeverityCritical
		}
		p.X = clamp(p.X, 0, maxX)
		p.Y = clamp(p.Y, 0, maxY)

		conflicts = append(conflicts, model.Conflict{
			Type:     model.ConflictBoundary,
			IDs:      []string{p.ID},
			Severity: severity,
			Detail:   fmt.Sprintf("panel %s clamped into site bounds", p.ID),
		})
	}

	// Clamping can reintroduce overlap; report whatever remains as
	// unresolvable rather than looping forever.
	for i := 0; i < len(resolved); i++ {
		for j := i + 1; j < len(resolved); j++ {
			if resolved[i].Overlaps(resolved[j]) {
				conflicts = append(conflicts, model.Conflict{
					Type:     model.ConflictOverlap,
					IDs:      []string{resolved[i].ID, resolved[j].ID},
					Severity: model.SeverityCritical,
					Detail:   fmt.Sprintf("panels %s and %s still overlap after repair", resolved[i].ID, resolved[j].ID),
				})
			}
		}
	}

	return resolved, conflicts
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FormatConflictWarnings produces human-readable warning messages from
// conflict records for GenerationResult warnings.
func FormatConflictWarnings(conflicts []model.Conflict) []string {
	var warnings []string
	for _, c := range conflicts {
		warnings = append(warnings, fmt.Sprintf("%s conflict (%s): %s", c.Type, c.Severity, c.Detail))
	}
	return warnings
}
