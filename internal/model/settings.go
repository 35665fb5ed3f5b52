package model

// PlacementSettings holds the tunable constants used by the placement
// strategies and the conflict resolver. All distances are in feet.
type PlacementSettings struct {
	// Margin is the clearance kept between panels and the site boundary.
	Margin float64 `json:"margin"`
	// Spacing is the gap left between adjacent panels during placement.
	Spacing float64 `json:"spacing"`
	// ConflictGap is the clearance inserted when repairing an overlap.
	ConflictGap float64 `json:"conflict_gap"`
	// GridUnit is the site panel grid unit; patch radius is GridUnit/2.
	GridUnit float64 `json:"grid_unit"`

	// Genetic holds the population-search parameters.
	Genetic GeneticConfig `json:"genetic"`
}

// GeneticConfig holds parameters for the population-based placement search.
type GeneticConfig struct {
	PopulationSize int     `json:"population_size"`
	Generations    int     `json:"generations"`
	MutationRate   float64 `json:"mutation_rate"`
	Seed           int64   `json:"seed"`
}

// DefaultGeneticConfig returns the default search parameters. The search is
// a bounded skeleton, not a tuned optimizer; work is limited by population
// and generation counts rather than a wall-clock deadline.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 10,
		Generations:    5,
		MutationRate:   0.1,
		Seed:           42,
	}
}

// DefaultSettings returns placement settings suitable for typical
// geosynthetic liner sites.
func DefaultSettings() PlacementSettings {
	return PlacementSettings{
		Margin:      5.0,
		Spacing:     2.0,
		ConflictGap: 10.0,
		GridUnit:    10.0,
		Genetic:     DefaultGeneticConfig(),
	}
}

// PatchRadius returns the derived patch marker radius.
func (s PlacementSettings) PatchRadius() float64 {
	return s.GridUnit / 2
}

// Default panel dimensions used when extracted requirements carry no
// parseable dimension string (a standard 40ft x 100ft liner panel).
const (
	DefaultPanelWidth  = 40.0
	DefaultPanelHeight = 100.0
)

// DefaultPatchSize is the default diameter for patches created through the
// mutation API without explicit dimensions.
const DefaultPatchSize = 10.0

// DefaultTestSize is the default edge length for destructive test markers.
const DefaultTestSize = 12.0
