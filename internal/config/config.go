// Package config loads the application configuration from a TOML file and
// supplies defaults for every tunable the engine and store expose.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/dtaplin21/panelgrid/internal/gate"
	"github.com/dtaplin21/panelgrid/internal/model"
)

// Config is the full application configuration.
type Config struct {
	// LayoutDir overrides where layout documents are stored. Empty selects
	// the per-user default directory.
	LayoutDir string `toml:"layout_dir"`

	// RepairNonFinite switches panel moves from rejecting NaN/Inf
	// coordinates to coercing them to 0 with a warning.
	RepairNonFinite bool `toml:"repair_non_finite"`

	Canvas     Canvas     `toml:"canvas"`
	Placement  Placement  `toml:"placement"`
	Thresholds Thresholds `toml:"thresholds"`
	Genetic    Genetic    `toml:"genetic"`
	Estimate   Estimate   `toml:"estimate"`
}

// Canvas sizes layouts created implicitly on first insertion, in feet.
type Canvas struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Placement holds the placement and conflict-resolution distances, in feet.
type Placement struct {
	Margin      float64 `toml:"margin"`
	Spacing     float64 `toml:"spacing"`
	ConflictGap float64 `toml:"conflict_gap"`
	GridUnit    float64 `toml:"grid_unit"`
}

// Thresholds holds the confidence cut-offs for generation, on a 0-100 scale.
type Thresholds struct {
	Low     float64 `toml:"low"`
	High    float64 `toml:"high"`
	Optimal float64 `toml:"optimal"`
}

// Genetic holds the population-search parameters.
type Genetic struct {
	PopulationSize int     `toml:"population_size"`
	Generations    int     `toml:"generations"`
	MutationRate   float64 `toml:"mutation_rate"`
	Seed           int64   `toml:"seed"`
}

// Estimate holds the defaults for material purchasing calculations.
type Estimate struct {
	RollWidth     float64 `toml:"roll_width"`     // feet
	RollLength    float64 `toml:"roll_length"`    // feet
	SeamAllowance float64 `toml:"seam_allowance"` // feet, per edge
	WastePercent  float64 `toml:"waste_percent"`  // e.g. 10 for 10%
	PricePerRoll  float64 `toml:"price_per_roll"` // 0 disables cost output
}

// Default returns the built-in configuration.
func Default() Config {
	settings := model.DefaultSettings()
	thresholds := gate.DefaultThresholds()
	return Config{
		Canvas: Canvas{Width: 1000, Height: 1000},
		Placement: Placement{
			Margin:      settings.Margin,
			Spacing:     settings.Spacing,
			ConflictGap: settings.ConflictGap,
			GridUnit:    settings.GridUnit,
		},
		Thresholds: Thresholds{
			Low:     thresholds.Low,
			High:    thresholds.High,
			Optimal: thresholds.Optimal,
		},
		Genetic: Genetic{
			PopulationSize: settings.Genetic.PopulationSize,
			Generations:    settings.Genetic.Generations,
			MutationRate:   settings.Genetic.MutationRate,
			Seed:           settings.Genetic.Seed,
		},
		Estimate: Estimate{
			RollWidth:     22.5,
			RollLength:    520,
			SeamAllowance: 0.5,
			WastePercent:  10,
		},
	}
}

// DefaultPath returns the per-user configuration file location.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "panelgrid", "config.toml"), nil
}

// Load reads a TOML configuration file over the defaults. Unknown keys are
// an error so typos do not silently fall back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault loads the per-user configuration file when it exists, or the
// built-in defaults otherwise. The returned path is empty when no file was
// read.
func LoadDefault() (Config, string, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), "", nil
	}
	if _, err := os.Stat(path); err != nil {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, "", err
	}
	return cfg, path, nil
}

// Validate checks internal consistency.
func (c Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas dimensions must be positive")
	}
	if c.Placement.Margin < 0 || c.Placement.Spacing < 0 || c.Placement.ConflictGap < 0 {
		return fmt.Errorf("placement distances must be non-negative")
	}
	if c.Placement.GridUnit <= 0 {
		return fmt.Errorf("grid unit must be positive")
	}
	if c.Thresholds.Low < 0 || c.Thresholds.Optimal > 100 ||
		c.Thresholds.Low > c.Thresholds.High || c.Thresholds.High > c.Thresholds.Optimal {
		return fmt.Errorf("thresholds must satisfy 0 <= low <= high <= optimal <= 100")
	}
	if c.Genetic.PopulationSize <= 0 || c.Genetic.Generations <= 0 {
		return fmt.Errorf("genetic population and generations must be positive")
	}
	if c.Genetic.MutationRate < 0 || c.Genetic.MutationRate > 1 {
		return fmt.Errorf("mutation rate must be in [0, 1]")
	}
	if c.Estimate.WastePercent < 0 {
		return fmt.Errorf("waste percent must be non-negative")
	}
	return nil
}

// Settings converts the placement section into engine settings.
func (c Config) Settings() model.PlacementSettings {
	return model.PlacementSettings{
		Margin:      c.Placement.Margin,
		Spacing:     c.Placement.Spacing,
		ConflictGap: c.Placement.ConflictGap,
		GridUnit:    c.Placement.GridUnit,
		Genetic: model.GeneticConfig{
			PopulationSize: c.Genetic.PopulationSize,
			Generations:    c.Genetic.Generations,
			MutationRate:   c.Genetic.MutationRate,
			Seed:           c.Genetic.Seed,
		},
	}
}

// GateThresholds converts the thresholds section into the gate policy.
func (c Config) GateThresholds() gate.Thresholds {
	return gate.Thresholds{
		Low:     c.Thresholds.Low,
		High:    c.Thresholds.High,
		Optimal: c.Thresholds.Optimal,
	}
}
