package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtaplin21/panelgrid/internal/engine"
	"github.com/dtaplin21/panelgrid/internal/synth"
)

func newCompareCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "compare [requirements.json]",
		Short: "Run every placement strategy over the same requirements and rank the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the comparison as JSON")

	return cmd
}

func runCompare(cmd *cobra.Command, path string, asJSON bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	req, err := readRequirements(path)
	if err != nil {
		return err
	}
	if req.Site.Width <= 0 || req.Site.Length <= 0 {
		return fmt.Errorf("requirements carry no site dimensions; comparison needs fixed bounds")
	}

	panels := synth.Synthesize(req.PanelSpecs, req.Material, req.RollInventory)
	if len(panels) == 0 {
		return fmt.Errorf("no panels could be synthesized from %s", path)
	}

	p := newProgress(logger)
	results := engine.CompareStrategies(panels, req.Site, cfg.Settings())
	p.done(fmt.Sprintf("compared %d strategies over %d panels", len(results), len(panels)))

	if asJSON {
		doc, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(doc))
		return nil
	}

	fmt.Printf("%-10s %8s %10s %12s %10s\n", "STRATEGY", "PLACED", "UNPLACED", "UTILIZATION", "CONFLICTS")
	for _, r := range results {
		fmt.Printf("%-10s %8d %10d %11.1f%% %10d\n",
			r.Strategy, r.Placed, r.Unplaced, r.Utilization*100, r.Conflicts)
	}
	return nil
}
