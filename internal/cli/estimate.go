package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtaplin21/panelgrid/internal/engine"
)

// estimateOpts holds the flags for the material estimate command. Zeroed
// roll dimensions fall back to the configured defaults.
type estimateOpts struct {
	project    string
	rollWidth  float64
	rollLength float64
	seam       float64
	waste      float64
	price      float64
	asJSON     bool
}

func newEstimateCmd() *cobra.Command {
	var opts estimateOpts

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate roll purchasing for a stored layout",
		Long:  "Each panel is padded by the seam allowance on both axes, and the waste percentage covers handling and detail work on top of the exact roll count.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEstimate(cmd, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.project, "project", "p", "", "project id")
	cmd.MarkFlagRequired("project")
	cmd.Flags().Float64Var(&opts.rollWidth, "roll-width", 0, "roll width in feet (default from config)")
	cmd.Flags().Float64Var(&opts.rollLength, "roll-length", 0, "roll length in feet (default from config)")
	cmd.Flags().Float64Var(&opts.seam, "seam", -1, "seam allowance per edge in feet (default from config)")
	cmd.Flags().Float64Var(&opts.waste, "waste", -1, "waste percentage (default from config)")
	cmd.Flags().Float64Var(&opts.price, "price", -1, "price per roll (default from config)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "emit the estimate as JSON")

	return cmd
}

func runEstimate(cmd *cobra.Command, opts *estimateOpts) error {
	ctx := cmd.Context()
	cfg := configFromContext(ctx)

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	l, err := st.GetLayout(opts.project)
	if err != nil {
		return err
	}
	if len(l.Panels) == 0 {
		return fmt.Errorf("project %s has no panels to estimate", opts.project)
	}

	rollWidth := opts.rollWidth
	if rollWidth == 0 {
		rollWidth = cfg.Estimate.RollWidth
	}
	rollLength := opts.rollLength
	if rollLength == 0 {
		rollLength = cfg.Estimate.RollLength
	}
	seam := opts.seam
	if seam < 0 {
		seam = cfg.Estimate.SeamAllowance
	}
	waste := opts.waste
	if waste < 0 {
		waste = cfg.Estimate.WastePercent
	}
	price := opts.price
	if price < 0 {
		price = cfg.Estimate.PricePerRoll
	}

	est := engine.EstimateMaterial(l.Panels, rollWidth, rollLength, seam, waste, price)

	if opts.asJSON {
		doc, err := json.MarshalIndent(est, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(doc))
		return nil
	}

	fmt.Printf("Panels:           %d\n", len(l.Panels))
	fmt.Printf("Panel area:       %.1f sq ft (with %.1f ft seam allowance)\n", est.TotalPanelArea, est.SeamAllowance)
	fmt.Printf("Roll:             %.1f x %.1f ft (%.1f sq ft)\n", rollWidth, rollLength, est.RollArea)
	fmt.Printf("Rolls (exact):    %.2f\n", est.RollsNeededExact)
	fmt.Printf("Rolls (minimum):  %d\n", est.RollsNeededMin)
	fmt.Printf("Rolls (+%.0f%% waste): %d\n", est.WastePercent, est.RollsWithWaste)
	if est.PricePerRoll > 0 {
		fmt.Printf("Estimated cost:   $%.2f at $%.2f per roll\n", est.EstimatedCost, est.PricePerRoll)
	}
	return nil
}
