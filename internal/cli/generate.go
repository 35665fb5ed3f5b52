package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dtaplin21/panelgrid/internal/engine"
	"github.com/dtaplin21/panelgrid/internal/model"
	"github.com/dtaplin21/panelgrid/internal/store"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	goal    string // optimization goal: material, labor, cost, terrain, balanced
	output  string // output file path for the result document; stdout when empty
	project string // project id to apply created panels to
	apply   bool   // persist CREATE_PANEL actions into the layout store
}

// resultDocument is the wire form of a generation result: the result fields
// plus the tagged action list, which the in-memory type keeps separate.
type resultDocument struct {
	model.GenerationResult
	Actions json.RawMessage `json:"actions"`
}

func newGenerateCmd() *cobra.Command {
	opts := generateOpts{goal: string(engine.GoalBalanced)}

	cmd := &cobra.Command{
		Use:   "generate [requirements.json]",
		Short: "Generate a panel layout proposal from extracted requirements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validGoal(opts.goal) {
				return fmt.Errorf("unknown goal %q: want material, labor, cost, terrain or balanced", opts.goal)
			}
			if opts.apply && opts.project == "" {
				return fmt.Errorf("--apply requires --project")
			}
			return runGenerate(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.goal, "goal", "g", opts.goal, "optimization goal: balanced (default), material, labor, cost, terrain")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the result document to a file instead of stdout")
	cmd.Flags().StringVarP(&opts.project, "project", "p", "", "project id for --apply")
	cmd.Flags().BoolVar(&opts.apply, "apply", false, "persist created panels into the layout store")

	return cmd
}

func validGoal(g string) bool {
	switch engine.Goal(g) {
	case engine.GoalMaterial, engine.GoalLabor, engine.GoalCost, engine.GoalTerrain, engine.GoalBalanced:
		return true
	}
	return false
}

func runGenerate(cmd *cobra.Command, path string, opts *generateOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	req, err := readRequirements(path)
	if err != nil {
		return err
	}

	eng := engine.New()
	eng.Settings = cfg.Settings()
	eng.Thresholds = cfg.GateThresholds()
	eng.Goal = engine.Goal(opts.goal)

	p := newProgress(logger)
	result := eng.Generate(req)
	p.done(fmt.Sprintf("generated %s layout: %d placed, %d unplaced, confidence %.0f",
		result.Analysis.Strategy, result.Analysis.PanelsPlaced, result.Analysis.PanelsUnplaced, result.Confidence))

	for _, w := range result.Warnings {
		logger.Warn(w)
	}
	if result.Status == model.StatusInsufficient {
		for _, g := range result.Guidance {
			logger.Warnf("missing input: %s", g)
		}
	}

	if err := writeResult(result, opts.output); err != nil {
		return err
	}

	if opts.apply {
		return applyActions(cmd, opts.project, result.Actions)
	}
	return nil
}

func readRequirements(path string) (model.Requirements, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Requirements{}, fmt.Errorf("read requirements: %w", err)
	}
	var req model.Requirements
	if err := json.Unmarshal(data, &req); err != nil {
		return model.Requirements{}, fmt.Errorf("decode requirements %s: %w", path, err)
	}
	return req, nil
}

func writeResult(result model.GenerationResult, output string) error {
	actions, err := model.MarshalActions(result.Actions)
	if err != nil {
		return err
	}

	doc, err := json.MarshalIndent(resultDocument{GenerationResult: result, Actions: actions}, "", "  ")
	if err != nil {
		return err
	}

	if output == "" {
		fmt.Println(string(doc))
		return nil
	}
	if err := os.WriteFile(output, doc, 0644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// applyActions persists the CREATE_PANEL actions of a result into the
// layout store as a batch.
func applyActions(cmd *cobra.Command, projectID string, actions []model.Action) error {
	logger := loggerFromContext(cmd.Context())
	cfg := configFromContext(cmd.Context())

	var items []store.PanelInput
	for _, a := range actions {
		create, ok := a.(model.CreatePanelAction)
		if !ok {
			continue
		}
		items = append(items, store.PanelInput{
			PanelNumber: create.PanelNumber,
			RollNumber:  create.RollNumber,
			Width:       create.Width,
			Height:      create.Height,
			X:           create.X,
			Y:           create.Y,
			Rotation:    create.Rotation,
			Material:    create.Material,
			Thickness:   create.Thickness,
			Notes:       create.Notes,
		})
	}
	if len(items) == 0 {
		logger.Warn("no panel actions to apply")
		return nil
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	results, err := st.BatchCreatePanels(projectID, items)
	if err != nil {
		return err
	}

	created := 0
	for _, r := range results {
		if r.Err != nil {
			logger.Errorf("panel %d not created: %v", r.Index+1, r.Err)
			continue
		}
		created++
	}
	logger.Infof("applied %d of %d panels to project %s", created, len(items), projectID)
	return nil
}
