package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dtaplin21/panelgrid/internal/store"
)

func newLayoutCmd() *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show a stored project layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(configFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			l, err := st.GetLayout(project)
			if err != nil {
				return err
			}
			doc, err := json.MarshalIndent(l, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(doc))
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project id")
	cmd.MarkFlagRequired("project")

	return cmd
}

// panelAddOpts holds the flags for creating a panel by hand.
type panelAddOpts struct {
	project   string
	panel     string
	roll      string
	shape     string
	width     float64
	height    float64
	x         float64
	y         float64
	rotation  float64
	material  string
	thickness string
	notes     string
}

func newPanelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "panel",
		Short: "Manage panels in a stored layout",
	}

	cmd.AddCommand(newPanelAddCmd())
	cmd.AddCommand(newPanelMoveCmd())
	cmd.AddCommand(newPanelSetCmd())
	cmd.AddCommand(newPanelRmCmd())

	return cmd
}

func newPanelAddCmd() *cobra.Command {
	var opts panelAddOpts

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a panel to a project layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(configFromContext(cmd.Context()))
			if err != nil {
				return err
			}

			p, err := st.CreatePanel(opts.project, store.PanelInput{
				PanelNumber: opts.panel,
				RollNumber:  opts.roll,
				Shape:       opts.shape,
				Width:       opts.width,
				Height:      opts.height,
				X:           opts.x,
				Y:           opts.y,
				Rotation:    opts.rotation,
				Material:    opts.material,
				Thickness:   opts.thickness,
				Notes:       opts.notes,
			})
			if err != nil {
				return err
			}

			loggerFromContext(cmd.Context()).Infof("created panel %s (%s) at (%g, %g)", p.ID, p.PanelNumber, p.X, p.Y)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.project, "project", "p", "", "project id")
	cmd.MarkFlagRequired("project")
	cmd.Flags().StringVar(&opts.panel, "panel", "", "panel number")
	cmd.Flags().StringVar(&opts.roll, "roll", "", "roll number")
	cmd.Flags().StringVar(&opts.shape, "shape", "", "shape: rectangle (default), right-triangle, patch")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "width in feet (0 selects the shape default)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "height in feet (0 selects the shape default)")
	cmd.Flags().Float64VarP(&opts.x, "x", "x", 0, "x position in feet")
	cmd.Flags().Float64VarP(&opts.y, "y", "y", 0, "y position in feet")
	cmd.Flags().Float64Var(&opts.rotation, "rotation", 0, "rotation in degrees [0, 360)")
	cmd.Flags().StringVar(&opts.material, "material", "", "material")
	cmd.Flags().StringVar(&opts.thickness, "thickness", "", "thickness (e.g. \"60 mil\")")
	cmd.Flags().StringVar(&opts.notes, "notes", "", "notes")

	return cmd
}

func newPanelMoveCmd() *cobra.Command {
	var (
		project  string
		x, y     float64
		rotation float64
	)

	cmd := &cobra.Command{
		Use:   "move [identifier]",
		Short: "Move a panel, resolving the identifier by id, roll or panel number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(configFromContext(cmd.Context()))
			if err != nil {
				return err
			}

			mv := store.MoveRequest{X: x, Y: y}
			if cmd.Flags().Changed("rotation") {
				mv.Rotation = &rotation
			}

			p, warnings, err := st.MovePanel(project, args[0], mv)
			if err != nil {
				return err
			}

			logger := loggerFromContext(cmd.Context())
			for _, w := range warnings {
				logger.Warn(w)
			}
			logger.Infof("moved panel %s to (%g, %g)", p.ID, p.X, p.Y)
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project id")
	cmd.MarkFlagRequired("project")
	cmd.Flags().Float64VarP(&x, "x", "x", 0, "new x position in feet")
	cmd.Flags().Float64VarP(&y, "y", "y", 0, "new y position in feet")
	cmd.MarkFlagRequired("x")
	cmd.MarkFlagRequired("y")
	cmd.Flags().Float64Var(&rotation, "rotation", 0, "new rotation in degrees [0, 360)")

	return cmd
}

func newPanelSetCmd() *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "set [id] [field=value]...",
		Short: "Update panel fields by exact id",
		Long:  "Updatable fields: width, height, rotation, x, y, panelNumber, rollNumber, shape, material, thickness, notes, color, fill. The update is all-or-nothing.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			updates, err := parseUpdates(args[1:], panelNumericFields, nil)
			if err != nil {
				return err
			}

			st, err := openStore(configFromContext(cmd.Context()))
			if err != nil {
				return err
			}

			p, err := st.UpdatePanelProperties(project, args[0], updates)
			if err != nil {
				return err
			}

			loggerFromContext(cmd.Context()).Infof("updated panel %s (%d field(s))", p.ID, len(updates))
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project id")
	cmd.MarkFlagRequired("project")

	return cmd
}

func newPanelRmCmd() *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Remove a panel by exact id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(configFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			if err := st.DeletePanel(project, args[0]); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Infof("deleted panel %s", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project id")
	cmd.MarkFlagRequired("project")

	return cmd
}

// Field typing for key=value updates; everything not listed is a string.
var (
	panelNumericFields = map[string]bool{
		"width": true, "height": true, "rotation": true, "x": true, "y": true,
	}
	patchNumericFields = map[string]bool{
		"x": true, "y": true, "rotation": true,
	}
	patchBoolFields = map[string]bool{
		"isValid": true,
	}
	testNumericFields = map[string]bool{
		"x": true, "y": true, "width": true, "height": true, "rotation": true,
	}
)

// parseUpdates converts key=value arguments into a typed update map. The
// numeric and boolean sets decide how values are parsed; unknown fields are
// passed through as strings for the store whitelist to judge.
func parseUpdates(args []string, numeric, boolean map[string]bool) (map[string]any, error) {
	updates := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected field=value, got %q", arg)
		}
		switch {
		case numeric[key]:
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("field %s: %q is not a number", key, value)
			}
			updates[key] = v
		case boolean[key]:
			v, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("field %s: %q is not a boolean", key, value)
			}
			updates[key] = v
		default:
			updates[key] = value
		}
	}
	return updates, nil
}
