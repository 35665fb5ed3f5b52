package cli

import (
	"github.com/spf13/cobra"

	"github.com/dtaplin21/panelgrid/internal/store"
)

func newPatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Manage repair patches in a stored layout",
	}

	cmd.AddCommand(newPatchAddCmd())
	cmd.AddCommand(newPatchSetCmd())
	cmd.AddCommand(newPatchRmCmd())

	return cmd
}

func newPatchAddCmd() *cobra.Command {
	var (
		project   string
		x, y      float64
		number    string
		material  string
		thickness string
		notes     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a repair patch centered at a position",
		Long:  "The patch radius is derived from the configured grid unit; it cannot be set directly.",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(configFromContext(cmd.Context()))
			if err != nil {
				return err
			}

			p, err := st.CreatePatch(project, store.PatchInput{
				X:           x,
				Y:           y,
				PatchNumber: number,
				Material:    material,
				Thickness:   thickness,
				Notes:       notes,
			})
			if err != nil {
				return err
			}

			loggerFromContext(cmd.Context()).Infof("created patch %s at (%g, %g) with radius %g", p.ID, p.X, p.Y, p.Radius)
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project id")
	cmd.MarkFlagRequired("project")
	cmd.Flags().Float64VarP(&x, "x", "x", 0, "center x in feet")
	cmd.Flags().Float64VarP(&y, "y", "y", 0, "center y in feet")
	cmd.MarkFlagRequired("x")
	cmd.MarkFlagRequired("y")
	cmd.Flags().StringVar(&number, "number", "", "patch number")
	cmd.Flags().StringVar(&material, "material", "", "material")
	cmd.Flags().StringVar(&thickness, "thickness", "", "thickness")
	cmd.Flags().StringVar(&notes, "notes", "", "notes")

	return cmd
}

func newPatchSetCmd() *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "set [id] [field=value]...",
		Short: "Update patch fields by exact id",
		Long:  "Updatable fields: x, y, rotation, patchNumber, material, thickness, notes, isValid. The radius is derived and cannot be updated.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			updates, err := parseUpdates(args[1:], patchNumericFields, patchBoolFields)
			if err != nil {
				return err
			}

			st, err := openStore(configFromContext(cmd.Context()))
			if err != nil {
				return err
			}

			p, err := st.UpdatePatchProperties(project, args[0], updates)
			if err != nil {
				return err
			}

			loggerFromContext(cmd.Context()).Infof("updated patch %s (%d field(s))", p.ID, len(updates))
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project id")
	cmd.MarkFlagRequired("project")

	return cmd
}

func newPatchRmCmd() *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Remove a patch by exact id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(configFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			if err := st.DeletePatch(project, args[0]); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Infof("deleted patch %s", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project id")
	cmd.MarkFlagRequired("project")

	return cmd
}

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Manage destructive-test markers in a stored layout",
	}

	cmd.AddCommand(newTestAddCmd())
	cmd.AddCommand(newTestSetCmd())
	cmd.AddCommand(newTestRmCmd())

	return cmd
}

func newTestAddCmd() *cobra.Command {
	var (
		project string
		x, y    float64
		size    float64
		sample  string
		notes   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a destructive-test sample marker with a pending result",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(configFromContext(cmd.Context()))
			if err != nil {
				return err
			}

			dt, err := st.CreateDestructiveTest(project, store.TestInput{
				X:        x,
				Y:        y,
				Size:     size,
				SampleID: sample,
				Notes:    notes,
			})
			if err != nil {
				return err
			}

			loggerFromContext(cmd.Context()).Infof("created test %s (%s) at (%g, %g)", dt.ID, dt.SampleID, dt.X, dt.Y)
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project id")
	cmd.MarkFlagRequired("project")
	cmd.Flags().Float64VarP(&x, "x", "x", 0, "x position in feet")
	cmd.Flags().Float64VarP(&y, "y", "y", 0, "y position in feet")
	cmd.MarkFlagRequired("x")
	cmd.MarkFlagRequired("y")
	cmd.Flags().Float64Var(&size, "size", 0, "marker edge length in feet (0 selects the default)")
	cmd.Flags().StringVar(&sample, "sample", "", "sample id")
	cmd.Flags().StringVar(&notes, "notes", "", "notes")

	return cmd
}

func newTestSetCmd() *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "set [id] [field=value]...",
		Short: "Update test-marker fields by exact id",
		Long:  "Updatable fields: x, y, width, height, rotation, sampleId, testResult, notes. Valid results are pending, pass and fail.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			updates, err := parseUpdates(args[1:], testNumericFields, nil)
			if err != nil {
				return err
			}

			st, err := openStore(configFromContext(cmd.Context()))
			if err != nil {
				return err
			}

			dt, err := st.UpdateDestructiveTest(project, args[0], updates)
			if err != nil {
				return err
			}

			loggerFromContext(cmd.Context()).Infof("updated test %s (%d field(s))", dt.ID, len(updates))
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project id")
	cmd.MarkFlagRequired("project")

	return cmd
}

func newTestRmCmd() *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Remove a test marker by exact id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(configFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			if err := st.DeleteDestructiveTest(project, args[0]); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Infof("deleted test %s", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project id")
	cmd.MarkFlagRequired("project")

	return cmd
}
