package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dtaplin21/panelgrid/internal/config"
	"github.com/dtaplin21/panelgrid/internal/store"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. Typically
// called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the panelgrid CLI and returns an error if any command fails.
//
// The root command wires all subcommands (generate, layout, panel, patch,
// test, import, export, estimate, compare), loads the configuration file,
// and attaches a logger to the command context. --verbose switches the
// logger to debug level; --config overrides the per-user config location.
func Execute() error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "panelgrid",
		Short:        "PanelGrid generates and manages geosynthetic liner panel layouts",
		Long:         `PanelGrid is a CLI for geosynthetic liner installation projects: it generates panel layout proposals from extracted project requirements, manages persisted layouts with panels, repair patches and destructive-test markers, and exports field-ready drawings, schedules and labels.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(os.Stderr, level)

			var (
				cfg config.Config
				err error
			)
			if configPath != "" {
				cfg, err = config.Load(configPath)
			} else {
				var loaded string
				cfg, loaded, err = config.LoadDefault()
				if loaded != "" {
					logger.Debugf("loaded config from %s", loaded)
				}
			}
			if err != nil {
				return err
			}

			ctx := withLogger(cmd.Context(), logger)
			ctx = withConfig(ctx, cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("panelgrid %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newLayoutCmd())
	root.AddCommand(newPanelCmd())
	root.AddCommand(newPatchCmd())
	root.AddCommand(newTestCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newEstimateCmd())
	root.AddCommand(newCompareCmd())

	return root.ExecuteContext(context.Background())
}

// openStore builds the layout store from the configuration: file-backed
// persistence under the configured (or per-user default) directory.
func openStore(cfg config.Config) (*store.Store, error) {
	dir := cfg.LayoutDir
	if dir == "" {
		var err error
		dir, err = store.DefaultLayoutDir()
		if err != nil {
			return nil, fmt.Errorf("resolve layout dir: %w", err)
		}
	}

	fs, err := store.NewFileStore(dir)
	if err != nil {
		return nil, err
	}

	st := store.NewStore(fs)
	st.Settings = cfg.Settings()
	st.CanvasWidth = cfg.Canvas.Width
	st.CanvasHeight = cfg.Canvas.Height
	st.CoerceNonFinite = cfg.RepairNonFinite
	return st, nil
}
