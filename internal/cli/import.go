package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dtaplin21/panelgrid/internal/importer"
)

func newImportCmd() *cobra.Command {
	var (
		project string
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a panel schedule from a CSV or Excel file",
		Long:  "Columns are mapped by header name (case-insensitive, common aliases accepted); width and height are required. A quantity column expands rows into multiple panels.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], project, dryRun)
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project id")
	cmd.MarkFlagRequired("project")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and report without writing to the layout store")

	return cmd
}

func runImport(cmd *cobra.Command, path, project string, dryRun bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	var result importer.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		result = importer.ImportExcel(path)
	default:
		result = importer.ImportCSV(path)
	}

	for _, w := range result.Warnings {
		logger.Warn(w)
	}
	for _, e := range result.Errors {
		logger.Error(e)
	}
	if len(result.Items) == 0 {
		return fmt.Errorf("no importable panels in %s", path)
	}
	logger.Infof("parsed %d panel(s) from %s", len(result.Items), path)

	if dryRun {
		return nil
	}

	st, err := openStore(configFromContext(ctx))
	if err != nil {
		return err
	}

	p := newProgress(logger)
	results, err := st.BatchCreatePanels(project, result.Items)
	if err != nil {
		return err
	}

	created := 0
	for _, r := range results {
		if r.Err != nil {
			logger.Errorf("item %d (%s) not created: %v", r.Index+1, result.Items[r.Index].PanelNumber, r.Err)
			continue
		}
		created++
	}
	p.done(fmt.Sprintf("imported %d of %d panels into project %s", created, len(result.Items), project))

	if created < len(result.Items) {
		return fmt.Errorf("%d item(s) failed validation", len(result.Items)-created)
	}
	return nil
}
