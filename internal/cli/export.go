package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dtaplin21/panelgrid/internal/export"
	"github.com/dtaplin21/panelgrid/internal/model"
)

func newExportCmd() *cobra.Command {
	var (
		project string
		labels  bool
	)

	cmd := &cobra.Command{
		Use:   "export [output-file]",
		Short: "Export a stored layout to PDF, Excel or DXF",
		Long:  "The format is chosen by the output extension: .pdf (site drawing and panel schedule), .xlsx (workbook) or .dxf (CAD geometry). With --labels a .pdf output becomes a QR label sheet for the placed panels.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], project, labels)
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project id")
	cmd.MarkFlagRequired("project")
	cmd.Flags().BoolVar(&labels, "labels", false, "write a QR label sheet instead of the layout drawing (PDF only)")

	return cmd
}

func runExport(cmd *cobra.Command, path, project string, labels bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	st, err := openStore(configFromContext(ctx))
	if err != nil {
		return err
	}
	l, err := st.GetLayout(project)
	if err != nil {
		return err
	}

	p := newProgress(logger)
	if err := exportByExtension(path, l, labels); err != nil {
		return err
	}
	p.done(fmt.Sprintf("exported project %s to %s", project, path))
	return nil
}

func exportByExtension(path string, l model.Layout, labels bool) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		if labels {
			return export.ExportLabels(path, l)
		}
		return export.ExportPDF(path, l)
	case ".xlsx":
		return export.ExportExcel(path, l)
	case ".dxf":
		return export.ExportDXF(path, l)
	default:
		return fmt.Errorf("unsupported output format %q: want .pdf, .xlsx or .dxf", filepath.Ext(path))
	}
}
