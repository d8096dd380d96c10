package cli

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/taskflow/internal/shared/infrastructure/security"
	"github.com/felixgeelhaar/taskflow/internal/tasks/infrastructure/export"
	"github.com/felixgeelhaar/taskflow/pkg/observability"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tasks to JSON, CSV or PDF",
	Long: `Export the task list for use in other tools.

Examples:
  taskflow export                          # JSON to stdout
  taskflow export --format csv -o tasks.csv
  taskflow export --format pdf -o tasks.pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := RequireManager()
		if err != nil {
			return err
		}

		format, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}
		if format == export.FormatPDF && exportOutput == "" {
			return fmt.Errorf("pdf export requires --output")
		}

		start := time.Now()
		tasks := manager.Tasks()
		data, err := export.Export(tasks, format)
		if err != nil {
			return fmt.Errorf("failed to export tasks: %w", err)
		}
		if logger != nil {
			observability.LogDuration(cmd.Context(), logger, "export."+string(format), start)
		}

		if exportOutput != "" {
			written, err := security.SafeWriteFile(exportOutput, data)
			if err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d tasks to %s\n", len(tasks), written)
			return nil
		}

		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "export format (json, csv, pdf)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}
