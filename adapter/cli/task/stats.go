package task

import (
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/taskflow/adapter/cli"
	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := cli.RequireManager()
		if err != nil {
			return err
		}

		counts := manager.Counts()
		if statsJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(counts)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Total:     %d\n", counts.Total)
		fmt.Fprintf(cmd.OutOrStdout(), "Active:    %d\n", counts.Active)
		fmt.Fprintf(cmd.OutOrStdout(), "Completed: %d\n", counts.Completed)
		fmt.Fprintln(cmd.OutOrStdout(), cli.RemainingLabel(counts.Active))
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print counts as JSON")
}
