package task

import (
	"fmt"

	"github.com/felixgeelhaar/taskflow/adapter/cli"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all completed tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := cli.RequireManager()
		if err != nil {
			return err
		}

		n := manager.ClearCompleted(cmd.Context())
		switch n {
		case 0:
			fmt.Fprintln(cmd.OutOrStdout(), "No completed tasks.")
		case 1:
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared 1 completed task.")
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d completed tasks.\n", n)
		}
		return nil
	},
}
