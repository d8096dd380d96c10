package task

import (
	"fmt"

	"github.com/felixgeelhaar/taskflow/adapter/cli"
	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:     "toggle [id]",
	Short:   "Toggle a task between active and completed",
	Long:    `Toggle a task. The id may be a unique prefix.`,
	Aliases: []string{"done"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := cli.RequireManager()
		if err != nil {
			return err
		}

		id, err := manager.Resolve(args[0])
		if err != nil {
			return err
		}

		updated, ok := manager.ToggleTask(cmd.Context(), id)
		if !ok {
			return fmt.Errorf("task not found: %s", id)
		}

		if updated.Completed {
			fmt.Fprintf(cmd.OutOrStdout(), "Completed: %s\n", updated.Text)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Reopened: %s\n", updated.Text)
		}
		return nil
	},
}
