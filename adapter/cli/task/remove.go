package task

import (
	"fmt"

	"github.com/felixgeelhaar/taskflow/adapter/cli"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "rm [id]",
	Short:   "Remove a task",
	Long:    `Remove a task. The id may be a unique prefix.`,
	Aliases: []string{"remove", "delete"},
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

		if !manager.RemoveTask(cmd.Context(), id) {
			return fmt.Errorf("task not found: %s", id)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed: %s\n", id)
		return nil
	},
}
