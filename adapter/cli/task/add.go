package task

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/taskflow/adapter/cli"
	"github.com/felixgeelhaar/taskflow/internal/tasks/domain/task"
	"github.com/spf13/cobra"
)

var priority string

var addCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Add a new task",
	Long: `Add a new task with an optional priority (low, medium, high).
Priority defaults to medium.

Examples:
  taskflow task add "Buy milk"
  taskflow task add Review the PR -p high`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := cli.RequireManager()
		if err != nil {
			return err
		}

		created, err := manager.AddTask(cmd.Context(), strings.Join(args, " "), task.Priority(priority))
		if err != nil {
			return fmt.Errorf("failed to add task: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Task added: %s\n", created.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "  text: %s\n", created.Text)
		fmt.Fprintf(cmd.OutOrStdout(), "  priority: %s\n", created.Priority)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&priority, "priority", "p", "", "task priority (low, medium, high)")
}
