package task

import (
	"fmt"

	"github.com/felixgeelhaar/taskflow/adapter/cli"
	"github.com/felixgeelhaar/taskflow/internal/tasks/domain/task"
	"github.com/spf13/cobra"
)

var (
	filter string
	sortBy string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks in the order they were added.

Examples:
  taskflow task list
  taskflow task list -f active
  taskflow task list -f completed --sort priority`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := cli.RequireManager()
		if err != nil {
			return err
		}

		view := manager.View(task.Filter(filter))
		switch sortBy {
		case "":
		case "priority":
			view.Tasks = task.SortByPriority(view.Tasks)
		default:
			return fmt.Errorf("unsupported sort: %s (supported: priority)", sortBy)
		}

		return cli.Render(cmd.OutOrStdout(), view)
	},
}

func init() {
	listCmd.Flags().StringVarP(&filter, "filter", "f", "all", "filter (all, active, completed, pending)")
	listCmd.Flags().StringVar(&sortBy, "sort", "", "sort order (priority)")
}
