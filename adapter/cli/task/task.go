package task

import (
	"github.com/spf13/cobra"
)

// Cmd is the task command group
var Cmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
	Long:  `Add, list, toggle, and remove your tasks.`,
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(toggleCmd)
	Cmd.AddCommand(removeCmd)
	Cmd.AddCommand(clearCmd)
	Cmd.AddCommand(statsCmd)
}
