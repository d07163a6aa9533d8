package task

import (
	"github.com/spf13/cobra"
)

// Cmd is the task command group
var Cmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
	Long:  `Add, list, and manage the tasks waiting to be scheduled.`,
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
}
