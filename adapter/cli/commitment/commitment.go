package commitment

import (
	"github.com/spf13/cobra"
)

// Cmd is the commitment command group
var Cmd = &cobra.Command{
	Use:   "commitment",
	Short: "Manage calendar commitments",
	Long:  `Add and list the fixed calendar events the planner schedules around.`,
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
}
