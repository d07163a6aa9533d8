package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/tempora/adapter/cli"
	"github.com/felixgeelhaar/tempora/internal/scheduling/application/queries"
	"github.com/spf13/cobra"
)

var filterPriority string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks waiting to be scheduled.

Examples:
  tempora task list
  tempora task list --priority high`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListTasksHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		tasks, err := app.ListTasksHandler.Handle(cmd.Context(), queries.ListTasksQuery{
			Priority: filterPriority,
		})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}

		fmt.Printf("Tasks (%d):\n", len(tasks))
		fmt.Println(strings.Repeat("-", 60))

		now := time.Now()
		for _, t := range tasks {
			deadlineMarker := ""
			if t.Deadline != nil && t.Deadline.Before(now) {
				deadlineMarker = " [OVERDUE]"
			}

			fmt.Printf("%s %s%s\n", getPriorityBadge(t.Priority), t.Title, deadlineMarker)
			fmt.Printf("   ID: %s\n", t.ID.String()[:8])
			fmt.Printf("   Duration: %d min\n", t.EstimatedMin)
			if t.Deadline != nil {
				fmt.Printf("   Deadline: %s\n", t.Deadline.Format("2006-01-02"))
			}
			if !t.Divisible {
				fmt.Println("   Indivisible")
			}
			fmt.Println()
		}

		return nil
	},
}

func getPriorityBadge(priority string) string {
	switch priority {
	case "high":
		return "(!)"
	case "medium":
		return "(~)"
	case "low":
		return "(.)"
	default:
		return ""
	}
}

func init() {
	listCmd.Flags().StringVarP(&filterPriority, "priority", "p", "", "filter by priority (low, medium, high)")
}
