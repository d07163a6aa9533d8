package task

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/tempora/adapter/cli"
	"github.com/felixgeelhaar/tempora/internal/scheduling/application/commands"
	"github.com/spf13/cobra"
)

var (
	priority    string
	duration    int
	deadline    string
	indivisible bool
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a task to be placed by the planner.

Examples:
  tempora task add "Write project report"
  tempora task add "Review PR" -p high -d 30
  tempora task add "Prepare talk" --deadline 2024-02-01 --indivisible`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		createCmd := commands.CreateTaskCommand{
			Title:           args[0],
			Priority:        priority,
			DurationMinutes: duration,
			Indivisible:     indivisible,
		}

		if deadline != "" {
			parsed, err := time.Parse("2006-01-02", deadline)
			if err != nil {
				return fmt.Errorf("invalid deadline format (use YYYY-MM-DD): %w", err)
			}
			createCmd.Deadline = &parsed
		}

		result, err := app.CreateTaskHandler.Handle(cmd.Context(), createCmd)
		if err != nil {
			return fmt.Errorf("failed to add task: %w", err)
		}

		fmt.Printf("Task added: %s\n", result.TaskID)
		fmt.Printf("  title: %s\n", args[0])
		if priority != "" {
			fmt.Printf("  priority: %s\n", priority)
		}
		if duration > 0 {
			fmt.Printf("  duration: %d minutes\n", duration)
		}
		if deadline != "" {
			fmt.Printf("  deadline: %s\n", deadline)
		}

		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&priority, "priority", "p", "", "task priority (low, medium, high)")
	addCmd.Flags().IntVarP(&duration, "duration", "d", 0, "estimated duration in minutes")
	addCmd.Flags().StringVar(&deadline, "deadline", "", "deadline (YYYY-MM-DD)")
	addCmd.Flags().BoolVar(&indivisible, "indivisible", false, "require a single contiguous slot")
}
