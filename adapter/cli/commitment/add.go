package commitment

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/tempora/adapter/cli"
	"github.com/felixgeelhaar/tempora/internal/scheduling/application/commands"
	"github.com/spf13/cobra"
)

var (
	date     string
	start    string
	end      string
	flexible bool
	priority int
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a calendar commitment",
	Long: `Add a fixed calendar event the planner must schedule around.

Times default to a one-hour block starting at 09:00.

Examples:
  tempora commitment add "Team standup" --date 2024-01-15 --start 09:00 --end 09:30
  tempora commitment add "Lunch" --date 2024-01-15 --start 12:00 --end 13:00 --flexible`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateCommitmentHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		parsedDate, err := time.Parse("2006-01-02", date)
		if err != nil {
			return fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
		}

		createCmd := commands.CreateCommitmentCommand{
			Title:    args[0],
			Date:     parsedDate,
			Flexible: flexible,
			Priority: priority,
		}

		if start != "" {
			offset, err := parseClockOffset(start)
			if err != nil {
				return fmt.Errorf("invalid start time (use HH:MM): %w", err)
			}
			createCmd.StartTime = &offset
		}
		if end != "" {
			offset, err := parseClockOffset(end)
			if err != nil {
				return fmt.Errorf("invalid end time (use HH:MM): %w", err)
			}
			createCmd.EndTime = &offset
		}

		result, err := app.CreateCommitmentHandler.Handle(cmd.Context(), createCmd)
		if err != nil {
			return fmt.Errorf("failed to add commitment: %w", err)
		}

		fmt.Printf("Commitment added: %s\n", result.CommitmentID)
		fmt.Printf("  title: %s\n", args[0])
		fmt.Printf("  date: %s\n", date)

		return nil
	},
}

// parseClockOffset converts an HH:MM string to an offset from midnight.
func parseClockOffset(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func init() {
	addCmd.Flags().StringVarP(&date, "date", "d", "", "date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&start, "start", "", "start time (HH:MM)")
	addCmd.Flags().StringVar(&end, "end", "", "end time (HH:MM)")
	addCmd.Flags().BoolVar(&flexible, "flexible", false, "mark as movable")
	addCmd.Flags().IntVarP(&priority, "priority", "p", 0, "priority from 1 (lowest) to 5 (highest)")
	_ = addCmd.MarkFlagRequired("date")
}
