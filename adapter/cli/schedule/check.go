package schedule

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/tempora/adapter/cli"
	"github.com/felixgeelhaar/tempora/internal/scheduling/application/queries"
	"github.com/spf13/cobra"
)

var (
	checkDate     string
	checkStart    string
	checkDuration int
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a time slot for conflicts",
	Long: `Check whether a proposed interval collides with an existing
commitment.

Examples:
  tempora schedule check --date 2024-01-15 --start 14:00 --duration 60`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CheckSlotHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		date, err := time.Parse("2006-01-02", checkDate)
		if err != nil {
			return fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
		}

		startClock, err := time.Parse("15:04", checkStart)
		if err != nil {
			return fmt.Errorf("invalid start time (use HH:MM): %w", err)
		}
		startOffset := time.Duration(startClock.Hour())*time.Hour + time.Duration(startClock.Minute())*time.Minute

		result, err := app.CheckSlotHandler.Handle(cmd.Context(), queries.CheckSlotQuery{
			Date:      date,
			StartTime: startOffset,
			Duration:  time.Duration(checkDuration) * time.Minute,
		})
		if err != nil {
			return fmt.Errorf("failed to check slot: %w", err)
		}

		slotEnd := startClock.Add(time.Duration(checkDuration) * time.Minute)
		fmt.Printf("Slot %s %s - %s\n", checkDate, checkStart, slotEnd.Format("15:04"))

		if result.Free {
			fmt.Println("  Free.")
			return nil
		}

		fmt.Printf("  Conflicts with %q (%s - %s)\n",
			result.Conflict.Title,
			result.Conflict.Start.Format("15:04"),
			result.Conflict.End.Format("15:04"),
		)
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkDate, "date", "d", "", "date (YYYY-MM-DD)")
	checkCmd.Flags().StringVar(&checkStart, "start", "", "start time (HH:MM)")
	checkCmd.Flags().IntVar(&checkDuration, "duration", 60, "duration in minutes")
	_ = checkCmd.MarkFlagRequired("date")
	_ = checkCmd.MarkFlagRequired("start")
}
