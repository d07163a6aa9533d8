package schedule

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// Cmd is the schedule command group
var Cmd = &cobra.Command{
	Use:   "schedule",
	Short: "Plan and inspect your schedule",
	Long:  `Plan tasks into free time, list open slots, and check conflicts.`,
}

func init() {
	Cmd.AddCommand(planCmd)
	Cmd.AddCommand(slotsCmd)
	Cmd.AddCommand(checkCmd)
	Cmd.AddCommand(importCmd)
}

// parseDateRange resolves --from/--to flags, defaulting to today and
// today+days. Defaults use the same UTC-midnight convention that parsed
// YYYY-MM-DD flags and stored dates use, so commitments and working
// hours anchor to the same instants.
func parseDateRange(from, to string, days int) (time.Time, time.Time, error) {
	rangeStart := today()
	rangeEnd := rangeStart.AddDate(0, 0, days)
	var err error

	if from != "" {
		rangeStart, err = time.Parse("2006-01-02", from)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from format, use YYYY-MM-DD: %w", err)
		}
		rangeEnd = rangeStart.AddDate(0, 0, days)
	}
	if to != "" {
		rangeEnd, err = time.Parse("2006-01-02", to)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to format, use YYYY-MM-DD: %w", err)
		}
	}
	return rangeStart, rangeEnd, nil
}

// today returns the local calendar date as a UTC midnight instant.
func today() time.Time {
	t, _ := time.Parse("2006-01-02", time.Now().Format("2006-01-02"))
	return t
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	if hours > 0 && minutes > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	} else if hours > 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dm", minutes)
}
