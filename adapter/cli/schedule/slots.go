package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/tempora/adapter/cli"
	"github.com/felixgeelhaar/tempora/internal/scheduling/application/queries"
	"github.com/felixgeelhaar/tempora/internal/scheduling/domain"
	"github.com/spf13/cobra"
)

var (
	slotsFrom       string
	slotsTo         string
	slotsDays       int
	slotsChronotype string
)

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "List free time slots",
	Long: `List the free slots between commitments, scored by how well
their start hour matches your chronotype.

Examples:
  tempora schedule slots
  tempora schedule slots --from 2024-01-15 --days 1`,
	Aliases: []string{"free", "available"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.FindFreeSlotsHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		rangeStart, rangeEnd, err := parseDateRange(slotsFrom, slotsTo, slotsDays)
		if err != nil {
			return err
		}

		chronotype := app.Chronotype
		if slotsChronotype != "" {
			chronotype, err = domain.ParseChronotype(slotsChronotype)
			if err != nil {
				return err
			}
		}

		slots, err := app.FindFreeSlotsHandler.Handle(cmd.Context(), queries.FindFreeSlotsQuery{
			Chronotype:   chronotype,
			RangeStart:   rangeStart,
			RangeEnd:     rangeEnd,
			WorkingHours: app.WorkingHours,
		})
		if err != nil {
			return fmt.Errorf("failed to find free slots: %w", err)
		}

		fmt.Printf("Free slots for %s to %s (%s chronotype)\n",
			rangeStart.Format("2006-01-02"),
			rangeEnd.Format("2006-01-02"),
			chronotype,
		)
		fmt.Println(strings.Repeat("-", 60))

		if len(slots) == 0 {
			fmt.Println("\n  No free slots found.")
			return nil
		}

		totalMin := 0
		currentDay := ""
		for _, slot := range slots {
			day := slot.Start.Format("Monday, January 2")
			if day != currentDay {
				fmt.Printf("\n%s\n", day)
				currentDay = day
			}
			fmt.Printf("  %s - %s  (%s, energy %d)\n",
				slot.Start.Format("15:04"),
				slot.End.Format("15:04"),
				formatDuration(time.Duration(slot.DurationMin)*time.Minute),
				slot.Score,
			)
			totalMin += slot.DurationMin
		}

		fmt.Println(strings.Repeat("-", 60))
		fmt.Printf("Total: %d slots, %s available\n", len(slots), formatDuration(time.Duration(totalMin)*time.Minute))

		return nil
	},
}

func init() {
	slotsCmd.Flags().StringVar(&slotsFrom, "from", "", "range start (YYYY-MM-DD), defaults to today")
	slotsCmd.Flags().StringVar(&slotsTo, "to", "", "range end (YYYY-MM-DD)")
	slotsCmd.Flags().IntVar(&slotsDays, "days", 0, "days to cover when --to is not given")
	slotsCmd.Flags().StringVar(&slotsChronotype, "chronotype", "", "override configured chronotype")
}
