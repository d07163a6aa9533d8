package schedule

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/tempora/adapter/cli"
	"github.com/felixgeelhaar/tempora/internal/scheduling/application/commands"
	"github.com/felixgeelhaar/tempora/internal/scheduling/domain"
	"github.com/spf13/cobra"
)

var (
	planFrom       string
	planTo         string
	planDays       int
	planChronotype string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan tasks into free time",
	Long: `Place pending tasks into the free gaps of your calendar,
preferring the hours that suit your chronotype.

Examples:
  tempora schedule plan
  tempora schedule plan --days 3
  tempora schedule plan --from 2024-01-15 --to 2024-01-19 --chronotype night`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.PlanScheduleHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		rangeStart, rangeEnd, err := parseDateRange(planFrom, planTo, planDays)
		if err != nil {
			return err
		}

		chronotype := app.Chronotype
		if planChronotype != "" {
			chronotype, err = domain.ParseChronotype(planChronotype)
			if err != nil {
				return err
			}
		}

		result, err := app.PlanScheduleHandler.Handle(cmd.Context(), commands.PlanScheduleCommand{
			Chronotype:   chronotype,
			RangeStart:   rangeStart,
			RangeEnd:     rangeEnd,
			WorkingHours: app.WorkingHours,
		})
		if err != nil {
			return fmt.Errorf("failed to plan schedule: %w", err)
		}

		fmt.Printf("Plan for %s to %s (%s chronotype)\n",
			rangeStart.Format("2006-01-02"),
			rangeEnd.Format("2006-01-02"),
			chronotype,
		)
		fmt.Println(strings.Repeat("-", 60))

		if len(result.Scheduled) == 0 {
			fmt.Println("\nNothing scheduled.")
		}

		currentDay := ""
		for _, a := range result.Scheduled {
			day := a.Start.Format("Monday, January 2")
			if day != currentDay {
				fmt.Printf("\n%s\n", day)
				currentDay = day
			}
			fmt.Printf("  %s - %s  task %s\n",
				a.Start.Format("15:04"),
				a.End().Format("15:04"),
				a.TaskID.String()[:8],
			)
			if a.Reason != "" {
				fmt.Printf("           %s\n", a.Reason)
			}
		}

		if len(result.Unscheduled) > 0 {
			fmt.Printf("\nUnscheduled (%d):\n", len(result.Unscheduled))
			for _, id := range result.Unscheduled {
				fmt.Printf("  - %s\n", id.String()[:8])
			}
		}

		for _, c := range result.Conflicts {
			fmt.Printf("\n%s\n", c)
		}
		if len(result.Suggestions) > 0 {
			fmt.Println("\nSuggestions:")
			for _, s := range result.Suggestions {
				fmt.Printf("  - %s\n", s)
			}
		}

		return nil
	},
}

func init() {
	planCmd.Flags().StringVar(&planFrom, "from", "", "range start (YYYY-MM-DD), defaults to today")
	planCmd.Flags().StringVar(&planTo, "to", "", "range end (YYYY-MM-DD)")
	planCmd.Flags().IntVar(&planDays, "days", 7, "days to plan when --to is not given")
	planCmd.Flags().StringVar(&planChronotype, "chronotype", "", "override configured chronotype (early_morning, morning, afternoon, evening, night)")
}
