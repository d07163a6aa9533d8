package commitment

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/tempora/adapter/cli"
	"github.com/felixgeelhaar/tempora/internal/scheduling/application/queries"
	"github.com/spf13/cobra"
)

var (
	listFrom string
	listTo   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List commitments",
	Long: `List calendar commitments in a date range. Defaults to the
next seven days.

Examples:
  tempora commitment list
  tempora commitment list --from 2024-01-15 --to 2024-01-19`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListCommitmentsHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		rangeStart := today()
		rangeEnd := rangeStart.AddDate(0, 0, 7)
		var err error

		if listFrom != "" {
			rangeStart, err = time.Parse("2006-01-02", listFrom)
			if err != nil {
				return fmt.Errorf("invalid --from format, use YYYY-MM-DD: %w", err)
			}
		}
		if listTo != "" {
			rangeEnd, err = time.Parse("2006-01-02", listTo)
			if err != nil {
				return fmt.Errorf("invalid --to format, use YYYY-MM-DD: %w", err)
			}
		}

		commitments, err := app.ListCommitmentsHandler.Handle(cmd.Context(), queries.ListCommitmentsQuery{
			RangeStart: rangeStart,
			RangeEnd:   rangeEnd,
		})
		if err != nil {
			return fmt.Errorf("failed to list commitments: %w", err)
		}

		if len(commitments) == 0 {
			fmt.Println("No commitments found.")
			return nil
		}

		fmt.Printf("Commitments (%d):\n", len(commitments))
		fmt.Println(strings.Repeat("-", 60))

		currentDay := ""
		for _, c := range commitments {
			day := c.Start.Format("Monday, January 2")
			if day != currentDay {
				fmt.Printf("\n%s\n", day)
				currentDay = day
			}

			marker := " "
			if c.Completed {
				marker = "x"
			}
			kind := "fixed"
			if !c.Fixed {
				kind = "flexible"
			}
			fmt.Printf("  [%s] %s - %s  %s (%s)\n",
				marker,
				c.Start.Format("15:04"),
				c.End.Format("15:04"),
				c.Title,
				kind,
			)
		}

		return nil
	},
}

// today returns the local calendar date as a UTC midnight instant, the
// same convention parsed YYYY-MM-DD flags and stored dates use.
func today() time.Time {
	t, _ := time.Parse("2006-01-02", time.Now().Format("2006-01-02"))
	return t
}

func init() {
	listCmd.Flags().StringVar(&listFrom, "from", "", "range start (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listTo, "to", "", "range end (YYYY-MM-DD)")
}
