package schedule

import (
	"fmt"

	"github.com/felixgeelhaar/tempora/adapter/cli"
	"github.com/felixgeelhaar/tempora/internal/scheduling/application/commands"
	"github.com/spf13/cobra"
)

var (
	importFrom string
	importTo   string
	importDays int
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import commitments from CalDAV",
	Long: `Import calendar events from the configured CalDAV server as
commitments. Set TEMPORA_CALDAV_URL, TEMPORA_CALDAV_USERNAME and
TEMPORA_CALDAV_PASSWORD to enable.

Examples:
  tempora schedule import
  tempora schedule import --from 2024-01-15 --days 14`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ImportCommitmentsHandler == nil {
			return fmt.Errorf("calendar import not configured - set TEMPORA_CALDAV_URL and credentials")
		}

		rangeStart, rangeEnd, err := parseDateRange(importFrom, importTo, importDays)
		if err != nil {
			return err
		}

		result, err := app.ImportCommitmentsHandler.Handle(cmd.Context(), commands.ImportCommitmentsCommand{
			RangeStart: rangeStart,
			RangeEnd:   rangeEnd,
		})
		if err != nil {
			return fmt.Errorf("failed to import commitments: %w", err)
		}

		fmt.Printf("Imported %d commitment(s)", result.Imported)
		if result.Failed > 0 {
			fmt.Printf(", %d failed", result.Failed)
		}
		fmt.Println()

		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importFrom, "from", "", "range start (YYYY-MM-DD), defaults to today")
	importCmd.Flags().StringVar(&importTo, "to", "", "range end (YYYY-MM-DD)")
	importCmd.Flags().IntVar(&importDays, "days", 7, "days to import when --to is not given")
}
