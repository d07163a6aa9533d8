package commitment

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/felixgeelhaar/tempora/adapter/cli"
	internalApp "github.com/felixgeelhaar/tempora/internal/app"
	"github.com/felixgeelhaar/tempora/internal/scheduling/application/queries"
	"github.com/felixgeelhaar/tempora/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) *cli.App {
	t.Helper()

	cfg := &config.Config{
		AppEnv:       "test",
		DatabasePath: filepath.Join(t.TempDir(), "test.db"),
		Chronotype:   "morning",
		WorkStart:    8 * time.Hour,
		WorkEnd:      22 * time.Hour,
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	container, err := internalApp.NewContainer(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(container.Close)

	cliApp := cli.NewApp(
		container.CreateTaskHandler,
		container.CreateCommitmentHandler,
		container.PlanScheduleHandler,
		container.ListTasksHandler,
		container.ListCommitmentsHandler,
		container.FindFreeSlotsHandler,
		container.CheckSlotHandler,
	)
	cli.SetApp(cliApp)
	t.Cleanup(func() { cli.SetApp(nil) })

	return cliApp
}

func resetFlags() {
	date = ""
	start = ""
	end = ""
	flexible = false
	priority = 0
	listFrom = ""
	listTo = ""
}

func TestCommitmentAdd(t *testing.T) {
	app := setupTestApp(t)
	resetFlags()
	defer resetFlags()

	date = "2024-01-15"
	start = "09:00"
	end = "09:30"

	addCmd.SetContext(context.Background())
	err := addCmd.RunE(addCmd, []string{"Team standup"})
	require.NoError(t, err)

	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	commitments, err := app.ListCommitmentsHandler.Handle(context.Background(), queries.ListCommitmentsQuery{
		RangeStart: day,
		RangeEnd:   day,
	})
	require.NoError(t, err)
	require.Len(t, commitments, 1)
	assert.Equal(t, "Team standup", commitments[0].Title)
	assert.Equal(t, day.Add(9*time.Hour), commitments[0].Start)
	assert.Equal(t, day.Add(9*time.Hour+30*time.Minute), commitments[0].End)
	assert.True(t, commitments[0].Fixed)
}

func TestCommitmentAdd_InvalidTimes(t *testing.T) {
	setupTestApp(t)
	resetFlags()
	defer resetFlags()

	date = "not-a-date"
	addCmd.SetContext(context.Background())
	err := addCmd.RunE(addCmd, []string{"Bad date"})
	assert.Error(t, err)

	date = "2024-01-15"
	start = "9am"
	err = addCmd.RunE(addCmd, []string{"Bad start"})
	assert.Error(t, err)
}

func TestToday_IsUTCMidnight(t *testing.T) {
	origLocal := time.Local
	time.Local = time.FixedZone("UTC-5", -5*60*60)
	defer func() { time.Local = origLocal }()

	d := today()
	assert.Equal(t, time.UTC, d.Location())
	assert.Equal(t, 0, d.Hour())
	assert.Equal(t, 0, d.Minute())
}

func TestParseClockOffset(t *testing.T) {
	offset, err := parseClockOffset("14:30")
	require.NoError(t, err)
	assert.Equal(t, 14*time.Hour+30*time.Minute, offset)

	_, err = parseClockOffset("25:00")
	assert.Error(t, err)
}
