package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/tempora/adapter/cli"
	"github.com/felixgeelhaar/tempora/adapter/cli/commitment"
	"github.com/felixgeelhaar/tempora/adapter/cli/schedule"
	"github.com/felixgeelhaar/tempora/adapter/cli/task"
	"github.com/felixgeelhaar/tempora/internal/app"
	"github.com/felixgeelhaar/tempora/pkg/config"
	"github.com/felixgeelhaar/tempora/pkg/observability"
)

func main() {
	logger := observability.LoggerFromEnv()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	cliApp := cli.NewApp(
		container.CreateTaskHandler,
		container.CreateCommitmentHandler,
		container.PlanScheduleHandler,
		container.ListTasksHandler,
		container.ListCommitmentsHandler,
		container.FindFreeSlotsHandler,
		container.CheckSlotHandler,
	)
	cliApp.SetPlanningDefaults(container.Chronotype, container.WorkingHours)
	if container.ImportCommitmentsHandler != nil {
		cliApp.SetImportCommitmentsHandler(container.ImportCommitmentsHandler)
	}
	cli.SetApp(cliApp)

	cli.AddCommand(task.Cmd)
	cli.AddCommand(commitment.Cmd)
	cli.AddCommand(schedule.Cmd)

	cli.Execute()
}
