package cli

import (
	"github.com/felixgeelhaar/tempora/internal/scheduling/application/commands"
	"github.com/felixgeelhaar/tempora/internal/scheduling/application/queries"
	"github.com/felixgeelhaar/tempora/internal/scheduling/domain"
)

// App holds the CLI application dependencies.
type App struct {
	// Command handlers
	CreateTaskHandler        *commands.CreateTaskHandler
	CreateCommitmentHandler  *commands.CreateCommitmentHandler
	PlanScheduleHandler      *commands.PlanScheduleHandler
	ImportCommitmentsHandler *commands.ImportCommitmentsHandler

	// Query handlers
	ListTasksHandler       *queries.ListTasksHandler
	ListCommitmentsHandler *queries.ListCommitmentsHandler
	FindFreeSlotsHandler   *queries.FindFreeSlotsHandler
	CheckSlotHandler       *queries.CheckSlotHandler

	// Planning defaults from configuration
	Chronotype   domain.Chronotype
	WorkingHours domain.WorkingHours
}

// NewApp creates a new CLI application with the provided handlers.
func NewApp(
	createTaskHandler *commands.CreateTaskHandler,
	createCommitmentHandler *commands.CreateCommitmentHandler,
	planScheduleHandler *commands.PlanScheduleHandler,
	listTasksHandler *queries.ListTasksHandler,
	listCommitmentsHandler *queries.ListCommitmentsHandler,
	findFreeSlotsHandler *queries.FindFreeSlotsHandler,
	checkSlotHandler *queries.CheckSlotHandler,
) *App {
	return &App{
		CreateTaskHandler:       createTaskHandler,
		CreateCommitmentHandler: createCommitmentHandler,
		PlanScheduleHandler:     planScheduleHandler,
		ListTasksHandler:        listTasksHandler,
		ListCommitmentsHandler:  listCommitmentsHandler,
		FindFreeSlotsHandler:    findFreeSlotsHandler,
		CheckSlotHandler:        checkSlotHandler,
		Chronotype:              domain.ChronotypeMorning,
		WorkingHours:            domain.DefaultWorkingHours(),
	}
}

// SetImportCommitmentsHandler wires the calendar import handler. It is
// optional: import commands report a helpful error when unset.
func (a *App) SetImportCommitmentsHandler(h *commands.ImportCommitmentsHandler) {
	a.ImportCommitmentsHandler = h
}

// SetPlanningDefaults sets the chronotype and working hours used when
// commands omit them.
func (a *App) SetPlanningDefaults(chronotype domain.Chronotype, hours domain.WorkingHours) {
	a.Chronotype = chronotype
	a.WorkingHours = hours
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
