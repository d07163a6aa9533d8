// Package app wires configuration, storage, and handlers into a
// runnable application.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/tempora/internal/scheduling/application/commands"
	"github.com/felixgeelhaar/tempora/internal/scheduling/application/queries"
	"github.com/felixgeelhaar/tempora/internal/scheduling/domain"
	"github.com/felixgeelhaar/tempora/internal/scheduling/infrastructure/caldav"
	"github.com/felixgeelhaar/tempora/internal/scheduling/infrastructure/persistence"
	"github.com/felixgeelhaar/tempora/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	TaskRepository       domain.TaskRepository
	CommitmentRepository domain.CommitmentRepository

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

	// Planning defaults
	Chronotype   domain.Chronotype
	WorkingHours domain.WorkingHours

	sqliteDB *sql.DB
	pgPool   *pgxpool.Pool
}

// NewContainer builds the application container. The database backend
// is PostgreSQL when cfg.DatabaseURL is set, SQLite otherwise.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	if err := c.initStorage(ctx); err != nil {
		return nil, err
	}
	if err := c.initPlanningDefaults(); err != nil {
		c.Close()
		return nil, err
	}
	c.initHandlers()

	return c, nil
}

func (c *Container) initStorage(ctx context.Context) error {
	if c.Config.UsePostgres() {
		pool, err := persistence.OpenPostgres(ctx, c.Config.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to open postgres: %w", err)
		}
		c.pgPool = pool
		c.TaskRepository = persistence.NewPostgresTaskRepository(pool)
		c.CommitmentRepository = persistence.NewPostgresCommitmentRepository(pool)
		c.Logger.Debug("storage initialized", "backend", "postgres")
		return nil
	}

	db, err := persistence.OpenSQLite(ctx, c.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open sqlite: %w", err)
	}
	c.sqliteDB = db
	c.TaskRepository = persistence.NewSQLiteTaskRepository(db)
	c.CommitmentRepository = persistence.NewSQLiteCommitmentRepository(db)
	c.Logger.Debug("storage initialized", "backend", "sqlite", "path", c.Config.DatabasePath)
	return nil
}

func (c *Container) initPlanningDefaults() error {
	chronotype, err := domain.ParseChronotype(c.Config.Chronotype)
	if err != nil {
		return fmt.Errorf("invalid configured chronotype %q: %w", c.Config.Chronotype, err)
	}

	hours := domain.WorkingHours{Start: c.Config.WorkStart, End: c.Config.WorkEnd}
	if err := hours.Validate(); err != nil {
		return fmt.Errorf("invalid configured working hours: %w", err)
	}

	c.Chronotype = chronotype
	c.WorkingHours = hours
	return nil
}

func (c *Container) initHandlers() {
	c.CreateTaskHandler = commands.NewCreateTaskHandler(c.TaskRepository, c.Logger)
	c.CreateCommitmentHandler = commands.NewCreateCommitmentHandler(c.CommitmentRepository, c.Logger)
	c.PlanScheduleHandler = commands.NewPlanScheduleHandler(c.TaskRepository, c.CommitmentRepository, c.Logger)

	c.ListTasksHandler = queries.NewListTasksHandler(c.TaskRepository)
	c.ListCommitmentsHandler = queries.NewListCommitmentsHandler(c.CommitmentRepository)
	c.FindFreeSlotsHandler = queries.NewFindFreeSlotsHandler(c.CommitmentRepository)
	c.CheckSlotHandler = queries.NewCheckSlotHandler(c.CommitmentRepository)

	if c.Config.CalDAVURL != "" {
		source := caldav.NewSource(
			c.Config.CalDAVURL,
			c.Config.CalDAVUsername,
			c.Config.CalDAVPassword,
			c.Logger,
		)
		if c.Config.CalDAVCalendarPath != "" {
			source = source.WithCalendarPath(c.Config.CalDAVCalendarPath)
		}
		c.ImportCommitmentsHandler = commands.NewImportCommitmentsHandler(source, c.CommitmentRepository, c.Logger)
	}
}

// Close releases the container's resources.
func (c *Container) Close() {
	if c.sqliteDB != nil {
		if err := c.sqliteDB.Close(); err != nil {
			c.Logger.Warn("failed to close sqlite", "error", err)
		}
		c.sqliteDB = nil
	}
	if c.pgPool != nil {
		c.pgPool.Close()
		c.pgPool = nil
	}
}
