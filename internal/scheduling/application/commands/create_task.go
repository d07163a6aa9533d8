package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/tempora/internal/scheduling/domain"
	"github.com/google/uuid"
)

// CreateTaskCommand contains the data needed to create a task.
type CreateTaskCommand struct {
	Title           string
	Priority        string
	DurationMinutes int
	Deadline        *time.Time
	Indivisible     bool
}

// CreateTaskResult contains the result of creating a task.
type CreateTaskResult struct {
	TaskID uuid.UUID
}

// CreateTaskHandler handles the CreateTaskCommand.
type CreateTaskHandler struct {
	tasks  domain.TaskRepository
	logger *slog.Logger
}

// NewCreateTaskHandler creates a new CreateTaskHandler.
func NewCreateTaskHandler(tasks domain.TaskRepository, logger *slog.Logger) *CreateTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CreateTaskHandler{tasks: tasks, logger: logger}
}

// Handle executes the CreateTaskCommand.
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (*CreateTaskResult, error) {
	if cmd.Title == "" {
		return nil, fmt.Errorf("task title is required")
	}

	task := domain.NewTask(cmd.Title)

	if cmd.Priority != "" {
		p, err := domain.ParsePriority(cmd.Priority)
		if err != nil {
			return nil, err
		}
		task.Priority = p
	}

	if cmd.DurationMinutes != 0 {
		if cmd.DurationMinutes < 0 {
			return nil, fmt.Errorf("%w: estimated duration must be positive", domain.ErrInvalidInterval)
		}
		task.EstimatedTime = time.Duration(cmd.DurationMinutes) * time.Minute
	}

	task.Deadline = cmd.Deadline
	task.Divisible = !cmd.Indivisible

	if err := h.tasks.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	h.logger.Info("task created",
		"task_id", task.ID,
		"priority", task.Priority.String(),
		"estimated_min", int(task.EstimatedTime.Minutes()),
	)

	return &CreateTaskResult{TaskID: task.ID}, nil
}
