package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/tempora/internal/scheduling/domain"
	"github.com/google/uuid"
)

// TaskDTO is a data transfer object for tasks.
type TaskDTO struct {
	ID           uuid.UUID
	Title        string
	EstimatedMin int
	Priority     string
	Deadline     *time.Time
	Divisible    bool
}

// ListTasksQuery contains the parameters for listing tasks.
type ListTasksQuery struct {
	Priority string // optional filter
}

// ListTasksHandler handles the ListTasksQuery.
type ListTasksHandler struct {
	tasks domain.TaskRepository
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(tasks domain.TaskRepository) *ListTasksHandler {
	return &ListTasksHandler{tasks: tasks}
}

// Handle executes the ListTasksQuery.
func (h *ListTasksHandler) Handle(ctx context.Context, query ListTasksQuery) ([]TaskDTO, error) {
	var filter domain.Priority
	if query.Priority != "" {
		p, err := domain.ParsePriority(query.Priority)
		if err != nil {
			return nil, err
		}
		filter = p
	}

	tasks, err := h.tasks.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	dtos := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		if filter != 0 && t.Priority != filter {
			continue
		}
		dtos = append(dtos, TaskDTO{
			ID:           t.ID,
			Title:        t.Title,
			EstimatedMin: int(t.EstimatedTime.Minutes()),
			Priority:     t.Priority.String(),
			Deadline:     t.Deadline,
			Divisible:    t.Divisible,
		})
	}
	return dtos, nil
}
