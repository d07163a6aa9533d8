package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTaskDuration is assumed when a task has no estimate.
const DefaultTaskDuration = time.Hour

// Task is a unit of pending work the allocator attempts to place into
// free time. Tasks are read-only inputs to the engine; the allocator
// never mutates them.
type Task struct {
	ID            uuid.UUID
	Title         string
	EstimatedTime time.Duration
	Priority      Priority
	Deadline      *time.Time
	Divisible     bool
	CreatedAt     time.Time
}

// NewTask creates a task with engine defaults: one hour estimate,
// medium priority, divisible.
func NewTask(title string) *Task {
	return &Task{
		ID:            uuid.New(),
		Title:         title,
		EstimatedTime: DefaultTaskDuration,
		Priority:      PriorityMedium,
		Divisible:     true,
		CreatedAt:     time.Now(),
	}
}

// HasDeadline returns true if the task carries a deadline.
func (t *Task) HasDeadline() bool {
	return t.Deadline != nil
}
