package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TaskRepository stores the engine's task inputs. Implementations must
// return tasks in a deterministic order (created_at, then id) so that
// repeated planning runs over unchanged data yield identical results.
type TaskRepository interface {
	Save(ctx context.Context, t *Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	FindAll(ctx context.Context) ([]*Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommitmentRepository stores calendar commitments. FindByDateRange is
// inclusive on both ends and must order by date, then start time.
type CommitmentRepository interface {
	Save(ctx context.Context, c *Commitment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Commitment, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]*Commitment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
