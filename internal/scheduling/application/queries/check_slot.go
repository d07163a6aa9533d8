package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/tempora/internal/scheduling/application/services"
	"github.com/felixgeelhaar/tempora/internal/scheduling/domain"
)

// CheckSlotQuery asks whether a proposed interval on a day collides
// with an existing commitment.
type CheckSlotQuery struct {
	Date      time.Time
	StartTime time.Duration // offset from midnight
	Duration  time.Duration
}

// CheckSlotResult reports the outcome of a conflict check.
type CheckSlotResult struct {
	Free     bool
	Conflict *CommitmentDTO
}

// CheckSlotHandler handles the CheckSlotQuery.
type CheckSlotHandler struct {
	commitments domain.CommitmentRepository
	checker     *services.ConflictChecker
}

// NewCheckSlotHandler creates a new CheckSlotHandler.
func NewCheckSlotHandler(commitments domain.CommitmentRepository) *CheckSlotHandler {
	return &CheckSlotHandler{
		commitments: commitments,
		checker:     services.NewConflictChecker(),
	}
}

// Handle executes the CheckSlotQuery.
func (h *CheckSlotHandler) Handle(ctx context.Context, query CheckSlotQuery) (*CheckSlotResult, error) {
	commitments, err := h.commitments.FindByDateRange(ctx, query.Date, query.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load commitments: %w", err)
	}

	conflict, err := h.checker.Check(query.Date, query.StartTime, query.Duration, commitments)
	if err != nil {
		return nil, err
	}
	if conflict == nil {
		return &CheckSlotResult{Free: true}, nil
	}

	return &CheckSlotResult{
		Free: false,
		Conflict: &CommitmentDTO{
			ID:        conflict.ID,
			Title:     conflict.Title,
			Start:     conflict.StartAt(),
			End:       conflict.EndAt(),
			Fixed:     conflict.Fixed,
			Priority:  conflict.Priority,
			Completed: conflict.Completed,
		},
	}, nil
}
