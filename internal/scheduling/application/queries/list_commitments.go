package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/tempora/internal/scheduling/domain"
	"github.com/google/uuid"
)

// CommitmentDTO is a data transfer object for commitments.
type CommitmentDTO struct {
	ID        uuid.UUID
	Title     string
	Start     time.Time
	End       time.Time
	Fixed     bool
	Priority  int
	Completed bool
}

// ListCommitmentsQuery contains the parameters for listing commitments.
type ListCommitmentsQuery struct {
	RangeStart time.Time
	RangeEnd   time.Time
}

// ListCommitmentsHandler handles the ListCommitmentsQuery.
type ListCommitmentsHandler struct {
	commitments domain.CommitmentRepository
}

// NewListCommitmentsHandler creates a new ListCommitmentsHandler.
func NewListCommitmentsHandler(commitments domain.CommitmentRepository) *ListCommitmentsHandler {
	return &ListCommitmentsHandler{commitments: commitments}
}

// Handle executes the ListCommitmentsQuery.
func (h *ListCommitmentsHandler) Handle(ctx context.Context, query ListCommitmentsQuery) ([]CommitmentDTO, error) {
	commitments, err := h.commitments.FindByDateRange(ctx, query.RangeStart, query.RangeEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load commitments: %w", err)
	}

	dtos := make([]CommitmentDTO, len(commitments))
	for i, c := range commitments {
		dtos[i] = CommitmentDTO{
			ID:        c.ID,
			Title:     c.Title,
			Start:     c.StartAt(),
			End:       c.EndAt(),
			Fixed:     c.Fixed,
			Priority:  c.Priority,
			Completed: c.Completed,
		}
	}
	return dtos, nil
}
