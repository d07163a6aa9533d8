package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/tempora/internal/scheduling/application/services"
	"github.com/felixgeelhaar/tempora/internal/scheduling/domain"
)

// TimeSlotDTO is a data transfer object for free time slots.
type TimeSlotDTO struct {
	Start       time.Time
	End         time.Time
	DurationMin int
	Score       int
}

// FindFreeSlotsQuery contains the parameters for listing free slots.
type FindFreeSlotsQuery struct {
	Chronotype   domain.Chronotype
	RangeStart   time.Time
	RangeEnd     time.Time
	WorkingHours domain.WorkingHours
}

// FindFreeSlotsHandler handles the FindFreeSlotsQuery.
type FindFreeSlotsHandler struct {
	commitments domain.CommitmentRepository
}

// NewFindFreeSlotsHandler creates a new FindFreeSlotsHandler.
func NewFindFreeSlotsHandler(commitments domain.CommitmentRepository) *FindFreeSlotsHandler {
	return &FindFreeSlotsHandler{commitments: commitments}
}

// Handle executes the FindFreeSlotsQuery.
func (h *FindFreeSlotsHandler) Handle(ctx context.Context, query FindFreeSlotsQuery) ([]TimeSlotDTO, error) {
	if !query.Chronotype.IsValid() {
		return nil, domain.ErrInvalidChronotype
	}

	calculator, err := services.NewAvailabilityCalculator(query.WorkingHours)
	if err != nil {
		return nil, err
	}

	commitments, err := h.commitments.FindByDateRange(ctx, query.RangeStart, query.RangeEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load commitments: %w", err)
	}

	slots, err := calculator.FreeSlots(commitments, query.Chronotype, query.RangeStart, query.RangeEnd)
	if err != nil {
		return nil, err
	}

	dtos := make([]TimeSlotDTO, len(slots))
	for i, slot := range slots {
		dtos[i] = TimeSlotDTO{
			Start:       slot.Start,
			End:         slot.End,
			DurationMin: int(slot.Duration().Minutes()),
			Score:       slot.Score,
		}
	}
	return dtos, nil
}
