package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/tempora/internal/scheduling/application/services"
	"github.com/felixgeelhaar/tempora/internal/scheduling/domain"
)

// PlanScheduleCommand asks the engine to place all pending tasks into
// the free time of an inclusive date range.
type PlanScheduleCommand struct {
	Chronotype   domain.Chronotype
	RangeStart   time.Time
	RangeEnd     time.Time
	WorkingHours domain.WorkingHours
}

// PlanScheduleHandler loads tasks and commitments, derives free slots
// and runs the allocator. It never writes: callers that persist the
// assignments must feed them back as commitments on the next run to
// avoid double-booking.
type PlanScheduleHandler struct {
	tasks       domain.TaskRepository
	commitments domain.CommitmentRepository
	allocator   *services.Allocator
	logger      *slog.Logger
}

// NewPlanScheduleHandler creates a new PlanScheduleHandler.
func NewPlanScheduleHandler(
	tasks domain.TaskRepository,
	commitments domain.CommitmentRepository,
	logger *slog.Logger,
) *PlanScheduleHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanScheduleHandler{
		tasks:       tasks,
		commitments: commitments,
		allocator:   services.NewAllocator(),
		logger:      logger,
	}
}

// Handle executes the PlanScheduleCommand.
func (h *PlanScheduleHandler) Handle(ctx context.Context, cmd PlanScheduleCommand) (*domain.ScheduleResult, error) {
	if !cmd.Chronotype.IsValid() {
		return nil, domain.ErrInvalidChronotype
	}

	calculator, err := services.NewAvailabilityCalculator(cmd.WorkingHours)
	if err != nil {
		return nil, err
	}

	commitments, err := h.commitments.FindByDateRange(ctx, cmd.RangeStart, cmd.RangeEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load commitments: %w", err)
	}

	tasks, err := h.tasks.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	slots, err := calculator.FreeSlots(commitments, cmd.Chronotype, cmd.RangeStart, cmd.RangeEnd)
	if err != nil {
		return nil, err
	}

	result, err := h.allocator.Allocate(tasks, slots, cmd.Chronotype)
	if err != nil {
		return nil, err
	}

	h.logger.Info("schedule planned",
		"tasks", len(tasks),
		"commitments", len(commitments),
		"free_slots", len(slots),
		"scheduled", len(result.Scheduled),
		"unscheduled", len(result.Unscheduled),
	)

	return result, nil
}
