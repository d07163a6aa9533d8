package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/felixgeelhaar/tempora/internal/scheduling/domain"
)

// AvailabilityCalculator derives free time slots in a date range by
// subtracting fixed commitments from a working-hours window. Each slot
// is tagged with the chronotype preference score of its start hour.
type AvailabilityCalculator struct {
	workingHours domain.WorkingHours
}

// NewAvailabilityCalculator creates a calculator for the given window.
func NewAvailabilityCalculator(workingHours domain.WorkingHours) (*AvailabilityCalculator, error) {
	if err := workingHours.Validate(); err != nil {
		return nil, err
	}
	return &AvailabilityCalculator{workingHours: workingHours}, nil
}

// FreeSlots walks each day of the inclusive [rangeStart, rangeEnd] range
// and emits the free gaps between commitments, discarding gaps shorter
// than domain.MinSlotDuration. A day with no commitments yields one slot
// spanning the full working window; a fully booked day yields none.
func (c *AvailabilityCalculator) FreeSlots(
	commitments []*domain.Commitment,
	chronotype domain.Chronotype,
	rangeStart, rangeEnd time.Time,
) ([]domain.TimeSlot, error) {
	rangeStart = domain.Midnight(rangeStart)
	rangeEnd = domain.Midnight(rangeEnd)
	if rangeEnd.Before(rangeStart) {
		return nil, fmt.Errorf("%w: range %s after %s", domain.ErrInvalidInterval,
			rangeStart.Format("2006-01-02"), rangeEnd.Format("2006-01-02"))
	}

	slots := make([]domain.TimeSlot, 0)
	for day := rangeStart; !day.After(rangeEnd); day = day.AddDate(0, 0, 1) {
		daySlots, err := c.freeSlotsForDay(commitments, chronotype, day)
		if err != nil {
			return nil, err
		}
		slots = append(slots, daySlots...)
	}
	return slots, nil
}

func (c *AvailabilityCalculator) freeSlotsForDay(
	commitments []*domain.Commitment,
	chronotype domain.Chronotype,
	day time.Time,
) ([]domain.TimeSlot, error) {
	busy := make([]*domain.Commitment, 0)
	for _, cm := range commitments {
		if cm.Completed {
			continue
		}
		if domain.SameDay(cm.Date, day) {
			busy = append(busy, cm)
		}
	}
	sort.Slice(busy, func(i, j int) bool {
		return busy[i].StartAt().Before(busy[j].StartAt())
	})

	dayStart := c.workingHours.StartOn(day)
	dayEnd := c.workingHours.EndOn(day)

	slots := make([]domain.TimeSlot, 0, len(busy)+1)
	cursor := dayStart

	for _, cm := range busy {
		start := cm.StartAt()
		if cursor.Before(start) {
			gapEnd := start
			if gapEnd.After(dayEnd) {
				gapEnd = dayEnd
			}
			slot, ok, err := c.makeSlot(cursor, gapEnd, chronotype)
			if err != nil {
				return nil, err
			}
			if ok {
				slots = append(slots, slot)
			}
		}
		if cm.EndAt().After(cursor) {
			cursor = cm.EndAt()
		}
		if !cursor.Before(dayEnd) {
			return slots, nil
		}
	}

	if cursor.Before(dayEnd) {
		slot, ok, err := c.makeSlot(cursor, dayEnd, chronotype)
		if err != nil {
			return nil, err
		}
		if ok {
			slots = append(slots, slot)
		}
	}
	return slots, nil
}

// makeSlot builds a scored slot for [start, end), dropping gaps shorter
// than the minimum reportable duration.
func (c *AvailabilityCalculator) makeSlot(
	start, end time.Time,
	chronotype domain.Chronotype,
) (domain.TimeSlot, bool, error) {
	if end.Sub(start) < domain.MinSlotDuration {
		return domain.TimeSlot{}, false, nil
	}
	score, err := chronotype.Score(start.Hour())
	if err != nil {
		return domain.TimeSlot{}, false, err
	}
	slot, err := domain.NewTimeSlot(start, end, score)
	if err != nil {
		return domain.TimeSlot{}, false, err
	}
	return slot, true, nil
}
