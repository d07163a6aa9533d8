package services

import (
	"time"

	"github.com/felixgeelhaar/tempora/internal/scheduling/domain"
)

// SlotScorer combines a slot's chronotype score with a task's priority
// and deadline urgency into a single suitability score. Higher is more
// suitable; zero means the slot must never be used for the task.
//
// The weighting scheme is fixed: priority pulls the chronotype base
// additively toward a baseline, deadline urgency multiplies the result.
// High-priority tasks keep the raw chronotype score so they compete for
// peak hours; low-priority filler is pulled toward 70 so it still lands
// somewhere even outside the user's best window.
type SlotScorer struct{}

// NewSlotScorer creates a scorer.
func NewSlotScorer() *SlotScorer {
	return &SlotScorer{}
}

// Score rates how suitable a slot is for a task.
func (s *SlotScorer) Score(task *domain.Task, slot domain.TimeSlot) float64 {
	// Indivisible tasks need one contiguous slot of their full duration.
	if !task.Divisible && !slot.Fits(task.EstimatedTime) {
		return 0
	}

	score := float64(slot.Score)

	switch task.Priority {
	case domain.PriorityMedium:
		score = (score + 50) / 2
	case domain.PriorityLow:
		score = (score + 70) / 2
	}

	if task.Deadline != nil {
		switch days := daysUntil(slot.Date(), *task.Deadline); {
		case days <= 1:
			score *= 2
		case days <= 3:
			score *= 1.5
		}
	}

	return score
}

// daysUntil counts whole days from the slot's date to the deadline,
// both normalized to midnight. Past deadlines yield negative counts and
// therefore the maximum urgency bucket.
func daysUntil(slotDate, deadline time.Time) int {
	return int(domain.Midnight(deadline).Sub(domain.Midnight(slotDate)).Hours() / 24)
}
