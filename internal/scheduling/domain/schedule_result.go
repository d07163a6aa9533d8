package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScheduledAssignment places one task at a concrete start instant for a
// concrete duration, with a short human-readable justification.
type ScheduledAssignment struct {
	TaskID   uuid.UUID
	Start    time.Time
	Duration time.Duration
	Reason   string
}

// End returns the instant the assignment finishes.
func (a ScheduledAssignment) End() time.Time {
	return a.Start.Add(a.Duration)
}

// OverlapsWith checks if two assignments occupy overlapping intervals.
func (a ScheduledAssignment) OverlapsWith(other ScheduledAssignment) bool {
	return a.Start.Before(other.End()) && a.End().After(other.Start)
}

// ScheduleResult is the full outcome of one allocation run.
type ScheduleResult struct {
	Scheduled   []ScheduledAssignment
	Unscheduled []uuid.UUID
	Conflicts   []string
	Suggestions []string
}
