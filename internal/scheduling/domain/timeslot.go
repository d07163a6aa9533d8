package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidInterval = errors.New("interval end must be after start")

// MinSlotDuration is the smallest free gap worth reporting. Shorter
// gaps are discarded during availability calculation and slot splitting.
const MinSlotDuration = 30 * time.Minute

// TimeSlot is a derived free interval, tagged with the chronotype
// preference score of its start hour. Slots are ephemeral: they exist
// only within one engine invocation and are never persisted.
type TimeSlot struct {
	Start time.Time
	End   time.Time
	Score int
}

// NewTimeSlot creates a slot, rejecting degenerate intervals.
func NewTimeSlot(start, end time.Time, score int) (TimeSlot, error) {
	if !end.After(start) {
		return TimeSlot{}, fmt.Errorf("%w: start %s, end %s", ErrInvalidInterval,
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return TimeSlot{Start: start, End: end, Score: score}, nil
}

// Duration returns the slot length.
func (s TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Date returns the slot's calendar day at midnight.
func (s TimeSlot) Date() time.Time {
	return Midnight(s.Start)
}

// Fits reports whether the slot can hold the given duration.
func (s TimeSlot) Fits(d time.Duration) bool {
	return s.Duration() >= d
}
