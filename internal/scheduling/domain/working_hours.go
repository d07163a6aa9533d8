package domain

import (
	"fmt"
	"time"
)

// WorkingHours bounds the daily window the availability calculator
// carves free slots from. Start and End are offsets from midnight.
type WorkingHours struct {
	Start time.Duration
	End   time.Duration
}

// DefaultWorkingHours returns the engine default of 08:00-22:00.
func DefaultWorkingHours() WorkingHours {
	return WorkingHours{Start: 8 * time.Hour, End: 22 * time.Hour}
}

// Validate rejects inverted or out-of-day windows.
func (w WorkingHours) Validate() error {
	if w.Start < 0 || w.End > 24*time.Hour || w.End <= w.Start {
		return fmt.Errorf("%w: working hours %s-%s", ErrInvalidInterval, w.Start, w.End)
	}
	return nil
}

// StartOn resolves the window's start instant for a given day.
func (w WorkingHours) StartOn(date time.Time) time.Time {
	return Midnight(date).Add(w.Start)
}

// EndOn resolves the window's end instant for a given day.
func (w WorkingHours) EndOn(date time.Time) time.Time {
	return Midnight(date).Add(w.End)
}
