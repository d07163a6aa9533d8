package domain

import (
	"time"

	"github.com/google/uuid"
)

// Defaults applied when a commitment omits its time-of-day bounds.
const (
	DefaultCommitmentStart    = 9 * time.Hour
	DefaultCommitmentDuration = time.Hour
)

// Commitment is a pre-existing occupied calendar interval the engine
// must not schedule over. Commitments are owned by the calendar
// subsystem and are read-only inputs here.
type Commitment struct {
	ID        uuid.UUID
	Title     string
	Date      time.Time      // normalized to midnight
	StartTime *time.Duration // offset from midnight; nil means 09:00
	EndTime   *time.Duration // offset from midnight; nil means start + 1h
	Fixed     bool
	Priority  int // 1 (lowest) to 5 (highest)
	Completed bool
}

// NewCommitment creates a fixed commitment on the given date.
func NewCommitment(title string, date time.Time) *Commitment {
	return &Commitment{
		ID:       uuid.New(),
		Title:    title,
		Date:     Midnight(date),
		Fixed:    true,
		Priority: 3,
	}
}

// StartAt resolves the absolute start instant, applying the default
// start offset when none is set.
func (c *Commitment) StartAt() time.Time {
	offset := DefaultCommitmentStart
	if c.StartTime != nil {
		offset = *c.StartTime
	}
	return Midnight(c.Date).Add(offset)
}

// EndAt resolves the absolute end instant. A missing end defaults to
// one hour after the start.
func (c *Commitment) EndAt() time.Time {
	if c.EndTime != nil {
		return Midnight(c.Date).Add(*c.EndTime)
	}
	return c.StartAt().Add(DefaultCommitmentDuration)
}

// OverlapsInterval checks if the commitment occupies any part of
// [start, end).
func (c *Commitment) OverlapsInterval(start, end time.Time) bool {
	return start.Before(c.EndAt()) && end.After(c.StartAt())
}

// Midnight normalizes a time to the start of its day, preserving the
// location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two instants fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
