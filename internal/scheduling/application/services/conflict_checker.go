package services

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/tempora/internal/scheduling/domain"
)

// ConflictChecker is a stateless overlap test between a candidate
// interval and existing commitments. It serves callers placing ad-hoc
// single events; the allocator itself cannot conflict by construction
// since it only draws from slots already carved out of free time.
type ConflictChecker struct{}

// NewConflictChecker creates a checker.
func NewConflictChecker() *ConflictChecker {
	return &ConflictChecker{}
}

// Check tests a candidate (date, start offset, duration) against the
// commitments. It returns the first conflicting commitment in calendar
// order, or nil when the candidate is clear.
func (c *ConflictChecker) Check(
	date time.Time,
	start time.Duration,
	duration time.Duration,
	commitments []*domain.Commitment,
) (*domain.Commitment, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("%w: duration %s", domain.ErrInvalidInterval, duration)
	}

	candidateStart := domain.Midnight(date).Add(start)
	candidateEnd := candidateStart.Add(duration)

	var first *domain.Commitment
	for _, cm := range commitments {
		if cm.Completed || !domain.SameDay(cm.Date, date) {
			continue
		}
		if !cm.OverlapsInterval(candidateStart, candidateEnd) {
			continue
		}
		if first == nil || cm.StartAt().Before(first.StartAt()) {
			first = cm
		}
	}
	return first, nil
}
