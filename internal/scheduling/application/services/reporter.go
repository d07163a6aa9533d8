package services

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/tempora/internal/scheduling/domain"
)

// ResultReporter builds the human-readable parts of a schedule result:
// per-assignment justifications and aggregate suggestions.
type ResultReporter struct{}

// NewResultReporter creates a reporter.
func NewResultReporter() *ResultReporter {
	return &ResultReporter{}
}

// Justify explains why a slot was chosen for a task.
func (r *ResultReporter) Justify(task *domain.Task, slot domain.TimeSlot) string {
	parts := make([]string, 0, 3)

	switch {
	case slot.Score >= 80:
		parts = append(parts, "peak focus time for this chronotype")
	case slot.Score >= 50:
		parts = append(parts, "good time for this chronotype")
	}

	if task.Priority == domain.PriorityHigh {
		parts = append(parts, "high priority")
	}

	if task.Deadline != nil && daysUntil(slot.Date(), *task.Deadline) <= 1 {
		parts = append(parts, "deadline approaching")
	}

	if len(parts) == 0 {
		return "best available slot"
	}
	return strings.Join(parts, ", ")
}

// Suggestions produces aggregate advice: the user's productive window
// and, when tasks were left unplaced, how to make room for them.
func (r *ResultReporter) Suggestions(chronotype domain.Chronotype, unscheduled int) []string {
	suggestions := []string{
		fmt.Sprintf("your most productive window is %s; protect it for demanding work", chronotype.WindowLabel()),
	}
	if unscheduled > 0 {
		suggestions = append(suggestions,
			fmt.Sprintf("%d task(s) did not fit; consider relaxing deadlines or freeing up existing commitments", unscheduled))
	}
	return suggestions
}

// ConflictNote summarizes how many tasks could not be placed.
func (r *ResultReporter) ConflictNote(unscheduled int) string {
	return fmt.Sprintf("%d task(s) could not be placed in the available time", unscheduled)
}
