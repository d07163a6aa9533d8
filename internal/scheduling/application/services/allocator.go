package services

import (
	"fmt"
	"sort"

	"github.com/felixgeelhaar/tempora/internal/scheduling/domain"
	"github.com/google/uuid"
)

// Allocator greedily assigns tasks to free time slots. Tasks are
// attempted once each, in deadline/priority order; a placed task
// consumes its slot immediately, so no two assignments can overlap.
// The allocator is a pure function of its inputs: identical tasks,
// slots and chronotype always produce an identical result.
type Allocator struct {
	scorer   *SlotScorer
	reporter *ResultReporter
}

// NewAllocator creates an allocator.
func NewAllocator() *Allocator {
	return &Allocator{
		scorer:   NewSlotScorer(),
		reporter: NewResultReporter(),
	}
}

// Allocate places each task into its best-scoring slot with enough
// capacity, splitting consumed slots into remaining free time. Tasks
// with no fitting slot are reported unscheduled, not failed.
func (a *Allocator) Allocate(
	tasks []*domain.Task,
	slots []domain.TimeSlot,
	chronotype domain.Chronotype,
) (*domain.ScheduleResult, error) {
	for _, t := range tasks {
		if t.EstimatedTime <= 0 {
			return nil, fmt.Errorf("%w: task %s has estimate %s",
				domain.ErrInvalidInterval, t.ID, t.EstimatedTime)
		}
	}

	ordered := sortTasks(tasks)

	// Local working copy: consumed slots are replaced by their
	// leftovers, never mutated in place.
	free := make([]domain.TimeSlot, len(slots))
	copy(free, slots)

	result := &domain.ScheduleResult{
		Scheduled:   make([]domain.ScheduledAssignment, 0, len(tasks)),
		Unscheduled: make([]uuid.UUID, 0),
		Conflicts:   make([]string, 0),
		Suggestions: make([]string, 0),
	}

	for _, task := range ordered {
		idx := a.bestSlot(task, free)
		if idx < 0 {
			result.Unscheduled = append(result.Unscheduled, task.ID)
			continue
		}

		slot := free[idx]
		result.Scheduled = append(result.Scheduled, domain.ScheduledAssignment{
			TaskID:   task.ID,
			Start:    slot.Start,
			Duration: task.EstimatedTime,
			Reason:   a.reporter.Justify(task, slot),
		})

		var err error
		free, err = consumeSlot(free, idx, task, chronotype)
		if err != nil {
			return nil, err
		}
	}

	if n := len(result.Unscheduled); n > 0 {
		result.Conflicts = append(result.Conflicts, a.reporter.ConflictNote(n))
	}
	result.Suggestions = a.reporter.Suggestions(chronotype, len(result.Unscheduled))

	return result, nil
}

// bestSlot returns the index of the highest-scoring slot that can hold
// the task, or -1. Ties break on the earliest start instant so results
// are reproducible.
func (a *Allocator) bestSlot(task *domain.Task, free []domain.TimeSlot) int {
	best := -1
	var bestScore float64

	for i, slot := range free {
		if !slot.Fits(task.EstimatedTime) {
			continue
		}
		score := a.scorer.Score(task, slot)
		if score <= 0 {
			continue
		}
		if best < 0 || score > bestScore ||
			(score == bestScore && slot.Start.Before(free[best].Start)) {
			best = i
			bestScore = score
		}
	}
	return best
}

// consumeSlot removes the placed slot and re-inserts the leftover tail
// as a fresh slot, re-scored at its new start hour, when the leftover
// still meets the minimum slot duration.
func consumeSlot(
	free []domain.TimeSlot,
	idx int,
	task *domain.Task,
	chronotype domain.Chronotype,
) ([]domain.TimeSlot, error) {
	consumed := free[idx]
	next := make([]domain.TimeSlot, 0, len(free))
	next = append(next, free[:idx]...)
	next = append(next, free[idx+1:]...)

	leftoverStart := consumed.Start.Add(task.EstimatedTime)
	if consumed.End.Sub(leftoverStart) >= domain.MinSlotDuration {
		score, err := chronotype.Score(leftoverStart.Hour())
		if err != nil {
			return nil, err
		}
		leftover, err := domain.NewTimeSlot(leftoverStart, consumed.End, score)
		if err != nil {
			return nil, err
		}
		next = append(next, leftover)
		sort.Slice(next, func(i, j int) bool {
			return next[i].Start.Before(next[j].Start)
		})
	}
	return next, nil
}

// sortTasks orders tasks for allocation: deadlined tasks first (earliest
// deadline wins), then priority high to low, then original input order
// as the stable key.
func sortTasks(tasks []*domain.Task) []*domain.Task {
	type keyed struct {
		task  *domain.Task
		index int
	}
	ordered := make([]keyed, len(tasks))
	for i, t := range tasks {
		ordered[i] = keyed{task: t, index: i}
	}

	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i].task, ordered[j].task

		if a.HasDeadline() != b.HasDeadline() {
			return a.HasDeadline()
		}
		if a.HasDeadline() && !a.Deadline.Equal(*b.Deadline) {
			return a.Deadline.Before(*b.Deadline)
		}
		if a.Priority != b.Priority {
			return a.Priority.Weight() > b.Priority.Weight()
		}
		return ordered[i].index < ordered[j].index
	})

	sorted := make([]*domain.Task, len(ordered))
	for i, k := range ordered {
		sorted[i] = k.task
	}
	return sorted
}
