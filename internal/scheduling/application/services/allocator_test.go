package services_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/tempora/internal/scheduling/application/services"
	"github.com/felixgeelhaar/tempora/internal/scheduling/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocator_PlacesTaskInBestSlot(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	allocator := services.NewAllocator()

	task := domain.NewTask("deep work")
	task.Priority = domain.PriorityHigh
	deadline := day.Add(18 * time.Hour)
	task.Deadline = &deadline

	slots := []domain.TimeSlot{
		slotAt(t, day, 8, 9, domain.ScoreGood),
		slotAt(t, day, 10, 18, domain.ScorePeak),
	}

	result, err := allocator.Allocate([]*domain.Task{task}, slots, domain.ChronotypeMorning)
	require.NoError(t, err)
	require.Len(t, result.Scheduled, 1)
	assert.Equal(t, task.ID, result.Scheduled[0].TaskID)
	assert.Equal(t, day.Add(10*time.Hour), result.Scheduled[0].Start)
	assert.Equal(t, time.Hour, result.Scheduled[0].Duration)
	assert.Empty(t, result.Unscheduled)
	assert.NotEmpty(t, result.Scheduled[0].Reason)
}

func TestAllocator_IndivisibleTaskSplitsSlotAtExactThreshold(t *testing.T) {
	// 90-minute indivisible task, a 60-minute slot and a 120-minute slot
	// at 14:00: the allocator must take the 120-minute slot and leave a
	// 30-minute leftover at 15:30 (the boundary is inclusive).
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	allocator := services.NewAllocator()

	task := domain.NewTask("workshop")
	task.EstimatedTime = 90 * time.Minute
	task.Divisible = false

	second := domain.NewTask("follow-up")
	second.EstimatedTime = 30 * time.Minute

	slots := []domain.TimeSlot{
		slotAt(t, day, 9, 10, domain.ScorePeak),
		slotAt(t, day, 14, 16, domain.ScoreWorkable),
	}

	result, err := allocator.Allocate([]*domain.Task{task, second}, slots, domain.ChronotypeMorning)
	require.NoError(t, err)
	require.Len(t, result.Scheduled, 2)

	assert.Equal(t, day.Add(14*time.Hour), result.Scheduled[0].Start)
	assert.Equal(t, 90*time.Minute, result.Scheduled[0].Duration)

	// The 30-minute leftover at 15:30 survived, but the second task
	// scores higher in the 09:00 slot; the leftover stays free.
	assert.Equal(t, day.Add(9*time.Hour), result.Scheduled[1].Start)
}

func TestAllocator_LeftoverSlotIsReusable(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	allocator := services.NewAllocator()

	first := domain.NewTask("big")
	first.EstimatedTime = 90 * time.Minute
	first.Divisible = false

	second := domain.NewTask("small")
	second.EstimatedTime = 30 * time.Minute

	// Single 120-minute slot: the leftover 30 minutes at 15:30 must be
	// offered to the second task.
	slots := []domain.TimeSlot{slotAt(t, day, 14, 16, domain.ScoreWorkable)}

	result, err := allocator.Allocate([]*domain.Task{first, second}, slots, domain.ChronotypeMorning)
	require.NoError(t, err)
	require.Len(t, result.Scheduled, 2)
	assert.Equal(t, day.Add(14*time.Hour), result.Scheduled[0].Start)
	assert.Equal(t, day.Add(15*time.Hour+30*time.Minute), result.Scheduled[1].Start)
	assert.Empty(t, result.Unscheduled)
}

func TestAllocator_SecondTaskUnscheduledWhenSlotExhausted(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	allocator := services.NewAllocator()

	first := domain.NewTask("first")
	second := domain.NewTask("second")

	slots := []domain.TimeSlot{slotAt(t, day, 9, 10, domain.ScorePeak)}

	result, err := allocator.Allocate([]*domain.Task{first, second}, slots, domain.ChronotypeMorning)
	require.NoError(t, err)
	require.Len(t, result.Scheduled, 1)
	require.Len(t, result.Unscheduled, 1)
	assert.Equal(t, second.ID, result.Unscheduled[0])
	require.Len(t, result.Conflicts, 1)
	assert.Contains(t, result.Conflicts[0], "1 task(s) could not be placed")
}

func TestAllocator_NoSlotsLeavesAllUnscheduled(t *testing.T) {
	allocator := services.NewAllocator()

	tasks := []*domain.Task{domain.NewTask("a"), domain.NewTask("b")}

	result, err := allocator.Allocate(tasks, nil, domain.ChronotypeEvening)
	require.NoError(t, err)
	assert.Empty(t, result.Scheduled)
	assert.Len(t, result.Unscheduled, 2)
}

func TestAllocator_DeadlinedTasksGoFirst(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	allocator := services.NewAllocator()

	relaxed := domain.NewTask("relaxed")
	relaxed.Priority = domain.PriorityHigh

	urgent := domain.NewTask("urgent")
	urgent.Priority = domain.PriorityLow
	deadline := day.AddDate(0, 0, 1)
	urgent.Deadline = &deadline

	// Only one slot: the deadlined task must win it regardless of
	// input order or priority.
	slots := []domain.TimeSlot{slotAt(t, day, 9, 10, domain.ScorePeak)}

	result, err := allocator.Allocate([]*domain.Task{relaxed, urgent}, slots, domain.ChronotypeMorning)
	require.NoError(t, err)
	require.Len(t, result.Scheduled, 1)
	assert.Equal(t, urgent.ID, result.Scheduled[0].TaskID)
	require.Len(t, result.Unscheduled, 1)
	assert.Equal(t, relaxed.ID, result.Unscheduled[0])
}

func TestAllocator_EarlierDeadlineThenPriorityThenInputOrder(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	allocator := services.NewAllocator()

	soon := day.AddDate(0, 0, 1)
	later := day.AddDate(0, 0, 5)

	a := domain.NewTask("later deadline, high")
	a.Priority = domain.PriorityHigh
	a.Deadline = &later

	b := domain.NewTask("sooner deadline, low")
	b.Priority = domain.PriorityLow
	b.Deadline = &soon

	c := domain.NewTask("same deadline, high")
	c.Priority = domain.PriorityHigh
	c.Deadline = &later

	slots := []domain.TimeSlot{
		slotAt(t, day, 9, 10, domain.ScorePeak),
		slotAt(t, day, 10, 11, domain.ScorePeak),
		slotAt(t, day, 11, 12, domain.ScorePeak),
	}

	result, err := allocator.Allocate([]*domain.Task{a, b, c}, slots, domain.ChronotypeMorning)
	require.NoError(t, err)
	require.Len(t, result.Scheduled, 3)

	// b has the earliest deadline and picks first; a and c share a
	// deadline and a priority, so input order decides between them.
	assert.Equal(t, b.ID, result.Scheduled[0].TaskID)
	assert.Equal(t, a.ID, result.Scheduled[1].TaskID)
	assert.Equal(t, c.ID, result.Scheduled[2].TaskID)
}

func TestAllocator_AssignmentsNeverOverlap(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	allocator := services.NewAllocator()

	tasks := make([]*domain.Task, 0, 6)
	for i := 0; i < 6; i++ {
		task := domain.NewTask("task")
		task.EstimatedTime = 45 * time.Minute
		tasks = append(tasks, task)
	}

	slots := []domain.TimeSlot{
		slotAt(t, day, 8, 10, domain.ScoreGood),
		slotAt(t, day, 13, 15, domain.ScoreWorkable),
	}

	result, err := allocator.Allocate(tasks, slots, domain.ChronotypeMorning)
	require.NoError(t, err)

	for i := range result.Scheduled {
		for j := i + 1; j < len(result.Scheduled); j++ {
			assert.False(t, result.Scheduled[i].OverlapsWith(result.Scheduled[j]),
				"assignments %d and %d overlap", i, j)
		}
	}
}

func TestAllocator_CapacityLaw(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	allocator := services.NewAllocator()

	task := domain.NewTask("long")
	task.EstimatedTime = 3 * time.Hour

	slots := []domain.TimeSlot{slotAt(t, day, 9, 11, domain.ScorePeak)}

	// The only slot is shorter than the estimate: unscheduled, never a
	// truncated assignment.
	result, err := allocator.Allocate([]*domain.Task{task}, slots, domain.ChronotypeMorning)
	require.NoError(t, err)
	assert.Empty(t, result.Scheduled)
	assert.Equal(t, []domain.ScheduledAssignment{}, result.Scheduled)
	require.Len(t, result.Unscheduled, 1)
}

func TestAllocator_Idempotent(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	allocator := services.NewAllocator()

	deadline := day.AddDate(0, 0, 2)
	a := domain.NewTask("a")
	a.Deadline = &deadline
	b := domain.NewTask("b")
	b.Priority = domain.PriorityHigh
	c := domain.NewTask("c")
	c.Priority = domain.PriorityLow

	tasks := []*domain.Task{a, b, c}
	slots := []domain.TimeSlot{
		slotAt(t, day, 8, 11, domain.ScoreGood),
		slotAt(t, day, 14, 16, domain.ScoreWorkable),
	}

	first, err := allocator.Allocate(tasks, slots, domain.ChronotypeMorning)
	require.NoError(t, err)
	second, err := allocator.Allocate(tasks, slots, domain.ChronotypeMorning)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAllocator_InputsNotMutated(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	allocator := services.NewAllocator()

	task := domain.NewTask("t")
	slots := []domain.TimeSlot{slotAt(t, day, 8, 12, domain.ScoreGood)}
	original := slots[0]

	_, err := allocator.Allocate([]*domain.Task{task}, slots, domain.ChronotypeMorning)
	require.NoError(t, err)
	assert.Equal(t, original, slots[0])
}

func TestAllocator_RejectsNonPositiveEstimate(t *testing.T) {
	allocator := services.NewAllocator()

	task := domain.NewTask("broken")
	task.EstimatedTime = -time.Hour

	_, err := allocator.Allocate([]*domain.Task{task}, nil, domain.ChronotypeMorning)
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)
}

func TestAllocator_LeftoverUnderThresholdIsDiscarded(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	allocator := services.NewAllocator()

	first := domain.NewTask("first")
	first.EstimatedTime = 100 * time.Minute

	second := domain.NewTask("second")
	second.EstimatedTime = 20 * time.Minute

	// 120-minute slot: 20-minute leftover is below the 30-minute floor
	// and must not be offered to the second task.
	slots := []domain.TimeSlot{slotAt(t, day, 9, 11, domain.ScorePeak)}

	result, err := allocator.Allocate([]*domain.Task{first, second}, slots, domain.ChronotypeMorning)
	require.NoError(t, err)
	require.Len(t, result.Scheduled, 1)
	assert.Equal(t, first.ID, result.Scheduled[0].TaskID)
	require.Len(t, result.Unscheduled, 1)
	assert.Equal(t, second.ID, result.Unscheduled[0])
}
