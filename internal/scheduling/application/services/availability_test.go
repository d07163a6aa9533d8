package services_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/tempora/internal/scheduling/application/services"
	"github.com/felixgeelhaar/tempora/internal/scheduling/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func durPtr(d time.Duration) *time.Duration { return &d }

func newCalculator(t *testing.T, start, end time.Duration) *services.AvailabilityCalculator {
	t.Helper()
	calc, err := services.NewAvailabilityCalculator(domain.WorkingHours{Start: start, End: end})
	require.NoError(t, err)
	return calc
}

func commitmentAt(date time.Time, start, end time.Duration) *domain.Commitment {
	c := domain.NewCommitment("busy", date)
	c.StartTime = durPtr(start)
	c.EndTime = durPtr(end)
	return c
}

func TestAvailabilityCalculator_SplitsAroundCommitment(t *testing.T) {
	// One event 09:00-10:00 on 2024-01-10, working hours 08:00-18:00:
	// exactly two slots, [08:00,09:00) and [10:00,18:00).
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	calc := newCalculator(t, 8*time.Hour, 18*time.Hour)

	slots, err := calc.FreeSlots(
		[]*domain.Commitment{commitmentAt(day, 9*time.Hour, 10*time.Hour)},
		domain.ChronotypeMorning, day, day,
	)
	require.NoError(t, err)
	require.Len(t, slots, 2)

	assert.Equal(t, day.Add(8*time.Hour), slots[0].Start)
	assert.Equal(t, day.Add(9*time.Hour), slots[0].End)
	assert.Equal(t, time.Hour, slots[0].Duration())

	assert.Equal(t, day.Add(10*time.Hour), slots[1].Start)
	assert.Equal(t, day.Add(18*time.Hour), slots[1].End)
	assert.Equal(t, 8*time.Hour, slots[1].Duration())
}

func TestAvailabilityCalculator_EmptyDayIsOneFullSlot(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	calc := newCalculator(t, 8*time.Hour, 22*time.Hour)

	slots, err := calc.FreeSlots(nil, domain.ChronotypeMorning, day, day)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, day.Add(8*time.Hour), slots[0].Start)
	assert.Equal(t, day.Add(22*time.Hour), slots[0].End)
}

func TestAvailabilityCalculator_FullyBookedDayHasNoSlots(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	calc := newCalculator(t, 9*time.Hour, 17*time.Hour)

	slots, err := calc.FreeSlots(
		[]*domain.Commitment{commitmentAt(day, 8*time.Hour, 18*time.Hour)},
		domain.ChronotypeMorning, day, day,
	)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailabilityCalculator_DropsGapsUnderThirtyMinutes(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	calc := newCalculator(t, 9*time.Hour, 12*time.Hour)

	// 20-minute gap between the commitments, then a clear tail.
	slots, err := calc.FreeSlots(
		[]*domain.Commitment{
			commitmentAt(day, 9*time.Hour, 10*time.Hour),
			commitmentAt(day, 10*time.Hour+20*time.Minute, 11*time.Hour),
		},
		domain.ChronotypeMorning, day, day,
	)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, day.Add(11*time.Hour), slots[0].Start)
	assert.Equal(t, day.Add(12*time.Hour), slots[0].End)
}

func TestAvailabilityCalculator_SkipsCompletedCommitments(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	calc := newCalculator(t, 8*time.Hour, 12*time.Hour)

	done := commitmentAt(day, 9*time.Hour, 11*time.Hour)
	done.Completed = true

	slots, err := calc.FreeSlots([]*domain.Commitment{done}, domain.ChronotypeMorning, day, day)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, 4*time.Hour, slots[0].Duration())
}

func TestAvailabilityCalculator_MissingEndDefaultsToOneHour(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	calc := newCalculator(t, 8*time.Hour, 12*time.Hour)

	c := domain.NewCommitment("call", day)
	c.StartTime = durPtr(9 * time.Hour)

	slots, err := calc.FreeSlots([]*domain.Commitment{c}, domain.ChronotypeMorning, day, day)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, day.Add(10*time.Hour), slots[1].Start)
}

func TestAvailabilityCalculator_ScoresSlotStartHour(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	calc := newCalculator(t, 8*time.Hour, 18*time.Hour)

	slots, err := calc.FreeSlots(
		[]*domain.Commitment{commitmentAt(day, 9*time.Hour, 10*time.Hour)},
		domain.ChronotypeMorning, day, day,
	)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, domain.ScoreGood, slots[0].Score) // 08:00 is window +-2h
	assert.Equal(t, domain.ScorePeak, slots[1].Score) // 10:00 is in-window
}

func TestAvailabilityCalculator_MultiDayRange(t *testing.T) {
	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)
	calc := newCalculator(t, 9*time.Hour, 17*time.Hour)

	slots, err := calc.FreeSlots(nil, domain.ChronotypeAfternoon, start, end)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	for i, slot := range slots {
		assert.Equal(t, start.AddDate(0, 0, i), slot.Date())
		assert.GreaterOrEqual(t, slot.Duration(), domain.MinSlotDuration)
		assert.True(t, slot.Start.Before(slot.End))
	}
}

func TestAvailabilityCalculator_InvertedRangeFails(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	calc := newCalculator(t, 8*time.Hour, 18*time.Hour)

	_, err := calc.FreeSlots(nil, domain.ChronotypeMorning, day, day.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)
}

func TestNewAvailabilityCalculator_RejectsInvalidWindow(t *testing.T) {
	_, err := services.NewAvailabilityCalculator(domain.WorkingHours{Start: 18 * time.Hour, End: 8 * time.Hour})
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)
}

func TestAvailabilityCalculator_OverlappingCommitmentsAdvanceCursor(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	calc := newCalculator(t, 8*time.Hour, 14*time.Hour)

	// The second commitment is swallowed by the first; the cursor must
	// not move backwards.
	slots, err := calc.FreeSlots(
		[]*domain.Commitment{
			commitmentAt(day, 9*time.Hour, 12*time.Hour),
			commitmentAt(day, 10*time.Hour, 11*time.Hour),
		},
		domain.ChronotypeMorning, day, day,
	)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, day.Add(8*time.Hour), slots[0].Start)
	assert.Equal(t, day.Add(9*time.Hour), slots[0].End)
	assert.Equal(t, day.Add(12*time.Hour), slots[1].Start)
	assert.Equal(t, day.Add(14*time.Hour), slots[1].End)
}
