package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidHour       = errors.New("hour must be between 0 and 23")
	ErrInvalidChronotype = errors.New("invalid chronotype value")
)

// Chronotype identifies a user's preferred productive window.
type Chronotype string

const (
	ChronotypeEarlyMorning Chronotype = "early_morning"
	ChronotypeMorning      Chronotype = "morning"
	ChronotypeAfternoon    Chronotype = "afternoon"
	ChronotypeEvening      Chronotype = "evening"
	ChronotypeNight        Chronotype = "night"
)

// Preference scores returned by Score.
const (
	ScorePeak     = 100
	ScoreGood     = 70
	ScoreWorkable = 40
	ScoreOffPeak  = 20
)

// chronotypeWindows maps each non-night chronotype to its optimal
// [start, end) hour range. Night wraps past midnight and is handled
// separately in Score.
var chronotypeWindows = map[Chronotype][2]int{
	ChronotypeEarlyMorning: {5, 9},
	ChronotypeMorning:      {9, 12},
	ChronotypeAfternoon:    {12, 17},
	ChronotypeEvening:      {17, 21},
}

// ParseChronotype creates a Chronotype from a string.
func ParseChronotype(s string) (Chronotype, error) {
	c := Chronotype(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", ErrInvalidChronotype
	}
	return c, nil
}

// String returns the string representation of the chronotype.
func (c Chronotype) String() string {
	return string(c)
}

// IsValid returns true if the chronotype is a known value.
func (c Chronotype) IsValid() bool {
	if c == ChronotypeNight {
		return true
	}
	_, ok := chronotypeWindows[c]
	return ok
}

// Window returns the optimal [start, end) hour range.
// For night the range wraps past midnight (21, 2).
func (c Chronotype) Window() (start, end int) {
	if c == ChronotypeNight {
		return 21, 2
	}
	w := chronotypeWindows[c]
	return w[0], w[1]
}

// WindowLabel returns a human-readable description of the optimal window.
func (c Chronotype) WindowLabel() string {
	start, end := c.Window()
	return fmt.Sprintf("%s (%02d:00-%02d:00)", c, start, end)
}

// Score returns the preference score for working at the given hour of day.
// The result is always one of ScorePeak, ScoreGood, ScoreWorkable or
// ScoreOffPeak. Hours outside 0-23 are rejected; callers normalize first.
func (c Chronotype) Score(hour int) (int, error) {
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidHour, hour)
	}

	if c == ChronotypeNight {
		return nightScore(hour), nil
	}

	start, end := c.Window()
	switch {
	case hour >= start && hour < end:
		return ScorePeak, nil
	case hour >= start-2 && hour < end+2:
		return ScoreGood, nil
	case hour >= start-4 && hour < end+4:
		return ScoreWorkable, nil
	default:
		return ScoreOffPeak, nil
	}
}

// nightScore handles the wraparound window (21:00-02:00). The expanded
// bands wrap the same way, so the comparison is an OR of the two edges
// rather than a single range check.
func nightScore(hour int) int {
	switch {
	case hour >= 21 || hour < 2:
		return ScorePeak
	case hour >= 19 || hour < 4:
		return ScoreGood
	case hour >= 17 || hour < 6:
		return ScoreWorkable
	default:
		return ScoreOffPeak
	}
}
