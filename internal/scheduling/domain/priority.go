package domain

import (
	"errors"
	"strings"
)

// Priority represents task urgency level.
type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
)

var ErrInvalidPriority = errors.New("invalid priority value")

var priorityNames = map[Priority]string{
	PriorityLow:    "low",
	PriorityMedium: "medium",
	PriorityHigh:   "high",
}

var priorityValues = map[string]Priority{
	"low":    PriorityLow,
	"medium": PriorityMedium,
	"high":   PriorityHigh,
}

// ParsePriority creates a Priority from a string.
func ParsePriority(s string) (Priority, error) {
	p, ok := priorityValues[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, ErrInvalidPriority
	}
	return p, nil
}

// String returns the string representation of the priority.
func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return "unknown"
}

// IsValid returns true if the priority is a valid value.
func (p Priority) IsValid() bool {
	_, ok := priorityNames[p]
	return ok
}

// Weight returns a numeric weight for sorting (higher = more important).
func (p Priority) Weight() int {
	return int(p)
}
