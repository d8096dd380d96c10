package task

import "strings"

// Priority represents task urgency level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"

	// DefaultPriority is used when a task is created without a priority.
	DefaultPriority = PriorityMedium
)

var priorityRanks = map[Priority]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
}

var priorityLabels = map[Priority]string{
	PriorityHigh:   "High",
	PriorityMedium: "Medium",
	PriorityLow:    "Low",
}

// ParsePriority creates a Priority from a string.
// Matching is exact: "High" is not a valid priority.
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.IsValid() {
		return "", ErrInvalidPriority
	}
	return p, nil
}

// String returns the string representation of the priority.
func (p Priority) String() string {
	return string(p)
}

// IsValid returns true if the priority is one of low, medium or high.
func (p Priority) IsValid() bool {
	_, ok := priorityRanks[p]
	return ok
}

// Rank returns the sort rank (lower sorts first). Unknown priorities sort last.
func (p Priority) Rank() int {
	if r, ok := priorityRanks[p]; ok {
		return r
	}
	return len(priorityRanks)
}

// Label returns the display label.
func (p Priority) Label() string {
	if l, ok := priorityLabels[p]; ok {
		return l
	}
	return strings.ToUpper(string(p))
}
