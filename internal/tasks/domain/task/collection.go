package task

import (
	"sort"
	"strings"
)

// Filter selects a view over a task collection.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
	// FilterPending is the Manager's spelling of FilterActive.
	FilterPending Filter = "pending"
)

// Normalize maps a filter onto all, active or completed.
// Unrecognized filters become FilterAll.
func (f Filter) Normalize() Filter {
	switch f {
	case FilterActive, FilterPending:
		return FilterActive
	case FilterCompleted:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// Counts summarizes a task collection.
type Counts struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

// AddTask returns a new collection with t appended.
func AddTask(tasks []Task, t Task) []Task {
	out := make([]Task, 0, len(tasks)+1)
	out = append(out, tasks...)
	return append(out, t)
}

// DeleteTask returns a new collection without the task whose id matches.
func DeleteTask(tasks []Task, id string) []Task {
	return keep(tasks, func(t Task) bool { return t.ID != id })
}

// ToggleTask returns a new collection with the matching task's completion flag flipped.
func ToggleTask(tasks []Task, id string) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		if t.ID == id {
			t = t.Toggled()
		}
		out[i] = t
	}
	return out
}

// FilterTasks returns the tasks matching f, in their original order.
func FilterTasks(tasks []Task, f Filter) []Task {
	switch f.Normalize() {
	case FilterActive:
		return keep(tasks, Task.IsActive)
	case FilterCompleted:
		return keep(tasks, func(t Task) bool { return t.Completed })
	default:
		return keep(tasks, func(Task) bool { return true })
	}
}

// ClearCompleted returns a new collection holding only active tasks.
func ClearCompleted(tasks []Task) []Task {
	return keep(tasks, Task.IsActive)
}

// CountTasks returns total, active and completed counts.
func CountTasks(tasks []Task) Counts {
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return Counts{
		Total:     len(tasks),
		Active:    len(tasks) - completed,
		Completed: completed,
	}
}

// SortByPriority returns a copy ordered high, medium, low.
// Tasks with equal priority keep their relative order.
func SortByPriority(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() < out[j].Priority.Rank()
	})
	return out
}

// FindByPrefix returns the ids that start with prefix. An exact match wins outright.
func FindByPrefix(tasks []Task, prefix string) []string {
	var ids []string
	for _, t := range tasks {
		if t.ID == prefix {
			return []string{t.ID}
		}
		if prefix != "" && strings.HasPrefix(t.ID, prefix) {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

func keep(tasks []Task, pred func(Task) bool) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}
