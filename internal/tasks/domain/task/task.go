package task

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task represents a single to-do item.
// Tasks are values: operations on a collection replace records, never edit them.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Priority  Priority  `json:"priority"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// GenerateID returns a new task identifier.
// UUIDv7 combines a millisecond timestamp with random bits, so ids sort by creation time.
func GenerateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// CreateTask validates input and builds a new active task.
// An empty priority selects DefaultPriority.
func CreateTask(text string, priority Priority) (Task, error) {
	if text == "" {
		return Task{}, ErrTextRequired
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Task{}, ErrTextEmpty
	}

	if priority == "" {
		priority = DefaultPriority
	}
	if !priority.IsValid() {
		return Task{}, ErrInvalidPriority
	}

	return Task{
		ID:        GenerateID(),
		Text:      trimmed,
		Priority:  priority,
		Completed: false,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// CreateTaskFromValue is CreateTask for loosely typed input such as decoded JSON.
// Anything other than a string is rejected with ErrTextRequired.
func CreateTaskFromValue(text any, priority string) (Task, error) {
	s, ok := text.(string)
	if !ok {
		return Task{}, ErrTextRequired
	}
	return CreateTask(s, Priority(priority))
}

// Validate checks a task restored from storage against the record invariants.
func Validate(t Task) error {
	if t.ID == "" {
		return ErrMissingID
	}
	if t.Text == "" {
		return ErrTextRequired
	}
	trimmed := strings.TrimSpace(t.Text)
	if trimmed == "" {
		return ErrTextEmpty
	}
	if trimmed != t.Text {
		return ErrTextUntrimmed
	}
	if !t.Priority.IsValid() {
		return ErrInvalidPriority
	}
	if t.CreatedAt.IsZero() {
		return ErrMissingCreated
	}
	return nil
}

// IsActive reports whether the task is still to be done.
func (t Task) IsActive() bool { return !t.Completed }

// Toggled returns a copy with the completion flag flipped.
func (t Task) Toggled() Task {
	t.Completed = !t.Completed
	return t
}
