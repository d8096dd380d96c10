package task

import (
	"time"

	"github.com/google/uuid"
)

const (
	AggregateType = "Task"

	RoutingKeyAdded            = "taskflow.task.added"
	RoutingKeyToggled          = "taskflow.task.toggled"
	RoutingKeyRemoved          = "taskflow.task.removed"
	RoutingKeyCompletedCleared = "taskflow.task.completed_cleared"
)

// Event is a change notification emitted after a collection mutation.
type Event struct {
	EventID       string    `json:"event_id"`
	Type          string    `json:"aggregate_type"`
	RoutingKey    string    `json:"routing_key"`
	TaskIDs       []string  `json:"task_ids"`
	Task          *Task     `json:"task,omitempty"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// WithCorrelationID returns a copy of e tagged with the command's correlation id.
func (e Event) WithCorrelationID(id string) Event {
	e.CorrelationID = id
	return e
}

func newEvent(routingKey string, ids []string, t *Task) Event {
	return Event{
		EventID:    uuid.New().String(),
		Type:       AggregateType,
		RoutingKey: routingKey,
		TaskIDs:    ids,
		Task:       t,
		OccurredAt: time.Now().UTC(),
	}
}

// NewTaskAdded creates the event for a newly added task.
func NewTaskAdded(t Task) Event {
	return newEvent(RoutingKeyAdded, []string{t.ID}, &t)
}

// NewTaskToggled creates the event for a completion flip. t is the record after the flip.
func NewTaskToggled(t Task) Event {
	return newEvent(RoutingKeyToggled, []string{t.ID}, &t)
}

// NewTaskRemoved creates the event for a deleted task.
func NewTaskRemoved(id string) Event {
	return newEvent(RoutingKeyRemoved, []string{id}, nil)
}

// NewCompletedCleared creates the event for a bulk removal of completed tasks.
func NewCompletedCleared(ids []string) Event {
	return newEvent(RoutingKeyCompletedCleared, ids, nil)
}
