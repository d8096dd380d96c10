package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/felixgeelhaar/taskflow/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/taskflow/internal/tasks/domain/task"
	"github.com/felixgeelhaar/taskflow/pkg/observability"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrAmbiguousID  = errors.New("task id prefix is ambiguous")
)

// Repository loads and saves a whole task collection.
// Implementations swallow storage failures.
type Repository interface {
	Load(ctx context.Context) []task.Task
	Save(ctx context.Context, tasks []task.Task)
}

// ViewState is everything a shell needs to render the list.
type ViewState struct {
	Filter task.Filter
	Tasks  []task.Task
	Counts task.Counts
}

// Manager owns the in-memory task collection and persists it after every mutation.
type Manager struct {
	mu        sync.Mutex
	tasks     []task.Task
	repo      Repository
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewManager creates a manager holding the collection loaded from repo.
func NewManager(ctx context.Context, repo Repository, publisher eventbus.Publisher, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = eventbus.NewNoopPublisher(logger)
	}

	tasks := repo.Load(ctx)
	logger.DebugContext(ctx, "tasks loaded", "count", len(tasks))

	return &Manager{
		tasks:     tasks,
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Tasks returns a copy of the collection in insertion order.
func (m *Manager) Tasks() []task.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return task.FilterTasks(m.tasks, task.FilterAll)
}

// AddTask creates a task and appends it. Invalid input returns a *task.ValidationError
// and leaves the collection untouched.
func (m *Manager) AddTask(ctx context.Context, text string, priority task.Priority) (task.Task, error) {
	t, err := task.CreateTask(text, priority)
	if err != nil {
		return task.Task{}, err
	}
	return m.add(ctx, t), nil
}

// AddTaskValue is AddTask for loosely typed text, such as decoded tool arguments.
// A non-string text fails with task.ErrTextRequired.
func (m *Manager) AddTaskValue(ctx context.Context, text any, priority string) (task.Task, error) {
	t, err := task.CreateTaskFromValue(text, priority)
	if err != nil {
		return task.Task{}, err
	}
	return m.add(ctx, t), nil
}

func (m *Manager) add(ctx context.Context, t task.Task) task.Task {
	m.mu.Lock()
	m.commit(ctx, task.AddTask(m.tasks, t))
	m.mu.Unlock()

	m.publish(ctx, task.NewTaskAdded(t))
	return t
}

// RemoveTask deletes the task with id. It reports whether a task was removed.
func (m *Manager) RemoveTask(ctx context.Context, id string) bool {
	m.mu.Lock()
	before := len(m.tasks)
	m.commit(ctx, task.DeleteTask(m.tasks, id))
	removed := len(m.tasks) < before
	m.mu.Unlock()

	if removed {
		m.publish(ctx, task.NewTaskRemoved(id))
	}
	return removed
}

// ToggleTask flips the completion flag of the task with id.
// It returns the updated record and whether the id matched.
func (m *Manager) ToggleTask(ctx context.Context, id string) (task.Task, bool) {
	m.mu.Lock()
	m.commit(ctx, task.ToggleTask(m.tasks, id))
	updated, ok := m.find(id)
	m.mu.Unlock()

	if ok {
		m.publish(ctx, task.NewTaskToggled(updated))
	}
	return updated, ok
}

// ClearCompleted removes every completed task and returns how many were removed.
func (m *Manager) ClearCompleted(ctx context.Context) int {
	m.mu.Lock()
	cleared := make([]string, 0)
	for _, t := range m.tasks {
		if t.Completed {
			cleared = append(cleared, t.ID)
		}
	}
	m.commit(ctx, task.ClearCompleted(m.tasks))
	m.mu.Unlock()

	if len(cleared) > 0 {
		m.publish(ctx, task.NewCompletedCleared(cleared))
	}
	return len(cleared)
}

// FilterByStatus returns tasks by status: "all", "completed" or "pending".
// Any other value returns all tasks.
func (m *Manager) FilterByStatus(status string) []task.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch task.Filter(status) {
	case task.FilterCompleted:
		return task.FilterTasks(m.tasks, task.FilterCompleted)
	case task.FilterPending:
		return task.FilterTasks(m.tasks, task.FilterActive)
	default:
		return task.FilterTasks(m.tasks, task.FilterAll)
	}
}

// Counts returns total, active and completed counts.
func (m *Manager) Counts() task.Counts {
	m.mu.Lock()
	defer m.mu.Unlock()
	return task.CountTasks(m.tasks)
}

// SortedByPriority returns the collection ordered high, medium, low.
func (m *Manager) SortedByPriority() []task.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return task.SortByPriority(m.tasks)
}

// View builds the render state for filter. Counts always cover the whole collection.
func (m *Manager) View(filter task.Filter) ViewState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return ViewState{
		Filter: filter.Normalize(),
		Tasks:  task.FilterTasks(m.tasks, filter),
		Counts: task.CountTasks(m.tasks),
	}
}

// Resolve expands a unique id prefix into a full task id.
func (m *Manager) Resolve(prefix string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := task.FindByPrefix(m.tasks, prefix)
	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrTaskNotFound, prefix)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %s matches %d tasks", ErrAmbiguousID, prefix, len(ids))
	}
}

// commit replaces the collection and persists it. Callers hold m.mu.
func (m *Manager) commit(ctx context.Context, next []task.Task) {
	m.tasks = next
	m.repo.Save(ctx, next)
}

func (m *Manager) find(id string) (task.Task, bool) {
	for _, t := range m.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return task.Task{}, false
}

func (m *Manager) publish(ctx context.Context, event task.Event) {
	event = event.WithCorrelationID(observability.CorrelationIDFromContext(ctx))
	payload, err := json.Marshal(event)
	if err != nil {
		m.logger.ErrorContext(ctx, "failed to encode event", "routing_key", event.RoutingKey, "error", err)
		return
	}
	if err := m.publisher.Publish(ctx, event.RoutingKey, payload); err != nil {
		m.logger.WarnContext(ctx, "failed to publish event", "routing_key", event.RoutingKey, "error", err)
	}
}
