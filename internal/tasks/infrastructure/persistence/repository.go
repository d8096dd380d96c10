package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/felixgeelhaar/taskflow/internal/shared/infrastructure/kv"
	"github.com/felixgeelhaar/taskflow/internal/tasks/domain/task"
)

// DefaultStorageKey is the slot the task collection is stored under.
const DefaultStorageKey = "taskflow-tasks"

var (
	errDuplicateID = errors.New("duplicate task id")
	errFieldCase   = errors.New("field name has wrong case")
)

// recordFields are the exact JSON keys of a stored task.
var recordFields = []string{"id", "text", "priority", "completed", "createdAt"}

// StorageError describes a failed read or write of the task slot.
// It is logged at the repository boundary and never returned to callers.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Repository persists a whole task collection as a JSON array in one kv slot.
type Repository struct {
	store  kv.Store
	key    string
	logger *slog.Logger
}

// NewRepository creates a repository over store. An empty key selects DefaultStorageKey.
func NewRepository(store kv.Store, key string, logger *slog.Logger) *Repository {
	if key == "" {
		key = DefaultStorageKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{store: store, key: key, logger: logger}
}

// Key returns the storage slot name.
func (r *Repository) Key() string {
	return r.key
}

// Load reads the saved collection. Missing, unreadable or malformed data
// yields an empty collection.
func (r *Repository) Load(ctx context.Context) []task.Task {
	tasks, err := r.load(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to load tasks", "error", err)
		return []task.Task{}
	}
	return tasks
}

func (r *Repository) load(ctx context.Context) ([]task.Task, error) {
	raw, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, &StorageError{Op: "read", Key: r.key, Err: err}
	}
	if !ok || raw == "" {
		return []task.Task{}, nil
	}

	tasks, err := Decode([]byte(raw))
	if err != nil {
		return nil, &StorageError{Op: "decode", Key: r.key, Err: err}
	}
	return tasks, nil
}

// Save writes the collection. Failures are logged and swallowed.
func (r *Repository) Save(ctx context.Context, tasks []task.Task) {
	if err := r.save(ctx, tasks); err != nil {
		r.logger.ErrorContext(ctx, "failed to save tasks", "error", err, "count", len(tasks))
	}
}

func (r *Repository) save(ctx context.Context, tasks []task.Task) error {
	payload, err := Encode(tasks)
	if err != nil {
		return &StorageError{Op: "encode", Key: r.key, Err: err}
	}
	if err := r.store.Set(ctx, r.key, string(payload)); err != nil {
		return &StorageError{Op: "write", Key: r.key, Err: err}
	}
	return nil
}

// Encode serializes a collection as a JSON array. A nil collection encodes as [].
func Encode(tasks []task.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	return json.Marshal(tasks)
}

// Decode parses a JSON array of tasks and checks every record.
func Decode(data []byte) ([]task.Task, error) {
	var records []map[string]json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	for i, record := range records {
		if err := checkFieldCase(record); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		// JSON null
		return nil, errors.New("expected a JSON array")
	}

	seen := make(map[string]struct{}, len(tasks))
	for i, t := range tasks {
		if err := task.Validate(t); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("record %d: %w %s", i, errDuplicateID, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return tasks, nil
}

// checkFieldCase rejects keys that only match a task field case-insensitively,
// which encoding/json would otherwise accept.
func checkFieldCase(record map[string]json.RawMessage) error {
	for key := range record {
		for _, field := range recordFields {
			if key != field && strings.EqualFold(key, field) {
				return fmt.Errorf("%w: %q", errFieldCase, key)
			}
		}
	}
	return nil
}
