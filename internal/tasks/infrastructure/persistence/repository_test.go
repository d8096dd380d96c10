package persistence

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/taskflow/internal/shared/infrastructure/kv"
	"github.com/felixgeelhaar/taskflow/internal/tasks/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore fails every operation.
type failingStore struct {
	err error
}

func (s failingStore) Get(context.Context, string) (string, bool, error) { return "", false, s.err }
func (s failingStore) Set(context.Context, string, string) error         { return s.err }
func (s failingStore) Close() error                                      { return nil }

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestRepository_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(kv.NewMemoryStore(), "", nil)

	tsk, err := task.CreateTask("Write tests", task.PriorityHigh)
	require.NoError(t, err)

	repo.Save(ctx, []task.Task{tsk})
	loaded := repo.Load(ctx)

	require.Len(t, loaded, 1)
	assert.Equal(t, tsk.Text, loaded[0].Text)
	assert.Equal(t, tsk.ID, loaded[0].ID)
	assert.Equal(t, tsk.Priority, loaded[0].Priority)
	assert.True(t, tsk.CreatedAt.Equal(loaded[0].CreatedAt))
}

func TestRepository_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := kv.Open(ctx, kv.Config{URL: filepath.Join(t.TempDir(), "tasks.db")}, nil)
	require.NoError(t, err)
	defer store.Close()

	repo := NewRepository(store, "", nil)
	a, _ := task.CreateTask("A", "")
	b, _ := task.CreateTask("B", task.PriorityLow)
	b = b.Toggled()

	repo.Save(ctx, []task.Task{a, b})
	loaded := repo.Load(ctx)

	require.Len(t, loaded, 2)
	assert.Equal(t, "A", loaded[0].Text)
	assert.Equal(t, "B", loaded[1].Text)
	assert.True(t, loaded[1].Completed)
}

func TestRepository_LoadEmptyStorage(t *testing.T) {
	repo := NewRepository(kv.NewMemoryStore(), "", nil)

	loaded := repo.Load(context.Background())

	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}

func TestRepository_LoadCorruptData(t *testing.T) {
	tests := map[string]string{
		"not json":          `{{{`,
		"object":            `{"id":"a"}`,
		"null":              `null`,
		"number":            `42`,
		"missing text":      `[{"id":"a","priority":"low","completed":false,"createdAt":"2024-01-01T00:00:00.000Z"}]`,
		"bad priority":      `[{"id":"a","text":"x","priority":"urgent","completed":false,"createdAt":"2024-01-01T00:00:00.000Z"}]`,
		"bad timestamp":     `[{"id":"a","text":"x","priority":"low","completed":false,"createdAt":"yesterday"}]`,
		"wrong type":        `[{"id":"a","text":"x","priority":"low","completed":"no"}]`,
		"duplicate ids":     `[{"id":"a","text":"x","priority":"low","completed":false,"createdAt":"2024-01-01T00:00:00.000Z"},{"id":"a","text":"y","priority":"low","completed":false,"createdAt":"2024-01-02T00:00:00.000Z"}]`,
		"missing id":        `[{"text":"x","priority":"low"}]`,
		"whitespace text":   `[{"id":"a","text":"   ","priority":"low","completed":false,"createdAt":"2024-01-01T00:00:00.000Z"}]`,
		"padded text":       `[{"id":"a","text":"  padded  ","priority":"low","completed":false,"createdAt":"2024-01-01T00:00:00.000Z"}]`,
		"missing created":   `[{"id":"a","text":"x","priority":"low","completed":false}]`,
		"upper-case keys":   `[{"id":"a","TEXT":"x","priority":"low","COMPLETED":false,"createdAt":"2024-01-01T00:00:00.000Z"}]`,
		"record not object": `[1]`,
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := kv.NewMemoryStore()
			require.NoError(t, store.Set(ctx, DefaultStorageKey, raw))

			var buf bytes.Buffer
			repo := NewRepository(store, "", newTestLogger(&buf))

			loaded := repo.Load(ctx)

			assert.NotNil(t, loaded)
			assert.Empty(t, loaded)
			assert.Contains(t, buf.String(), "failed to load tasks")
		})
	}
}

func TestRepository_LoadBrowserFormat(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	raw := `[{"id":"lq2x8k1abc","text":"Acheter du pain","priority":"high","completed":true,"createdAt":"2024-03-01T09:30:00.000Z"}]`
	require.NoError(t, store.Set(ctx, DefaultStorageKey, raw))

	loaded := NewRepository(store, "", nil).Load(ctx)

	require.Len(t, loaded, 1)
	assert.Equal(t, "lq2x8k1abc", loaded[0].ID)
	assert.Equal(t, task.PriorityHigh, loaded[0].Priority)
	assert.True(t, loaded[0].Completed)
	assert.Equal(t, 2024, loaded[0].CreatedAt.Year())
}

func TestRepository_ReadFailureIsSwallowed(t *testing.T) {
	var buf bytes.Buffer
	repo := NewRepository(failingStore{err: errors.New("disk on fire")}, "", newTestLogger(&buf))

	loaded := repo.Load(context.Background())

	assert.Empty(t, loaded)
	assert.Contains(t, buf.String(), "disk on fire")
}

func TestRepository_WriteFailureIsSwallowed(t *testing.T) {
	var buf bytes.Buffer
	repo := NewRepository(failingStore{err: errors.New("quota exceeded")}, "", newTestLogger(&buf))
	tsk, _ := task.CreateTask("x", "")
	tasks := []task.Task{tsk}

	assert.NotPanics(t, func() { repo.Save(context.Background(), tasks) })
	assert.Contains(t, buf.String(), "failed to save tasks")
	assert.Contains(t, buf.String(), "quota exceeded")
	assert.Len(t, tasks, 1)
}

func TestRepository_CustomKey(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	repo := NewRepository(store, "work", nil)

	repo.Save(ctx, nil)

	assert.Equal(t, "work", repo.Key())
	v, ok, err := store.Get(ctx, "work")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestStorageError(t *testing.T) {
	inner := errors.New("boom")
	err := &StorageError{Op: "write", Key: "k", Err: inner}

	assert.Equal(t, "write k: boom", err.Error())
	assert.ErrorIs(t, err, inner)
}
