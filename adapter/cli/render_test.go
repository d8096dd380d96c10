package cli

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/taskflow/internal/tasks/application"
	"github.com/felixgeelhaar/taskflow/internal/tasks/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_EmptyStates(t *testing.T) {
	tests := map[task.Filter]string{
		task.FilterAll:       "No tasks yet",
		"":                   "No tasks yet",
		task.FilterActive:    "No tasks in this category",
		task.FilterCompleted: "No tasks in this category",
	}

	for filter, want := range tests {
		t.Run(string(filter), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, application.ViewState{Filter: filter}))

			assert.Contains(t, buf.String(), want)
			assert.Contains(t, buf.String(), "0 tasks remaining")
			assert.NotContains(t, buf.String(), "clear with")
		})
	}
}

func TestRender_Tasks(t *testing.T) {
	now := time.Now()
	view := application.ViewState{
		Filter: task.FilterAll,
		Tasks: []task.Task{
			{ID: "id-a", Text: "A", Priority: task.PriorityHigh, Completed: true, CreatedAt: now},
			{ID: "id-b", Text: "B", Priority: task.PriorityLow, CreatedAt: now},
		},
		Counts: task.Counts{Total: 2, Active: 1, Completed: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, view))
	out := buf.String()

	assert.Contains(t, out, "[x] A (High)  id-a")
	assert.Contains(t, out, "[ ] B (Low)  id-b")
	assert.Contains(t, out, "1 task remaining")
	assert.Contains(t, out, "1 completed - clear with: taskflow task clear")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("id-a")), bytes.Index(buf.Bytes(), []byte("id-b")))
}

func TestRemainingLabel(t *testing.T) {
	assert.Equal(t, "0 tasks remaining", RemainingLabel(0))
	assert.Equal(t, "1 task remaining", RemainingLabel(1))
	assert.Equal(t, "5 tasks remaining", RemainingLabel(5))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestRender_WriteError(t *testing.T) {
	err := Render(failingWriter{}, application.ViewState{})
	assert.EqualError(t, err, "closed pipe")
}
