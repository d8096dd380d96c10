package cli

import (
	"fmt"
	"io"

	"github.com/felixgeelhaar/taskflow/internal/tasks/application"
	"github.com/felixgeelhaar/taskflow/internal/tasks/domain/task"
)

// Render writes the task list, the remaining counter, and the clear hint.
func Render(w io.Writer, view application.ViewState) error {
	if len(view.Tasks) == 0 {
		msg := "No tasks in this category"
		if view.Filter.Normalize() == task.FilterAll {
			msg = "No tasks yet"
		}
		if _, err := fmt.Fprintln(w, msg); err != nil {
			return err
		}
	}

	for _, t := range view.Tasks {
		if _, err := fmt.Fprintln(w, FormatTask(t)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "\n%s\n", RemainingLabel(view.Counts.Active)); err != nil {
		return err
	}
	if view.Counts.Completed > 0 {
		if _, err := fmt.Fprintf(w, "%d completed - clear with: taskflow task clear\n", view.Counts.Completed); err != nil {
			return err
		}
	}
	return nil
}

// FormatTask renders one task line.
func FormatTask(t task.Task) string {
	return fmt.Sprintf("%s %s (%s)  %s", StatusMarker(t), t.Text, t.Priority.Label(), t.ID)
}

// StatusMarker returns [x] for completed tasks and [ ] otherwise.
func StatusMarker(t task.Task) string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}

// RemainingLabel formats the active counter.
func RemainingLabel(active int) string {
	if active == 1 {
		return "1 task remaining"
	}
	return fmt.Sprintf("%d tasks remaining", active)
}
