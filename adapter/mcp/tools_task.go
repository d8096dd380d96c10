package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/taskflow/adapter/cli"
	"github.com/felixgeelhaar/taskflow/internal/tasks/domain/task"
	"github.com/felixgeelhaar/taskflow/internal/tasks/infrastructure/export"
)

type taskCreateInput struct {
	Text     any    `json:"text" jsonschema:"required"`
	Priority string `json:"priority,omitempty"`
}

type taskListInput struct {
	Status string `json:"status,omitempty"`
	SortBy string `json:"sort_by,omitempty"`
}

type taskIDInput struct {
	TaskID string `json:"task_id" jsonschema:"required"`
}

type taskExportInput struct {
	Format string `json:"format,omitempty"`
}

type taskExportResult struct {
	Format  string `json:"format"`
	Content string `json:"content"`
}

func registerTaskTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("task.create").
		Description("Create a task with an optional priority (low, medium, high)").
		Handler(createTask(app))

	srv.Tool("task.list").
		Description("List tasks by status (all, completed, pending)").
		Handler(listTasks(app))

	srv.Tool("task.toggle").
		Description("Toggle a task between pending and completed").
		Handler(toggleTask(app))

	srv.Tool("task.remove").
		Description("Remove a task").
		Handler(removeTask(app))

	srv.Tool("task.clear_completed").
		Description("Remove all completed tasks").
		Handler(clearCompleted(app))

	srv.Tool("task.stats").
		Description("Count total, active and completed tasks").
		Handler(taskStats(app))

	srv.Tool("task.export").
		Description("Export tasks as json or csv").
		Handler(exportTasks(app))

	return nil
}

func createTask(app *cli.App) func(context.Context, taskCreateInput) (*task.Task, error) {
	return func(ctx context.Context, input taskCreateInput) (*task.Task, error) {
		manager, err := managerOf(app)
		if err != nil {
			return nil, err
		}
		created, err := manager.AddTaskValue(ctx, input.Text, input.Priority)
		if err != nil {
			return nil, err
		}
		return &created, nil
	}
}

func listTasks(app *cli.App) func(context.Context, taskListInput) ([]task.Task, error) {
	return func(ctx context.Context, input taskListInput) ([]task.Task, error) {
		manager, err := managerOf(app)
		if err != nil {
			return nil, err
		}

		tasks := manager.FilterByStatus(input.Status)
		switch input.SortBy {
		case "":
			return tasks, nil
		case "priority":
			return task.SortByPriority(tasks), nil
		default:
			return nil, fmt.Errorf("unsupported sort_by: %s", input.SortBy)
		}
	}
}

func toggleTask(app *cli.App) func(context.Context, taskIDInput) (*task.Task, error) {
	return func(ctx context.Context, input taskIDInput) (*task.Task, error) {
		manager, err := managerOf(app)
		if err != nil {
			return nil, err
		}
		id, err := resolveID(manager, input.TaskID)
		if err != nil {
			return nil, err
		}

		updated, ok := manager.ToggleTask(ctx, id)
		if !ok {
			return nil, fmt.Errorf("task not found: %s", id)
		}
		return &updated, nil
	}
}

func removeTask(app *cli.App) func(context.Context, taskIDInput) (map[string]any, error) {
	return func(ctx context.Context, input taskIDInput) (map[string]any, error) {
		manager, err := managerOf(app)
		if err != nil {
			return nil, err
		}
		id, err := resolveID(manager, input.TaskID)
		if err != nil {
			return nil, err
		}

		return map[string]any{
			"task_id": id,
			"removed": manager.RemoveTask(ctx, id),
		}, nil
	}
}

func clearCompleted(app *cli.App) func(context.Context, struct{}) (map[string]any, error) {
	return func(ctx context.Context, _ struct{}) (map[string]any, error) {
		manager, err := managerOf(app)
		if err != nil {
			return nil, err
		}
		return map[string]any{"cleared": manager.ClearCompleted(ctx)}, nil
	}
}

func taskStats(app *cli.App) func(context.Context, struct{}) (*task.Counts, error) {
	return func(ctx context.Context, _ struct{}) (*task.Counts, error) {
		manager, err := managerOf(app)
		if err != nil {
			return nil, err
		}
		counts := manager.Counts()
		return &counts, nil
	}
}

func exportTasks(app *cli.App) func(context.Context, taskExportInput) (*taskExportResult, error) {
	return func(ctx context.Context, input taskExportInput) (*taskExportResult, error) {
		manager, err := managerOf(app)
		if err != nil {
			return nil, err
		}

		name := input.Format
		if name == "" {
			name = string(export.FormatJSON)
		}
		format, err := export.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		if format == export.FormatPDF {
			return nil, fmt.Errorf("pdf export is only available from the CLI")
		}

		data, err := export.Export(manager.Tasks(), format)
		if err != nil {
			return nil, err
		}
		return &taskExportResult{Format: string(format), Content: string(data)}, nil
	}
}
