package mcp

import (
	"errors"

	"github.com/felixgeelhaar/taskflow/adapter/cli"
	"github.com/felixgeelhaar/taskflow/internal/tasks/application"
)

var errNoStorage = errors.New("task tools require a storage connection")

func managerOf(app *cli.App) (*application.Manager, error) {
	if app == nil || app.Manager == nil {
		return nil, errNoStorage
	}
	return app.Manager, nil
}

// resolveID expands a task id or unique prefix.
func resolveID(manager *application.Manager, value string) (string, error) {
	if value == "" {
		return "", errors.New("task_id is required")
	}
	return manager.Resolve(value)
}
