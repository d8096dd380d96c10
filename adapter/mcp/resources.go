package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/taskflow/adapter/cli"
)

// RegisterResources registers MCP resources that expose the task list.
func RegisterResources(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}
	app := deps.App

	views := []struct {
		uri, name, description, status string
	}{
		{"taskflow://tasks", "Tasks", "All tasks in insertion order", "all"},
		{"taskflow://tasks/pending", "Pending Tasks", "Tasks not yet completed", "pending"},
		{"taskflow://tasks/completed", "Completed Tasks", "Tasks marked as completed", "completed"},
	}
	for _, v := range views {
		status := v.status
		srv.Resource(v.uri).
			Name(v.name).
			Description(v.description).
			MimeType("application/json").
			Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
				manager, err := managerOf(app)
				if err != nil {
					return nil, err
				}
				return jsonResource(uri, manager.FilterByStatus(status))
			})
	}

	srv.Resource("taskflow://stats").
		Name("Task Counts").
		Description("Total, active and completed task counts").
		MimeType("application/json").
		Handler(statsResource(app))

	return nil
}

func statsResource(app *cli.App) func(context.Context, string, map[string]string) (*mcp.ResourceContent, error) {
	return func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
		manager, err := managerOf(app)
		if err != nil {
			return nil, err
		}
		return jsonResource(uri, manager.Counts())
	}
}

func jsonResource(uri string, v any) (*mcp.ResourceContent, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return &mcp.ResourceContent{
		URI:      uri,
		MimeType: "application/json",
		Text:     string(data),
	}, nil
}
