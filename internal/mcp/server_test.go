package mcp

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/felixgeelhaar/mcp-go/testutil"
	"github.com/felixgeelhaar/taskflow/adapter/cli"
	"github.com/felixgeelhaar/taskflow/internal/app"
	"github.com/felixgeelhaar/taskflow/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContainer(t *testing.T) *app.Container {
	t.Helper()
	container, err := app.NewContainer(context.Background(), &config.Config{StorageURL: "memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(container.Close)
	return container
}

func TestNewServer_RegistersTaskTools(t *testing.T) {
	srv, err := NewServer(NewCLIApp(newTestContainer(t)), nil)
	require.NoError(t, err)

	tc := testutil.NewTestClient(t, srv)
	defer tc.Close()

	tools, err := tc.ListTools()
	require.NoError(t, err)

	found := false
	for _, tool := range tools {
		if tool["name"] == "task.create" {
			found = true
			break
		}
	}
	require.True(t, found, "task.create tool should be registered")
}

func TestNewServer_RequiresApp(t *testing.T) {
	_, err := NewServer(nil, nil)
	assert.Error(t, err)
}

func TestServe_Validation(t *testing.T) {
	ctx := context.Background()

	err := Serve(ctx, nil, &cli.App{}, nil)
	assert.EqualError(t, err, "config is required")

	err = Serve(ctx, &config.Config{}, nil, nil)
	assert.EqualError(t, err, "CLI app is required")
}

func TestMCPLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := mcpLogger{logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	l.Info("request")
	l.Warn("slow")
	l.Error("failed")

	assert.Contains(t, buf.String(), "msg=request")
	assert.Contains(t, buf.String(), "msg=slow")
	assert.Contains(t, buf.String(), "msg=failed")
	assert.Empty(t, fieldsToArgs(nil))
}

func TestNewCLIApp(t *testing.T) {
	container := newTestContainer(t)

	a := NewCLIApp(container)

	assert.Same(t, container.TaskManager, a.Manager)
	assert.Same(t, container.Config, a.Config)
}
