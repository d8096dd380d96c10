package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/taskflow/adapter/cli"
	"github.com/felixgeelhaar/taskflow/adapter/cli/mcp"
	"github.com/felixgeelhaar/taskflow/adapter/cli/task"
	"github.com/felixgeelhaar/taskflow/internal/app"
	"github.com/felixgeelhaar/taskflow/pkg/config"
	"github.com/felixgeelhaar/taskflow/pkg/observability"
)

func main() {
	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cli.SetLogger(observability.NewLogger(observability.DefaultLogConfig()))
	cli.SetBootstrap(bootstrap)

	// Register commands
	cli.AddCommand(task.Cmd)
	cli.AddCommand(mcp.Cmd)

	// Execute CLI
	cli.ExecuteContext(ctx)
}

// bootstrap loads configuration and wires the container once flags are parsed.
func bootstrap(ctx context.Context, configPath string, verbose bool) (*cli.App, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	level := cfg.LogLevel
	if verbose {
		level = string(observability.LogLevelDebug)
	}
	logger := observability.LoggerFor(level, cfg.LogFormat, cfg.AppEnv, cli.Version, os.Stderr)
	slog.SetDefault(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		return nil, nil, err
	}

	return cli.NewApp(container.TaskManager, cfg, logger), container.Close, nil
}
