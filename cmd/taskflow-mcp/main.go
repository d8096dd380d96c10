package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/taskflow/adapter/cli"
	"github.com/felixgeelhaar/taskflow/internal/app"
	mcpinternal "github.com/felixgeelhaar/taskflow/internal/mcp"
	"github.com/felixgeelhaar/taskflow/pkg/config"
	"github.com/felixgeelhaar/taskflow/pkg/observability"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load(os.Getenv("TASKFLOW_CONFIG"))
	if err != nil {
		observability.NewLogger(observability.DefaultLogConfig()).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.LoggerFor(cfg.ServerLogLevel(), cfg.LogFormat, cfg.AppEnv, cli.Version, os.Stdout)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	cliApp := mcpinternal.NewCLIApp(container)

	if err := mcpinternal.Serve(ctx, cfg, cliApp, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("mcp server error", "error", err)
		container.Close()
		os.Exit(1)
	}
}
