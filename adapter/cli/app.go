package cli

import (
	"errors"
	"log/slog"

	"github.com/felixgeelhaar/taskflow/internal/tasks/application"
	"github.com/felixgeelhaar/taskflow/pkg/config"
)

// ErrNotInitialized is returned by commands run without an App.
var ErrNotInitialized = errors.New("application not initialized - storage connection required")

// App holds the CLI application dependencies.
type App struct {
	Manager *application.Manager
	Config  *config.Config
	Logger  *slog.Logger
}

// NewApp creates a new CLI application around manager.
func NewApp(manager *application.Manager, cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		Manager: manager,
		Config:  cfg,
		Logger:  logger,
	}
}

var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}

// RequireManager returns the task manager or ErrNotInitialized.
func RequireManager() (*application.Manager, error) {
	if app == nil || app.Manager == nil {
		return nil, ErrNotInitialized
	}
	return app.Manager, nil
}
