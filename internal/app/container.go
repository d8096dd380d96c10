package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/taskflow/internal/shared/infrastructure/convert"
	"github.com/felixgeelhaar/taskflow/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/taskflow/internal/shared/infrastructure/kv"
	"github.com/felixgeelhaar/taskflow/internal/tasks/application"
	"github.com/felixgeelhaar/taskflow/internal/tasks/infrastructure/persistence"
	"github.com/felixgeelhaar/taskflow/pkg/config"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Storage
	Store    kv.Store
	TaskRepo *persistence.Repository

	// Publishers
	EventPublisher eventbus.Publisher

	// Facade
	TaskManager *application.Manager
}

// NewContainer wires storage, events and the task manager from cfg.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	breaker := kv.DefaultBreakerConfig("")
	if cfg.BreakerFailures > 0 {
		breaker.FailureThreshold = convert.IntToUint32Clamped(cfg.BreakerFailures)
	}
	if cfg.BreakerTimeout > 0 {
		breaker.Timeout = cfg.BreakerTimeout
	}

	store, err := kv.Open(ctx, kv.Config{
		URL:            cfg.StorageURL,
		BreakerEnabled: cfg.BreakerEnabled,
		Breaker:        breaker,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	c.Store = store
	c.TaskRepo = persistence.NewRepository(store, cfg.StorageKey, logger)

	c.EventPublisher = newPublisher(cfg.RabbitMQURL, logger)

	c.TaskManager = application.NewManager(ctx, c.TaskRepo, c.EventPublisher, logger)

	return c, nil
}

// newPublisher connects to RabbitMQ when url is set. An unreachable broker
// degrades to the noop publisher.
func newPublisher(url string, logger *slog.Logger) eventbus.Publisher {
	if url == "" {
		return eventbus.NewNoopPublisher(logger)
	}
	pub, err := eventbus.NewRabbitMQPublisher(url, logger)
	if err != nil {
		logger.Warn("event publishing disabled", "error", err)
		return eventbus.NewNoopPublisher(logger)
	}
	return pub
}

// Close releases the publisher and the store.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}

	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			c.Logger.Warn("error closing storage", "error", err)
		} else {
			c.Logger.Debug("storage closed")
		}
	}
}
