package kv

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/felixgeelhaar/taskflow/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/taskflow/internal/shared/infrastructure/database/mysql"
	_ "github.com/felixgeelhaar/taskflow/internal/shared/infrastructure/database/postgres"
	_ "github.com/felixgeelhaar/taskflow/internal/shared/infrastructure/database/sqlite"
)

// Backend names a storage implementation.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendRedis    Backend = "redis"
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendMySQL    Backend = "mysql"
)

// IsRemote reports whether the backend lives on another host.
func (b Backend) IsRemote() bool {
	switch b {
	case BackendRedis, BackendPostgres, BackendMySQL:
		return true
	default:
		return false
	}
}

// Config selects and tunes the storage backend.
type Config struct {
	// URL picks the backend: memory:, redis://, postgres://, mysql://,
	// or a SQLite path. Empty means the default SQLite file.
	URL string

	// MaxConns bounds SQL connection pools.
	MaxConns int

	// Breaker guards remote backends when BreakerEnabled is set.
	BreakerEnabled bool
	Breaker        BreakerConfig
}

// DetectBackend maps a storage URL to a backend.
func DetectBackend(url string) Backend {
	switch {
	case url == "memory:" || url == "memory://":
		return BackendMemory
	case strings.HasPrefix(url, "redis://") || strings.HasPrefix(url, "rediss://"):
		return BackendRedis
	}

	switch database.DetectDriver(url) {
	case database.DriverPostgres:
		return BackendPostgres
	case database.DriverMySQL:
		return BackendMySQL
	default:
		return BackendSQLite
	}
}

// Open creates the store named by cfg.URL.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	backend := DetectBackend(cfg.URL)

	var (
		store Store
		err   error
	)
	switch backend {
	case BackendMemory:
		store = NewMemoryStore()
	case BackendRedis:
		store, err = NewRedisStore(ctx, cfg.URL)
	default:
		var conn database.Connection
		conn, err = database.NewConnection(ctx, database.Config{
			URL:      cfg.URL,
			MaxConns: cfg.MaxConns,
		})
		if err == nil {
			store, err = NewSQLStore(ctx, conn)
			if err != nil {
				_ = conn.Close()
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", backend, err)
	}

	if backend.IsRemote() && cfg.BreakerEnabled {
		bcfg := withBreakerDefaults(cfg.Breaker, string(backend))
		store = NewBreakerStore(store, bcfg, logger)
	}

	logger.Debug("storage opened", "backend", string(backend), "breaker", backend.IsRemote() && cfg.BreakerEnabled)
	return store, nil
}
