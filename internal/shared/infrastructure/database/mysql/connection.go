package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/felixgeelhaar/taskflow/internal/shared/infrastructure/database"
)

func init() {
	database.RegisterDriver(database.DriverMySQL, NewConnection)
}

// NewConnection creates a new MySQL connection from a mysql:// URL.
func NewConnection(ctx context.Context, cfg database.Config) (database.Connection, error) {
	dsn := database.MySQLDSNFromURL(cfg.URL)
	if dsn == "" {
		return nil, fmt.Errorf("database URL is required for MySQL")
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
	}
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL database: %w", err)
	}

	return database.NewSQLConnection(db, database.DriverMySQL), nil
}
