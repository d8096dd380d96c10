package database

import (
	"context"
	"database/sql"
)

// Row represents a single result row.
// This interface abstracts pgx.Row and *sql.Row.
type Row interface {
	Scan(dest ...any) error
}

// Result represents the result of an Exec operation.
type Result interface {
	RowsAffected() (int64, error)
}

// Executor is the query interface used by the SQL-backed stores.
type Executor interface {
	// Exec executes a query that doesn't return rows (INSERT, UPDATE, DELETE).
	Exec(ctx context.Context, query string, args ...any) (Result, error)

	// QueryRow executes a query that returns at most one row.
	QueryRow(ctx context.Context, query string, args ...any) Row
}

// Connection represents an open database connection.
type Connection interface {
	Executor
	// Close closes the database connection.
	Close() error
	// Ping verifies the connection is still alive.
	Ping(ctx context.Context) error
	// Driver returns the driver type for this connection.
	Driver() Driver
}

// SQLConnection adapts *sql.DB to Connection. Used by the SQLite and MySQL drivers.
type SQLConnection struct {
	db     *sql.DB
	driver Driver
}

// NewSQLConnection wraps an open *sql.DB.
func NewSQLConnection(db *sql.DB, driver Driver) *SQLConnection {
	return &SQLConnection{db: db, driver: driver}
}

// DB returns the underlying sql.DB.
func (c *SQLConnection) DB() *sql.DB {
	return c.db
}

// Driver returns the driver type.
func (c *SQLConnection) Driver() Driver {
	return c.driver
}

// Close closes the database connection.
func (c *SQLConnection) Close() error {
	return c.db.Close()
}

// Ping verifies the connection is still alive.
func (c *SQLConnection) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Exec executes a query that doesn't return rows.
func (c *SQLConnection) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	result, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// QueryRow executes a query that returns at most one row.
func (c *SQLConnection) QueryRow(ctx context.Context, query string, args ...any) Row {
	return c.db.QueryRowContext(ctx, query, args...)
}
