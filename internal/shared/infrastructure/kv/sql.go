package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/taskflow/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/taskflow/internal/shared/infrastructure/migrations"
)

type sqlDialect struct {
	get    string
	upsert string
}

var dialects = map[database.Driver]sqlDialect{
	database.DriverSQLite: {
		get: `SELECT slot_value FROM kv_slots WHERE slot_key = ?`,
		upsert: `INSERT INTO kv_slots (slot_key, slot_value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(slot_key) DO UPDATE SET slot_value = excluded.slot_value, updated_at = excluded.updated_at`,
	},
	database.DriverPostgres: {
		get: `SELECT slot_value FROM kv_slots WHERE slot_key = $1`,
		upsert: `INSERT INTO kv_slots (slot_key, slot_value, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (slot_key) DO UPDATE SET slot_value = EXCLUDED.slot_value, updated_at = EXCLUDED.updated_at`,
	},
	database.DriverMySQL: {
		get: "SELECT slot_value FROM kv_slots WHERE slot_key = ?",
		upsert: `INSERT INTO kv_slots (slot_key, slot_value, updated_at) VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE slot_value = VALUES(slot_value), updated_at = VALUES(updated_at)`,
	},
}

// SQLStore keeps slots in the kv_slots table of a SQL database.
type SQLStore struct {
	conn    database.Connection
	dialect sqlDialect
}

// NewSQLStore runs the schema migrations and returns a store over conn.
func NewSQLStore(ctx context.Context, conn database.Connection) (*SQLStore, error) {
	dialect, ok := dialects[conn.Driver()]
	if !ok {
		return nil, fmt.Errorf("no kv dialect for driver %s", conn.Driver())
	}
	if err := migrations.Run(ctx, conn); err != nil {
		return nil, err
	}
	return &SQLStore{conn: conn, dialect: dialect}, nil
}

// Get retrieves a value by key.
func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.conn.QueryRow(ctx, s.dialect.get, key).Scan(&value)
	if err != nil {
		if database.IsNoRows(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return value, true, nil
}

// Set upserts a value.
func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.conn.Exec(ctx, s.dialect.upsert, key, value, now); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *SQLStore) Close() error {
	return s.conn.Close()
}
