package database

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrNoRows reports a missing row independent of the driver.
var ErrNoRows = errors.New("no rows in result set")

// IsNoRows reports whether err means the queried row does not exist,
// for pgx, database/sql and ErrNoRows alike.
func IsNoRows(err error) bool {
	return err != nil && (errors.Is(err, pgx.ErrNoRows) ||
		errors.Is(err, sql.ErrNoRows) ||
		errors.Is(err, ErrNoRows))
}
