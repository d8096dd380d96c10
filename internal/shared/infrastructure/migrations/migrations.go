package migrations

import (
	"context"
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/felixgeelhaar/taskflow/internal/shared/infrastructure/database"
)

//go:embed sqlite/*.sql postgres/*.sql mysql/*.sql
var migrationsFS embed.FS

// Run executes all migrations for the connection's driver in order.
// Every migration uses CREATE ... IF NOT EXISTS, so Run is safe to call on each start.
func Run(ctx context.Context, conn database.Connection) error {
	dir := conn.Driver().String()

	entries, err := migrationsFS.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory %s: %w", dir, err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, file := range upFiles {
		migration, err := migrationsFS.ReadFile(dir + "/" + file)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file, err)
		}

		if _, err := conn.Exec(ctx, string(migration)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", file, err)
		}
	}

	return nil
}
