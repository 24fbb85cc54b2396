// Package testutil provides shared test helpers for creating config files and databases.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/diary/internal/config"
	"github.com/at-ishikawa/diary/internal/database"
)

// SetupTestConfig creates a config file backed by a SQLite database and an
// upload directory under tmpDir. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	uploadDir := filepath.Join(tmpDir, "uploads")
	require.NoError(t, os.MkdirAll(uploadDir, 0755))

	configContent := fmt.Sprintf(`server:
  port: 18080
database:
  driver: sqlite
  path: %s
  connect_retries: 1
upload:
  directory: %s
log:
  level: debug
  format: json
`,
		filepath.Join(tmpDir, "diary.db"),
		uploadDir,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// OpenTestDB opens a migrated SQLite database in a temporary directory.
// The database is closed when the test finishes.
func OpenTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.Open(context.Background(), config.DatabaseConfig{
		Driver:         config.DriverSQLite,
		Path:           filepath.Join(t.TempDir(), "diary.db"),
		ConnectRetries: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(context.Background(), db))
	return db
}
