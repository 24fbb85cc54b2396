package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestConfig(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfig(t, tmpDir)

	want := filepath.Join(tmpDir, "config.yml")
	assert.Equal(t, want, got)

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Contains(t, string(content), "driver: sqlite")
	assert.Contains(t, string(content), filepath.Join(tmpDir, "diary.db"))

	info, err := os.Stat(filepath.Join(tmpDir, "uploads"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOpenTestDB(t *testing.T) {
	db := OpenTestDB(t)

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM schema_migrations"))
	assert.Greater(t, count, 0)
}
