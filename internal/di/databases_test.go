package di

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aristath/divdesk/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeDatabases(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &config.Config{DataDir: tmpDir}

	container, err := InitializeDatabases(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, container)
	defer container.Close()

	assert.NotNil(t, container.LedgerDB)
	assert.NotNil(t, container.UniverseDB)
	assert.NotNil(t, container.ConfigDB)

	assert.FileExists(t, filepath.Join(tmpDir, "ledger.db"))
	assert.FileExists(t, filepath.Join(tmpDir, "universe.db"))
	assert.FileExists(t, filepath.Join(tmpDir, "config.db"))

	// Schemas are applied
	for _, table := range []string{"accounts", "trades"} {
		var name string
		err := container.LedgerDB.Conn().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, table)
	}
	for _, table := range []string{"securities", "risk_groups", "holidays"} {
		var name string
		err := container.UniverseDB.Conn().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestInitializeDatabases_InvalidPath(t *testing.T) {
	// A regular file cannot act as a directory
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	container, err := InitializeDatabases(&config.Config{DataDir: filepath.Join(file, "data")}, zerolog.Nop())
	assert.Error(t, err)
	assert.Nil(t, container)
}
