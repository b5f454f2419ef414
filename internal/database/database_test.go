package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "agents.db")

	db, err := New(path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Migrate())
	assert.FileExists(t, path)

	var fk int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestNew_UnopenablePath(t *testing.T) {
	// A directory cannot be opened as a database file.
	_, err := New(t.TempDir())
	assert.Error(t, err)
}
