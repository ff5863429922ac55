package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSqliteMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.db")

	db, err := New(path)
	require.NoError(t, err)
	require.True(t, db.Migrator().HasTable(&ChatMessage{}))

	// Reopening runs the migrations idempotently.
	_, err = New(path)
	require.NoError(t, err)
}
