// Package storagetest opens throwaway SQLite databases for tests.
package storagetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/redsthan/Group-project---Goods-DB/internal/storage"
)

// Open creates a fresh database file under t.TempDir, applies the creation
// script and closes the handle when the test finishes.
func Open(t *testing.T) *storage.DataBase {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "goods.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.ExecScript(context.Background(), storage.CreationScript))
	return db
}
