// pkg/history/lazy_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: SQLite (temp file)
// PURPOSE: Test that the history database is created on first use only

package history_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/ordena/pkg/errors"
	"github.com/arthur-debert/ordena/pkg/history"
	"github.com/arthur-debert/ordena/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLazy_NothingOnDiskUntilRecord(t *testing.T) {
	stateDir := filepath.Join(t.TempDir(), "state")
	dbPath := filepath.Join(stateDir, "history.db")

	lazy := history.NewLazy(dbPath)
	require.NoError(t, lazy.Close())

	_, err := os.Stat(stateDir)
	assert.True(t, os.IsNotExist(err), "state dir must not exist before the first record")
}

func TestLazy_OpensOnFirstRecord(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "state", "history.db")
	ctx := context.Background()

	lazy := history.NewLazy(dbPath)
	require.NoError(t, lazy.Record(ctx, history.Entry{ID: "run-1", Timestamp: "20240115_093000", Mode: types.ModeExecute, Source: "/src"}))
	require.NoError(t, lazy.Record(ctx, history.Entry{ID: "run-2", Timestamp: "20240115_093001", Mode: types.ModeDryRun, Source: "/src"}))
	require.NoError(t, lazy.Close())

	assert.FileExists(t, dbPath)

	store, err := history.Open(dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	entries, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestLazy_OpenFailureIsSticky(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	lazy := history.NewLazy(filepath.Join(blocker, "history.db"))
	ctx := context.Background()

	err := lazy.Record(ctx, history.Entry{ID: "run-1"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrHistory), "got %v", err)
	err = lazy.Record(ctx, history.Entry{ID: "run-2"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrHistory), "got %v", err)
	assert.NoError(t, lazy.Close())
}
