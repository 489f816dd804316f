// Package testutil provides shared test helpers for setting up data
// directories, stores, and databases.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/starford/dagaz/internal/activity"
	"github.com/starford/dagaz/internal/index"
	"github.com/starford/dagaz/internal/storage"
)

// SilentLogger returns a logger that discards everything.
func SilentLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "dagaz-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestDataDir creates a temporary data directory with a storage.Provider.
func TestDataDir(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dataDir := t.TempDir()
	files, err := storage.NewFS(dataDir)
	if err != nil {
		t.Fatal(err)
	}
	return dataDir, files
}

// TestStore creates a store over a temporary data directory with a fixed
// clock, so streak and calendar assertions are stable.
func TestStore(t *testing.T, now time.Time) *activity.Store {
	t.Helper()
	_, files := TestDataDir(t)
	return activity.NewStore(files, SilentLogger(), activity.WithNow(func() time.Time { return now }))
}
