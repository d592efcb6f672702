// Package testutil provides shared test helpers for the cattle farm core.
package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Phate334/cattle-farm-poc/internal/store"
)

// TestLogger creates a silent test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestStore creates an in-memory store for tests that do not need
// persistence.
func TestStore(t *testing.T) *store.MemoryStore {
	t.Helper()

	st := store.NewMemoryStore()
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// TestSQLiteStore creates a temporary SQLite-backed store with migrations
// applied. The database file lives in the test's temp directory.
func TestSQLiteStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "farm-test.db")
	st, err := store.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// FixedClock returns a clock stuck at the given time and a function to
// advance it. Services take the clock through their WithClock
// constructors so tests control simulated time.
func FixedClock(start time.Time) (now func() time.Time, advance func(d time.Duration)) {
	current := start
	return func() time.Time { return current },
		func(d time.Duration) { current = current.Add(d) }
}
