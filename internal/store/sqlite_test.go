package store

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestSQLiteStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st, path
}

func TestSQLiteStore_BasicOperations(t *testing.T) {
	st, _ := newTestSQLiteStore(t)
	ctx := context.Background()

	if err := st.Set(ctx, "key1", []byte("value1")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := st.Get(ctx, "key1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(val) != "value1" {
		t.Errorf("expected value1, got %s", string(val))
	}

	has, err := st.Has(ctx, "key1")
	if err != nil {
		t.Fatalf("Has failed: %v", err)
	}
	if !has {
		t.Error("expected key1 to exist")
	}

	if err := st.Delete(ctx, "key1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := st.Get(ctx, "key1"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStore_Upsert(t *testing.T) {
	st, _ := newTestSQLiteStore(t)
	ctx := context.Background()

	if err := st.Set(ctx, "key", []byte("first")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := st.Set(ctx, "key", []byte("second")); err != nil {
		t.Fatalf("second Set failed: %v", err)
	}

	val, err := st.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(val) != "second" {
		t.Errorf("expected second, got %s", string(val))
	}
}

func TestSQLiteStore_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	ctx := context.Background()

	st, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := st.Set(ctx, "key", []byte("survives")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Reopen the same file; the value and the schema must survive
	st2, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer func() { _ = st2.Close() }()

	val, err := st2.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if string(val) != "survives" {
		t.Errorf("expected survives, got %s", string(val))
	}
}

func TestSQLiteStore_Closed(t *testing.T) {
	st, _ := newTestSQLiteStore(t)
	ctx := context.Background()

	if err := st.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, err := st.Get(ctx, "key"); err != ErrClosed {
		t.Errorf("Get after Close: expected ErrClosed, got %v", err)
	}
	if err := st.Set(ctx, "key", []byte("v")); err != ErrClosed {
		t.Errorf("Set after Close: expected ErrClosed, got %v", err)
	}

	// Closing twice is a no-op
	if err := st.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}
