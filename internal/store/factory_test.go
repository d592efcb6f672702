package store

import (
	"context"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Type != "sqlite" {
		t.Errorf("Type = %q, want sqlite", cfg.Type)
	}
	if cfg.Path != "./data/farm.db" {
		t.Errorf("Path = %q, want ./data/farm.db", cfg.Path)
	}
}

func TestNew_Memory(t *testing.T) {
	st, err := New(Config{Type: "memory"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer func() { _ = st.Close() }()

	if _, ok := st.(*MemoryStore); !ok {
		t.Errorf("expected *MemoryStore, got %T", st)
	}
}

func TestNew_SQLiteByDefault(t *testing.T) {
	st, err := New(Config{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer func() { _ = st.Close() }()

	if _, ok := st.(*SQLiteStore); !ok {
		t.Errorf("expected *SQLiteStore, got %T", st)
	}

	// The factory store is usable as-is
	ctx := context.Background()
	if err := st.Set(ctx, "key", []byte("value")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
}

func TestNew_RedisRequiresURL(t *testing.T) {
	if _, err := New(Config{Type: "redis"}); err == nil {
		t.Fatal("expected an error for redis without a URL")
	}
}
