package store

import (
	"context"
	"encoding/json"
)

// Table provides typed whole-table access over a single store key using
// JSON serialization. This is the only access pattern the core uses:
// read the table, modify it in memory, write it back.
type Table[T any] struct {
	store Store
	key   string
}

// NewTable creates a Table for the given store key.
func NewTable[T any](s Store, key string) *Table[T] {
	return &Table[T]{store: s, key: key}
}

// Load reads and decodes the table. A missing key or a value that does
// not decode yields the zero value and ok=false without an error; a
// record some foreign writer corrupted is indistinguishable from an
// absent one. Backend failures are returned as errors.
func (t *Table[T]) Load(ctx context.Context) (T, bool, error) {
	var value T

	data, err := t.store.Get(ctx, t.key)
	if err == ErrNotFound {
		return value, false, nil
	}
	if err != nil {
		return value, false, err
	}

	if err := json.Unmarshal(data, &value); err != nil {
		return value, false, nil
	}
	return value, true, nil
}

// Save encodes and writes the whole table.
func (t *Table[T]) Save(ctx context.Context, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return t.store.Set(ctx, t.key, data)
}

// Clear removes the table key entirely.
func (t *Table[T]) Clear(ctx context.Context) error {
	return t.store.Delete(ctx, t.key)
}
