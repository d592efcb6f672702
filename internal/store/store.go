// Package store provides the key-value persistence abstraction underlying
// the three logical tables of the core: the user table, the current-session
// record and the per-user game data map. Each logical table lives under a
// single key and is read and written whole; the store offers no cross-key
// transactions, so callers maintain invariants across keys themselves.
package store

import (
	"context"
)

// Store defines the interface for persistence backends.
// All implementations must be thread-safe.
type Store interface {
	// Get retrieves the value stored under key.
	// Returns ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Has checks whether a key exists.
	Has(ctx context.Context, key string) (bool, error)

	// Close releases any resources held by the store.
	Close() error
}

// Logical table keys. The names are carried over from the original
// browser build so that exported data stays recognizable.
const (
	KeyUsers       = "cattleFarmUsers"
	KeyCurrentUser = "cattleFarmCurrentUser"
	KeyGameData    = "cattleFarmGameData"
	KeyEvents      = "cattleFarmEvents"
)

// Error represents an error type for store operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrNotFound indicates the key does not exist in the store.
	ErrNotFound Error = "key not found"

	// ErrClosed indicates the store has been closed.
	ErrClosed Error = "store closed"
)
