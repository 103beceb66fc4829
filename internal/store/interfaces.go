package store

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// KeyValueStore is the string key/value substrate every passgate component
// persists through. Durable backends (file, SQLite, Redis) survive restarts;
// the memory backend is used for volatile, per-process state.
//
// Implementations must be safe for concurrent use.
type KeyValueStore interface {
	// Get returns the value stored under key, or [ErrKeyNotFound].
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value. Backends
	// with a capacity limit return an error matched by [IsQuotaExceeded].
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists every key starting with prefix. An empty prefix lists all
	// keys. Order is unspecified.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Clear removes every key owned by this store.
	Clear(ctx context.Context) error

	// Close releases the underlying connection or file handle.
	Close() error
}
