// Package kv is the durable key-value layer behind the ledger and syllabus
// records. Values are opaque bytes; callers own the encoding.
package kv

import "context"

// UpdateFunc maps the stored value (nil when absent) to the value to write.
// Returning an error aborts the update and leaves the record untouched.
type UpdateFunc func(current []byte) ([]byte, error)

type Store interface {
	// Get returns apperrors.ErrNotFound when key has never been written or was deleted.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	// Update reads and rewrites key while holding the store's write lock, so
	// concurrent writers in other processes cannot interleave.
	Update(ctx context.Context, key string, fn UpdateFunc) error
	// Delete removes key entirely. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}
