package repository

import "context"

// Object is one stored blob together with its key.
type Object struct {
	Key  string
	Data []byte
}

// BlobStore is the contract over the external key-blob backend. Every call
// is a direct round trip: no caching, no buffering, no local state. Listing
// order is the backend's native key-lexicographic order and is not part of
// the contract.
type BlobStore interface {
	// Get returns the blob at key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put writes the blob at key, overwriting unconditionally.
	Put(ctx context.Context, key string, data []byte) error

	// List returns every object whose key starts with prefix.
	List(ctx context.Context, prefix string) ([]Object, error)

	// Delete removes the blob at key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// DeleteAll removes every object under prefix, paginating internally,
	// and returns the number of objects removed. An empty prefix set is
	// not an error.
	DeleteAll(ctx context.Context, prefix string) (int, error)

	// Exists reports whether a blob is stored at key.
	Exists(ctx context.Context, key string) (bool, error)
}
