package repositories

import "context"

// BlobReader defines read operations against a key-value blob store.
type BlobReader interface {
	// Load returns the blob stored under key, or apperrors.ErrNotFound when the slot is empty.
	Load(ctx context.Context, key string) ([]byte, error)
}

// BlobWriter defines write operations against a key-value blob store.
// Save must be atomic: readers never observe a half-written blob.
type BlobWriter interface {
	Save(ctx context.Context, key string, data []byte) error

	// Delete removes the slot. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// BlobStore combines blob read and write operations.
type BlobStore interface {
	BlobReader
	BlobWriter
}
