package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations must return an error that satisfies
// errors.Is(err, ErrNotFound).
var ErrNotFound = errors.New("blob not found")

// BlobStore is an abstraction for reading and writing whole persisted
// blobs. Snapshots are handled as single byte slices; Put must be atomic
// in the sense that a concurrent or subsequent Get never observes a
// partially written blob.
type BlobStore interface {
	// Put writes a blob under name, replacing any existing blob.
	Put(ctx context.Context, name string, data []byte) error

	// Get reads the blob stored under name.
	Get(ctx context.Context, name string) ([]byte, error)

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns all blob names with the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}
