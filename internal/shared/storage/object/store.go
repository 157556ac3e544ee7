package object

import (
	"context"
	"io"
)

// BlobStore defines the contract for persisting uploaded file bytes.
// Save returns a dereferenceable location: a filesystem path for the local
// store, an https object URL for the S3 store.
type BlobStore interface {
	Save(ctx context.Context, storedName string, r io.Reader) (location string, sizeBytes int64, err error)
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}
