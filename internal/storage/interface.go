package storage

import (
	"context"
	"io"
)

// ObjectStorage defines the object operations the poem archive needs.
type ObjectStorage interface {
	// EnsureBucket creates the bucket when it is missing
	EnsureBucket(ctx context.Context) error

	// Upload uploads an object to storage
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Download downloads an object from storage
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// List returns every key under prefix in lexical order
	List(ctx context.Context, prefix string) ([]string, error)
}
