package blob

import (
	"context"
	"errors"
	"io"
)

// ErrExists is returned by Put when an object already occupies the path.
// Overwriting is never allowed; derived names make collisions a bug, not a
// race to resolve.
var ErrExists = errors.New("object already exists")

// PutOptions carries per-object metadata for Put.
type PutOptions struct {
	ContentType  string
	CacheControl string
}

// Store is a blob namespace addressed by slash-separated paths.
type Store interface {
	// Put writes the object at path. Fails with ErrExists when the path is
	// already taken.
	Put(ctx context.Context, path string, r io.Reader, size int64, opts PutOptions) error

	// Open returns the object's content and content type.
	Open(ctx context.Context, path string) (io.ReadCloser, string, error)

	// Remove deletes the given objects. Call sites treat this as best-effort.
	Remove(ctx context.Context, paths ...string) error
}
