package blobstore

import (
	"context"
	"os"
)

// ErrNotFound is matched by errors for missing objects. It is os.ErrNotExist, so
// filesystem and object store misses can be checked the same way.
var ErrNotFound = os.ErrNotExist

// Store is a flat namespace of immutable objects.
type Store interface {
	// Get returns the full contents of name.
	Get(ctx context.Context, name string) ([]byte, error)
	// Put replaces name with data.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes name. Deleting a missing object is not an error.
	Delete(ctx context.Context, name string) error
	// Exists reports whether name is present.
	Exists(ctx context.Context, name string) (bool, error)
}
