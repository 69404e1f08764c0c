package storage

import (
	"context"
	"errors"
)

/*
Storage abstracts where database files and placement artifacts live. The
build and serve paths only need whole-object reads and writes, so the
interface stays small.
*/

////////////////////////////////////////////////////////////////////////////////

// ErrObjectNotFound is returned when a requested object does not exist.
var ErrObjectNotFound = errors.New("object not found")

// Store is a named-object store.
type Store interface {
	// Put stores an object under the given name.
	Put(ctx context.Context, name string, data []byte) error

	// Get retrieves an object by name.
	Get(ctx context.Context, name string) ([]byte, error)

	// Delete removes an object by name. Deleting a missing object is not
	// an error.
	Delete(ctx context.Context, name string) error
}
