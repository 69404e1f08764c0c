package storage_test

import (
	"context"
	"testing"

	"github.com/LepistaBioinformatics/classeq2/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]storage.Store {
	t.Helper()
	return map[string]storage.Store{
		"memory":    storage.NewMemStore(),
		"directory": storage.NewDirectoryStore(t.TempDir()),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Put(ctx, "db.cls", []byte("payload")))
			data, err := store.Get(ctx, "db.cls")
			require.NoError(t, err)
			assert.Equal(t, []byte("payload"), data)
		})
	}
}

func TestStoreMissingObject(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(ctx, "absent")
			assert.ErrorIs(t, err, storage.ErrObjectNotFound)
		})
	}
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Put(ctx, "db.cls", []byte("payload")))
			require.NoError(t, store.Delete(ctx, "db.cls"))
			_, err := store.Get(ctx, "db.cls")
			assert.ErrorIs(t, err, storage.ErrObjectNotFound)

			// deleting a missing object is not an error
			assert.NoError(t, store.Delete(ctx, "db.cls"))
		})
	}
}
