// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shopfront/internal/platform/config"
	"github.com/taibuivan/shopfront/internal/platform/logging"
	"github.com/taibuivan/shopfront/internal/storage"
)

type snapshot struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

/*
TestStores exercises the Store contract against every local implementation.
*/
func TestStores(t *testing.T) {
	ctx := context.Background()

	fileStore, err := storage.NewFileStore(filepath.Join(t.TempDir(), "nested", "state.json"), logging.Discard())
	require.NoError(t, err)

	stores := map[string]storage.Store{
		"memory": storage.NewMemoryStore(),
		"file":   fileStore,
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			// 1. Missing key is absent, not an error
			_, ok, err := store.Get(ctx, "token")
			require.NoError(t, err)
			assert.False(t, ok)

			// 2. Set then get
			require.NoError(t, store.Set(ctx, "token", "abc"))
			value, ok, err := store.Get(ctx, "token")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "abc", value)

			// 3. Delete is idempotent
			require.NoError(t, store.Delete(ctx, "token"))
			require.NoError(t, store.Delete(ctx, "token"))
			_, ok, err = store.Get(ctx, "token")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

/*
TestFileStore_Persists verifies values survive a new store instance.
*/
func TestFileStore_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")

	first, err := storage.NewFileStore(path, logging.Discard())
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "cart", `[]`))

	second, err := storage.NewFileStore(path, logging.Discard())
	require.NoError(t, err)
	value, ok, err := second.Get(ctx, "cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, value)
}

/*
TestFileStore_CorruptDocument treats an unreadable document as empty.
*/
func TestFileStore_CorruptDocument(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := storage.NewFileStore(path, logging.Discard())
	require.NoError(t, err)

	_, ok, err := store.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "token", "fresh"))
	value, _, err := store.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "fresh", value)
}

/*
TestSlot_RoundTrip saves and loads a typed value.
*/
func TestSlot_RoundTrip(t *testing.T) {
	ctx := context.Background()
	slot := storage.NewSlot[snapshot](storage.NewMemoryStore(), "auth_user", logging.Discard())

	_, ok := slot.Load(ctx)
	assert.False(t, ok)

	require.NoError(t, slot.Save(ctx, snapshot{ID: 1, Name: "Jane"}))
	loaded, ok := slot.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, snapshot{ID: 1, Name: "Jane"}, loaded)

	require.NoError(t, slot.Clear(ctx))
	_, ok = slot.Load(ctx)
	assert.False(t, ok)
}

/*
TestSlot_CorruptValue drops a value that no longer decodes.
*/
func TestSlot_CorruptValue(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "auth_user", "{broken"))

	slot := storage.NewSlot[snapshot](store, "auth_user", logging.Discard())
	value, ok := slot.Load(ctx)

	assert.False(t, ok)
	assert.Equal(t, snapshot{}, value)

	_, present, err := store.Get(ctx, "auth_user")
	require.NoError(t, err)
	assert.False(t, present, "corrupt value should be deleted")
}

/*
TestOpen selects the local drivers from configuration.
*/
func TestOpen(t *testing.T) {
	ctx := context.Background()

	store, closeFn, err := storage.Open(ctx, &config.Config{StorageDriver: config.StorageMemory}, logging.Discard())
	require.NoError(t, err)
	assert.IsType(t, &storage.MemoryStore{}, store)
	assert.NoError(t, closeFn())

	path := filepath.Join(t.TempDir(), "state.json")
	store, _, err = storage.Open(ctx, &config.Config{StorageDriver: config.StorageFile, StoragePath: path}, logging.Discard())
	require.NoError(t, err)
	require.IsType(t, &storage.FileStore{}, store)
	assert.Equal(t, path, store.(*storage.FileStore).Path())

	_, _, err = storage.Open(ctx, &config.Config{StorageDriver: "sqlite"}, logging.Discard())
	assert.Error(t, err)
}
