package kvstore

import (
	"os"
	"path/filepath"
	"testing"

	"lumiere-storefront/pkg/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SetAndGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = store.Get("lumiere-wishlist")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)

	require.NoError(t, store.Set("lumiere-wishlist", `[{"productId":"p1"}]`))
	require.NoError(t, store.Set("other", "x"))

	got, err := store.Get("lumiere-wishlist")
	require.NoError(t, err)
	assert.Equal(t, `[{"productId":"p1"}]`, got)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	first, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set("k", "v"))

	second, err := NewFileStore(path)
	require.NoError(t, err)
	got, err := second.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestFileStore_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = store.Get("k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, kvstore.ErrNotFound)
}
