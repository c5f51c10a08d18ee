package kvstore

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplite/storefront/internal/storage"
)

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	doc := []byte(`[{"productId":"p1","quantity":2}]`)
	require.NoError(t, s.Save(ctx, storage.KeyCart, doc))

	got, err := s.Load(ctx, storage.KeyCart)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, storage.KeyWishList, []byte(`["a"]`)))
	require.NoError(t, s.Save(ctx, storage.KeyWishList, []byte(`["b"]`)))

	got, err := s.Load(ctx, storage.KeyWishList)
	require.NoError(t, err)
	assert.Equal(t, []byte(`["b"]`), got)
}

func TestStore_LoadMissingKey(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	_, err = s.Load(context.Background(), storage.KeyOrders)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, storage.KeyOrderPlaced, []byte("true")))
	require.NoError(t, s.Delete(ctx, storage.KeyOrderPlaced))

	_, err = s.Load(ctx, storage.KeyOrderPlaced)
	assert.True(t, errors.Is(err, storage.ErrNotFound))

	// Deleting an absent key is not an error.
	assert.NoError(t, s.Delete(ctx, storage.KeyOrderPlaced))
}

func TestOpen_CreatesDirectory(t *testing.T) {
	dir := t.TempDir() + "/nested/store"
	_, err := Open(dir)
	require.NoError(t, err)
}
