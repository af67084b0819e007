package adapters

import (
	"context"
	"testing"

	"storefront-checkout/internal/core/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVProductRepository(t *testing.T) {
	mr := miniredis.RunT(t)
	rs, err := storage.NewRedisStore("redis://" + mr.Addr())
	require.NoError(t, err)
	defer rs.Close()

	repo := NewKVProductRepository(rs)
	ctx := context.Background()

	t.Run("SeedsOnFirstRead", func(t *testing.T) {
		products, err := repo.LoadAll(ctx)
		require.NoError(t, err)
		assert.Len(t, products, 5)
		assert.True(t, mr.Exists(CatalogKey))
	})

	t.Run("PersistsChanges", func(t *testing.T) {
		products, err := repo.LoadAll(ctx)
		require.NoError(t, err)
		products[0].Stock = 1
		require.NoError(t, repo.SaveAll(ctx, products[:1]))

		reloaded, err := repo.LoadAll(ctx)
		require.NoError(t, err)
		require.Len(t, reloaded, 1)
		assert.Equal(t, 1, reloaded[0].Stock)
	})

	t.Run("Corrupt", func(t *testing.T) {
		require.NoError(t, mr.Set(CatalogKey, "[{"))
		_, err := repo.LoadAll(ctx)
		assert.ErrorIs(t, err, storage.ErrUnavailable)
	})
}
