package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"congestion-server/db"
	"congestion-server/models"
)

func TestRedisFavoritesDAO_UpsertAndGet(t *testing.T) {
	ctx := context.Background()
	client := db.NewMockRedisClient()
	dao := NewRedisFavoritesDAO(client)

	require.NoError(t, dao.Upsert(ctx, models.Favorite{Railway: "JR中央線", Station: "水道橋", Count: 1, LastUsed: 10}))
	require.NoError(t, dao.Upsert(ctx, models.Favorite{Railway: "JR中央線", Station: "水道橋", Count: 2, LastUsed: 20}))
	require.NoError(t, dao.Upsert(ctx, models.Favorite{Railway: "東京メトロ南北線", Station: "後楽園", Count: 1, LastUsed: 15}))
	require.NoError(t, client.Set(ctx, FAVORITE_KEY_PREFIX_V1+"broken", "{", 0))

	got, err := dao.Get(ctx)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got["JR中央線|水道橋"].Count)
	assert.Equal(t, int64(20), got["JR中央線|水道橋"].LastUsed)
	assert.Equal(t, "後楽園", got["東京メトロ南北線|後楽園"].Station)
}

func TestRedisFavoritesDAO_GetEmpty(t *testing.T) {
	got, err := NewRedisFavoritesDAO(db.NewMockRedisClient()).Get(context.Background())

	require.NoError(t, err)
	assert.Empty(t, got)
}
