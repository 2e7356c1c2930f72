package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"congestion-server/db"
)

func TestRedisEventFactsDAO_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dao := NewRedisEventFactsDAO(db.NewMockRedisClient())

	_, found, err := dao.GetEventFacts(ctx, "水道橋", "2025-05-01")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, dao.SetEventFacts(ctx, "水道橋", "2025-05-01", []byte(`[{"facility_name":"東京ドーム"}]`)))

	payload, found, err := dao.GetEventFacts(ctx, "水道橋 ", "2025-05-01")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"facility_name":"東京ドーム"}]`, string(payload))

	_, found, err = dao.GetEventFacts(ctx, "水道橋", "2025-05-02")
	require.NoError(t, err)
	assert.False(t, found)
}
