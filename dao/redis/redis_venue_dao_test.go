package redis

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"congestion-server/db"
	"congestion-server/models"
)

func TestRedisVenueDAO_UpsertVenue_Success(t *testing.T) {
	ctx := context.Background()
	mockClient := db.NewMockRedisClient()
	dao := NewRedisVenueDAO(mockClient)

	testVenue := models.Venue{ID: "venue123", Name: "東京ドーム", Lat: 35.7056, Lon: 139.7519}

	require.NoError(t, dao.UpsertVenue(ctx, testVenue))

	storedValue, err := mockClient.Get(ctx, "venues_geo_place_v1:venue123")
	require.NoError(t, err)

	var storedVenue models.Venue
	require.NoError(t, json.Unmarshal([]byte(storedValue), &storedVenue))
	assert.Equal(t, testVenue, storedVenue)
}

func TestRedisVenueDAO_GetNearbyVenues_Success(t *testing.T) {
	ctx := context.Background()
	dao := NewRedisVenueDAO(db.NewMockRedisClient())

	_ = dao.UpsertVenue(ctx, models.Venue{ID: "venue123", Name: "東京ドーム", Lat: 35.7056, Lon: 139.7519})
	_ = dao.UpsertVenue(ctx, models.Venue{ID: "venue456", Name: "日本武道館", Lat: 35.6933, Lon: 139.7499})
	_ = dao.UpsertVenue(ctx, models.Venue{ID: "venue789", Name: "大阪城ホール", Lat: 34.6890, Lon: 135.5340})

	venues, err := dao.GetNearbyVenues(ctx, 35.7056, 139.7519, 5000)

	require.NoError(t, err)
	require.Len(t, venues, 2)
	assert.Equal(t, "venue123", venues[0].ID)
	assert.Equal(t, "venue456", venues[1].ID)
}

func TestRedisVenueDAO_GetNearbyVenues_NoResults(t *testing.T) {
	dao := NewRedisVenueDAO(db.NewMockRedisClient())

	venues, err := dao.GetNearbyVenues(context.Background(), 35.7056, 139.7519, 1000)

	require.NoError(t, err)
	assert.Empty(t, venues)
}
