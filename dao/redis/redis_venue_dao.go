package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"congestion-server/db"
	"congestion-server/models"
)

const VENUES_GEO_KEY_V1 = "venues_geo_v1"
const VENUES_GEO_PLACE_MEMBER_FORMAT_V1 = "venues_geo_place_v1:%s"

// RedisVenueDAO keeps every venue returned by a search in a geo index.
type RedisVenueDAO struct {
	client db.RedisClient
}

func NewRedisVenueDAO(client db.RedisClient) *RedisVenueDAO {
	return &RedisVenueDAO{client: client}
}

// UpsertVenue stores the venue as a geolocation with the venue's JSON data.
func (dao *RedisVenueDAO) UpsertVenue(ctx context.Context, v models.Venue) error {
	venueKey := fmt.Sprintf(VENUES_GEO_PLACE_MEMBER_FORMAT_V1, v.ID)
	return dao.client.AddLocationWithJSON(ctx, VENUES_GEO_KEY_V1, venueKey, v.Lat, v.Lon, v)
}

// GetNearbyVenues retrieves cached venues within radius meters, nearest first.
func (dao *RedisVenueDAO) GetNearbyVenues(ctx context.Context, lat, lon, radius float64) ([]models.Venue, error) {
	venuesJSON, err := dao.client.GetLocationsWithinRadius(ctx, VENUES_GEO_KEY_V1, lat, lon, radius)
	if err != nil {
		return nil, fmt.Errorf("[RedisVenueDAO] failed to get venues: %w", err)
	}

	venues := make([]models.Venue, len(venuesJSON))
	for i, venueJSON := range venuesJSON {
		if err := json.Unmarshal([]byte(venueJSON), &venues[i]); err != nil {
			return nil, fmt.Errorf("[RedisVenueDAO] failed to unmarshal venue JSON: %w", err)
		}
	}
	return venues, nil
}
