package services

import (
	"context"
	"fmt"
	"log"

	"congestion-server/api/places"
	"congestion-server/dao/redis"
	"congestion-server/models"
)

type VenueService struct {
	venueDao     *redis.RedisVenueDAO
	placesApi    places.PlacesAPI
	radiusMeters int
	categories   []string
}

// NewVenueService constructs a new VenueService with Redis dependency injection.
func NewVenueService(
	venueDao *redis.RedisVenueDAO,
	placesApi places.PlacesAPI,
	radiusMeters int,
	categories []string) *VenueService {

	return &VenueService{
		venueDao:     venueDao,
		placesApi:    placesApi,
		radiusMeters: radiusMeters,
		categories:   categories,
	}
}

// SearchVenues finds event venues around coords and indexes them in the geo cache.
func (vs *VenueService) SearchVenues(ctx context.Context, coords models.Coordinates) ([]models.Venue, error) {
	venues, err := vs.placesApi.SearchVenues(ctx, coords.Lat, coords.Lon, vs.radiusMeters, vs.categories)
	if err != nil {
		return nil, fmt.Errorf("venue search failed: %w", err)
	}

	for _, v := range venues {
		if err := vs.venueDao.UpsertVenue(ctx, v); err != nil {
			log.Printf("[VenueService] Upsert failed for %s: %v", v.ID, err)
		}
	}
	log.Printf("[VenueService] %d venues around (%.6f, %.6f)", len(venues), coords.Lat, coords.Lon)
	return venues, nil
}

// GetVenuesNearby returns venues previously indexed within radius meters.
func (vs *VenueService) GetVenuesNearby(ctx context.Context, lat, lon, radius float64) ([]models.Venue, error) {
	return vs.venueDao.GetNearbyVenues(ctx, lat, lon, radius)
}
