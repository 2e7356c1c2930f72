package places

import (
	"context"
	"errors"

	"congestion-server/models"
)

// ErrNotFound is returned when a station name cannot be resolved to a location.
var ErrNotFound = errors.New("place not found")

// PlacesAPI defines the interface for station and venue lookups
type PlacesAPI interface {
	ResolveCoordinates(ctx context.Context, stationName string) (*models.Coordinates, error)
	SearchVenues(ctx context.Context, lat, lon float64, radiusMeters int, categories []string) ([]models.Venue, error)
	FetchRepresentativeImage(ctx context.Context, lat, lon float64, stationName string) (string, error)
}
