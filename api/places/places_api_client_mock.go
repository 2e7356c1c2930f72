package places

import (
	"context"
	"fmt"
	"log"

	"congestion-server/config"
	"congestion-server/models"
	"congestion-server/util"
)

// PlacesApiClientMock answers from the bundled resource fixtures.
type PlacesApiClientMock struct {
	coordinatesPath string
	venuesPath      string
	imagesPath      string
}

// NewPlacesApiClientMock creates a new instance of PlacesApiClientMock
func NewPlacesApiClientMock() *PlacesApiClientMock {
	return &PlacesApiClientMock{
		coordinatesPath: config.GetResourcePath(config.STATION_COORDINATES_RESOURCE),
		venuesPath:      config.GetResourcePath(config.VENUES_SEARCH_RESPONSE_RESOURCE),
		imagesPath:      config.GetResourcePath(config.STATION_IMAGES_RESOURCE),
	}
}

func (c *PlacesApiClientMock) ResolveCoordinates(ctx context.Context, stationName string) (*models.Coordinates, error) {
	coords, err := util.ReadStationCoordinatesFromJSON(c.coordinatesPath)
	if err != nil {
		log.Println("[PlacesApiClientMock] Could not read station coordinates from json")
		return nil, err
	}
	found, ok := coords[stationName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, stationName)
	}
	return &found, nil
}

func (c *PlacesApiClientMock) SearchVenues(ctx context.Context, lat, lon float64, radiusMeters int, categories []string) ([]models.Venue, error) {
	venues, err := util.ReadVenuesFromJSON(c.venuesPath)
	if err != nil {
		log.Println("[PlacesApiClientMock] Could not read venues search response from json")
		return nil, err
	}
	return FilterVenues(venues, config.EXCLUDED_VENUE_CATEGORIES), nil
}

func (c *PlacesApiClientMock) FetchRepresentativeImage(ctx context.Context, lat, lon float64, stationName string) (string, error) {
	images, err := util.ReadStationImagesFromJSON(c.imagesPath)
	if err != nil {
		log.Println("[PlacesApiClientMock] Could not read station images from json")
		return "", err
	}
	return images[stationName], nil
}
