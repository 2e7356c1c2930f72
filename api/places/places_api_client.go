package places

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"congestion-server/api"
	"congestion-server/config"
	"congestion-server/models"
)

const (
	searchTextFieldMask   = "places.id,places.displayName,places.location"
	searchNearbyFieldMask = "places.id,places.displayName,places.formattedAddress,places.location,places.primaryType,places.types"
	photoFieldMask        = "places.id,places.photos"
	maxNearbyResults      = 20
	photoMaxWidthPx       = 800
	languageCode          = "ja"
)

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type circle struct {
	Center latLng  `json:"center"`
	Radius float64 `json:"radius"`
}

type locationArea struct {
	Circle circle `json:"circle"`
}

type searchTextRequest struct {
	TextQuery      string        `json:"textQuery"`
	LanguageCode   string        `json:"languageCode"`
	MaxResultCount int           `json:"maxResultCount,omitempty"`
	LocationBias   *locationArea `json:"locationBias,omitempty"`
}

type searchNearbyRequest struct {
	IncludedTypes       []string     `json:"includedTypes,omitempty"`
	MaxResultCount      int          `json:"maxResultCount"`
	LanguageCode        string       `json:"languageCode"`
	LocationRestriction locationArea `json:"locationRestriction"`
}

type place struct {
	ID          string `json:"id"`
	DisplayName struct {
		Text string `json:"text"`
	} `json:"displayName"`
	FormattedAddress string   `json:"formattedAddress"`
	Location         latLng   `json:"location"`
	PrimaryType      string   `json:"primaryType"`
	Types            []string `json:"types"`
	Photos           []struct {
		Name string `json:"name"`
	} `json:"photos"`
}

type placesResponse struct {
	Places []place `json:"places"`
}

type photoMediaResponse struct {
	Name     string `json:"name"`
	PhotoURI string `json:"photoUri"`
}

// GooglePlacesApiClient embeds the common HTTPClient
type GooglePlacesApiClient struct {
	*api.HTTPClient
	apiKey  string
	retrier api.Retrier
}

// NewGooglePlacesApiClient creates a new instance of GooglePlacesApiClient
func NewGooglePlacesApiClient(httpClient *api.HTTPClient, apiKey string, retrier api.Retrier) *GooglePlacesApiClient {
	return &GooglePlacesApiClient{
		HTTPClient: httpClient,
		apiKey:     apiKey,
		retrier:    retrier,
	}
}

func (c *GooglePlacesApiClient) headers(fieldMask string) map[string]string {
	return map[string]string{
		"X-Goog-Api-Key":   c.apiKey,
		"X-Goog-FieldMask": fieldMask,
	}
}

func (c *GooglePlacesApiClient) post(ctx context.Context, endpoint, fieldMask string, body interface{}) (*placesResponse, error) {
	return api.Retry(ctx, c.retrier, "places"+endpoint, func(ctx context.Context) (*placesResponse, error) {
		var response placesResponse
		if err := c.Request(ctx, http.MethodPost, endpoint, c.headers(fieldMask), body, &response); err != nil {
			return nil, err
		}
		return &response, nil
	})
}

// ResolveCoordinates looks the station up by name and returns the location of the best match.
func (c *GooglePlacesApiClient) ResolveCoordinates(ctx context.Context, stationName string) (*models.Coordinates, error) {
	response, err := c.post(ctx, "/places:searchText", searchTextFieldMask, searchTextRequest{
		TextQuery:      stationQuery(stationName),
		LanguageCode:   languageCode,
		MaxResultCount: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve coordinates for %q: %w", stationName, err)
	}
	if len(response.Places) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, stationName)
	}
	loc := response.Places[0].Location
	return &models.Coordinates{Lat: loc.Latitude, Lon: loc.Longitude}, nil
}

// SearchVenues returns event venues within radiusMeters of (lat, lon).
func (c *GooglePlacesApiClient) SearchVenues(ctx context.Context, lat, lon float64, radiusMeters int, categories []string) ([]models.Venue, error) {
	response, err := c.post(ctx, "/places:searchNearby", searchNearbyFieldMask, searchNearbyRequest{
		IncludedTypes:  categories,
		MaxResultCount: maxNearbyResults,
		LanguageCode:   languageCode,
		LocationRestriction: locationArea{Circle: circle{
			Center: latLng{Latitude: lat, Longitude: lon},
			Radius: float64(radiusMeters),
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search venues: %w", err)
	}

	venues := make([]models.Venue, 0, len(response.Places))
	for _, p := range response.Places {
		venues = append(venues, p.toVenue())
	}
	filtered := FilterVenues(venues, config.EXCLUDED_VENUE_CATEGORIES)
	log.Printf("[GooglePlacesApiClient] %d places near (%f, %f), %d venues after filtering", len(venues), lat, lon, len(filtered))
	return filtered, nil
}

// FetchRepresentativeImage returns a photo URL of the station, or "" when it has none.
func (c *GooglePlacesApiClient) FetchRepresentativeImage(ctx context.Context, lat, lon float64, stationName string) (string, error) {
	response, err := c.post(ctx, "/places:searchText", photoFieldMask, searchTextRequest{
		TextQuery:      stationQuery(stationName),
		LanguageCode:   languageCode,
		MaxResultCount: 1,
		LocationBias: &locationArea{Circle: circle{
			Center: latLng{Latitude: lat, Longitude: lon},
			Radius: float64(config.DEFAULT_SEARCH_RADIUS_METERS),
		}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to search station photo: %w", err)
	}
	if len(response.Places) == 0 || len(response.Places[0].Photos) == 0 {
		return "", nil
	}

	endpoint := fmt.Sprintf("/%s/media?maxWidthPx=%d&skipHttpRedirect=true", response.Places[0].Photos[0].Name, photoMaxWidthPx)
	media, err := api.Retry(ctx, c.retrier, "places/photo", func(ctx context.Context) (*photoMediaResponse, error) {
		var media photoMediaResponse
		if err := c.Request(ctx, http.MethodGet, endpoint, map[string]string{"X-Goog-Api-Key": c.apiKey}, nil, &media); err != nil {
			return nil, err
		}
		return &media, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to fetch station photo: %w", err)
	}
	return media.PhotoURI, nil
}

func (p place) toVenue() models.Venue {
	category := p.PrimaryType
	if category == "" && len(p.Types) > 0 {
		category = p.Types[0]
	}
	return models.Venue{
		ID:       p.ID,
		Name:     p.DisplayName.Text,
		Address:  p.FormattedAddress,
		Category: category,
		Lat:      p.Location.Latitude,
		Lon:      p.Location.Longitude,
	}
}

func stationQuery(stationName string) string {
	return stationName + "駅"
}
