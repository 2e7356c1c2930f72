package places

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"congestion-server/api"
	"congestion-server/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *GooglePlacesApiClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewGooglePlacesApiClient(
		api.NewHTTPClient(server.URL, time.Second),
		"test-key",
		api.Retrier{MaxAttempts: 2, InitialInterval: time.Millisecond},
	)
}

func TestResolveCoordinates_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/places:searchText", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Goog-Api-Key"))
		var body searchTextRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "水道橋駅", body.TextQuery)
		w.Write([]byte(`{"places":[{"id":"p1","location":{"latitude":35.7,"longitude":139.75}}]}`))
	})

	coords, err := client.ResolveCoordinates(context.Background(), "水道橋")

	require.NoError(t, err)
	assert.Equal(t, &models.Coordinates{Lat: 35.7, Lon: 139.75}, coords)
}

func TestResolveCoordinates_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := client.ResolveCoordinates(context.Background(), "nowhere")

	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestResolveCoordinates_RetriesServerErrors(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"places":[{"location":{"latitude":1,"longitude":2}}]}`))
	})

	coords, err := client.ResolveCoordinates(context.Background(), "東京")

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1.0, coords.Lat)
}

func TestSearchVenues_FiltersAndDeduplicates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/places:searchNearby", r.URL.Path)
		var body searchNearbyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 1500.0, body.LocationRestriction.Circle.Radius)
		assert.Equal(t, []string{"stadium"}, body.IncludedTypes)
		w.Write([]byte(`{"places":[
			{"id":"a","displayName":{"text":"東京ドーム"},"primaryType":"stadium","location":{"latitude":35.70,"longitude":139.75}},
			{"id":"b","displayName":{"text":"東京 ドーム"},"primaryType":"stadium"},
			{"id":"c","displayName":{"text":"ドームホテル"},"primaryType":"lodging"},
			{"id":"d","displayName":{"text":"日本武道館"},"types":["arena","point_of_interest"]}
		]}`))
	})

	venues, err := client.SearchVenues(context.Background(), 35.7, 139.75, 1500, []string{"stadium"})

	require.NoError(t, err)
	require.Len(t, venues, 2)
	assert.Equal(t, "a", venues[0].ID)
	assert.Equal(t, "stadium", venues[0].Category)
	assert.Equal(t, "d", venues[1].ID)
	assert.Equal(t, "arena", venues[1].Category)
}

func TestSearchVenues_ClientErrorIsNotRetried(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.SearchVenues(context.Background(), 0, 0, 100, nil)

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestFetchRepresentativeImage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/places:searchText":
			w.Write([]byte(`{"places":[{"id":"p","photos":[{"name":"places/p/photos/ph1"}]}]}`))
		case "/places/p/photos/ph1/media":
			assert.Equal(t, "true", r.URL.Query().Get("skipHttpRedirect"))
			w.Write([]byte(`{"name":"places/p/photos/ph1/media","photoUri":"https://img.example/ph1.jpg"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	uri, err := client.FetchRepresentativeImage(context.Background(), 35.7, 139.75, "水道橋")

	require.NoError(t, err)
	assert.Equal(t, "https://img.example/ph1.jpg", uri)
}

func TestFetchRepresentativeImage_NoPhotos(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"places":[{"id":"p"}]}`))
	})

	uri, err := client.FetchRepresentativeImage(context.Background(), 0, 0, "x")

	require.NoError(t, err)
	assert.Equal(t, "", uri)
}
