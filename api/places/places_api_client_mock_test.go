package places

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"congestion-server/config"
)

func newMock(t *testing.T) *PlacesApiClientMock {
	t.Helper()
	t.Setenv("PROJECT_ROOT", "../..")
	return NewPlacesApiClientMock()
}

func TestMockResolveCoordinates(t *testing.T) {
	client := newMock(t)

	coords, err := client.ResolveCoordinates(context.Background(), "水道橋")
	require.NoError(t, err)
	assert.InDelta(t, 35.70, coords.Lat, 0.01)

	_, err = client.ResolveCoordinates(context.Background(), "存在しない駅")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMockSearchVenues_ExcludesLodging(t *testing.T) {
	client := newMock(t)

	venues, err := client.SearchVenues(context.Background(), 35.70, 139.75, 1500, config.DEFAULT_VENUE_CATEGORIES)

	require.NoError(t, err)
	require.Len(t, venues, 3)
	for _, v := range venues {
		assert.NotEqual(t, "lodging", v.Category)
	}
}

func TestMockFetchRepresentativeImage(t *testing.T) {
	client := newMock(t)

	uri, err := client.FetchRepresentativeImage(context.Background(), 0, 0, "水道橋")
	require.NoError(t, err)
	assert.NotEmpty(t, uri)

	uri, err = client.FetchRepresentativeImage(context.Background(), 0, 0, "新横浜")
	require.NoError(t, err)
	assert.Empty(t, uri)
}
