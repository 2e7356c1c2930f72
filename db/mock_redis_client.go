package db

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"path"
	"sort"
	"sync"
	"time"
)

const earthRadiusMeters = 6371000.0

// MockRedisClient is an in-memory RedisClient for tests and local runs without Redis.
type MockRedisClient struct {
	mu      sync.RWMutex
	data    map[string]mockEntry
	geoData map[string]map[string]GeoLoc
	now     func() time.Time
}

type mockEntry struct {
	value     string
	expiresAt time.Time
}

// GeoLoc represents a geolocation with latitude and longitude.
type GeoLoc struct {
	Latitude  float64
	Longitude float64
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{
		data:    make(map[string]mockEntry),
		geoData: make(map[string]map[string]GeoLoc),
		now:     time.Now,
	}
}

func (m *MockRedisClient) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry := mockEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.data[key] = entry
	return nil
}

func (m *MockRedisClient) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.lookup(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return entry.value, nil
}

func (m *MockRedisClient) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys supports the glob subset of Redis patterns that path.Match understands.
func (m *MockRedisClient) Keys(_ context.Context, pattern string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for k := range m.data {
		if _, ok := m.lookup(k); !ok {
			continue
		}
		matched, err := path.Match(pattern, k)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if matched {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MockRedisClient) AddLocationWithJSON(_ context.Context, geoKey, memberKey string, lat, lon float64, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.geoData[geoKey]; !exists {
		m.geoData[geoKey] = make(map[string]GeoLoc)
	}
	m.geoData[geoKey][memberKey] = GeoLoc{Latitude: lat, Longitude: lon}
	m.data[memberKey] = mockEntry{value: string(jsonData)}
	return nil
}

// GetLocationsWithinRadius filters members by great-circle distance, nearest first.
func (m *MockRedisClient) GetLocationsWithinRadius(_ context.Context, geoKey string, lat, lon, radiusMeters float64) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	type hit struct {
		member string
		dist   float64
	}
	var hits []hit
	for member, loc := range m.geoData[geoKey] {
		d := haversineMeters(lat, lon, loc.Latitude, loc.Longitude)
		if d <= radiusMeters {
			hits = append(hits, hit{member: member, dist: d})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist == hits[j].dist {
			return hits[i].member < hits[j].member
		}
		return hits[i].dist < hits[j].dist
	})

	results := make([]string, 0, len(hits))
	for _, h := range hits {
		if entry, ok := m.lookup(h.member); ok {
			results = append(results, entry.value)
		}
	}
	return results, nil
}

func (m *MockRedisClient) Ping(context.Context) error {
	return nil
}

func (m *MockRedisClient) lookup(key string) (mockEntry, bool) {
	entry, ok := m.data[key]
	if !ok {
		return mockEntry{}, false
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		return mockEntry{}, false
	}
	return entry, true
}

func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(a))
}
