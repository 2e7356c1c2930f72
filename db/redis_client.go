package db

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by Get when the key does not exist.
var ErrKeyNotFound = errors.New("key not found")

// RedisClient defines the storage operations the DAOs rely on.
type RedisClient interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
	Keys(ctx context.Context, pattern string) ([]string, error)
	AddLocationWithJSON(ctx context.Context, geoKey, memberKey string, lat, lon float64, data interface{}) error
	GetLocationsWithinRadius(ctx context.Context, geoKey string, lat, lon, radiusMeters float64) ([]string, error)
	Ping(ctx context.Context) error
}
