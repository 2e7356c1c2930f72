package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// GeoRedisClient implements RedisClient on top of go-redis.
type GeoRedisClient struct {
	client *redis.Client
}

func NewGeoRedisClient(client *redis.Client) *GeoRedisClient {
	return &GeoRedisClient{client: client}
}

func (r *GeoRedisClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *GeoRedisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return val, err
}

func (r *GeoRedisClient) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// Keys scans instead of issuing KEYS so large keyspaces do not block the server.
func (r *GeoRedisClient) Keys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan keys %q: %w", pattern, err)
	}
	return keys, nil
}

// AddLocationWithJSON stores the member in the geo index and its JSON payload under the member key.
func (r *GeoRedisClient) AddLocationWithJSON(ctx context.Context, geoKey, memberKey string, lat, lon float64, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := r.client.GeoAdd(ctx, geoKey, &redis.GeoLocation{
		Name:      memberKey,
		Latitude:  lat,
		Longitude: lon,
	}).Err(); err != nil {
		return fmt.Errorf("failed to add geolocation: %w", err)
	}

	if err := r.client.Set(ctx, memberKey, jsonData, 0).Err(); err != nil {
		return fmt.Errorf("failed to set JSON data: %w", err)
	}
	return nil
}

// GetLocationsWithinRadius returns the JSON payloads of every member within radiusMeters.
func (r *GeoRedisClient) GetLocationsWithinRadius(ctx context.Context, geoKey string, lat, lon, radiusMeters float64) ([]string, error) {
	results, err := r.client.GeoSearch(ctx, geoKey, &redis.GeoSearchQuery{
		Longitude:  lon,
		Latitude:   lat,
		Radius:     radiusMeters,
		RadiusUnit: "m",
		Sort:       "ASC",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get nearby locations: %w", err)
	}

	objects := make([]string, 0, len(results))
	for _, member := range results {
		data, err := r.client.Get(ctx, member).Result()
		if err != nil {
			log.Printf("[GeoRedisClient] Skipping member %s: %v", member, err)
			continue
		}
		objects = append(objects, data)
	}
	return objects, nil
}

func (r *GeoRedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
