package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"congestion-server/db"
	"congestion-server/models"
)

const FAVORITE_KEY_PREFIX_V1 = "favorite_v1:"

// RedisFavoritesDAO stores one JSON blob per (railway, station) pair.
type RedisFavoritesDAO struct {
	client db.RedisClient
}

func NewRedisFavoritesDAO(client db.RedisClient) *RedisFavoritesDAO {
	return &RedisFavoritesDAO{client: client}
}

// Get returns every stored favorite keyed by Favorite.Key().
func (dao *RedisFavoritesDAO) Get(ctx context.Context) (map[string]models.Favorite, error) {
	keys, err := dao.client.Keys(ctx, FAVORITE_KEY_PREFIX_V1+"*")
	if err != nil {
		return nil, fmt.Errorf("[RedisFavoritesDAO] failed to list favorites: %w", err)
	}

	out := make(map[string]models.Favorite, len(keys))
	for _, k := range keys {
		str, err := dao.client.Get(ctx, k)
		if errors.Is(err, db.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("[RedisFavoritesDAO] failed to get %s: %w", k, err)
		}
		var f models.Favorite
		if err := json.Unmarshal([]byte(str), &f); err != nil {
			log.Printf("[RedisFavoritesDAO] Skipping corrupt entry %s: %v", k, err)
			continue
		}
		out[strings.TrimPrefix(k, FAVORITE_KEY_PREFIX_V1)] = f
	}
	return out, nil
}

func (dao *RedisFavoritesDAO) Upsert(ctx context.Context, f models.Favorite) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("[RedisFavoritesDAO] failed to marshal favorite: %w", err)
	}
	if err := dao.client.Set(ctx, FAVORITE_KEY_PREFIX_V1+f.Key(), string(data), 0); err != nil {
		return fmt.Errorf("[RedisFavoritesDAO] failed to upsert favorite: %w", err)
	}
	return nil
}
