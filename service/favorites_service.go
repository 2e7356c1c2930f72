package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"congestion-server/models"
)

// FavoritesStore persists favorites keyed by models.Favorite.Key().
type FavoritesStore interface {
	Get(ctx context.Context) (map[string]models.Favorite, error)
	Upsert(ctx context.Context, f models.Favorite) error
}

// FavoritesService counts station searches and ranks the most used ones.
type FavoritesService struct {
	store FavoritesStore
	now   func() time.Time
	mu    sync.Mutex
}

func NewFavoritesService(store FavoritesStore) *FavoritesService {
	return &FavoritesService{store: store, now: time.Now}
}

// Record counts one more use of (railway, station).
func (fs *FavoritesService) Record(ctx context.Context, railway, station string) (models.Favorite, error) {
	railway = strings.TrimSpace(railway)
	station = strings.TrimSpace(station)
	if railway == "" || station == "" {
		return models.Favorite{}, fmt.Errorf("%w: railway and station are required", ErrInvalidInput)
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	all, err := fs.store.Get(ctx)
	if err != nil {
		return models.Favorite{}, err
	}
	f := models.Favorite{Railway: railway, Station: station}
	if existing, ok := all[f.Key()]; ok {
		f.Count = existing.Count
	}
	f.Count++
	f.LastUsed = fs.now().UnixMilli()

	if err := fs.store.Upsert(ctx, f); err != nil {
		return models.Favorite{}, err
	}
	return f, nil
}

// Top returns up to n favorites, most used first. n <= 0 returns all of them.
func (fs *FavoritesService) Top(ctx context.Context, n int) ([]models.Favorite, error) {
	all, err := fs.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	return RankFavorites(all, n), nil
}

// RankFavorites orders by count desc, then last use desc, then railway and station asc.
func RankFavorites(all map[string]models.Favorite, n int) []models.Favorite {
	ranked := make([]models.Favorite, 0, len(all))
	for _, f := range all {
		ranked = append(ranked, f)
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.LastUsed != b.LastUsed {
			return a.LastUsed > b.LastUsed
		}
		if a.Railway != b.Railway {
			return a.Railway < b.Railway
		}
		return a.Station < b.Station
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
