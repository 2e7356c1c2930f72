package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"congestion-server/db"
	"congestion-server/models"
)

const EVENT_FACTS_KEY_FORMAT_V1 = "event_facts_v1:%s_%s"
const EVENT_FACTS_TTL = 12 * time.Hour

// RedisEventFactsDAO caches the raw event-fact payload per station and date so a repeated
// search does not query the generative service again.
type RedisEventFactsDAO struct {
	client db.RedisClient
	ttl    time.Duration
}

func NewRedisEventFactsDAO(client db.RedisClient) *RedisEventFactsDAO {
	return &RedisEventFactsDAO{client: client, ttl: EVENT_FACTS_TTL}
}

func eventFactsKey(stationName, date string) string {
	return fmt.Sprintf(EVENT_FACTS_KEY_FORMAT_V1, models.NormalizeVenueName(stationName), date)
}

// GetEventFacts returns the cached payload; found is false on a cache miss.
func (dao *RedisEventFactsDAO) GetEventFacts(ctx context.Context, stationName, date string) (payload []byte, found bool, err error) {
	str, err := dao.client.Get(ctx, eventFactsKey(stationName, date))
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("[RedisEventFactsDAO] failed to get event facts: %w", err)
	}
	return []byte(str), true, nil
}

func (dao *RedisEventFactsDAO) SetEventFacts(ctx context.Context, stationName, date string, payload []byte) error {
	if err := dao.client.Set(ctx, eventFactsKey(stationName, date), string(payload), dao.ttl); err != nil {
		return fmt.Errorf("[RedisEventFactsDAO] failed to set event facts: %w", err)
	}
	return nil
}
