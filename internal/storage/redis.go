package storage

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// AnalyticsCache keeps per-restaurant order counters in Redis sorted sets so
// popular-item queries do not hit Postgres on every dashboard refresh. The
// notifier increments the counters; the analytics service reads them and
// falls back to Postgres when they are missing.
type AnalyticsCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewAnalyticsCache(client *redis.Client, ttl time.Duration) *AnalyticsCache {
	return &AnalyticsCache{Client: client, TTL: ttl}
}

func (c *AnalyticsCache) dailyKey(restaurantID int, day string) string {
	return "analytics:daily:" + day + ":" + strconv.Itoa(restaurantID)
}

func (c *AnalyticsCache) allTimeKey(restaurantID int) string {
	return "analytics:alltime:" + strconv.Itoa(restaurantID)
}

func (c *AnalyticsCache) RecordOrderItem(ctx context.Context, restaurantID, menuItemID, quantity int, day string) error {
	member := strconv.Itoa(menuItemID)
	pipe := c.Client.Pipeline()
	pipe.ZIncrBy(ctx, c.dailyKey(restaurantID, day), float64(quantity), member)
	pipe.Expire(ctx, c.dailyKey(restaurantID, day), c.TTL)
	pipe.ZIncrBy(ctx, c.allTimeKey(restaurantID), float64(quantity), member)
	_, err := pipe.Exec(ctx)
	return err
}

// TopItems returns menu item IDs with their order counts, best first.
func (c *AnalyticsCache) TopItems(ctx context.Context, restaurantID, limit int) (map[int]float64, error) {
	results, err := c.Client.ZRevRangeWithScores(ctx, c.allTimeKey(restaurantID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	top := make(map[int]float64, len(results))
	for _, member := range results {
		id, err := strconv.Atoi(member.Member.(string))
		if err != nil {
			continue
		}
		top[id] = member.Score
	}
	return top, nil
}
