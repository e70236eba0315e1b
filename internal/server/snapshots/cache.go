package snapshots

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/qianzhu/lifeplanner/internal/common"
	"github.com/qianzhu/lifeplanner/internal/server/models"
)

// DayCache is the fast-path store for the current day's snapshot.
type DayCache interface {
	Get(ctx context.Context, date string) (*models.DailySnapshot, error)
	Set(ctx context.Context, snap *models.DailySnapshot) error
}

// RedisDayCache keeps snapshots under daily_updates:<date> with a TTL of
// two days, long enough to cover the whole day plus clock skew.
type RedisDayCache struct {
	client *redis.Client
}

func NewRedisDayCache(client *redis.Client) *RedisDayCache {
	return &RedisDayCache{client: client}
}

func cacheKey(date string) string {
	return "daily_updates:" + date
}

func (c *RedisDayCache) Get(ctx context.Context, date string) (*models.DailySnapshot, error) {
	val, err := c.client.Get(ctx, cacheKey(date)).Result()
	if err == redis.Nil {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var snap models.DailySnapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		return nil, fmt.Errorf("cache decode failed: %w", err)
	}
	return &snap, nil
}

func (c *RedisDayCache) Set(ctx context.Context, snap *models.DailySnapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("cache encode failed: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(snap.Date), b, 48*time.Hour).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}
