package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"vidtube/domain/dto"
	"vidtube/domain/repository"
)

const channelStatsPrefix = "vidtube:channel-stats:"

type keyValueStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// ChannelStatsCache stores dashboard stats per channel. A nil store disables caching.
type ChannelStatsCache struct {
	store keyValueStore
}

func NewChannelStatsCache(client *redis.Client) repository.IChannelStatsCache {
	if client == nil {
		return &ChannelStatsCache{}
	}
	return &ChannelStatsCache{store: client}
}

func channelStatsKey(channelID string) string {
	return channelStatsPrefix + channelID
}

func (c *ChannelStatsCache) Get(ctx context.Context, channelID string) (*dto.ChannelStats, error) {
	if c.store == nil {
		return nil, nil
	}
	raw, err := c.store.Get(ctx, channelStatsKey(channelID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var stats dto.ChannelStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *ChannelStatsCache) Set(ctx context.Context, channelID string, stats *dto.ChannelStats, ttl time.Duration) error {
	if c.store == nil || stats == nil {
		return nil
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, channelStatsKey(channelID), raw, ttl).Err()
}

func (c *ChannelStatsCache) Invalidate(ctx context.Context, channelID string) error {
	if c.store == nil {
		return nil
	}
	return c.store.Del(ctx, channelStatsKey(channelID)).Err()
}
