package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"skillup_backend/internal/model"
	"time"

	"github.com/go-redis/redis/v8"
)

const leaderboardKeyPrefix = "leaderboard:"

// leaderboardKey 目录版本写进 key，旧快照的写入不会被新版本读到
func leaderboardKey(version uint64, period model.LeaderboardPeriod) string {
	return fmt.Sprintf("%s%d:%s", leaderboardKeyPrefix, version, period)
}

// LeaderboardCache 按目录版本和周期缓存排行榜
type LeaderboardCache struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewLeaderboardCache(rdb *redis.Client, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{Redis: rdb, TTL: ttl}
}

func (c *LeaderboardCache) Get(ctx context.Context, version uint64, period model.LeaderboardPeriod) ([]model.LeaderboardEntry, bool, error) {
	data, err := c.Redis.Get(ctx, leaderboardKey(version, period)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entries []model.LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false, err
	}
	return entries, true, nil
}

func (c *LeaderboardCache) Set(ctx context.Context, version uint64, period model.LeaderboardPeriod, entries []model.LeaderboardEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.Redis.Set(ctx, leaderboardKey(version, period), data, c.TTL).Err()
}

// Invalidate 目录重新加载后删除所有版本的缓存
func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	iter := c.Redis.Scan(ctx, 0, leaderboardKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.Redis.Del(ctx, keys...).Err()
}
