package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bookmart-be/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const reportTTL = 5 * time.Minute

// InitRedis connects to redis for report caching. A failed connection is
// logged and returns nil; the cache degrades to a pass-through, it never
// takes the service down.
func InitRedis(addr string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.L().Warn("redis unavailable, report caching disabled", zap.Error(err))
		return nil
	}

	return client
}

// ReportCache stores computed report bundles as JSON under a short TTL.
// All methods tolerate a nil client so callers never branch on whether
// caching is enabled.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewReportCache(client *redis.Client) *ReportCache {
	return &ReportCache{client: client, ttl: reportTTL}
}

func reportKey(name string) string {
	return fmt.Sprintf("report:%s", name)
}

// Get unmarshals the cached report named name into dest. It returns false
// on a miss and on any redis failure; a broken cache reads as a miss.
func (c *ReportCache) Get(ctx context.Context, name string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}

	val, err := c.client.Get(ctx, reportKey(name)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.FromCtx(ctx).Warn("report cache read failed", zap.String("report", name), zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		logger.FromCtx(ctx).Warn("report cache entry corrupt", zap.String("report", name), zap.Error(err))
		return false
	}

	return true
}

// Set stores the report under its TTL. Failures are logged and swallowed.
func (c *ReportCache) Set(ctx context.Context, name string, report any) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(report)
	if err != nil {
		logger.FromCtx(ctx).Warn("report cache marshal failed", zap.String("report", name), zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, reportKey(name), data, c.ttl).Err(); err != nil {
		logger.FromCtx(ctx).Warn("report cache write failed", zap.String("report", name), zap.Error(err))
	}
}

// Invalidate drops a cached report, used after writes that change the
// underlying data.
func (c *ReportCache) Invalidate(ctx context.Context, name string) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Del(ctx, reportKey(name)).Err(); err != nil {
		logger.FromCtx(ctx).Warn("report cache invalidation failed", zap.String("report", name), zap.Error(err))
	}
}
