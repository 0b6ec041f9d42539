package cache

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/aihub/storescan-go/internal/errors"
	"github.com/aihub/storescan-go/internal/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore 基于Redis的缓存实现，所有键带统一前缀
type RedisStore struct {
	client *redis.Client
	prefix string
	stats  *hitStats
}

// NewRedisStore 创建Redis缓存
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "kb:chunks"
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
		stats:  &hitStats{},
	}
}

// Get 读取缓存值
func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, r.fullKey(key)).Bytes()
	if err == redis.Nil {
		r.stats.recordMiss()
		return nil, false, nil
	}
	if err != nil {
		r.stats.recordMiss()
		return nil, false, apperrors.NewCacheError("failed to get cache entry", err)
	}

	r.stats.recordHit()
	return val, true, nil
}

// Set 写入缓存值并设置过期时间
func (r *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.fullKey(key), value, ttl).Err(); err != nil {
		return apperrors.NewCacheError("failed to set cache entry", err)
	}
	return nil
}

// Flush 按前缀批量删除本子系统的缓存条目
func (r *RedisStore) Flush(ctx context.Context) error {
	var cursor uint64
	pattern := r.prefix + ":*"

	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return apperrors.NewCacheError("failed to scan cache keys", err)
		}

		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				logger.Warn("Failed to delete cache keys", zap.Int("count", len(keys)), zap.Error(err))
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	logger.Info("Cache flushed", zap.String("prefix", r.prefix))
	return nil
}

// Stats 返回命中率统计
func (r *RedisStore) Stats() Stats {
	return r.stats.snapshot()
}

// fullKey 生成带前缀的Redis键
func (r *RedisStore) fullKey(key string) string {
	return fmt.Sprintf("%s:%s", r.prefix, key)
}
