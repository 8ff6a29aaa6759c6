package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"tripplanner.app/config"
	"tripplanner.app/models"
)

// RedisCache backs the weather cache with a redis instance. TTL handling is
// delegated to redis, so expired entries never appear in stats.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to redis and verifies the connection with a ping
func NewRedisCache(cfg *config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	slog.Info("redis cache connected", "addr", cfg.Addr)
	return &RedisCache{client: client}, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Error("redis get error", "error", err, "key", key)
		}
		return nil, false
	}
	return val, true
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if value == nil {
		return
	}
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		slog.Error("redis set error", "error", err, "key", key)
	}
}

func (r *RedisCache) Clear(ctx context.Context) {
	if err := r.client.FlushDB(ctx).Err(); err != nil {
		slog.Error("redis clear error", "error", err)
	}
}

func (r *RedisCache) Stats(ctx context.Context) models.CacheStats {
	size, err := r.client.DBSize(ctx).Result()
	if err != nil {
		slog.Error("redis dbsize error", "error", err)
		return models.CacheStats{}
	}
	return models.CacheStats{
		TotalEntries: int(size),
		ValidEntries: int(size),
	}
}
