package cache

import (
	"fmt"

	"tripplanner.app/config"
	"tripplanner.app/errors"
)

// NewCache creates the cache backend selected by configuration
func NewCache(cfg *config.CacheConfig) (Cache, error) {
	switch config.CacheType(cfg.Type) {
	case config.CacheTypeMemory:
		return NewMemoryCache(cfg.MaxEntries), nil
	case config.CacheTypeRedis:
		redisCache, err := NewRedisCache(&cfg.Redis)
		if err != nil {
			return nil, errors.NewConfigurationError("failed to connect redis cache", err)
		}
		return redisCache, nil
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported cache type: %s", cfg.Type), nil)
	}
}
