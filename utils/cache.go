// File: utils/cache.go
package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"prbal/config"
)

// CacheClient is the Redis client backing the entity cache.
var CacheClient *redis.Client

// EntityCacheTTL is the default lifetime of a cached entity snapshot.
const EntityCacheTTL = 15 * time.Minute

// InitCache initializes the Redis entity cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the entity cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// WireSerializable is anything that can emit its sparse wire map. All
// domain entities satisfy it.
type WireSerializable interface {
	ToMap() map[string]any
}

// CacheEntity stores an entity's wire snapshot so it can be served while
// the backend is unreachable.
func CacheEntity(ctx context.Context, key string, entity WireSerializable, ttl time.Duration) error {
	data, err := json.Marshal(entity.ToMap())
	if err != nil {
		return fmt.Errorf("marshaling %s for cache: %w", key, err)
	}
	if err := GetCacheClient().Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("caching %s: %w", key, err)
	}
	return nil
}

// CachedEntityMap loads a previously cached wire snapshot. The caller
// rehydrates it through the entity's FromMap factory, so a stale or
// corrupted snapshot degrades exactly like a bad server payload.
func CachedEntityMap(ctx context.Context, key string) (map[string]any, error) {
	data, err := GetCacheClient().Get(ctx, key).Bytes()
	if err != nil {
		return nil, fmt.Errorf("cache miss for %s: %w", key, err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding cached %s: %w", key, err)
	}
	return raw, nil
}
