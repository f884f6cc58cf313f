// File: utils/cache.go
package utils

import (
	"context"
	"time"

	"stayfinder/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var (
	// CacheClient is the generic cache client.
	CacheClient *redis.Client
	// AuthCacheClient is the dedicated client for authorization caching.
	AuthCacheClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
}

// InitRedis connects both cache clients. A client that fails its ping is left nil and
// callers fall back to the database.
func InitRedis() {
	CacheClient = pingOrNil(newRedisClient(config.AppConfig.RedisCacheDB), "cache")
	AuthCacheClient = pingOrNil(newRedisClient(config.AppConfig.RedisAuthDB), "auth cache")
}

func pingOrNil(client *redis.Client, name string) *redis.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		GetLogger().Warn("redis unavailable, continuing without it", zap.String("client", name), zap.Error(err))
		_ = client.Close()
		return nil
	}
	return client
}

// GetCacheClient returns the generic cache client, or nil when Redis is unavailable.
func GetCacheClient() *redis.Client {
	return CacheClient
}

// GetAuthCacheClient returns the Redis client for authorization caching, or nil.
func GetAuthCacheClient() *redis.Client {
	return AuthCacheClient
}

// CloseRedis closes whichever clients were opened.
func CloseRedis() {
	for _, c := range []*redis.Client{CacheClient, AuthCacheClient} {
		if c != nil {
			_ = c.Close()
		}
	}
}
