package utils

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisCtx    = context.Background()
)

// InitRedis connects the shared Redis client used for reset tokens
func InitRedis() error {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	return redisClient.Ping(redisCtx).Err()
}

// SetToken stores a value with TTL (used for password reset tokens)
func SetToken(key, value string, ttl time.Duration) error {
	return redisClient.Set(redisCtx, key, value, ttl).Err()
}

// GetToken fetches a previously stored token value
func GetToken(key string) (string, error) {
	return redisClient.Get(redisCtx, key).Result()
}

// DeleteToken removes a token after use
func DeleteToken(key string) error {
	return redisClient.Del(redisCtx, key).Err()
}
