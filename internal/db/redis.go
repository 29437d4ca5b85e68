package db

import (
	"backend-trailmap/internal/config"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis builds the pub/sub client used by the stream hub. Redis is
// optional: with no address configured the hub runs single-instance.
func ConnectRedis(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}
