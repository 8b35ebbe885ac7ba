package storage

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/dmitrijs2005/campushub/internal/client/config"
)

// NewRedisClient connects to the Redis server described by cfg and checks
// that it answers PING within the context deadline.
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.RedisAddr,
		DB:          cfg.RedisDB,
		DialTimeout: cfg.StoreTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: redis at %s: %v", ErrUnavailable, cfg.RedisAddr, err)
	}

	return client, nil
}
