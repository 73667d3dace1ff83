package database

import (
	"context"
	"fmt"
	"microhub-backend/internal/config"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis opens the client backing the guard's expiring key-value
// store. Short timeouts keep a slow Redis from stalling the request path;
// the guard fails open when these expire.
func ConnectRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
