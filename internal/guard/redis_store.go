package guard

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "mhguard"

// RedisStore backs the guard with Redis so rate windows and block flags are
// shared across instances. Atomicity of the increment comes from Redis
// itself; INCR and EXPIRE run in one transactional pipeline.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) IncrWindow(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := s.client.TxPipeline()
	count := pipe.Incr(ctx, redisKeyPrefix+":cnt:"+key)
	pipe.Expire(ctx, redisKeyPrefix+":cnt:"+key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return count.Val(), nil
}

func (s *RedisStore) SetFlag(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Set(ctx, redisKeyPrefix+":ban:"+key, "1", ttl).Err()
}

func (s *RedisStore) HasFlag(ctx context.Context, key string) (bool, error) {
	_, err := s.client.Get(ctx, redisKeyPrefix+":ban:"+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
