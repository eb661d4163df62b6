package otp

import (
	"context"
	"time"

	"freework/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "otp:"

	// Codes expire five minutes after issue.
	ttl = 5 * time.Minute
)

// RedisStore persists one-time codes in Redis keyed by mail address, so codes
// survive process restarts and work across instances.
type RedisStore struct {
	rdb *redis.Client
}

var _ interfaces.IOTPStore = (*RedisStore)(nil)

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Put(ctx context.Context, mail, code string) error {
	return s.rdb.Set(ctx, keyPrefix+mail, code, ttl).Err()
}

// Get returns the stored code for mail, or ("", false, nil) when no live code
// exists.
func (s *RedisStore) Get(ctx context.Context, mail string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, keyPrefix+mail).Result()
	if err == redis.Nil {
		return "", false, nil
	} else if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, mail string) error {
	return s.rdb.Del(ctx, keyPrefix+mail).Err()
}
