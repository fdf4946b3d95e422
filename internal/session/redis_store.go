package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "internmatch:session:"
	pendingKeyPrefix = "internmatch:pending:"
)

// RedisStore keeps each session in one hash. A positive ttl is refreshed on every write.
type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisStore(client redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func pendingKey(id, action string) string {
	return pendingKeyPrefix + id + ":" + action
}

func (s *RedisStore) Load(ctx context.Context, id, field string) ([]byte, bool, error) {
	data, err := s.client.HGet(ctx, sessionKey(id), field).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("hget %s: %w", field, err)
	}
	return data, true, nil
}

func (s *RedisStore) Save(ctx context.Context, id, field string, data []byte) error {
	key := sessionKey(id)
	if err := s.client.HSet(ctx, key, field, data).Err(); err != nil {
		return fmt.Errorf("hset %s: %w", field, err)
	}
	if s.ttl > 0 {
		if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
			return fmt.Errorf("expire session: %w", err)
		}
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, id string, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	if err := s.client.HDel(ctx, sessionKey(id), fields...).Err(); err != nil {
		return fmt.Errorf("hdel: %w", err)
	}
	return nil
}

func (s *RedisStore) AcquirePending(ctx context.Context, id, action string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, pendingKey(id, action), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("setnx pending %s: %w", action, err)
	}
	return ok, nil
}

func (s *RedisStore) ReleasePending(ctx context.Context, id, action string) error {
	if err := s.client.Del(ctx, pendingKey(id, action)).Err(); err != nil {
		return fmt.Errorf("del pending %s: %w", action, err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
