package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	// RedisKeyPrefix namespaces every slot: taskflow:{key}
	RedisKeyPrefix = "taskflow:"

	// RedisValueMaxSize is the maximum size of a stored value in bytes.
	RedisValueMaxSize = 1024 * 1024 // 1MB
)

// ErrValueTooBig is returned when a value exceeds RedisValueMaxSize.
var ErrValueTooBig = errors.New("storage value too big")

// RedisStore keeps slots in Redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the Redis server at url (redis://host:6379/0).
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return NewRedisStoreWithClient(client), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) namespaceKey(key string) string {
	return RedisKeyPrefix + key
}

// Get retrieves a value by key.
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, s.namespaceKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set stores a value without expiration.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if len(value) > RedisValueMaxSize {
		return ErrValueTooBig
	}
	return s.client.Set(ctx, s.namespaceKey(key), value, 0).Err()
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
