// Package attachment keeps the binary payloads referenced by customization
// orders and reviews. Orders and reviews only carry the returned names.
package attachment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"tailorcart/internal/domain"
)

// MaxSize bounds a single payload.
const MaxSize = 8 << 20

var ErrTooLarge = errors.New("attachment too large")

type Store interface {
	Save(ctx context.Context, payloads [][]byte) ([]string, error)
	Load(ctx context.Context, name string) ([]byte, error)
	Delete(ctx context.Context, name string) error
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore keeps payloads without expiry when ttl is zero.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Save writes every payload in one pipeline and returns their names in input order.
func (r *RedisStore) Save(ctx context.Context, payloads [][]byte) ([]string, error) {
	if len(payloads) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(payloads))
	pipe := r.client.TxPipeline()
	for _, p := range payloads {
		if len(p) > MaxSize {
			return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(p))
		}
		name := uuid.NewString()
		pipe.Set(ctx, attachmentKey(name), p, r.ttl)
		names = append(names, name)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("redis save failed: %w", err)
	}
	return names, nil
}

func (r *RedisStore) Load(ctx context.Context, name string) ([]byte, error) {
	data, err := r.client.Get(ctx, attachmentKey(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

// Delete is idempotent; a missing name is not an error.
func (r *RedisStore) Delete(ctx context.Context, name string) error {
	if err := r.client.Del(ctx, attachmentKey(name)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// Ping reports whether the backing Redis answers.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func attachmentKey(name string) string {
	return fmt.Sprintf("attachment:%s", name)
}
