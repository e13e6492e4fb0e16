package ratelimit

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps fixed-window counters in Redis so concurrent requests and
// multiple instances share one atomic count per key.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	limit  int
	window time.Duration
}

type RedisOption func(*RedisStore)

func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.prefix = strings.Trim(prefix, ":") }
}

func NewRedisStore(rdb *redis.Client, limit int, window time.Duration, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		rdb:    rdb,
		prefix: "ratelimit",
		limit:  limit,
		window: window,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Check implements Store. INCR is atomic; the TTL is set only when the key is
// created, which makes the counter a fixed window starting at first hit.
func (s *RedisStore) Check(ctx context.Context, key string) (Decision, error) {
	k := s.prefix + ":" + key

	pipe := s.rdb.Pipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, s.window)
	ttl := pipe.TTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, err
	}

	count := int(incr.Val())
	remaining := s.limit - count
	if remaining < 0 {
		remaining = 0
	}

	reset := time.Now().Add(s.window)
	if d := ttl.Val(); d > 0 {
		reset = time.Now().Add(d)
	}

	return Decision{
		Allowed:   count <= s.limit,
		Limit:     s.limit,
		Remaining: remaining,
		Reset:     reset,
	}, nil
}
