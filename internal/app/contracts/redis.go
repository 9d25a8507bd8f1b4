package contracts

import (
	"context"
	"time"
)

type RedisRepository interface {
	Set(ctx context.Context, key string, value interface{}, exp time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	// IncrementWithTTL bumps a counter and applies the TTL on first write;
	// used by fixed-window rate limiters.
	IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int, error)
}
