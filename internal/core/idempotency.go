// AngelaMos | 2026
// idempotency.go

package core

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyPrefix = "idempotency:"

// IdempotencyGuard records request keys in Redis so a retried POST is not
// executed twice. Keys are claimed before the side effect and released when
// the side effect fails, so the caller may retry.
type IdempotencyGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIdempotencyGuard(client *redis.Client, ttl time.Duration) *IdempotencyGuard {
	return &IdempotencyGuard{client: client, ttl: ttl}
}

// Claim returns false when the key was already claimed within the TTL.
func (g *IdempotencyGuard) Claim(ctx context.Context, scope, key string) (bool, error) {
	if g == nil || g.client == nil || key == "" {
		return true, nil
	}

	ok, err := g.client.SetNX(ctx, idempotencyPrefix+scope+":"+key, "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim idempotency key: %w", err)
	}

	return ok, nil
}

func (g *IdempotencyGuard) Release(ctx context.Context, scope, key string) error {
	if g == nil || g.client == nil || key == "" {
		return nil
	}

	if err := g.client.Del(ctx, idempotencyPrefix+scope+":"+key).Err(); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}

	return nil
}
