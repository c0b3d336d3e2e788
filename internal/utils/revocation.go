package utils

import (
	"context" // Context for Redis operations
	"time"    // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

const revokedKeyPrefix = "auth:revoked:"

// TokenDenylist keeps revoked token ids in Redis until the token would have expired
type TokenDenylist struct {
	rdb *redis.Client
}

// NewTokenDenylist wraps a Redis client
func NewTokenDenylist(rdb *redis.Client) *TokenDenylist {
	return &TokenDenylist{rdb: rdb}
}

// Revoke marks tokenID as revoked for ttl. A non-positive ttl means the
// token is already expired and nothing needs storing.
func (d *TokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return d.rdb.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err()
}

// IsRevoked reports whether tokenID has been revoked
func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.rdb.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
