package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDenylist(t *testing.T) (*TokenDenylist, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewTokenDenylist(rdb), mr
}

func TestTokenDenylist(t *testing.T) {
	ctx := context.Background()
	d, mr := newDenylist(t)

	revoked, err := d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, d.Revoke(ctx, "jti-1", time.Minute))
	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Equal(t, time.Minute, mr.TTL(revokedKeyPrefix+"jti-1"))

	// The entry disappears once the token would have expired anyway
	mr.FastForward(2 * time.Minute)
	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevokeExpiredTokenStoresNothing(t *testing.T) {
	d, mr := newDenylist(t)

	require.NoError(t, d.Revoke(context.Background(), "jti-old", -time.Second))
	assert.False(t, mr.Exists(revokedKeyPrefix+"jti-old"))
}

func TestDenylistUnavailable(t *testing.T) {
	d, mr := newDenylist(t)
	mr.Close()

	_, err := d.IsRevoked(context.Background(), "jti-1")
	assert.Error(t, err)
}
