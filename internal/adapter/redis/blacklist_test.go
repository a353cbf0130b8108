package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBlacklist(t *testing.T) (*miniredis.Miniredis, *TokenBlacklist) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, NewTokenBlacklist(client)
}

func TestTokenBlacklist_AddAndContains(t *testing.T) {
	_, bl := newTestBlacklist(t)
	ctx := context.Background()

	found, err := bl.Contains(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, bl.Add(ctx, "jti-1", time.Minute))

	found, err = bl.Contains(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestTokenBlacklist_EntryExpires(t *testing.T) {
	mr, bl := newTestBlacklist(t)
	ctx := context.Background()

	require.NoError(t, bl.Add(ctx, "jti-2", time.Minute))
	mr.FastForward(2 * time.Minute)

	found, err := bl.Contains(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTokenBlacklist_NonPositiveTTLIsNoOp(t *testing.T) {
	_, bl := newTestBlacklist(t)
	ctx := context.Background()

	require.NoError(t, bl.Add(ctx, "jti-3", -time.Second))

	found, err := bl.Contains(ctx, "jti-3")
	require.NoError(t, err)
	assert.False(t, found)
}
