package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist records revoked refresh-token IDs until their natural
// expiry. A blacklisted token can no longer mint access tokens.
type TokenBlacklist struct {
	client *redis.Client
}

func NewTokenBlacklist(client *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

func (b *TokenBlacklist) Add(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already past expiry; nothing to revoke.
		return nil
	}
	if err := b.client.Set(ctx, "blacklist:"+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("blacklist add: %w", err)
	}
	return nil
}

func (b *TokenBlacklist) Contains(ctx context.Context, tokenID string) (bool, error) {
	err := b.client.Get(ctx, "blacklist:"+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("blacklist lookup: %w", err)
	}
	return true, nil
}
