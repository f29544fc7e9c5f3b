package revocation

import (
	"context"
	"time"

	"academy/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked:access:"

type redisRevoker struct {
	client redis.UniversalClient
}

// NewRedisRevoker stores revoked token IDs as keys that expire with the token.
func NewRedisRevoker(client redis.UniversalClient) service.TokenRevoker {
	return &redisRevoker{client: client}
}

func (r *redisRevoker) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}

	if err := r.client.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set revoked token")
	}

	return nil
}

func (r *redisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, errors.Wrap(err, "redis exists revoked token")
	}

	return n > 0, nil
}
