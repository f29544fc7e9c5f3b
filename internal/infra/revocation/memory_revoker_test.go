package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevoker(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	revoker := NewMemoryRevoker().(*memoryRevoker)
	revoker.now = func() time.Time { return now }

	revoked, err := revoker.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, revoker.Revoke(ctx, "jti-1", now.Add(time.Minute)))
	revoked, err = revoker.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, err = revoker.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked, "entry must lapse with the token")
}

func TestMemoryRevoker_IgnoresAlreadyExpiredTokens(t *testing.T) {
	ctx := context.Background()
	revoker := NewMemoryRevoker().(*memoryRevoker)

	require.NoError(t, revoker.Revoke(ctx, "old", time.Now().Add(-time.Second)))
	assert.Empty(t, revoker.revoked)
}
