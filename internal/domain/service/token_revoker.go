package service

import (
	"context"
	"time"
)

// TokenRevoker keeps a deny-list of access token IDs that must be rejected before they expire.
type TokenRevoker interface {
	// Revoke rejects the token ID until the given instant.
	Revoke(ctx context.Context, tokenID string, until time.Time) error

	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
