package usecase

import (
	"context"

	"academy/internal/domain/service"
)

// SessionUsecase defines the interface for token refresh, authentication and logout.
type SessionUsecase interface {
	// Refresh exchanges a stored refresh token for a new access token. The refresh token is not rotated.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	// Authenticate validates a bearer access token and rejects revoked ones.
	Authenticate(ctx context.Context, bearer string) (*service.Claims, error)
	// Logout drops the account's refresh token and revokes the presented access token.
	Logout(ctx context.Context, claims *service.Claims) error
}
