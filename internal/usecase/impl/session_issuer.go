// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"time"

	"academy/internal/domain/entity"
	"academy/internal/domain/repository"
	"academy/internal/domain/service"

	"github.com/pkg/errors"
)

// Display fallbacks for fields older records may lack.
const (
	fallbackUnknown = "Unknown"
	fallbackLink    = "#"
)

// sessionIssuer hands out token pairs and keeps exactly one refresh token per account and kind.
type sessionIssuer struct {
	tokens        service.TokenService
	refreshTokens repository.RefreshTokenRepository
	now           func() time.Time
}

func newSessionIssuer(tokens service.TokenService, refreshTokens repository.RefreshTokenRepository) *sessionIssuer {
	return &sessionIssuer{tokens: tokens, refreshTokens: refreshTokens, now: time.Now}
}

// issue signs a new pair and replaces whatever refresh token the account held.
func (i *sessionIssuer) issue(ctx context.Context, identity entity.Identity, refreshTTL time.Duration) (*entity.TokenPair, error) {
	accessToken, err := i.tokens.IssueAccessToken(identity)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	refreshToken, err := i.tokens.IssueRefreshToken(identity, refreshTTL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue refresh token")
	}

	now := i.now()
	expiresAt := now.Add(refreshTTL)
	record := &entity.RefreshToken{
		TokenHash:   i.tokens.HashToken(refreshToken),
		AccountID:   identity.AccountID,
		AccountKind: identity.Kind,
		ExpiresAt:   &expiresAt,
		CreatedAt:   now,
	}
	if err := i.refreshTokens.ReplaceForAccount(ctx, record); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token")
	}

	return &entity.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
