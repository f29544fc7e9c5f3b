// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"academy/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrRefreshTokenNotFound is returned when no record matches a token hash.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository stores session credentials, one per account and kind.
type RefreshTokenRepository interface {
	// ReplaceForAccount atomically swaps whatever token the account+kind held for the given one.
	// Implementations must not expose a window where the account has zero or two records.
	ReplaceForAccount(ctx context.Context, token *entity.RefreshToken) error

	// FindByHash retrieves a token record by the hash of the raw token. Expiry is not checked here.
	FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// DeleteByHash removes a single token record.
	DeleteByHash(ctx context.Context, tokenHash string) error

	// DeleteForAccount removes the tokens of an account+kind.
	DeleteForAccount(ctx context.Context, accountID string, kind entity.AccountKind) error
}
