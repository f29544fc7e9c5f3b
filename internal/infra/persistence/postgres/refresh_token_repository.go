package postgres

import (
	"context"

	"academy/internal/domain/entity"
	domainerrors "academy/internal/domain/errors"
	"academy/internal/domain/repository"
	"academy/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// refreshTokenRepository implements the domain.RefreshTokenRepository interface.
type refreshTokenRepository struct {
	db *gorm.DB
}

// ReplaceForAccount is a single INSERT .. ON CONFLICT (account_id, account_kind) DO UPDATE.
func (repo *refreshTokenRepository) ReplaceForAccount(ctx context.Context, token *entity.RefreshToken) error {
	accountID, ok := parseID(token.AccountID)
	if !ok {
		return errors.Errorf("invalid account id %q", token.AccountID)
	}

	tokenM := &model.RefreshTokenModel{
		ID:          uuid.New(),
		TokenHash:   token.TokenHash,
		AccountID:   accountID,
		AccountKind: token.AccountKind.String(),
		ExpiresAt:   token.ExpiresAt,
		CreatedAt:   token.CreatedAt,
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}, {Name: "account_kind"}},
			DoUpdates: clause.AssignmentColumns([]string{"token_hash", "expires_at", "created_at"}),
		}).
		Create(tokenM).Error
	if err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required token information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to store refresh token")
	}
	token.ID = tokenM.ID.String()

	return nil
}

// FindByHash retrieves a refresh token record by its securely stored hash.
func (repo *refreshTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	var tokenM model.RefreshTokenModel
	if err := repo.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&tokenM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(repository.ErrRefreshTokenNotFound)
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find refresh token")
	}

	return &entity.RefreshToken{
		ID:          tokenM.ID.String(),
		TokenHash:   tokenM.TokenHash,
		AccountID:   tokenM.AccountID.String(),
		AccountKind: entity.AccountKind(tokenM.AccountKind),
		ExpiresAt:   tokenM.ExpiresAt,
		CreatedAt:   tokenM.CreatedAt,
	}, nil
}

func (repo *refreshTokenRepository) DeleteByHash(ctx context.Context, tokenHash string) error {
	err := repo.db.WithContext(ctx).Where("token_hash = ?", tokenHash).Delete(&model.RefreshTokenModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete refresh token")
	}

	return nil
}

func (repo *refreshTokenRepository) DeleteForAccount(ctx context.Context, accountID string, kind entity.AccountKind) error {
	parsed, ok := parseID(accountID)
	if !ok {
		return nil
	}

	err := repo.db.WithContext(ctx).
		Where("account_id = ? AND account_kind = ?", parsed, kind.String()).
		Delete(&model.RefreshTokenModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete refresh tokens")
	}

	return nil
}
