package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "academy/internal/delivery/context"
	"academy/internal/domain/entity"
	domainerrors "academy/internal/domain/errors"
	"academy/internal/domain/repository"
	"academy/internal/domain/service"
	"academy/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type sessionService struct {
	students      repository.StudentRepository
	teachers      repository.TeacherRepository
	refreshTokens repository.RefreshTokenRepository
	tokens        service.TokenService
	revoker       service.TokenRevoker
	logger        *slog.Logger
	now           func() time.Time
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	Students      repository.StudentRepository
	Teachers      repository.TeacherRepository
	RefreshTokens repository.RefreshTokenRepository
	TokenService  service.TokenService
	Revoker       service.TokenRevoker
	Logger        *slog.Logger
}

// NewSessionService creates the session usecase.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		students:      params.Students,
		teachers:      params.Teachers,
		refreshTokens: params.RefreshTokens,
		tokens:        params.TokenService,
		revoker:       params.Revoker,
		logger:        params.Logger,
		now:           time.Now,
	}
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Refresh exchanges a stored refresh token for a new access token. The refresh token
// itself is not rotated; an expired record is deleted on sight.
func (srv *sessionService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return "", domainerrors.ErrValidationFailed.WithDetails("refreshToken is required")
	}

	tokenHash := srv.tokens.HashToken(refreshToken)
	record, err := srv.refreshTokens.FindByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			srv.log(ctx).Warn("Refresh attempted with unknown token")

			return "", errors.Wrap(domainerrors.ErrRefreshTokenNotFound, "refresh token lookup failed")
		}

		return "", errors.Wrap(err, "failed to load refresh token")
	}

	if record.IsExpired(srv.now()) {
		if err := srv.refreshTokens.DeleteByHash(ctx, tokenHash); err != nil && !errors.Is(err, repository.ErrRefreshTokenNotFound) {
			srv.log(ctx).Error("Failed to delete expired refresh token",
				slog.String("accountID", record.AccountID),
				slog.Any("error", err),
			)
		}
		srv.log(ctx).Info("Expired refresh token removed", slog.String("accountID", record.AccountID))

		return "", errors.Wrap(domainerrors.ErrRefreshTokenExpired, "refresh token expired")
	}

	identity, err := srv.accountIdentity(ctx, record)
	if err != nil {
		return "", err
	}

	accessToken, err := srv.tokens.IssueAccessToken(identity)
	if err != nil {
		return "", errors.Wrap(err, "failed to issue access token on refresh")
	}
	srv.log(ctx).Debug("Access token refreshed",
		slog.String("accountID", identity.AccountID),
		slog.String("kind", identity.Kind.String()),
	)

	return accessToken, nil
}

// accountIdentity resolves the current principal for a refresh record from the account store.
func (srv *sessionService) accountIdentity(ctx context.Context, record *entity.RefreshToken) (entity.Identity, error) {
	var (
		identity entity.Identity
		err      error
	)

	switch record.AccountKind {
	case entity.AccountKindStudent:
		var student *entity.Student
		if student, err = srv.students.FindByID(ctx, record.AccountID); err == nil {
			identity = student.Identity()
		}
	case entity.AccountKindTeacher:
		var teacher *entity.Teacher
		if teacher, err = srv.teachers.FindByID(ctx, record.AccountID); err == nil {
			identity = teacher.Identity()
		}
	default:
		return identity, errors.Wrapf(domainerrors.ErrInvalidToken, "unknown account kind %q", record.AccountKind)
	}

	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Warn("Refresh token belongs to a missing account", slog.String("accountID", record.AccountID))

			return identity, errors.Wrap(domainerrors.ErrAccountNotFound, "account for refresh token no longer exists")
		}

		return identity, errors.Wrap(err, "failed to load account for refresh")
	}

	return identity, nil
}

// Authenticate validates a bearer access token and checks it against the revocation list.
func (srv *sessionService) Authenticate(ctx context.Context, bearer string) (*service.Claims, error) {
	bearer = strings.TrimSpace(bearer)
	if bearer == "" {
		return nil, domainerrors.ErrMissingToken
	}

	claims, err := srv.tokens.ValidateAccessToken(bearer)
	if err != nil {
		srv.log(ctx).Debug("Access token rejected", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrInvalidToken, err.Error())
	}

	if claims.ID != "" {
		revoked, err := srv.revoker.IsRevoked(ctx, claims.ID)
		switch {
		case err != nil:
			// Fail open: the token is otherwise valid.
			srv.log(ctx).Warn("Revocation check failed", slog.String("jti", claims.ID), slog.Any("error", err))
		case revoked:
			return nil, errors.Wrap(domainerrors.ErrInvalidToken, "access token revoked")
		}
	}

	return claims, nil
}

// Logout drops the caller's refresh token and revokes the presented access token.
func (srv *sessionService) Logout(ctx context.Context, claims *service.Claims) error {
	identity := claims.Identity()
	if err := srv.refreshTokens.DeleteForAccount(ctx, identity.AccountID, identity.Kind); err != nil {
		return errors.Wrap(err, "failed to delete refresh token on logout")
	}

	if claims.ID != "" {
		until := srv.now().Add(time.Hour)
		if claims.ExpiresAt != nil {
			until = claims.ExpiresAt.Time
		}
		if err := srv.revoker.Revoke(ctx, claims.ID, until); err != nil {
			srv.log(ctx).Warn("Failed to revoke access token", slog.String("jti", claims.ID), slog.Any("error", err))
		}
	}
	srv.log(ctx).Info("Logged out",
		slog.String("accountID", identity.AccountID),
		slog.String("kind", identity.Kind.String()),
	)

	return nil
}
