package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "academy/internal/delivery/context"
	"academy/internal/domain/entity"
	domainerrors "academy/internal/domain/errors"
	"academy/internal/domain/service"
	"academy/internal/usecase"

	"github.com/labstack/echo/v4"
)

const claimsKey = "claims"

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	sessions usecase.SessionUsecase
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(sessions usecase.SessionUsecase, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, logger: logger}
}

// Authenticate validates the bearer access token and stores its claims on the context.
// A missing header is a 401; anything presented but unusable is a 403.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrMissingToken
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			return domainerrors.ErrInvalidToken.WithDetails("authorization header must be a Bearer token")
		}

		claims, err := m.sessions.Authenticate(c.Request().Context(), tokenString)
		if err != nil {
			return err
		}

		c.Set(claimsKey, claims)
		ctx := deliverycontext.WithAccount(c.Request().Context(), claims.Identity(), m.logger)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequireKind rejects callers whose account kind differs. It must be used AFTER Authenticate.
func (m *AuthMiddleware) RequireKind(kind entity.AccountKind) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := GetIdentity(c)
			if !ok {
				return domainerrors.ErrMissingToken
			}
			if identity.Kind != kind {
				return domainerrors.ErrForbidden.WithDetails("requires a " + kind.String() + " account")
			}

			return next(c)
		}
	}
}

// GetClaims returns the claims stored by Authenticate.
func GetClaims(c echo.Context) (*service.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*service.Claims)

	return claims, ok && claims != nil
}

// GetIdentity returns the authenticated principal.
func GetIdentity(c echo.Context) (entity.Identity, bool) {
	claims, ok := GetClaims(c)
	if !ok {
		return entity.Identity{}, false
	}

	return claims.Identity(), true
}
