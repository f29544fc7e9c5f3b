package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "academy/internal/delivery/context"
	"academy/internal/domain/entity"
	domainerrors "academy/internal/domain/errors"
	"academy/internal/domain/service"
	"academy/internal/errors"
	mockUsecase "academy/internal/mocks/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthContext(header string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	sessions := mockUsecase.NewMockSessionUsecase(t)
	m := NewAuthMiddleware(sessions, testLogger)

	claims := &service.Claims{
		Kind:             entity.AccountKindTeacher,
		Email:            "olena@example.com",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "t-1"},
	}
	sessions.On("Authenticate", mock.Anything, "good").Return(claims, nil).Once()

	c, rec := newAuthContext("Bearer good")
	require.NoError(t, m.Authenticate(okHandler)(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	identity, ok := GetIdentity(c)
	require.True(t, ok)
	assert.Equal(t, "t-1", identity.AccountID)
	assert.True(t, identity.IsTeacher())

	account, ok := deliverycontext.AccountFromContext(c.Request().Context())
	require.True(t, ok)
	assert.Equal(t, identity, account)
}

func TestAuthMiddleware_Authenticate_Failures(t *testing.T) {
	sessions := mockUsecase.NewMockSessionUsecase(t)
	m := NewAuthMiddleware(sessions, testLogger)

	c, _ := newAuthContext("")
	err := m.Authenticate(okHandler)(c)
	assert.True(t, errors.Is(err, domainerrors.ErrMissingToken))

	c, _ = newAuthContext("Basic Zm9vOmJhcg==")
	err = m.Authenticate(okHandler)(c)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))

	sessions.On("Authenticate", mock.Anything, "revoked").Return(nil, domainerrors.ErrInvalidToken).Once()
	c, _ = newAuthContext("Bearer revoked")
	err = m.Authenticate(okHandler)(c)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))

	_, ok := GetClaims(c)
	assert.False(t, ok)
}

func TestAuthMiddleware_RequireKind(t *testing.T) {
	m := NewAuthMiddleware(mockUsecase.NewMockSessionUsecase(t), testLogger)
	requireTeacher := m.RequireKind(entity.AccountKindTeacher)

	c, _ := newAuthContext("")
	assert.True(t, errors.Is(requireTeacher(okHandler)(c), domainerrors.ErrMissingToken))

	c, _ = newAuthContext("")
	c.Set(claimsKey, &service.Claims{Kind: entity.AccountKindStudent})
	assert.True(t, errors.Is(requireTeacher(okHandler)(c), domainerrors.ErrForbidden))

	c, rec := newAuthContext("")
	c.Set(claimsKey, &service.Claims{Kind: entity.AccountKindTeacher})
	require.NoError(t, requireTeacher(okHandler)(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
