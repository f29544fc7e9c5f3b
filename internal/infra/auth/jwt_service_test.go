package auth

import (
	"testing"
	"time"

	"academy/config"
	"academy/internal/domain/entity"
	"academy/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTConfig() *config.Config {
	cfg := &config.Config{Auth: &config.AuthConfig{AccessTokenTTL: 15 * time.Minute}}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

func newTestJWTService(t *testing.T) *jwtService {
	t.Helper()

	svc, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestJWTService_IssueAndValidateTeacherAccessToken(t *testing.T) {
	svc := newTestJWTService(t)
	identity := entity.Identity{AccountID: "t-1", Kind: entity.AccountKindTeacher, Email: "olena@school.example", Name: "Olena"}

	before := time.Now().Add(-time.Second)
	token, err := svc.IssueAccessToken(identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, identity, claims.Identity())
	assert.Equal(t, "t-1", claims.TeacherID)
	assert.Equal(t, service.TokenTypeAccess, claims.Type)
	assert.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, before.Add(15*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTService_StudentTokenHasNoTeacherID(t *testing.T) {
	svc := newTestJWTService(t)

	token, err := svc.IssueAccessToken(entity.Identity{AccountID: "s-1", Kind: entity.AccountKindStudent, Email: "a@b.c"})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Empty(t, claims.TeacherID)
	assert.True(t, claims.Identity().IsStudent())
}

func TestJWTService_RefreshTokenIsNotAnAccessToken(t *testing.T) {
	svc := newTestJWTService(t)

	refresh, err := svc.IssueRefreshToken(entity.Identity{AccountID: "s-1", Kind: entity.AccountKindStudent}, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(refresh)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_RefreshTokensAreUnique(t *testing.T) {
	svc := newTestJWTService(t)
	identity := entity.Identity{AccountID: "s-1", Kind: entity.AccountKindStudent}

	first, err := svc.IssueRefreshToken(identity, 0)
	require.NoError(t, err)
	second, err := svc.IssueRefreshToken(identity, 0)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, svc.HashToken(first), svc.HashToken(second))
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := newTestJWTService(t)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.IssueAccessToken(entity.Identity{AccountID: "s-1", Kind: entity.AccountKindStudent})
	require.NoError(t, err)

	svc.now = time.Now
	claims, err := svc.ValidateAccessToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	svc := newTestJWTService(t)

	claims := &service.Claims{
		Kind: entity.AccountKindTeacher,
		Type: service.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "t-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("someone-else"))
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(forged)
	assert.Error(t, err)
}

func TestJWTService_RejectsTokenWithoutExpiry(t *testing.T) {
	svc := newTestJWTService(t)

	claims := &service.Claims{
		Kind:             entity.AccountKindTeacher,
		Type:             service.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "t-1"},
	}
	immortal, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.accessSecret)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(immortal)
	assert.Error(t, err)
}

func TestJWTService_InvalidToken(t *testing.T) {
	svc := newTestJWTService(t)

	claims, err := svc.ValidateAccessToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "failed to parse token")
}

func TestJWTService_EmptySecrets(t *testing.T) {
	svc, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "jwt secrets must be provided")
}

func TestJWTService_HashToken(t *testing.T) {
	svc := newTestJWTService(t)

	hash := svc.HashToken("abc")
	assert.Len(t, hash, 64)
	assert.Equal(t, hash, svc.HashToken("abc"))
	assert.Equal(t, 7*24*time.Hour, svc.RefreshTokenTTL())
}
