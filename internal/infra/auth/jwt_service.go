// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"academy/config"
	"academy/internal/domain/entity"
	"academy/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	defaultAccessTTL  = time.Hour
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewJWTService is the constructor for jwtService. Both signing secrets are mandatory.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	accessTTL, refreshTTL := defaultAccessTTL, defaultRefreshTTL
	if cfg.Auth != nil {
		if cfg.Auth.AccessTokenTTL > 0 {
			accessTTL = cfg.Auth.AccessTokenTTL
		}
		if cfg.Auth.RefreshTokenTTL > 0 {
			refreshTTL = cfg.Auth.RefreshTokenTTL
		}
	}

	return &jwtService{
		accessSecret:  []byte(cfg.SecretKey.Access),
		refreshSecret: []byte(cfg.SecretKey.Refresh),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}, nil
}

// IssueAccessToken creates a signed access token that always carries an expiry.
func (s *jwtService) IssueAccessToken(identity entity.Identity) (string, error) {
	return s.sign(identity, service.TokenTypeAccess, s.accessTTL, s.accessSecret)
}

// IssueRefreshToken creates a signed refresh token. Clients treat it as opaque.
func (s *jwtService) IssueRefreshToken(identity entity.Identity, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.refreshTTL
	}

	return s.sign(identity, service.TokenTypeRefresh, ttl, s.refreshSecret)
}

// ValidateAccessToken parses and verifies an access token.
func (s *jwtService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.accessSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token")
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	if claims.Type != service.TokenTypeAccess {
		return nil, errors.Errorf("unexpected token type %q", claims.Type)
	}
	if claims.Subject == "" || !claims.Kind.IsValid() {
		return nil, errors.New("token is missing subject or account kind")
	}

	return claims, nil
}

// HashToken returns the hex SHA-256 digest of a raw token.
func (s *jwtService) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

// RefreshTokenTTL returns the configured duration for refresh tokens.
func (s *jwtService) RefreshTokenTTL() time.Duration {
	return s.refreshTTL
}

func (s *jwtService) sign(identity entity.Identity, tokenType string, ttl time.Duration, secret []byte) (string, error) {
	now := s.now()

	claims := &service.Claims{
		Kind:  identity.Kind,
		Email: identity.Email,
		Name:  identity.Name,
		Type:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identity.AccountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if identity.IsTeacher() {
		claims.TeacherID = identity.AccountID
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}
