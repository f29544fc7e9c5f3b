package service

import (
	"time"

	"academy/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims defines the custom claims for the JWT tokens.
// Subject holds the account ID and ID (jti) identifies the token for revocation.
type Claims struct {
	Kind      entity.AccountKind `json:"kind"`
	Email     string             `json:"email"`
	Name      string             `json:"name,omitempty"`
	TeacherID string             `json:"teacherId,omitempty"` // kept for clients that read it directly
	Type      string             `json:"type"`
	jwt.RegisteredClaims
}

// Identity converts the claims back into the authenticated principal.
func (c *Claims) Identity() entity.Identity {
	return entity.Identity{
		AccountID: c.Subject,
		Kind:      c.Kind,
		Email:     c.Email,
		Name:      c.Name,
	}
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// IssueAccessToken creates a short-lived access token for the identity.
	IssueAccessToken(identity entity.Identity) (string, error)

	// IssueRefreshToken creates a refresh token that expires after ttl.
	IssueRefreshToken(identity entity.Identity, ttl time.Duration) (string, error)

	// ValidateAccessToken verifies signature, expiry and token type.
	ValidateAccessToken(tokenString string) (*Claims, error)

	// HashToken returns the value under which a refresh token is stored.
	HashToken(token string) string

	// RefreshTokenTTL returns the configured lifetime of refresh tokens.
	RefreshTokenTTL() time.Duration
}
