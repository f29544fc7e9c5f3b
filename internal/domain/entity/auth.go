package entity

import "time"

// RefreshToken is a long-lived session credential. Only the SHA-256 hash of the raw
// token is stored; there is at most one record per account and kind.
type RefreshToken struct {
	ID          string
	TokenHash   string
	AccountID   string
	AccountKind AccountKind
	ExpiresAt   *time.Time // nil only for records written before expiry was mandatory
	CreatedAt   time.Time
}

// IsExpired reports whether the token is past its expiry at the given instant.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt != nil && !now.Before(*t.ExpiresAt)
}

// TokenPair is what a successful registration or login hands back to the client.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
