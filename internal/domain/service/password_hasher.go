// Package service declares the ports the usecases depend on for work that is not
// storage: hashing, tokens, sanitization, revocation, events and store health.
package service

// PasswordHasher hashes account passwords. Student and teacher accounts share one hasher,
// and hashes written by earlier deployments (bcrypt, cost 10) must keep verifying.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Check reports whether password matches hash. Malformed hashes never match.
	Check(password, hash string) bool
}
