// Package domain holds the persistent records the authentication core
// operates on.
package domain

import "time"

// User is the credential record. PasswordHash is an opaque Argon2id PHC
// string; the plaintext password is never stored or logged. FailedAttempts
// and LastFailureAt are mutated only by the login flow.
type User struct {
	ID             string
	Username       string // unique, immutable after creation
	PasswordHash   string
	FailedAttempts int
	LastFailureAt  *time.Time // nil until the first failed attempt
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
