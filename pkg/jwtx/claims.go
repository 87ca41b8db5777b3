// Package jwtx signs and verifies the service's JWTs with a fixed, typed
// claims record. Claims are additive-only to preserve compatibility; there
// are deliberately no map-typed claims at the trust boundary.
package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hallpass-io/hallpass/pkg/idx"
)

// TokenUse discriminates access tokens from refresh tokens. A refresh token
// presented where an access token is expected must be rejected.
type TokenUse string

const (
	UseAccess  TokenUse = "access"
	UseRefresh TokenUse = "refresh"
)

// Claims is the signed payload of every token the service issues.
type Claims struct {
	jwt.RegisteredClaims

	// Username of the authenticated subject.
	Username string `json:"username,omitempty"`

	// TokenUse marks the token as "access" or "refresh".
	TokenUse TokenUse `json:"token_use"`
}

// NewClaims builds minimally-correct claims for a token of the given use.
func NewClaims(subject, username string, use TokenUse, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        idx.New().String(),
		},
		Username: username,
		TokenUse: use,
	}
}

// ValidateIssuer checks the issuer matches the expected value, if any.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateUse checks the token_use discriminator.
func (c *Claims) ValidateUse(want TokenUse) error {
	if c.TokenUse != want {
		return ErrWrongUse
	}
	return nil
}
