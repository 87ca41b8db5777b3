// Package service implements the authentication core: registration, the
// login state machine with brute-force lockout, and the token lifecycle.
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/hallpass-io/hallpass/pkg/passpolicy"
)

var (
	// ErrInvalidInput reports missing or blank required fields.
	ErrInvalidInput = errors.New("invalid_input")

	// ErrConflict reports a duplicate registration.
	ErrConflict = errors.New("username_taken")

	// ErrInvalidCredentials deliberately covers both unknown-username and
	// wrong-password so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrAccountLocked reports a login rejected inside the lockout window.
	ErrAccountLocked = errors.New("account_locked")

	// ErrWeakPassword reports a password policy violation.
	ErrWeakPassword = errors.New("weak_password")

	// ErrUnauthorized reports an invalid, expired or mistyped token.
	ErrUnauthorized = errors.New("unauthorized")
)

// WeakPasswordError carries the specific violated rules so the client can
// correct them all at once.
type WeakPasswordError struct {
	Violations []passpolicy.Rule
}

func (e *WeakPasswordError) Error() string {
	return fmt.Sprintf("password violates %d policy rules", len(e.Violations))
}

func (e *WeakPasswordError) Is(target error) bool { return target == ErrWeakPassword }

// AccountLockedError carries how long the caller has to wait before the
// lockout window elapses.
type AccountLockedError struct {
	RetryAfter time.Duration
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("account temporarily locked, retry in %s", e.RetryAfter.Round(time.Second))
}

func (e *AccountLockedError) Is(target error) bool { return target == ErrAccountLocked }
