package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hallpass-io/hallpass/internal/auth/domain"
	"github.com/hallpass-io/hallpass/internal/auth/store"
	"github.com/hallpass-io/hallpass/pkg/cryptox"
	"github.com/hallpass-io/hallpass/pkg/slogx"
)

// Default lockout policy.
const (
	DefaultLockoutThreshold = 5
	DefaultLockoutWindow    = 60 * time.Second
)

// LoginService verifies credentials and applies the brute-force lockout
// policy. Each attempt runs as a state machine:
//
//	Start -> Lookup -> (NotFound | Found)
//	Found -> (Locked | Unlocked)
//	Unlocked -> (CredentialMatch | CredentialMismatch)
//
// Unknown usernames and wrong passwords both produce ErrInvalidCredentials;
// the distinction must never be observable.
type LoginService struct {
	Store store.Store

	// LockoutThreshold is the failed-attempt count at which logins are
	// rejected outright; LockoutWindow is how long that rejection lasts
	// after the most recent failure.
	LockoutThreshold int
	LockoutWindow    time.Duration

	// Now overrides the clock in tests. Nil means time.Now.
	Now func() time.Time
}

func (s *LoginService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *LoginService) threshold() int {
	if s.LockoutThreshold > 0 {
		return s.LockoutThreshold
	}
	return DefaultLockoutThreshold
}

func (s *LoginService) window() time.Duration {
	if s.LockoutWindow > 0 {
		return s.LockoutWindow
	}
	return DefaultLockoutWindow
}

// Login runs one authentication attempt. The whole attempt executes inside a
// single store transaction so concurrent attempts for the same username
// serialize their read-modify-write of the failure counter.
func (s *LoginService) Login(ctx context.Context, username, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.User{}, ErrInvalidInput
	}

	now := s.now()

	var user domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// Same outcome as a wrong password.
				return ErrInvalidCredentials
			}
			return err
		}

		// The lockout check runs before any hash comparison: it is cheaper,
		// and it must see the latest counter state.
		if u.FailedAttempts >= s.threshold() && u.LastFailureAt != nil {
			elapsed := now.Sub(*u.LastFailureAt)
			if elapsed < s.window() {
				l.Warn("login rejected, account locked",
					"username", username,
					"failed_attempts", u.FailedAttempts,
				)
				return &AccountLockedError{RetryAfter: s.window() - elapsed}
			}

			// Window elapsed: back to Unlocked before comparing.
			if err := tx.Users().ResetLoginFailures(ctx, username); err != nil {
				return err
			}
			u.FailedAttempts = 0
			u.LastFailureAt = nil
		}

		if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
			if !errors.Is(err, cryptox.ErrMismatch) {
				return err // malformed stored hash, not a caller problem
			}

			// The counter increments even on the attempt that crosses the
			// threshold; that attempt still reports a generic mismatch and
			// the lockout takes effect on the next one.
			if err := tx.Users().RecordLoginFailure(ctx, username, now); err != nil {
				return err
			}
			l.Info("login failed", "username", username)
			return ErrInvalidCredentials
		}

		if u.FailedAttempts > 0 || u.LastFailureAt != nil {
			if err := tx.Users().ResetLoginFailures(ctx, username); err != nil {
				return err
			}
			u.FailedAttempts = 0
			u.LastFailureAt = nil
		}

		user = u
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	l.Info("login succeeded", "user_id", user.ID, "username", username)
	return user, nil
}
