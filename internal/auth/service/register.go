package service

import (
	"context"
	"errors"
	"strings"

	"github.com/hallpass-io/hallpass/internal/auth/domain"
	"github.com/hallpass-io/hallpass/internal/auth/store"
	"github.com/hallpass-io/hallpass/pkg/cryptox"
	"github.com/hallpass-io/hallpass/pkg/idx"
	"github.com/hallpass-io/hallpass/pkg/passpolicy"
	"github.com/hallpass-io/hallpass/pkg/slogx"
)

// RegisterService creates user accounts. Password strength is enforced here,
// before anything touches the store.
type RegisterService struct {
	Store store.Store
}

// Register validates input and password policy, hashes the password and
// persists the new user. The plaintext password never leaves this call.
func (s *RegisterService) Register(ctx context.Context, username, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.User{}, ErrInvalidInput
	}

	if violations := passpolicy.Evaluate(password); len(violations) > 0 {
		return domain.User{}, &WeakPasswordError{Violations: violations}
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: hash,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrConflict
		}
		return domain.User{}, err
	}

	l.Info("user registered", "user_id", u.ID, "username", username)
	return u, nil
}
