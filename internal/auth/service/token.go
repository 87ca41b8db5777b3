package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hallpass-io/hallpass/internal/auth/domain"
	"github.com/hallpass-io/hallpass/pkg/jwtx"
	"github.com/hallpass-io/hallpass/pkg/slogx"
)

// TokenService issues, verifies and refreshes the signed access and refresh
// tokens. Tokens are stateless: the server keeps no record of what it issued,
// validity is purely signature plus expiry. The cost of that tradeoff is that
// a token cannot be revoked before its natural expiry.
type TokenService struct {
	Keys       *jwtx.KeyPair
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Now overrides the clock in tests. Nil means time.Now.
	Now func() time.Time
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// IssueAccessToken mints a short-lived access token for the user.
func (s *TokenService) IssueAccessToken(u domain.User) (string, error) {
	claims := jwtx.NewClaims(u.ID, u.Username, jwtx.UseAccess, s.AccessTTL, s.Issuer, s.now())
	return s.Keys.Sign(claims)
}

// IssueRefreshToken mints a refresh token, used exclusively to obtain new
// access tokens.
func (s *TokenService) IssueRefreshToken(u domain.User) (string, error) {
	claims := jwtx.NewClaims(u.ID, u.Username, jwtx.UseRefresh, s.RefreshTTL, s.Issuer, s.now())
	return s.Keys.Sign(claims)
}

// IssuePair mints both tokens for a freshly authenticated user.
func (s *TokenService) IssuePair(u domain.User) (domain.TokenPair, error) {
	access, err := s.IssueAccessToken(u)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.IssueRefreshToken(u)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.AccessTTL.Seconds()),
	}, nil
}

// Verify validates a token's signature, expiry, issuer and use marker.
// Failures surface as jwtx.ErrExpired, jwtx.ErrInvalidSig, jwtx.ErrMalformed
// or jwtx.ErrWrongUse.
func (s *TokenService) Verify(token string, want jwtx.TokenUse) (jwtx.Claims, error) {
	claims, err := s.Keys.Verify(token)
	if err != nil {
		return jwtx.Claims{}, err
	}
	if err := claims.ValidateIssuer(s.Issuer); err != nil {
		return jwtx.Claims{}, err
	}
	if err := claims.ValidateUse(want); err != nil {
		return jwtx.Claims{}, err
	}
	return claims, nil
}

// Refresh exchanges a valid refresh token for a new access token carrying
// the same subject and username. Any verification failure collapses into
// ErrUnauthorized; the carrier layer never learns more than that.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	l := slogx.FromContext(ctx)

	claims, err := s.Verify(refreshToken, jwtx.UseRefresh)
	if err != nil {
		l.Info("refresh rejected", "reason", err)
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	return s.IssueAccessToken(domain.User{
		ID:       claims.Subject,
		Username: claims.Username,
	})
}
