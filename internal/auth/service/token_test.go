package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hallpass-io/hallpass/internal/auth/domain"
	"github.com/hallpass-io/hallpass/pkg/jwtx"
)

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()

	keys, err := jwtx.GenerateKeyPair("test-key")
	require.NoError(t, err)

	return &TokenService{
		Keys:       keys,
		Issuer:     "hallpass-test",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	}
}

var testUser = domain.User{ID: "01JTESTUSERULID000000000000", Username: "alice"}

func TestIssueAndVerifyAccessToken(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)

	token, err := svc.IssueAccessToken(testUser)
	require.NoError(t, err)

	claims, err := svc.Verify(token, jwtx.UseAccess)
	require.NoError(t, err)
	require.Equal(t, testUser.ID, claims.Subject)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, jwtx.UseAccess, claims.TokenUse)
}

func TestVerifyRejectsWrongTokenUse(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)

	refresh, err := svc.IssueRefreshToken(testUser)
	require.NoError(t, err)

	_, err = svc.Verify(refresh, jwtx.UseAccess)
	require.ErrorIs(t, err, jwtx.ErrWrongUse)

	access, err := svc.IssueAccessToken(testUser)
	require.NoError(t, err)

	_, err = svc.Verify(access, jwtx.UseRefresh)
	require.ErrorIs(t, err, jwtx.ErrWrongUse)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)
	past := time.Now().UTC().Add(-2 * time.Minute)
	svc.Now = func() time.Time { return past }

	token, err := svc.IssueAccessToken(testUser)
	require.NoError(t, err)

	_, err = svc.Verify(token, jwtx.UseAccess)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestVerifyRejectsForeignIssuer(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)
	other := newTestTokenService(t)
	other.Keys = svc.Keys // same key, different issuer
	other.Issuer = "someone-else"

	token, err := other.IssueAccessToken(testUser)
	require.NoError(t, err)

	_, err = svc.Verify(token, jwtx.UseAccess)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestIssuePair(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)

	pair, err := svc.IssuePair(testUser)
	require.NoError(t, err)
	require.Equal(t, "Bearer", pair.TokenType)
	require.Equal(t, int64(60), pair.ExpiresIn)

	accessClaims, err := svc.Verify(pair.AccessToken, jwtx.UseAccess)
	require.NoError(t, err)
	refreshClaims, err := svc.Verify(pair.RefreshToken, jwtx.UseRefresh)
	require.NoError(t, err)

	require.Equal(t, accessClaims.Subject, refreshClaims.Subject)
	require.True(t, refreshClaims.ExpiresAt.After(accessClaims.ExpiresAt.Time),
		"refresh TTL must exceed access TTL")
}

func TestRefreshMintsMatchingAccessToken(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)
	issued := time.Now().UTC()
	svc.Now = func() time.Time { return issued }

	refresh, err := svc.IssueRefreshToken(testUser)
	require.NoError(t, err)

	access, err := svc.Refresh(context.Background(), refresh)
	require.NoError(t, err)

	claims, err := svc.Verify(access, jwtx.UseAccess)
	require.NoError(t, err)
	require.Equal(t, testUser.ID, claims.Subject)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, issued.Add(svc.AccessTTL).Unix(), claims.ExpiresAt.Unix(),
		"new access token expiry is issuance time plus access TTL")
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)

	access, err := svc.IssueAccessToken(testUser)
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), access)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)

	_, err := svc.Refresh(context.Background(), "not-a-token")
	require.ErrorIs(t, err, ErrUnauthorized)
}
