package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	kp, err := GenerateKeyPair("test-key")
	require.NoError(t, err)
	require.NoError(t, kp.Validate())

	now := time.Now().UTC()
	claims := NewClaims("user-1", "alice", UseAccess, time.Minute, "hallpass", now)

	token, err := kp.Sign(claims)
	require.NoError(t, err)

	got, err := kp.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", got.Subject)
	require.Equal(t, "alice", got.Username)
	require.Equal(t, UseAccess, got.TokenUse)
	require.NotEmpty(t, got.ID, "jti must be set")
	require.Equal(t, now.Add(time.Minute).Unix(), got.ExpiresAt.Unix())
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	kp, err := GenerateKeyPair("test-key")
	require.NoError(t, err)

	issued := time.Now().UTC().Add(-2 * time.Minute)
	token, err := kp.Sign(NewClaims("user-1", "alice", UseAccess, time.Minute, "hallpass", issued))
	require.NoError(t, err)

	_, err = kp.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyTamperedSignature(t *testing.T) {
	t.Parallel()

	kp, err := GenerateKeyPair("test-key")
	require.NoError(t, err)

	token, err := kp.Sign(NewClaims("user-1", "alice", UseAccess, time.Minute, "hallpass", time.Now().UTC()))
	require.NoError(t, err)

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = kp.Verify(tampered)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerifyForeignKey(t *testing.T) {
	t.Parallel()

	kp, err := GenerateKeyPair("test-key")
	require.NoError(t, err)
	other, err := GenerateKeyPair("test-key")
	require.NoError(t, err)

	token, err := other.Sign(NewClaims("user-1", "alice", UseAccess, time.Minute, "hallpass", time.Now().UTC()))
	require.NoError(t, err)

	_, err = kp.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()

	kp, err := GenerateKeyPair("test-key")
	require.NoError(t, err)

	_, err = kp.Verify("not.a.jwt")
	require.ErrorIs(t, err, ErrMalformed)
}

func TestPEMRoundTrip(t *testing.T) {
	t.Parallel()

	kp, err := GenerateKeyPair("persisted")
	require.NoError(t, err)

	pemBytes, err := kp.PrivatePEM()
	require.NoError(t, err)

	restored, err := NewKeyPairFromPEM("persisted", pemBytes)
	require.NoError(t, err)

	token, err := kp.Sign(NewClaims("user-1", "alice", UseRefresh, time.Hour, "hallpass", time.Now().UTC()))
	require.NoError(t, err)

	got, err := restored.Verify(token)
	require.NoError(t, err)
	require.Equal(t, UseRefresh, got.TokenUse)
}

func TestClaimsValidateUse(t *testing.T) {
	t.Parallel()

	c := NewClaims("user-1", "alice", UseRefresh, time.Hour, "hallpass", time.Now().UTC())
	require.NoError(t, c.ValidateUse(UseRefresh))
	require.ErrorIs(t, c.ValidateUse(UseAccess), ErrWrongUse)
}

func TestClaimsValidateIssuer(t *testing.T) {
	t.Parallel()

	c := NewClaims("user-1", "alice", UseAccess, time.Hour, "hallpass", time.Now().UTC())
	require.NoError(t, c.ValidateIssuer(""))
	require.NoError(t, c.ValidateIssuer("hallpass"))
	require.ErrorIs(t, c.ValidateIssuer("someone-else"), ErrIssuer)
}
