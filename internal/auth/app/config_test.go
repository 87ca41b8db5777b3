package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hallpass-io/hallpass/internal/auth/transport"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "hallpass", cfg.Issuer)
	require.Equal(t, 15*time.Minute, cfg.AccessTTL)
	require.Equal(t, 72*time.Hour, cfg.RefreshTTL)
	require.Equal(t, 5, cfg.LockoutThreshold)
	require.Equal(t, 60*time.Second, cfg.LockoutWindow)
	require.Equal(t, transport.ModeBearer, cfg.TokenCarrier)
	require.True(t, cfg.CookieSecure)
	require.False(t, cfg.CSRFProtection)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_ACCESS_TTL", "5m")
	t.Setenv("JWT_REFRESH_TTL", "24h")
	t.Setenv("LOCKOUT_THRESHOLD", "3")
	t.Setenv("TOKEN_CARRIER", "cookie")
	t.Setenv("CSRF_PROTECTION", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, 5*time.Minute, cfg.AccessTTL)
	require.Equal(t, 24*time.Hour, cfg.RefreshTTL)
	require.Equal(t, 3, cfg.LockoutThreshold)
	require.Equal(t, transport.ModeCookie, cfg.TokenCarrier)
	require.True(t, cfg.CSRFProtection)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	t.Run("refresh not longer than access", func(t *testing.T) {
		t.Setenv("JWT_ACCESS_TTL", "1h")
		t.Setenv("JWT_REFRESH_TTL", "30m")

		_, err := LoadConfig()
		require.Error(t, err)
		require.Contains(t, err.Error(), "JWT_REFRESH_TTL")
	})

	t.Run("unknown carrier", func(t *testing.T) {
		t.Setenv("TOKEN_CARRIER", "carrier-pigeon")

		_, err := LoadConfig()
		require.Error(t, err)
		require.Contains(t, err.Error(), "TOKEN_CARRIER")
	})

	t.Run("zero lockout threshold", func(t *testing.T) {
		t.Setenv("LOCKOUT_THRESHOLD", "0")

		_, err := LoadConfig()
		require.Error(t, err)
		require.Contains(t, err.Error(), "LOCKOUT_THRESHOLD")
	})
}
