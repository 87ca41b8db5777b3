// Package app wires configuration, storage, services and the HTTP server
// into a runnable process.
package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hallpass-io/hallpass/internal/auth/service"
	"github.com/hallpass-io/hallpass/internal/auth/transport"
)

// Config holds everything the process reads from the environment.
type Config struct {
	// Server
	Port                string
	ShutdownGracePeriod time.Duration

	// Tokens
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	// SigningKeyFile points at a PKCS8 PEM Ed25519 private key. Empty means
	// an ephemeral key is generated at startup and all tokens die with the
	// process.
	SigningKeyFile string

	// Lockout
	LockoutThreshold int
	LockoutWindow    time.Duration

	// Carrier: "bearer" or "cookie".
	TokenCarrier   string
	CookieSecure   bool
	CSRFProtection bool

	// Storage
	DatabaseFile string

	// PasswordPepper is mixed into every password hash when set. Rotating it
	// invalidates all stored hashes, so treat it like a key.
	PasswordPepper string

	// Logging
	LogLevel  string
	LogFormat string
	Env       string
}

// LoadConfig reads configuration from the environment, applying defaults for
// everything optional.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:                getEnvOrDefault("PORT", "8080"),
		ShutdownGracePeriod: getDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),

		Issuer:         getEnvOrDefault("JWT_ISSUER", "hallpass"),
		AccessTTL:      getDurationOrDefault("JWT_ACCESS_TTL", 15*time.Minute),
		RefreshTTL:     getDurationOrDefault("JWT_REFRESH_TTL", 72*time.Hour),
		SigningKeyFile: os.Getenv("JWT_SIGNING_KEY_FILE"),

		LockoutThreshold: getIntOrDefault("LOCKOUT_THRESHOLD", service.DefaultLockoutThreshold),
		LockoutWindow:    getDurationOrDefault("LOCKOUT_WINDOW", service.DefaultLockoutWindow),

		TokenCarrier:   getEnvOrDefault("TOKEN_CARRIER", transport.ModeBearer),
		CookieSecure:   getBoolOrDefault("COOKIE_SECURE", true),
		CSRFProtection: getBoolOrDefault("CSRF_PROTECTION", false),

		DatabaseFile: getEnvOrDefault("DATABASE_FILE", "hallpass.db"),

		PasswordPepper: os.Getenv("PASSWORD_PEPPER"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
		Env:       getEnvOrDefault("ENV", "dev"),
	}

	if cfg.AccessTTL <= 0 {
		return Config{}, fmt.Errorf("JWT_ACCESS_TTL must be positive, got %s", cfg.AccessTTL)
	}
	if cfg.RefreshTTL <= cfg.AccessTTL {
		return Config{}, fmt.Errorf("JWT_REFRESH_TTL (%s) must exceed JWT_ACCESS_TTL (%s)",
			cfg.RefreshTTL, cfg.AccessTTL)
	}
	if cfg.LockoutThreshold < 1 {
		return Config{}, fmt.Errorf("LOCKOUT_THRESHOLD must be at least 1, got %d", cfg.LockoutThreshold)
	}
	if cfg.TokenCarrier != transport.ModeBearer && cfg.TokenCarrier != transport.ModeCookie {
		return Config{}, fmt.Errorf("TOKEN_CARRIER must be %q or %q, got %q",
			transport.ModeBearer, transport.ModeCookie, cfg.TokenCarrier)
	}

	return cfg, nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationOrDefault(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getBoolOrDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
