package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hallpass-io/hallpass/pkg/jwtx"
)

const signingKID = "hallpass-ed25519"

// loadSigningKeys loads the Ed25519 signing key from the configured file, or
// generates an ephemeral one when no file is configured. Ephemeral keys mean
// every restart invalidates all outstanding tokens; fine for development,
// surprising in production, hence the warning.
func loadSigningKeys(cfg Config, log *slog.Logger) (*jwtx.KeyPair, error) {
	if cfg.SigningKeyFile == "" {
		log.Warn("no signing key file configured, generating ephemeral key; tokens will not survive restarts")
		return jwtx.GenerateKeyPair(signingKID)
	}

	pemKey, err := os.ReadFile(cfg.SigningKeyFile)
	if err != nil {
		return nil, fmt.Errorf("read signing key %s: %w", cfg.SigningKeyFile, err)
	}

	keys, err := jwtx.NewKeyPairFromPEM(signingKID, pemKey)
	if err != nil {
		return nil, fmt.Errorf("load signing key %s: %w", cfg.SigningKeyFile, err)
	}
	if err := keys.Validate(); err != nil {
		return nil, err
	}

	log.Info("loaded signing key", "kid", keys.KID(), "alg", keys.Alg())
	return keys, nil
}
