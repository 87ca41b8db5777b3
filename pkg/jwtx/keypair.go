package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// KeyPair signs and verifies tokens with a single Ed25519 key identified by a
// kid header. Token verification is pure and side-effect-free, safe for
// unlimited parallel invocation.
type KeyPair struct {
	kid  string
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

// GenerateKeyPair creates an ephemeral Ed25519 keypair. Tokens signed with it
// do not survive a restart.
func GenerateKeyPair(kid string) (*KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("jwtx: generate ed25519 key: %w", err)
	}
	return &KeyPair{kid: kid, priv: priv, pub: pub}, nil
}

// NewKeyPairFromPEM loads an Ed25519 private key in PKCS8 PEM form.
func NewKeyPairFromPEM(kid string, pemKey []byte) (*KeyPair, error) {
	block, _ := pem.Decode(pemKey)
	if block == nil {
		return nil, errors.New("jwtx: invalid PEM for Ed25519 key")
	}
	if block.Type != "PRIVATE KEY" {
		return nil, fmt.Errorf("jwtx: expected PRIVATE KEY, got %q (Ed25519 requires PKCS8)", block.Type)
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse PKCS8: %w", err)
	}
	priv, ok := parsed.(ed25519.PrivateKey)
	if !ok {
		return nil, errors.New("jwtx: not an Ed25519 private key")
	}

	return &KeyPair{
		kid:  kid,
		priv: priv,
		pub:  priv.Public().(ed25519.PublicKey),
	}, nil
}

func (kp *KeyPair) KID() string { return kp.kid }
func (kp *KeyPair) Alg() string { return jwt.SigningMethodEdDSA.Alg() }

// PrivatePEM returns the private key in PKCS8 PEM form for persistence.
func (kp *KeyPair) PrivatePEM() ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(kp.priv)
	if err != nil {
		return nil, fmt.Errorf("jwtx: marshal PKCS8: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}

// Sign serializes claims into a signed JWT string.
func (kp *KeyPair) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	t.Header["kid"] = kp.kid
	return t.SignedString(kp.priv)
}

// Verify parses and validates a JWT string, returning its claims. Failures
// map onto the package sentinel errors: ErrExpired, ErrNotYetValid,
// ErrInvalidSig and ErrMalformed.
func (kp *KeyPair) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if kid, _ := t.Header["kid"].(string); kid != kp.kid {
			return nil, fmt.Errorf("jwtx: unknown kid %q", kid)
		}
		return kp.pub, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return Claims{}, ErrNotYetValid
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		default:
			// Signature failures, unknown kid and alg mismatches all land
			// here; none of them deserve a more specific disclosure.
			return Claims{}, ErrInvalidSig
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidSig
	}

	return *claims, nil
}

// Validate sanity-checks the key material.
func (kp *KeyPair) Validate() error {
	if len(kp.priv) != ed25519.PrivateKeySize {
		return errors.New("jwtx: invalid Ed25519 private key size")
	}
	if len(kp.pub) != ed25519.PublicKeySize {
		return errors.New("jwtx: invalid Ed25519 public key size")
	}
	return nil
}
