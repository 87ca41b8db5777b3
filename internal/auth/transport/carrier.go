// Package transport binds issued tokens to an HTTP delivery mechanism. Two
// carriers exist, selected by configuration: bearer headers and secure
// cookies. Handlers talk to the Carrier interface only and never know which
// one is active.
package transport

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hallpass-io/hallpass/internal/auth/domain"
)

// Carrier modes accepted in configuration.
const (
	ModeBearer = "bearer"
	ModeCookie = "cookie"
)

// ErrCSRF reports a state-changing cookie-carrier request without a valid
// CSRF token.
var ErrCSRF = errors.New("transport: missing or invalid csrf token")

// Carrier delivers a token pair to the client and reads it back on
// subsequent requests.
type Carrier interface {
	// Attach writes the token pair into the response using the carrier's
	// mechanism: response body for bearer, Set-Cookie for cookies.
	Attach(w http.ResponseWriter, pair domain.TokenPair)

	// Extract reads the access and refresh tokens off a request. Either may
	// be empty when the client sent nothing.
	Extract(r *http.Request) (access, refresh string)

	// Clear removes the carrier state on logout. Idempotent; a no-op for
	// bearer clients, who simply discard their copies.
	Clear(w http.ResponseWriter)

	// VerifyCSRF guards state-changing requests. Only the cookie carrier
	// with CSRF protection enabled ever fails this.
	VerifyCSRF(r *http.Request) error
}

// Options configures the cookie carrier. Bearer ignores all of it.
type Options struct {
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
	Secure      bool // mark cookies Secure (HTTPS only)
	CSRFProtect bool // double-submit CSRF tokens on state-changing requests
}

// New returns the carrier for the configured mode.
func New(mode string, opts Options) (Carrier, error) {
	switch mode {
	case ModeBearer:
		return &BearerCarrier{}, nil
	case ModeCookie:
		return &CookieCarrier{opts: opts}, nil
	default:
		return nil, fmt.Errorf("transport: unknown carrier mode %q", mode)
	}
}
