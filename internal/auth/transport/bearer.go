package transport

import (
	"net/http"
	"strings"

	"github.com/hallpass-io/hallpass/internal/auth/domain"
	"github.com/hallpass-io/hallpass/pkg/httpx"
)

// BearerCarrier returns tokens in the response body and expects them back in
// the Authorization header. The transport does nothing about expiry; the
// client retries once after a refresh when it sees a 401.
type BearerCarrier struct{}

func (c *BearerCarrier) Attach(w http.ResponseWriter, pair domain.TokenPair) {
	httpx.WriteJSON(w, http.StatusOK, pair)
}

// Extract returns the bearer token for both positions: on protected routes
// the guard verifies it as an access token, on the refresh route the token
// service verifies it as a refresh token. The type marker inside the token
// keeps the two from being interchangeable.
func (c *BearerCarrier) Extract(r *http.Request) (string, string) {
	authz := r.Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return "", ""
	}
	token := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
	return token, token
}

// Clear is a no-op: the server holds nothing, the client discards its copy.
func (c *BearerCarrier) Clear(w http.ResponseWriter) {}

// VerifyCSRF always passes: bearer tokens are never sent automatically by
// the browser, so cross-site request forgery does not apply.
func (c *BearerCarrier) VerifyCSRF(r *http.Request) error { return nil }
