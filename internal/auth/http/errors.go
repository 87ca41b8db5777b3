// Package http wires the authentication core to its HTTP boundary. Handlers
// parse requests, call into the service layer and map every failure onto a
// distinguishable response; nothing is silently swallowed.
package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/hallpass-io/hallpass/internal/auth/service"
	"github.com/hallpass-io/hallpass/internal/auth/transport"
	"github.com/hallpass-io/hallpass/pkg/httpx"
	"github.com/hallpass-io/hallpass/pkg/passpolicy"
	"github.com/hallpass-io/hallpass/pkg/slogx"
)

// writeServiceError maps the service error taxonomy to HTTP responses.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var weak *service.WeakPasswordError
	var locked *service.AccountLockedError

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_input", "username and password are required")

	case errors.As(err, &weak):
		violations := make([]string, 0, len(weak.Violations))
		for _, rule := range weak.Violations {
			violations = append(violations, passpolicy.Describe(rule))
		}
		httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorResponse{
			Error:       "weak_password",
			Description: "password does not meet the policy",
			Violations:  violations,
		})

	case errors.Is(err, service.ErrConflict):
		httpx.WriteError(w, http.StatusConflict,
			"conflict", "username is already taken")

	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized,
			"invalid_credentials", "invalid username or password")

	case errors.As(err, &locked):
		retryAfter := max(int(locked.RetryAfter.Seconds()), 1)
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		httpx.WriteError(w, http.StatusLocked,
			"account_locked", "too many failed attempts, try again later")

	case errors.Is(err, service.ErrUnauthorized):
		writeUnauthorized(w, "token is invalid or expired")

	case errors.Is(err, transport.ErrCSRF):
		httpx.WriteError(w, http.StatusForbidden,
			"csrf_failure", "missing or invalid CSRF token")

	default:
		slogx.FromContext(ctx).Error("unhandled service error", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError,
			"internal_error", "something went wrong")
	}
}

// writeUnauthorized emits an RFC 6750-style bearer challenge alongside the
// JSON error body.
func writeUnauthorized(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate",
		`Bearer error="invalid_token", error_description="`+desc+`"`)
	httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", desc)
}
