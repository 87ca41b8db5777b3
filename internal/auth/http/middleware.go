package http

import (
	"net/http"

	"github.com/hallpass-io/hallpass/internal/auth/service"
	"github.com/hallpass-io/hallpass/internal/auth/transport"
	"github.com/hallpass-io/hallpass/pkg/httpx"
	"github.com/hallpass-io/hallpass/pkg/jwtx"
	"github.com/hallpass-io/hallpass/pkg/slogx"
)

// RequireAuth guards a protected handler. It extracts the access token from
// the configured carrier and verifies it; expired, tampered and mistyped
// tokens all fail with 401. The guard never refreshes on the caller's behalf;
// the client calls refresh once and retries once.
func RequireAuth(tokens *service.TokenService, carrier transport.Carrier) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			access, _ := carrier.Extract(r)
			if access == "" {
				writeUnauthorized(w, "missing access token")
				return
			}

			claims, err := tokens.Verify(access, jwtx.UseAccess)
			if err != nil {
				log.Warn("access token rejected", "err", err)
				writeUnauthorized(w, "token is invalid or expired")
				return
			}

			ctx = httpx.ContextWithAuth(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
