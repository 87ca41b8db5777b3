package http

import (
	"net/http"

	"github.com/hallpass-io/hallpass/internal/auth/transport"
	"github.com/hallpass-io/hallpass/pkg/httpx"
)

// LogoutHandler serves POST /v1/auth/logout. Tokens are stateless so there is
// nothing to revoke server-side; the handler clears the carrier state and the
// client discards whatever it still holds. Expired or missing credentials do
// not make logout fail.
type LogoutHandler struct {
	Carrier transport.Carrier
}

type logoutResponse struct {
	LoggedOut bool `json:"logged_out"`
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Carrier.VerifyCSRF(r); err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	h.Carrier.Clear(w)
	httpx.WriteJSON(w, http.StatusOK, logoutResponse{LoggedOut: true})
}
