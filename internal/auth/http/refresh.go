package http

import (
	"net/http"

	"github.com/hallpass-io/hallpass/internal/auth/service"
	"github.com/hallpass-io/hallpass/internal/auth/transport"
	"github.com/hallpass-io/hallpass/pkg/httpx"
)

// RefreshHandler serves POST /v1/auth/refresh: it exchanges a valid refresh
// token for a new access token. The refresh token arrives through the same
// carrier as everything else.
type RefreshHandler struct {
	TokenService *service.TokenService
	Carrier      transport.Carrier
}

type refreshResponse struct {
	AccessToken string `json:"access_token,omitempty"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Carrier.VerifyCSRF(r); err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	_, refresh := h.Carrier.Extract(r)
	if refresh == "" {
		writeUnauthorized(w, "missing refresh token")
		return
	}

	access, err := h.TokenService.Refresh(r.Context(), refresh)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	if cookies, ok := h.Carrier.(*transport.CookieCarrier); ok {
		// Re-attach so the access cookie rolls over; the refresh cookie is
		// reissued unchanged since the token itself is not rotated.
		cookies.AttachAccess(w, access)
		httpx.WriteJSON(w, http.StatusOK, refreshResponse{
			TokenType: "Bearer",
			ExpiresIn: int64(h.TokenService.AccessTTL.Seconds()),
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, refreshResponse{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.TokenService.AccessTTL.Seconds()),
	})
}
