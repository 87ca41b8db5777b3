package http

import (
	"encoding/json"
	"net/http"

	"github.com/hallpass-io/hallpass/internal/auth/service"
	"github.com/hallpass-io/hallpass/internal/auth/transport"
	"github.com/hallpass-io/hallpass/pkg/httpx"
)

// LoginHandler serves POST /v1/auth/login. On success the token pair leaves
// through the configured carrier: response body for bearer clients,
// Set-Cookie for cookie clients.
type LoginHandler struct {
	LoginService *service.LoginService
	TokenService *service.TokenService
	Carrier      transport.Carrier
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_input", "malformed JSON body")
		return
	}

	user, err := h.LoginService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	pair, err := h.TokenService.IssuePair(user)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	h.Carrier.Attach(w, pair)
}
