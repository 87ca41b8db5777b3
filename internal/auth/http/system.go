package http

import (
	"net/http"

	"github.com/hallpass-io/hallpass/internal/auth/store"
	"github.com/hallpass-io/hallpass/pkg/httpx"
)

type healthResponse struct {
	Status string `json:"status"`
}

// LivezHandler answers liveness probes. It succeeds as long as the process
// serves requests.
func LivezHandler(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// ReadyzHandler answers readiness probes: ready means the store responds.
type ReadyzHandler struct {
	Store store.Store
}

func (h *ReadyzHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Ping(r.Context()); err != nil {
		httpx.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
