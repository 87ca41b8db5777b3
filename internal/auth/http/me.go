package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/hallpass-io/hallpass/internal/auth/store"
	"github.com/hallpass-io/hallpass/pkg/httpx"
)

// MeHandler serves GET /v1/me, a protected endpoint that returns the profile
// of the authenticated user. It always re-reads the store rather than echoing
// claims, so a deleted account stops resolving immediately even while its
// access token is still cryptographically valid.
type MeHandler struct {
	Store store.Store
}

type meResponse struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		writeUnauthorized(w, "missing access token")
		return
	}

	u, err := h.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeUnauthorized(w, "account no longer exists")
			return
		}
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, meResponse{
		UserID:    u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	})
}
