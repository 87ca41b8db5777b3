package http

import (
	"net/http"

	"github.com/hallpass-io/hallpass/internal/auth/service"
	"github.com/hallpass-io/hallpass/internal/auth/store"
	"github.com/hallpass-io/hallpass/internal/auth/transport"
	"github.com/hallpass-io/hallpass/pkg/httpx"
)

// Router assembles the HTTP surface from the service layer.
type Router struct {
	Store           store.Store
	RegisterService *service.RegisterService
	LoginService    *service.LoginService
	TokenService    *service.TokenService
	Carrier         transport.Carrier
}

// ApplyRoutes mounts all endpoints onto mux. Credential endpoints sit behind
// the strict per-IP limiter; everything else gets the lenient one. Protected
// endpoints additionally sit behind the access-token guard.
func (router *Router) ApplyRoutes(mux *http.ServeMux) {
	strict := httpx.RateLimitByIP(httpx.StrictLimit)
	lenient := httpx.RateLimitByIP(httpx.LenientLimit)
	guard := RequireAuth(router.TokenService, router.Carrier)

	register := &RegisterHandler{RegisterService: router.RegisterService}
	login := &LoginHandler{
		LoginService: router.LoginService,
		TokenService: router.TokenService,
		Carrier:      router.Carrier,
	}
	refresh := &RefreshHandler{TokenService: router.TokenService, Carrier: router.Carrier}
	logout := &LogoutHandler{Carrier: router.Carrier}
	me := &MeHandler{Store: router.Store}
	readyz := &ReadyzHandler{Store: router.Store}

	mux.Handle("POST /v1/auth/register", httpx.Chain(register, strict))
	mux.Handle("POST /v1/auth/login", httpx.Chain(login, strict))
	mux.Handle("POST /v1/auth/refresh", httpx.Chain(refresh, lenient))
	mux.Handle("POST /v1/auth/logout", httpx.Chain(logout, lenient))

	mux.Handle("GET /v1/me", httpx.Chain(me, lenient, guard))

	mux.HandleFunc("GET /livez", LivezHandler)
	mux.Handle("GET /readyz", readyz)
}
