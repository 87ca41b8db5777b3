package transport

import (
	"crypto/subtle"
	"net/http"

	"github.com/hallpass-io/hallpass/internal/auth/domain"
	"github.com/hallpass-io/hallpass/pkg/cryptox"
	"github.com/hallpass-io/hallpass/pkg/httpx"
)

// Cookie names used by the cookie carrier.
const (
	AccessCookieName  = "hp_access"
	RefreshCookieName = "hp_refresh"
	CSRFCookieName    = "hp_csrf"

	// CSRFHeaderName is the request header the client must echo the CSRF
	// cookie into on state-changing requests.
	CSRFHeaderName = "X-CSRF-Token"
)

// CookieCarrier stores the tokens in two HttpOnly cookies whose lifetimes
// track the token TTLs. With CSRF protection enabled it additionally sets a
// readable CSRF cookie and requires the double-submit header on
// state-changing requests.
type CookieCarrier struct {
	opts Options
}

func (c *CookieCarrier) Attach(w http.ResponseWriter, pair domain.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessCookieName,
		Value:    pair.AccessToken,
		Path:     "/",
		MaxAge:   int(c.opts.AccessTTL.Seconds()),
		HttpOnly: true,
		Secure:   c.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    pair.RefreshToken,
		Path:     "/",
		MaxAge:   int(c.opts.RefreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   c.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	if c.opts.CSRFProtect {
		// Readable by scripts on purpose: the client echoes it back in the
		// CSRF header, which a cross-site attacker cannot do.
		http.SetCookie(w, &http.Cookie{
			Name:     CSRFCookieName,
			Value:    cryptox.MustGenerateToken(cryptox.TokenSize256),
			Path:     "/",
			MaxAge:   int(c.opts.RefreshTTL.Seconds()),
			HttpOnly: false,
			Secure:   c.opts.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}

	// The body never carries the tokens in cookie mode.
	httpx.WriteJSON(w, http.StatusOK, domain.TokenPair{
		TokenType: pair.TokenType,
		ExpiresIn: pair.ExpiresIn,
	})
}

// AttachAccess reissues only the access cookie. Used on refresh, where the
// refresh token itself is left untouched.
func (c *CookieCarrier) AttachAccess(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.opts.AccessTTL.Seconds()),
		HttpOnly: true,
		Secure:   c.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *CookieCarrier) Extract(r *http.Request) (string, string) {
	var access, refresh string
	if ck, err := r.Cookie(AccessCookieName); err == nil {
		access = ck.Value
	}
	if ck, err := r.Cookie(RefreshCookieName); err == nil {
		refresh = ck.Value
	}
	return access, refresh
}

// Clear expires all carrier cookies. Safe to call for a client that never
// logged in.
func (c *CookieCarrier) Clear(w http.ResponseWriter) {
	names := []string{AccessCookieName, RefreshCookieName}
	if c.opts.CSRFProtect {
		names = append(names, CSRFCookieName)
	}
	for _, name := range names {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: name != CSRFCookieName,
			Secure:   c.opts.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// VerifyCSRF enforces the double-submit check: the CSRF header must match
// the CSRF cookie exactly.
func (c *CookieCarrier) VerifyCSRF(r *http.Request) error {
	if !c.opts.CSRFProtect {
		return nil
	}

	ck, err := r.Cookie(CSRFCookieName)
	if err != nil || ck.Value == "" {
		return ErrCSRF
	}
	header := r.Header.Get(CSRFHeaderName)
	if header == "" {
		return ErrCSRF
	}
	if subtle.ConstantTimeCompare([]byte(ck.Value), []byte(header)) != 1 {
		return ErrCSRF
	}
	return nil
}
