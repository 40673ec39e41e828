package auth

import (
	"net/http"
	"time"
)

// The logout flag is a client-held cookie written when a user explicitly
// signs out of Whop. While present, Whop resolution is skipped even if the
// Whop token is still valid; Supabase resolution is unaffected.
const (
	LogoutCookieName  = "waliet_logged_out"
	logoutCookieValue = "1"
	LogoutCookieTTL   = 24 * time.Hour
)

func IsWhopSuppressed(r *http.Request) bool {
	c, err := r.Cookie(LogoutCookieName)
	if err != nil {
		return false
	}
	return c.Value == logoutCookieValue
}

// NewLogoutCookie is used by the logout handler; the flag expires on its own
// after 24h.
func NewLogoutCookie() *http.Cookie {
	return &http.Cookie{
		Name:     LogoutCookieName,
		Value:    logoutCookieValue,
		Path:     "/",
		MaxAge:   int(LogoutCookieTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearLogoutCookie re-enables Whop resolution, e.g. after an explicit
// sign-in.
func ClearLogoutCookie() *http.Cookie {
	return &http.Cookie{
		Name:     LogoutCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
