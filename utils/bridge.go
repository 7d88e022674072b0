package utils

import (
	"net/http"
	"strings"
)

const (
	// RoleCookie mirrors the signed-in user's role for route admission.
	RoleCookie = "role"
	// AuthMarkerCookie marks that some user is signed in, without exposing
	// the token.
	AuthMarkerCookie = "auth_token"

	// DefaultFlagMaxAge is the default lifetime of both flags: 8 hours.
	DefaultFlagMaxAge = 8 * 60 * 60
)

// SessionBridge mirrors the role of the current session into two HttpOnly
// cookies that route guards read. The cookies are a derived, coarse
// admission signal only: the bridge never carries the bearer token, and an
// expired or missing flag simply reads as "unauthenticated".
type SessionBridge struct{}

// Establish sets the role flag and the authenticated marker, both with the
// given lifetime in seconds and site-wide path. Calling it again with the
// same role is a no-op from the guard's point of view.
func (SessionBridge) Establish(w http.ResponseWriter, role string, maxAgeSec int) {
	if maxAgeSec <= 0 {
		maxAgeSec = DefaultFlagMaxAge
	}
	role = strings.ToLower(role)

	http.SetCookie(w, &http.Cookie{
		Name:     RoleCookie,
		Value:    role,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   maxAgeSec,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     AuthMarkerCookie,
		Value:    "1",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   maxAgeSec,
	})
}

// Revoke expires both flags immediately.
func (SessionBridge) Revoke(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RoleCookie,
		Value:    "",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     AuthMarkerCookie,
		Value:    "",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

// RoleFromRequest returns the lowercased role flag, or "" when the flag is
// missing or empty.
func RoleFromRequest(r *http.Request) string {
	c, err := r.Cookie(RoleCookie)
	if err != nil || c.Value == "" {
		return ""
	}
	return strings.ToLower(c.Value)
}
