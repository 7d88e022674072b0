package utils

import (
	"net/http"

	"github.com/google/uuid"
)

const (
	// SessionCookie carries the opaque browser session ID that keys the
	// CredentialStore.
	SessionCookie = "session_token"
	// RememberCookie persists the "remember me" preference between logins.
	RememberCookie = "remember_me"

	rememberMaxAge = 30 * 24 * 60 * 60
)

func CookieExists(r *http.Request, name string) bool {
	c, err := r.Cookie(name)
	return err == nil && c.Value != ""
}

// SessionID returns the browser session ID, or "" when the cookie is
// missing.
func SessionID(r *http.Request) string {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

// EnsureSessionID returns the browser session ID, minting and setting a new
// one when the request carries none.
func EnsureSessionID(w http.ResponseWriter, r *http.Request) string {
	if sid := SessionID(r); sid != "" {
		return sid
	}
	sid := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sid,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   rememberMaxAge,
	})
	return sid
}

// RememberPreference reads the persisted "remember me" preference.
func RememberPreference(r *http.Request) bool {
	c, err := r.Cookie(RememberCookie)
	return err == nil && c.Value == "1"
}

// SaveRememberPreference persists the "remember me" preference. The
// preference has its own lifecycle, independent of the session.
func SaveRememberPreference(w http.ResponseWriter, remember bool) {
	value := "0"
	if remember {
		value = "1"
	}
	http.SetCookie(w, &http.Cookie{
		Name:     RememberCookie,
		Value:    value,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   rememberMaxAge,
	})
}
