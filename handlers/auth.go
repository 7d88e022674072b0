package handlers

import (
	"errors"
	"fmt"
	"geonews/models"
	"geonews/utils"
	"html/template"
	"log"
	"net/http"
	"time"
)

const (
	// How long the login flow waits for the saved session to become
	// readable before navigating anyway.
	loginPollTimeout  = 1500 * time.Millisecond
	loginPollInterval = 50 * time.Millisecond
)

// LoginPageHandler renders the login form, or sends an already signed-in
// user straight to their role's home.
func LoginPageHandler(w http.ResponseWriter, r *http.Request, creds *utils.CredentialStore) {
	if utils.CookieExists(r, utils.SessionCookie) {
		sid := utils.SessionID(r)
		if session, ok := creds.Load(r.Context(), sid); ok {
			http.Redirect(w, r, HomeForRole(session.Role()), http.StatusSeeOther)
			return
		}
	}

	tmpl, err := template.ParseFiles("./ui/html/login-form.html")
	if err != nil {
		http.Error(w, "Error loading template: "+err.Error(), http.StatusInternalServerError)
		return
	}
	data := models.LoginPageData{
		Remember: utils.RememberPreference(r),
	}
	if err = tmpl.Execute(w, data); err != nil {
		log.Println("error rendering login page: ", err)
	}
}

// LoginHandler signs the user in against the remote API. On success it
// persists the session (durability chosen by the remember preference),
// refreshes the auth binder, establishes the role flags, waits briefly for
// the store to become readable, and redirects to the role's home route. On
// a malformed response or remote failure nothing is mutated.
func LoginHandler(w http.ResponseWriter, r *http.Request, creds *utils.CredentialStore, binder *utils.AuthBinder, api *utils.APIClient, bridge utils.SessionBridge) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	remember := r.FormValue("remember") == "on" || r.FormValue("remember") == "1"

	if email == "" || password == "" {
		http.Error(w, "Missing credentials", http.StatusBadRequest)
		return
	}

	auth, err := api.Login(r.Context(), email, password)
	if err != nil {
		log.Println("login failed for user: ", email, " |error: ", err)
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "invalid email or password")
		return
	}

	token := auth.BearerToken()
	if token == "" || auth.User == nil {
		log.Println("malformed login response for user: ", email)
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "invalid response from server. try again.")
		return
	}

	tokenType := auth.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	session := models.Session{
		Token:     token,
		TokenType: tokenType,
		User:      *auth.User,
	}

	sid := utils.EnsureSessionID(w, r)
	utils.SaveRememberPreference(w, remember)

	if err := creds.Save(r.Context(), sid, session, remember); err != nil {
		log.Println("failed to persist session for user: ", email, " |error: ", err)
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "internal error. try again.")
		return
	}
	binder.Refresh(r.Context(), sid)

	// The flags must only exist once the session is durably written.
	bridge.Establish(w, session.Role(), utils.DefaultFlagMaxAge)

	if !creds.WaitReadable(r.Context(), sid, loginPollTimeout, loginPollInterval) {
		// Navigate anyway; a persistence hiccup must not hang the login.
		log.Println("session not readable after save for user: ", email)
	}

	w.Header().Set("HX-Redirect", HomeForRole(session.Role()))
	w.WriteHeader(http.StatusOK)
}

// LogOutHandler signs the user out. Local state is cleared first so the UI
// never looks authenticated while the remote call is pending; the remote
// logout and the flag revocation then run unconditionally. A 401 from the
// remote API is success: the session is already gone server-side.
func LogOutHandler(w http.ResponseWriter, r *http.Request, creds *utils.CredentialStore, binder *utils.AuthBinder, api *utils.APIClient, bridge utils.SessionBridge) {
	sid := utils.SessionID(r)

	var authHeader string
	if session, ok := creds.Load(r.Context(), sid); ok {
		authHeader = session.AuthorizationHeader()
	}

	creds.Clear(r.Context(), sid)
	binder.Refresh(r.Context(), sid)

	if authHeader != "" {
		if err := api.Logout(r.Context(), authHeader); err != nil && !errors.Is(err, utils.ErrUnauthorized) {
			log.Println("remote logout failed: ", err)
		}
	}

	bridge.Revoke(w)
	http.Redirect(w, r, "/auth", http.StatusSeeOther)
}
