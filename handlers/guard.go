package handlers

import (
	"geonews/models"
	"geonews/utils"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strings"
)

// roleHomes maps a role to the route group it lands on after login. An
// unknown or missing role deliberately has no entry: it is denied by the
// guard and sent to the generic root, never to an admin home.
var roleHomes = map[string]string{
	"admin": "/map",
	"user":  "/novedades",
}

// HomeForRole returns the home route for a role, or "/" when the role is
// unrecognized.
func HomeForRole(role string) string {
	if home, ok := roleHomes[strings.ToLower(role)]; ok {
		return home
	}
	return "/"
}

// RootHandler routes the bare root by role flag: known roles go to their
// home, anything else goes to the login page. An unrecognized role must not
// redirect back to "/" or the response loops on itself.
func RootHandler(w http.ResponseWriter, r *http.Request) {
	if role := utils.RoleFromRequest(r); role != "" {
		if home := HomeForRole(role); home != "/" {
			http.Redirect(w, r, home, http.StatusSeeOther)
			return
		}
	}
	http.Redirect(w, r, "/auth", http.StatusSeeOther)
}

// RequireRole guards a route group: only requests whose role flag matches
// one of the allowed roles pass through. Everything else, including requests
// with no flag at all, is redirected to the unauthorized page with the
// originating path. The guard reads only the flag cookie; it never consults
// the credential store or the remote API.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	allowedSet := make(map[string]bool, len(allowed))
	for _, role := range allowed {
		allowedSet[strings.ToLower(role)] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := utils.RoleFromRequest(r)
			if role == "" || !allowedSet[role] {
				dest := "/unauthorized?" + url.Values{"from": {r.URL.Path}}.Encode()
				http.Redirect(w, r, dest, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UnauthorizedHandler renders the denial page. It reads the current role
// flag, if any, to offer a link back to that role's own home.
func UnauthorizedHandler(w http.ResponseWriter, r *http.Request) {
	role := utils.RoleFromRequest(r)

	data := models.UnauthorizedPageData{
		Role: role,
		Home: HomeForRole(role),
		From: r.URL.Query().Get("from"),
	}

	tmpl, err := template.ParseFiles("./ui/html/unauthorized.html")
	if err != nil {
		http.Error(w, "Error loading template: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err = tmpl.Execute(w, data); err != nil {
		log.Println("error rendering unauthorized page: ", err)
	}
}
