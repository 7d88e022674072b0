package handlers

import (
	"encoding/json"
	"geonews/utils"
	"log"
	"net/http"
)

type establishRequest struct {
	Role      string `json:"role"`
	MaxAgeSec int    `json:"maxAgeSec"`
}

func writeOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]bool{"ok": true}); err != nil {
		log.Println("error writing session response: ", err)
	}
}

// SessionHandler is the HTTP surface of the session bridge: POST sets the
// role flag and auth marker, DELETE expires them. The body carries the role
// only, never the token; the flags are a coarse admission signal, not an
// identity.
func SessionHandler(w http.ResponseWriter, r *http.Request, bridge utils.SessionBridge) {
	switch r.Method {
	case http.MethodPost:
		var req establishRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "malformed body", http.StatusBadRequest)
			return
		}
		if req.Role == "" {
			http.Error(w, "missing role", http.StatusBadRequest)
			return
		}
		bridge.Establish(w, req.Role, req.MaxAgeSec)
		writeOK(w)

	case http.MethodDelete:
		bridge.Revoke(w)
		writeOK(w)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
