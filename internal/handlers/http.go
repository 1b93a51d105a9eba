// internal/handlers/http.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cardtable/wizard/internal/auth"
)

// sessionCookie carries the player's session token between requests.
const sessionCookie = "wizard_session"

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error body.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// readJSON decodes the request body into v, rejecting unknown fields.
func readJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// setSession attaches the session token cookie to the response.
func setSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// playerIDFromRequest resolves the acting player from the Authorization
// header (Bearer token) or the session cookie. Empty when unauthenticated.
func playerIDFromRequest(r *http.Request) string {
	token := ""
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		token = strings.TrimPrefix(h, "Bearer ")
	} else if c, err := r.Cookie(sessionCookie); err == nil {
		token = c.Value
	}
	if token == "" {
		return ""
	}
	playerID, err := auth.PlayerIDFromToken(token)
	if err != nil {
		return ""
	}
	return playerID
}
