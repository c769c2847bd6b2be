package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/vaidyahealth/vaidya-platform/internal/session"
)

// RequireLogin guards API operations that act on the session's account.
// Unauthenticated requests get the login-page payload, mirroring the
// navigation gate.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok || !sess.LoggedIn {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"page":  "login",
				"error": "please log in to continue",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
