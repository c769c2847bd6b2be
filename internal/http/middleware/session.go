package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vaidyahealth/vaidya-platform/internal/session"
	"github.com/vaidyahealth/vaidya-platform/pkg/logging"
)

// Session resolves the bearer token to a stored session and puts it on
// the request context. Requests without a valid token proceed with a
// fresh logged-out session; pages behind the login gate handle the
// redirect themselves.
func Session(tokens *session.TokenManager, store session.Store, logger *logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := session.NewSession()

			if token := bearerToken(r); token != "" {
				id, err := tokens.Parse(token)
				if err == nil {
					stored, err := store.Get(r.Context(), id)
					if err == nil {
						sess = stored
					} else if !errors.Is(err, session.ErrSessionNotFound) {
						logger.Error("session lookup failed", "error", err)
					}
				}
			}

			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), sess)))
		})
	}
}

// bearerToken prefers the Authorization header and falls back to the
// session cookie set for browser clients.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return auth[len(prefix):]
	}
	if c, err := r.Cookie(session.CookieName); err == nil {
		return c.Value
	}
	return ""
}
