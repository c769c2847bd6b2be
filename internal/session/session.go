// Package session holds per-user browser session state. The state that
// the upstream system kept in ambient page globals (login flag, email,
// cached form values) lives here in an explicit object, created with
// documented defaults and passed to handlers through the request context.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound indicates an unknown or expired session ID.
var ErrSessionNotFound = errors.New("session: not found")

// CookieName is the browser cookie carrying the session token for
// clients that do not set an Authorization header.
const CookieName = "vaidya_session"

// Session is the state of one user's interaction with the application.
type Session struct {
	ID        string            `json:"id"`
	LoggedIn  bool              `json:"logged_in"`
	Email     string            `json:"email"`
	Username  string            `json:"username"`
	CreatedAt time.Time         `json:"created_at"`
	Form      map[string]string `json:"form,omitempty"`
}

// NewSession returns a session with defaults: logged out, no email.
func NewSession() *Session {
	return &Session{
		ID:        uuid.NewString(),
		LoggedIn:  false,
		Email:     "",
		CreatedAt: time.Now().UTC(),
		Form:      map[string]string{},
	}
}

// Store persists sessions for the lifetime of a browser session.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type ctxKey string

const sessionKey ctxKey = "vaidya.session"

// WithSession stores the session in context.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext extracts the session if present.
func FromContext(ctx context.Context) (*Session, bool) {
	val := ctx.Value(sessionKey)
	if val == nil {
		return nil, false
	}
	s, ok := val.(*Session)
	return s, ok && s != nil
}
