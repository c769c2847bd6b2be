package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vaidyahealth/vaidya-platform/internal/session"
	"github.com/vaidyahealth/vaidya-platform/pkg/logging"
)

func TestCORSAllowsListedOrigin(t *testing.T) {
	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	mw := CORS([]string{"https://vaidya.example"})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://vaidya.example")
	rec := httptest.NewRecorder()

	mw(handler).ServeHTTP(rec, req)

	if !called {
		t.Fatalf("expected handler to be called")
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://vaidya.example" {
		t.Fatalf("expected allow origin header, got %q", got)
	}
}

func TestCORSDeniesUnknownOrigin(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mw := CORS([]string{"https://vaidya.example"})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://other.example")
	rec := httptest.NewRecorder()

	mw(handler).ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("expected no allow origin header")
	}
}

func TestCORSPreflight(t *testing.T) {
	mw := CORS([]string{"*"})
	req := httptest.NewRequest(http.MethodOptions, "/profile", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight should not reach the handler")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
}

func TestRequestLoggerRecordsStatusAndUser(t *testing.T) {
	var buf bytes.Buffer
	logger := &logging.Logger{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	sess := session.NewSession()
	sess.LoggedIn = true
	sess.Email = "amit@example.com"

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/tracking", nil)
	req = req.WithContext(session.WithSession(req.Context(), sess))
	RequestLogger(logger)(handler).ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	if !strings.Contains(out, `"status":201`) {
		t.Fatalf("expected response status in log output, got %s", out)
	}
	if !strings.Contains(out, `"user":"amit@example.com"`) {
		t.Fatalf("expected session user in log output, got %s", out)
	}
}

func TestSessionMiddlewareLoadsStoredSession(t *testing.T) {
	store := session.NewMemoryStore()
	tokens, err := session.NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	sess := session.NewSession()
	sess.LoggedIn = true
	sess.Email = "amit@example.com"
	if err := store.Save(context.Background(), sess); err != nil {
		t.Fatal(err)
	}
	token, err := tokens.Mint(sess.ID)
	if err != nil {
		t.Fatal(err)
	}

	var got *session.Session
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = session.FromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	Session(tokens, store, logging.Default())(handler).ServeHTTP(httptest.NewRecorder(), req)

	if got == nil || !got.LoggedIn || got.Email != "amit@example.com" {
		t.Fatalf("expected stored session on context, got %+v", got)
	}
}

func TestSessionMiddlewareReadsCookie(t *testing.T) {
	store := session.NewMemoryStore()
	tokens, err := session.NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	sess := session.NewSession()
	sess.LoggedIn = true
	if err := store.Save(context.Background(), sess); err != nil {
		t.Fatal(err)
	}
	token, err := tokens.Mint(sess.ID)
	if err != nil {
		t.Fatal(err)
	}

	var got *session.Session
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = session.FromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	Session(tokens, store, logging.Default())(handler).ServeHTTP(httptest.NewRecorder(), req)

	if got == nil || !got.LoggedIn {
		t.Fatalf("expected cookie session on context, got %+v", got)
	}
}

func TestSessionMiddlewareDefaultsToLoggedOut(t *testing.T) {
	store := session.NewMemoryStore()
	tokens, err := session.NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	var got *session.Session
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = session.FromContext(r.Context())
	})

	for _, auth := range []string{"", "Bearer not-a-token"} {
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		Session(tokens, store, logging.Default())(handler).ServeHTTP(httptest.NewRecorder(), req)

		if got == nil || got.LoggedIn {
			t.Fatalf("expected fresh logged-out session, got %+v", got)
		}
	}
}
