package accounts

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vaidyahealth/vaidya-platform/internal/session"
	"github.com/vaidyahealth/vaidya-platform/internal/store"
	"github.com/vaidyahealth/vaidya-platform/internal/store/memory"
	"github.com/vaidyahealth/vaidya-platform/pkg/logging"
)

func newHandler(t *testing.T) (*Handler, *memory.Store, session.Store) {
	t.Helper()
	accounts := memory.New()
	sessions := session.NewMemoryStore()
	tokens, err := session.NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	return NewHandler(accounts, sessions, tokens, logging.Default()), accounts, sessions
}

func TestRegisterSuccess(t *testing.T) {
	h, accounts, _ := newHandler(t)

	body, _ := json.Marshal(RegisterRequest{
		Email:    "amit@example.com",
		Username: "amit",
		Password: "secret",
	})
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.Register(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
	if _, err := accounts.GetByEmail(req.Context(), "amit@example.com"); err != nil {
		t.Errorf("account not stored: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h, accounts, _ := newHandler(t)
	_ = accounts.Create(httptest.NewRequest(http.MethodGet, "/", nil).Context(), store.UserAccount{
		Email: "amit@example.com", Username: "amit", Password: "secret",
	})

	body, _ := json.Marshal(RegisterRequest{
		Email: "amit@example.com", Username: "other", Password: "pw",
	})
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.Register(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, w.Code)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	h, _, _ := newHandler(t)

	body, _ := json.Marshal(RegisterRequest{Email: "amit@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.Register(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestLoginSuccessSetsSession(t *testing.T) {
	h, accounts, sessions := newHandler(t)
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	_ = accounts.Create(ctx, store.UserAccount{
		Email: "amit@example.com", Username: "amit", Password: "secret",
	})

	body, _ := json.Marshal(LoginRequest{Email: "amit@example.com", Password: "secret"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.Login(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp LoginResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a session token")
	}
	if resp.Username != "amit" {
		t.Errorf("expected username amit, got %s", resp.Username)
	}

	tokens, _ := session.NewTokenManager("test-secret", time.Hour)
	id, err := tokens.Parse(resp.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	sess, err := sessions.Get(ctx, id)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if !sess.LoggedIn || sess.Email != "amit@example.com" {
		t.Errorf("session not logged in: %+v", sess)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	h, accounts, _ := newHandler(t)
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	_ = accounts.Create(ctx, store.UserAccount{
		Email: "amit@example.com", Username: "amit", Password: "secret",
	})

	for _, attempt := range []LoginRequest{
		{Email: "amit@example.com", Password: "wrong"},
		{Email: "nobody@example.com", Password: "secret"},
	} {
		body, _ := json.Marshal(attempt)
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
		w := httptest.NewRecorder()

		h.Login(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
		}
		var resp map[string]string
		_ = json.NewDecoder(w.Body).Decode(&resp)
		// Unknown email and wrong password must be indistinguishable.
		if resp["error"] != "invalid email or password" {
			t.Errorf("unexpected error message: %q", resp["error"])
		}
	}
}

func TestLogoutDeletesSession(t *testing.T) {
	h, _, sessions := newHandler(t)
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()

	sess := session.NewSession()
	sess.LoggedIn = true
	_ = sessions.Save(ctx, sess)

	req := httptest.NewRequest(http.MethodDelete, "/session", nil)
	req = req.WithContext(session.WithSession(req.Context(), sess))
	w := httptest.NewRecorder()

	h.Logout(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if _, err := sessions.Get(ctx, sess.ID); err == nil {
		t.Error("expected session to be deleted")
	}
}
