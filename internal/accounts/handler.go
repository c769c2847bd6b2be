// Package accounts implements registration and sign-in against the
// account table. Login failures are reported with one generic message;
// callers cannot distinguish a wrong password from an unknown email.
package accounts

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/vaidyahealth/vaidya-platform/internal/session"
	"github.com/vaidyahealth/vaidya-platform/internal/store"
	"github.com/vaidyahealth/vaidya-platform/pkg/logging"
)

// Handler handles HTTP requests for accounts.
type Handler struct {
	accounts store.Accounts
	sessions session.Store
	tokens   *session.TokenManager
	logger   *logging.Logger
}

// NewHandler creates a new accounts handler.
func NewHandler(accounts store.Accounts, sessions session.Store, tokens *session.TokenManager, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		accounts: accounts,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
	}
}

// RegisterRequest is the body of POST /accounts.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /accounts.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email, username and password are required")
		return
	}

	err := h.accounts.Create(r.Context(), store.UserAccount{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, "email already registered")
			return
		}
		h.logger.Error("failed to register account", "error", err)
		writeError(w, http.StatusBadGateway, "registration failed, please try again")
		return
	}

	h.logger.Info("account registered", "email", req.Email)
	writeJSON(w, http.StatusCreated, map[string]string{"message": "registration successful"})
}

// LoginRequest is the body of POST /session.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the session token on success.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// Login handles POST /session. On success the session flips to logged
// in and a fresh token pointing at it is returned, both in the body and
// as a cookie for browser clients.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	account, err := h.accounts.GetByEmail(r.Context(), req.Email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.logger.Error("failed to look up account", "error", err)
		writeError(w, http.StatusBadGateway, "login failed, please try again")
		return
	}
	if account == nil || account.Password != req.Password {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	sess, ok := session.FromContext(r.Context())
	if !ok {
		sess = session.NewSession()
	}
	sess.LoggedIn = true
	sess.Email = account.Email
	sess.Username = account.Username

	if err := h.sessions.Save(r.Context(), sess); err != nil {
		h.logger.Error("failed to save session", "error", err)
		writeError(w, http.StatusBadGateway, "login failed, please try again")
		return
	}

	token, err := h.tokens.Mint(sess.ID)
	if err != nil {
		h.logger.Error("failed to mint session token", "error", err)
		writeError(w, http.StatusInternalServerError, "login failed, please try again")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Info("user logged in", "email", account.Email)
	writeJSON(w, http.StatusOK, LoginResponse{
		Token:    token,
		Username: account.Username,
		Message:  "Welcome back, " + account.Username + "!",
	})
}

// Logout handles DELETE /session, discarding the server-side session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, map[string]string{"message": "no active session"})
		return
	}
	if err := h.sessions.Delete(r.Context(), sess.ID); err != nil {
		h.logger.Error("failed to delete session", "error", err)
		writeError(w, http.StatusBadGateway, "logout failed, please try again")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:   session.CookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
