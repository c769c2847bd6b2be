package pages

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaidyahealth/vaidya-platform/internal/session"
	"github.com/vaidyahealth/vaidya-platform/pkg/logging"
)

func newTestShell(t *testing.T) *Shell {
	t.Helper()
	reg := NewRegistry()
	reg.MustRegister(Page{Key: "home", Title: "Home", Handler: HomePage})
	reg.MustRegister(Page{Key: "login", Title: "Login", Handler: LoginPage})
	reg.MustRegister(Page{Key: "profile", Title: "Profile", Handler: func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"page": "profile"})
	}})
	return NewShell(reg, nil, logging.Default())
}

func loggedIn(req *http.Request) *http.Request {
	sess := session.NewSession()
	sess.LoggedIn = true
	sess.Email = "amit@example.com"
	return req.WithContext(session.WithSession(req.Context(), sess))
}

func TestRegistryDuplicateRejected(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(Page{Key: "home"}))
	assert.Error(t, reg.Register(Page{Key: "home"}))
}

func TestRegistryResolveIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	handler := func(w http.ResponseWriter, r *http.Request) {}
	require.NoError(t, reg.Register(Page{Key: "home", Handler: handler}))

	first, ok := reg.Resolve("home")
	require.True(t, ok)
	second, ok := reg.Resolve("home")
	require.True(t, ok)
	assert.Equal(t, first.Key, second.Key)
	assert.Equal(t, first.Title, second.Title)
}

func TestGateForcesLoginWhenLoggedOut(t *testing.T) {
	shell := newTestShell(t)

	for _, key := range []string{"profile", "health-overview", "prediction-models"} {
		w := httptest.NewRecorder()
		shell.Render(key)(w, httptest.NewRequest(http.MethodGet, "/pages/"+key, nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code, "page %s", key)
		var body map[string]any
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "login", body["page"], "page %s", key)
	}
}

func TestGateAllowsHomeAndLoginWhenLoggedOut(t *testing.T) {
	shell := newTestShell(t)

	for _, key := range []string{"home", "login"} {
		w := httptest.NewRecorder()
		shell.Render(key)(w, httptest.NewRequest(http.MethodGet, "/pages/"+key, nil))
		assert.Equal(t, http.StatusOK, w.Code, "page %s", key)
	}
}

func TestGatePassesThroughWhenLoggedIn(t *testing.T) {
	shell := newTestShell(t)

	w := httptest.NewRecorder()
	shell.Render("profile")(w, loggedIn(httptest.NewRequest(http.MethodGet, "/pages/profile", nil)))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "profile", body["page"])
}

func TestUnknownPage(t *testing.T) {
	shell := newTestShell(t)

	w := httptest.NewRecorder()
	shell.Render("astrology")(w, loggedIn(httptest.NewRequest(http.MethodGet, "/pages/astrology", nil)))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "unknown page")
}

func TestMenuHandler(t *testing.T) {
	shell := newTestShell(t)

	w := httptest.NewRecorder()
	shell.MenuHandler(w, httptest.NewRequest(http.MethodGet, "/pages", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp MenuResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Items, len(Menu))
	assert.Equal(t, "Home", resp.Items[0].Label)
	assert.Equal(t, "home", resp.Items[0].Key)
	assert.Equal(t, "connect-with-doctor", resp.Items[6].Key)
}
