package pages

import (
	"encoding/json"
	"net/http"

	"github.com/vaidyahealth/vaidya-platform/internal/observability/metrics"
	"github.com/vaidyahealth/vaidya-platform/internal/session"
	"github.com/vaidyahealth/vaidya-platform/pkg/logging"
)

// Menu is the fixed navigation menu, in display order.
var Menu = []string{
	"Home",
	"Login",
	"Profile",
	"Health Overview",
	"Prediction Models",
	"Report Analysis",
	"Connect with Doctor",
	"Hospital Locator",
	"Mental Health",
}

// menuKeys maps menu labels to page keys.
var menuKeys = map[string]string{
	"Home":                "home",
	"Login":               "login",
	"Profile":             "profile",
	"Health Overview":     "health-overview",
	"Prediction Models":   "prediction-models",
	"Report Analysis":     "report-analysis",
	"Connect with Doctor": "connect-with-doctor",
	"Hospital Locator":    "hospital-locator",
	"Mental Health":       "mental-health",
}

// openPages can be viewed without logging in.
var openPages = map[string]bool{"home": true, "login": true}

// Shell dispatches menu selections to registered pages behind the
// login gate.
type Shell struct {
	registry *Registry
	metrics  *metrics.AppMetrics
	logger   *logging.Logger
}

// NewShell creates the navigation shell over a registry. metrics may be
// nil.
func NewShell(registry *Registry, m *metrics.AppMetrics, logger *logging.Logger) *Shell {
	if logger == nil {
		logger = logging.Default()
	}
	return &Shell{registry: registry, metrics: m, logger: logger}
}

// MenuResponse lists the menu for clients.
type MenuResponse struct {
	Items []MenuItem `json:"items"`
}

// MenuItem is one navigation entry.
type MenuItem struct {
	Label string `json:"label"`
	Key   string `json:"key"`
}

// MenuHandler handles GET /pages.
func (s *Shell) MenuHandler(w http.ResponseWriter, r *http.Request) {
	items := make([]MenuItem, 0, len(Menu))
	for _, label := range Menu {
		items = append(items, MenuItem{Label: label, Key: menuKeys[label]})
	}
	writeJSON(w, http.StatusOK, MenuResponse{Items: items})
}

// Render handles GET /pages/{key}. An unauthenticated request for any
// page outside Home and Login renders the login page instead; the
// requested selection is not changed, the client simply receives the
// login payload.
func (s *Shell) Render(key string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !openPages[key] {
			sess, ok := session.FromContext(r.Context())
			if !ok || !sess.LoggedIn {
				s.renderLogin(w, r)
				return
			}
		}

		page, ok := s.registry.Resolve(key)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown page"})
			return
		}
		s.metrics.ObservePageView(key)
		page.Handler(w, r)
	}
}

func (s *Shell) renderLogin(w http.ResponseWriter, r *http.Request) {
	page, ok := s.registry.Resolve("login")
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"page":  "login",
			"error": "please log in to continue",
		})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	page.Handler(&statusLockedWriter{ResponseWriter: w}, r)
}

// statusLockedWriter drops further WriteHeader calls so the gate's 401
// wins over the wrapped page's status.
type statusLockedWriter struct {
	http.ResponseWriter
}

func (w *statusLockedWriter) WriteHeader(int) {}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
