package main

import (
	"encoding/json"
	"net/http"

	"github.com/vaidyahealth/vaidya-platform/internal/appointments"
	"github.com/vaidyahealth/vaidya-platform/internal/pages"
	"github.com/vaidyahealth/vaidya-platform/internal/predict"
)

// registerPages fills the static page registry with the full menu. The
// payloads describe each page and its operations; the operations
// themselves live under their own routes.
func registerPages(registry *pages.Registry) {
	registry.MustRegister(pages.Page{Key: "home", Title: "Home", Handler: pages.HomePage})
	registry.MustRegister(pages.Page{Key: "login", Title: "Login", Handler: pages.LoginPage})

	registry.MustRegister(pages.Page{Key: "profile", Title: "Profile", Handler: pagePayload(map[string]any{
		"page":       "profile",
		"operations": []string{"GET /profile", "PUT /profile/personal", "PUT /profile/labs"},
	})})

	registry.MustRegister(pages.Page{Key: "health-overview", Title: "Health Overview", Handler: pagePayload(map[string]any{
		"page":       "health-overview",
		"operations": []string{"POST /tracking", "GET /tracking/history", "POST /insights/recommendation"},
	})})

	registry.MustRegister(pages.Page{Key: "prediction-models", Title: "Prediction Models", Handler: func(w http.ResponseWriter, r *http.Request) {
		type modelEntry struct {
			Key    string   `json:"key"`
			Title  string   `json:"title"`
			Labels []string `json:"labels"`
		}
		var entries []modelEntry
		for _, m := range predict.Models() {
			entries = append(entries, modelEntry{Key: m.Key, Title: m.Title, Labels: m.Labels})
		}
		writePage(w, map[string]any{"page": "prediction-models", "models": entries})
	}})

	registry.MustRegister(pages.Page{Key: "report-analysis", Title: "Report Analysis", Handler: pagePayload(map[string]any{
		"page":       "report-analysis",
		"operations": []string{"POST /reports/analyze"},
	})})

	registry.MustRegister(pages.Page{Key: "connect-with-doctor", Title: "Connect with Doctor", Handler: func(w http.ResponseWriter, r *http.Request) {
		writePage(w, map[string]any{
			"page":       "connect-with-doctor",
			"doctors":    appointments.Doctors(),
			"operations": []string{"GET /appointments/slots", "POST /appointments"},
		})
	}})

	registry.MustRegister(pages.Page{Key: "hospital-locator", Title: "Hospital Locator", Handler: pagePayload(map[string]any{
		"page":       "hospital-locator",
		"operations": []string{"POST /hospitals/search"},
	})})

	registry.MustRegister(pages.Page{Key: "mental-health", Title: "Mental Health", Handler: pagePayload(map[string]any{
		"page":       "mental-health",
		"operations": []string{"POST /emotion/analysis", "GET /emotion/summary"},
	})})
}

func pagePayload(body map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writePage(w, body)
	}
}

func writePage(w http.ResponseWriter, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(body)
}
