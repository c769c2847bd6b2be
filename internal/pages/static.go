package pages

import "net/http"

// Feature is one home-page highlight.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// HomePage handles the landing page payload.
func HomePage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"page":        "home",
		"title":       "Welcome to Vaidya HealthCare Management System",
		"description": "Your comprehensive healthcare companion for better health management and medical assistance",
		"features": []Feature{
			{
				Title:       "Patient Care",
				Description: "Access your medical records, schedule appointments, and track your health progress all in one place.",
			},
			{
				Title:       "Expert Consultation",
				Description: "Connect with healthcare professionals, get expert advice, and receive personalized care recommendations.",
			},
			{
				Title:       "Smart Health Tools",
				Description: "Use AI-powered tools for disease prediction, report analysis, and emotional wellness tracking.",
			},
		},
	})
}

// LoginPage handles the login page payload. It is also what the auth
// gate renders for unauthenticated requests.
func LoginPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"page":    "login",
		"message": "please log in to continue",
		"fields":  []string{"email", "password"},
	})
}
