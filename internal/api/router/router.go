// Package router wires every page and operation onto a chi router.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vaidyahealth/vaidya-platform/internal/accounts"
	"github.com/vaidyahealth/vaidya-platform/internal/appointments"
	"github.com/vaidyahealth/vaidya-platform/internal/emotion"
	"github.com/vaidyahealth/vaidya-platform/internal/hospitals"
	httpmiddleware "github.com/vaidyahealth/vaidya-platform/internal/http/middleware"
	"github.com/vaidyahealth/vaidya-platform/internal/insights"
	"github.com/vaidyahealth/vaidya-platform/internal/pages"
	"github.com/vaidyahealth/vaidya-platform/internal/predict"
	"github.com/vaidyahealth/vaidya-platform/internal/profile"
	"github.com/vaidyahealth/vaidya-platform/internal/reports"
	"github.com/vaidyahealth/vaidya-platform/internal/session"
	"github.com/vaidyahealth/vaidya-platform/internal/tracking"
	"github.com/vaidyahealth/vaidya-platform/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger *logging.Logger

	SessionTokens *session.TokenManager
	SessionStore  session.Store

	AccountsHandler     *accounts.Handler
	ProfileHandler      *profile.Handler
	TrackingHandler     *tracking.Handler
	InsightsHandler     *insights.Handler
	ReportsHandler      *reports.Handler
	AppointmentsHandler *appointments.Handler
	HospitalsHandler    *hospitals.Handler
	PredictHandler      *predict.Handler
	EmotionHandler      *emotion.Handler
	Shell               *pages.Shell

	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	// Session resolution runs before request logging so completed
	// requests are attributed to the signed-in user.
	r.Use(httpmiddleware.Session(cfg.SessionTokens, cfg.SessionStore, cfg.Logger))
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints.
	r.Group(func(public chi.Router) {
		public.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}

		public.Post("/accounts", cfg.AccountsHandler.Register)
		public.Post("/session", cfg.AccountsHandler.Login)
		public.Delete("/session", cfg.AccountsHandler.Logout)

		// Page rendering goes through the shell; the login gate inside
		// Render decides what unauthenticated users see.
		if cfg.Shell != nil {
			public.Get("/pages", cfg.Shell.MenuHandler)
			public.Get("/pages/{key}", func(w http.ResponseWriter, r *http.Request) {
				cfg.Shell.Render(chi.URLParam(r, "key"))(w, r)
			})
		}
	})

	// Operations on the logged-in account.
	r.Group(func(authed chi.Router) {
		authed.Use(httpmiddleware.RequireLogin)

		authed.Route("/profile", func(r chi.Router) {
			r.Get("/", cfg.ProfileHandler.Get)
			r.Put("/personal", cfg.ProfileHandler.SavePersonal)
			r.Put("/labs", cfg.ProfileHandler.SaveLabs)
		})

		authed.Route("/tracking", func(r chi.Router) {
			r.Post("/", cfg.TrackingHandler.Submit)
			r.Get("/history", cfg.TrackingHandler.History)
		})

		authed.Post("/insights/recommendation", cfg.InsightsHandler.Recommend)
		authed.Post("/reports/analyze", cfg.ReportsHandler.Analyze)

		authed.Route("/appointments", func(r chi.Router) {
			r.Post("/", cfg.AppointmentsHandler.Schedule)
			r.Get("/slots", cfg.AppointmentsHandler.Slots)
		})

		authed.Post("/hospitals/search", cfg.HospitalsHandler.Search)

		authed.Get("/predict/models", cfg.PredictHandler.ListModels)
		authed.Post("/predict/{model}", cfg.PredictHandler.Predict)

		authed.Route("/emotion", func(r chi.Router) {
			r.Post("/analysis", cfg.EmotionHandler.Analyze)
			r.Get("/summary", cfg.EmotionHandler.SummaryOnly)
		})
	})

	return r
}
