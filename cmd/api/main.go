package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/vaidyahealth/vaidya-platform/internal/accounts"
	"github.com/vaidyahealth/vaidya-platform/internal/api/router"
	"github.com/vaidyahealth/vaidya-platform/internal/appointments"
	"github.com/vaidyahealth/vaidya-platform/internal/config"
	"github.com/vaidyahealth/vaidya-platform/internal/emotion"
	"github.com/vaidyahealth/vaidya-platform/internal/hospitals"
	"github.com/vaidyahealth/vaidya-platform/internal/insights"
	"github.com/vaidyahealth/vaidya-platform/internal/llm"
	"github.com/vaidyahealth/vaidya-platform/internal/notify"
	"github.com/vaidyahealth/vaidya-platform/internal/notify/twilioclient"
	"github.com/vaidyahealth/vaidya-platform/internal/observability/metrics"
	"github.com/vaidyahealth/vaidya-platform/internal/pages"
	"github.com/vaidyahealth/vaidya-platform/internal/predict"
	"github.com/vaidyahealth/vaidya-platform/internal/profile"
	"github.com/vaidyahealth/vaidya-platform/internal/reports"
	"github.com/vaidyahealth/vaidya-platform/internal/session"
	"github.com/vaidyahealth/vaidya-platform/internal/store"
	"github.com/vaidyahealth/vaidya-platform/internal/store/memory"
	"github.com/vaidyahealth/vaidya-platform/internal/store/postgres"
	"github.com/vaidyahealth/vaidya-platform/internal/store/sheets"
	"github.com/vaidyahealth/vaidya-platform/internal/tracking"
	"github.com/vaidyahealth/vaidya-platform/pkg/logging"
)

type recordStore interface {
	store.Accounts
	store.Profiles
	store.Tracking
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	records, cleanup := buildRecordStore(ctx, cfg, logger)
	defer cleanup()

	sessions := buildSessionStore(cfg, logger)

	tokens, err := session.NewTokenManager(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		logger.Error("session token manager init failed", "error", err)
		os.Exit(1)
	}

	model := buildModel(ctx, cfg, logger)
	calendar, email, sms := buildNotifiers(ctx, cfg, logger)

	var finder hospitals.PlaceFinder
	if cfg.MapsAPIKey != "" {
		finder, err = hospitals.NewMapsClient(hospitals.MapsConfig{
			BaseURL:      cfg.MapsBaseURL,
			APIKey:       cfg.MapsAPIKey,
			SearchRadius: cfg.HospitalSearchRadius,
		}, logger.Component("maps"))
		if err != nil {
			logger.Error("maps client init failed", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("no maps API key, hospital search is disabled")
	}

	var classifier predict.Classifier
	if cfg.InferenceBaseURL != "" {
		classifier, err = predict.NewInferenceClient(predict.InferenceConfig{
			BaseURL: cfg.InferenceBaseURL,
			APIKey:  cfg.InferenceAPIKey,
		})
		if err != nil {
			logger.Error("inference client init failed", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("no inference service configured, predictions use the stub classifier")
		classifier = &predict.StubClassifier{}
	}

	appMetrics := metrics.NewAppMetrics(nil)
	model = llm.WithMetrics(model, "gemini", appMetrics)

	registry := pages.NewRegistry()
	registerPages(registry)
	shell := pages.NewShell(registry, appMetrics, logger.Component("pages"))

	handler := router.New(&router.Config{
		Logger:          logger,
		SessionTokens:   tokens,
		SessionStore:    sessions,
		AccountsHandler: accounts.NewHandler(records, sessions, tokens, logger.Component("accounts")),
		ProfileHandler:  profile.NewHandler(records, logger.Component("profile")),
		TrackingHandler: tracking.NewHandler(records, logger.Component("tracking")),
		InsightsHandler: insights.NewHandler(records, records, model, logger.Component("insights")),
		ReportsHandler:  reports.NewHandler(reports.PDFExtractor{}, model, logger.Component("reports")),
		AppointmentsHandler: appointments.NewHandler(appointments.Config{
			Calendar:     calendar,
			Email:        email,
			SMS:          sms,
			JitsiBaseURL: cfg.JitsiBaseURL,
			UTCOffset:    cfg.CalendarUTCOffset,
			Timezone:     cfg.CalendarTimezone,
			CountryCode:  cfg.SMSCountryCode,
		}, logger.Component("appointments")),
		HospitalsHandler: hospitals.NewHandler(finder, logger.Component("hospitals")),
		PredictHandler:   predict.NewHandler(classifier, logger.Component("predict")),
		EmotionHandler: emotion.NewHandler(
			emotion.NewLog(cfg.EmotionLogPath), model, logger.Component("emotion")),
		Shell:              shell,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}

// buildRecordStore selects the account/profile/tracking backend:
// Postgres when DATABASE_URL is set, the spreadsheet when Sheets is
// configured, in-memory otherwise.
func buildRecordStore(ctx context.Context, cfg *config.Config, logger *logging.Logger) (recordStore, func()) {
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("postgres pool init failed", "error", err)
			os.Exit(1)
		}
		logger.Info("using postgres record store")
		return postgres.New(pool), pool.Close
	}

	if cfg.SheetsSpreadsheetID != "" {
		s, err := sheets.New(ctx, sheets.Config{
			CredentialsFile: cfg.SheetsCredentialsFile,
			SpreadsheetID:   cfg.SheetsSpreadsheetID,
			ProfileSheet:    cfg.SheetsProfileRange,
			TrackingSheet:   cfg.SheetsTrackingRange,
		})
		if err != nil {
			logger.Error("sheets store init failed", "error", err)
			os.Exit(1)
		}
		logger.Info("using spreadsheet record store", "spreadsheet", cfg.SheetsSpreadsheetID)
		return s, func() {}
	}

	logger.Warn("no record store configured, data will not survive restarts")
	return memory.New(), func() {}
}

func buildSessionStore(cfg *config.Config, logger *logging.Logger) session.Store {
	if cfg.RedisAddr == "" {
		logger.Warn("no redis configured, sessions are in-memory")
		return session.NewMemoryStore()
	}
	opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
	if cfg.RedisTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	logger.Info("using redis session store", "addr", cfg.RedisAddr)
	return session.NewRedisStore(redis.NewClient(opts), cfg.SessionTTL)
}

func buildModel(ctx context.Context, cfg *config.Config, logger *logging.Logger) llm.Client {
	if cfg.GeminiAPIKey == "" {
		logger.Warn("no gemini API key, model responses are static placeholders")
		return &llm.StaticClient{Response: "Model not configured."}
	}
	client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
	if err != nil {
		logger.Error("gemini client init failed", "error", err)
		os.Exit(1)
	}
	return client
}

func buildNotifiers(ctx context.Context, cfg *config.Config, logger *logging.Logger) (notify.CalendarService, notify.EmailSender, notify.SMSSender) {
	var calendar notify.CalendarService
	if cfg.CalendarCredentialsFile != "" {
		gc, err := notify.NewGoogleCalendar(ctx, notify.GoogleCalendarConfig{
			CredentialsFile: cfg.CalendarCredentialsFile,
			CalendarID:      cfg.CalendarID,
		}, logger.Component("calendar"))
		if err != nil {
			logger.Error("calendar client init failed", "error", err)
			os.Exit(1)
		}
		calendar = gc
	} else {
		logger.Warn("no calendar credentials, calendar events are stubbed")
		calendar = notify.NewStubCalendar(logger.Component("calendar"))
	}

	var email notify.EmailSender
	if cfg.SendGridAPIKey != "" {
		email = notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger.Component("email"))
	} else {
		logger.Warn("no sendgrid key, emails are stubbed")
		email = notify.NewStubEmailSender(logger.Component("email"))
	}

	var sms notify.SMSSender
	if cfg.TwilioAccountSID != "" {
		client, err := twilioclient.New(twilioclient.Config{
			BaseURL:    cfg.TwilioBaseURL,
			AccountSID: cfg.TwilioAccountSID,
			AuthToken:  cfg.TwilioAuthToken,
			FromNumber: cfg.TwilioFromNumber,
			Logger:     logger.Component("twilio").Logger,
		})
		if err != nil {
			logger.Error("twilio client init failed", "error", err)
			os.Exit(1)
		}
		sms = client
	} else {
		logger.Warn("no twilio credentials, SMS sends are stubbed")
		sms = notify.NewStubSMSSender(logger.Component("sms"))
	}

	return calendar, email, sms
}
