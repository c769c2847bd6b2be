package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string

	// Session state
	SessionSecret string
	SessionTTL    time.Duration
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	// Record store backends
	DatabaseURL           string
	SheetsCredentialsFile string
	SheetsSpreadsheetID   string
	SheetsProfileRange    string
	SheetsTrackingRange   string

	// Notification collaborators
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioFromNumber  string
	TwilioBaseURL     string
	SMSCountryCode    string

	// Google Calendar
	CalendarCredentialsFile string
	CalendarID              string
	CalendarTimezone        string
	CalendarUTCOffset       string

	// Hospital locator
	MapsAPIKey           string
	MapsBaseURL          string
	HospitalSearchRadius int

	// LLM completion
	GeminiAPIKey  string
	GeminiModelID string

	// Prediction sub-apps
	InferenceBaseURL string
	InferenceAPIKey  string

	// Emotion analysis
	EmotionSocketURL string
	EmotionAPIKey    string
	EmotionConfigID  string
	EmotionLogPath   string

	// Video consultations
	JitsiBaseURL string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "")),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionTTL:    getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		DatabaseURL:           getEnv("DATABASE_URL", ""),
		SheetsCredentialsFile: getEnv("SHEETS_CREDENTIALS_FILE", ""),
		SheetsSpreadsheetID:   getEnv("SHEETS_SPREADSHEET_ID", ""),
		SheetsProfileRange:    getEnv("SHEETS_PROFILE_RANGE", "Sheet1"),
		SheetsTrackingRange:   getEnv("SHEETS_TRACKING_RANGE", "DailyTracking"),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Vaidya Health"),
		TwilioAccountSID:  getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:   getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFromNumber:  getEnv("TWILIO_FROM_NUMBER", ""),
		TwilioBaseURL:     getEnv("TWILIO_BASE_URL", ""),
		SMSCountryCode:    getEnv("SMS_COUNTRY_CODE", "+91"),

		CalendarCredentialsFile: getEnv("CALENDAR_CREDENTIALS_FILE", ""),
		CalendarID:              getEnv("CALENDAR_ID", "primary"),
		CalendarTimezone:        getEnv("CALENDAR_TIMEZONE", "Asia/Kolkata"),
		CalendarUTCOffset:       getEnv("CALENDAR_UTC_OFFSET", "+05:30"),

		MapsAPIKey:           getEnv("MAPS_API_KEY", ""),
		MapsBaseURL:          getEnv("MAPS_BASE_URL", ""),
		HospitalSearchRadius: getEnvAsInt("HOSPITAL_SEARCH_RADIUS_METERS", 5000),

		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModelID: getEnv("GEMINI_MODEL_ID", "gemini-2.5-flash"),

		InferenceBaseURL: getEnv("INFERENCE_BASE_URL", ""),
		InferenceAPIKey:  getEnv("INFERENCE_API_KEY", ""),

		EmotionSocketURL: getEnv("EMOTION_SOCKET_URL", ""),
		EmotionAPIKey:    getEnv("EMOTION_API_KEY", ""),
		EmotionConfigID:  getEnv("EMOTION_CONFIG_ID", ""),
		EmotionLogPath:   getEnv("EMOTION_LOG_PATH", "emotion_analysis.csv"),

		JitsiBaseURL: getEnv("JITSI_BASE_URL", "https://meet.jit.si"),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func splitAndTrim(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
