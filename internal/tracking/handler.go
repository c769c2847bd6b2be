// Package tracking records daily health metrics. The log is append-only:
// submitting twice on the same day produces two rows, mirroring the
// upstream sheet.
package tracking

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vaidyahealth/vaidya-platform/internal/session"
	"github.com/vaidyahealth/vaidya-platform/internal/store"
	"github.com/vaidyahealth/vaidya-platform/pkg/logging"
)

// Handler handles HTTP requests for daily tracking.
type Handler struct {
	tracking store.Tracking
	logger   *logging.Logger
	now      func() time.Time
}

// NewHandler creates a new tracking handler.
func NewHandler(tracking store.Tracking, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{tracking: tracking, logger: logger, now: time.Now}
}

// EntryRequest is the body of POST /tracking.
type EntryRequest struct {
	SleepHours      float64 `json:"sleep_hours"`
	WaterIntake     int     `json:"water_intake"`
	ExerciseMinutes int     `json:"exercise_minutes"`
	Mood            string  `json:"mood"`
	StressLevel     int     `json:"stress_level"`
	MealQuality     int     `json:"meal_quality"`
	Notes           string  `json:"notes"`
}

// Submit handles POST /tracking. The date is assigned server-side.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())

	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Mood == "" {
		writeError(w, http.StatusBadRequest, "mood is required")
		return
	}

	entry := store.DailyTrackingEntry{
		Date:            h.now().Format("2006-01-02"),
		Email:           sess.Email,
		SleepHours:      req.SleepHours,
		WaterIntake:     req.WaterIntake,
		ExerciseMinutes: req.ExerciseMinutes,
		Mood:            req.Mood,
		StressLevel:     req.StressLevel,
		MealQuality:     req.MealQuality,
		Notes:           req.Notes,
	}

	if err := h.tracking.Append(r.Context(), entry); err != nil {
		h.logger.Error("failed to save tracking entry", "error", err, "email", sess.Email)
		writeError(w, http.StatusBadGateway, "error saving tracking data")
		return
	}

	h.logger.Info("tracking entry saved", "email", sess.Email, "date", entry.Date)
	writeJSON(w, http.StatusCreated, entry)
}

// History handles GET /tracking/history.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())

	entries, err := h.tracking.ListByEmail(r.Context(), sess.Email)
	if err != nil {
		h.logger.Error("failed to list tracking entries", "error", err, "email", sess.Email)
		writeError(w, http.StatusBadGateway, "error loading tracking history")
		return
	}
	if entries == nil {
		entries = []store.DailyTrackingEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"count":   len(entries),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
