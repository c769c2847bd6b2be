// Package insights turns a patient's profile and daily tracking data into
// a personalized recommendation via a single LLM completion. The model's
// answer is returned verbatim.
package insights

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vaidyahealth/vaidya-platform/internal/llm"
	"github.com/vaidyahealth/vaidya-platform/internal/session"
	"github.com/vaidyahealth/vaidya-platform/internal/store"
	"github.com/vaidyahealth/vaidya-platform/pkg/logging"
)

// Handler handles HTTP requests for health insights.
type Handler struct {
	profiles store.Profiles
	tracking store.Tracking
	model    llm.Client
	logger   *logging.Logger
}

// NewHandler creates a new insights handler.
func NewHandler(profiles store.Profiles, tracking store.Tracking, model llm.Client, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		profiles: profiles,
		tracking: tracking,
		model:    model,
		logger:   logger,
	}
}

// RecommendationRequest carries today's tracking data. When empty, the
// most recent stored entry is used instead.
type RecommendationRequest struct {
	SleepHours      float64 `json:"sleep_hours"`
	WaterIntake     int     `json:"water_intake"`
	ExerciseMinutes int     `json:"exercise_minutes"`
	Mood            string  `json:"mood"`
	StressLevel     int     `json:"stress_level"`
	MealQuality     int     `json:"meal_quality"`
	Notes           string  `json:"notes"`
}

// RecommendationResponse carries the model's answer.
type RecommendationResponse struct {
	Recommendation string `json:"recommendation"`
}

// Recommend handles POST /insights/recommendation.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())

	profile, err := h.profiles.Get(r.Context(), sess.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "unable to fetch your profile data, please complete your profile first")
			return
		}
		h.logger.Error("failed to fetch profile", "error", err, "email", sess.Email)
		writeError(w, http.StatusBadGateway, "error fetching profile")
		return
	}

	var req RecommendationRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	entry := store.DailyTrackingEntry{
		Email:           sess.Email,
		SleepHours:      req.SleepHours,
		WaterIntake:     req.WaterIntake,
		ExerciseMinutes: req.ExerciseMinutes,
		Mood:            req.Mood,
		StressLevel:     req.StressLevel,
		MealQuality:     req.MealQuality,
		Notes:           req.Notes,
	}
	if req.Mood == "" {
		if latest, ok := h.latestEntry(r, sess.Email); ok {
			entry = latest
		}
	}

	prompt := buildRecommendationPrompt(profile, entry)
	resp, err := h.model.Complete(r.Context(), llm.Request{
		Messages:    []llm.ChatMessage{{Role: llm.ChatRoleUser, Content: prompt}},
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		h.logger.Error("recommendation completion failed", "error", err, "email", sess.Email)
		writeError(w, http.StatusBadGateway, "error generating recommendation")
		return
	}

	writeJSON(w, http.StatusOK, RecommendationResponse{Recommendation: resp.Text})
}

func (h *Handler) latestEntry(r *http.Request, email string) (store.DailyTrackingEntry, bool) {
	entries, err := h.tracking.ListByEmail(r.Context(), email)
	if err != nil || len(entries) == 0 {
		return store.DailyTrackingEntry{}, false
	}
	return entries[len(entries)-1], true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
