package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaidyahealth/vaidya-platform/internal/llm"
	"github.com/vaidyahealth/vaidya-platform/internal/session"
	"github.com/vaidyahealth/vaidya-platform/internal/store"
	"github.com/vaidyahealth/vaidya-platform/internal/store/memory"
	"github.com/vaidyahealth/vaidya-platform/pkg/logging"
)

func authedRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	sess := session.NewSession()
	sess.LoggedIn = true
	sess.Email = "amit@example.com"
	return req.WithContext(session.WithSession(req.Context(), sess))
}

func TestRecommendInterpolatesProfileAndTracking(t *testing.T) {
	records := memory.New()
	require.NoError(t, records.Save(context.Background(), store.PatientProfile{
		Email:              "amit@example.com",
		HeightCm:           176,
		WeightKg:           72,
		BloodGroup:         "B+",
		Disease:            "Hypertension",
		CurrentMedications: "Amlodipine",
	}))

	model := &llm.StaticClient{Response: "Drink more water."}
	h := NewHandler(records, records, model, logging.Default())

	body, _ := json.Marshal(RecommendationRequest{
		SleepHours: 6.5, WaterIntake: 5, ExerciseMinutes: 20,
		Mood: "Neutral", StressLevel: 4, MealQuality: 3,
	})
	w := httptest.NewRecorder()
	h.Recommend(w, authedRequest(http.MethodPost, "/insights/recommendation", body))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp RecommendationResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Drink more water.", resp.Recommendation)

	require.Len(t, model.Requests, 1)
	prompt := model.Requests[0].Messages[0].Content
	assert.Contains(t, prompt, "Height: 176 cm")
	assert.Contains(t, prompt, "Medical Conditions: Hypertension")
	assert.Contains(t, prompt, "Sleep Duration: 6.5 hours")
	assert.Contains(t, prompt, "Stress Level: 4/5")
}

func TestRecommendWithoutProfile(t *testing.T) {
	model := &llm.StaticClient{Response: "ok"}
	h := NewHandler(memory.New(), memory.New(), model, logging.Default())

	w := httptest.NewRecorder()
	h.Recommend(w, authedRequest(http.MethodPost, "/insights/recommendation", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	// No external call happens when validation fails.
	assert.Empty(t, model.Requests)
}

func TestRecommendFallsBackToLatestEntry(t *testing.T) {
	records := memory.New()
	ctx := context.Background()
	require.NoError(t, records.Save(ctx, store.PatientProfile{Email: "amit@example.com"}))
	require.NoError(t, records.Append(ctx, store.DailyTrackingEntry{
		Email: "amit@example.com", Mood: "Poor", SleepHours: 4,
	}))
	require.NoError(t, records.Append(ctx, store.DailyTrackingEntry{
		Email: "amit@example.com", Mood: "Excellent", SleepHours: 8,
	}))

	model := &llm.StaticClient{Response: "Keep it up."}
	h := NewHandler(records, records, model, logging.Default())

	w := httptest.NewRecorder()
	h.Recommend(w, authedRequest(http.MethodPost, "/insights/recommendation", []byte("{}")))

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, model.Requests, 1)
	prompt := model.Requests[0].Messages[0].Content
	assert.Contains(t, prompt, "Mood: Excellent")
	assert.False(t, strings.Contains(prompt, "Mood: Poor"))
}
