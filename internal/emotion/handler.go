package emotion

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"

	"github.com/vaidyahealth/vaidya-platform/internal/llm"
	"github.com/vaidyahealth/vaidya-platform/pkg/logging"
)

// Handler handles HTTP requests for emotional wellness analysis.
type Handler struct {
	log    *Log
	model  llm.Client
	logger *logging.Logger
}

// NewHandler creates a new emotion handler.
func NewHandler(log *Log, model llm.Client, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{log: log, model: model, logger: logger}
}

// AnalysisResponse is the wellness report.
type AnalysisResponse struct {
	Summary    Summary `json:"summary"`
	Assessment string  `json:"assessment"`
}

// Analyze handles POST /emotion/analysis. It loads the accumulated
// emotion log, computes the top-5 views and asks the model for a
// mental-health assessment.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	entries, err := h.log.Load()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			writeError(w, http.StatusNotFound, "no emotion data recorded yet")
			return
		}
		h.logger.Error("emotion log load failed", "error", err)
		writeError(w, http.StatusInternalServerError, "error reading emotion data")
		return
	}
	if len(entries) == 0 {
		writeError(w, http.StatusNotFound, "no emotion data recorded yet")
		return
	}

	summary := Summarize(entries, 5)
	assessment, err := Assess(r.Context(), h.model, entries, summary)
	if err != nil {
		h.logger.Error("assessment failed", "error", err)
		writeError(w, http.StatusBadGateway, "error generating assessment")
		return
	}

	writeJSON(w, http.StatusOK, AnalysisResponse{Summary: summary, Assessment: assessment})
}

// SummaryOnly handles GET /emotion/summary without calling the model.
func (h *Handler) SummaryOnly(w http.ResponseWriter, r *http.Request) {
	entries, err := h.log.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		h.logger.Error("emotion log load failed", "error", err)
		writeError(w, http.StatusInternalServerError, "error reading emotion data")
		return
	}
	writeJSON(w, http.StatusOK, Summarize(entries, 5))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
