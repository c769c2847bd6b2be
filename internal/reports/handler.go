// Package reports analyzes uploaded medical reports: text is extracted
// from each PDF and sent to the model with a fixed layman-terms prompt.
package reports

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/vaidyahealth/vaidya-platform/internal/llm"
	"github.com/vaidyahealth/vaidya-platform/pkg/logging"
)

const systemPrompt = "You are a professional medical analysis AI. Provide comprehensive, evidence-based health recommendations with clear, actionable insights."

const analysisPrompt = "Analyze this report as if the user does not have any idea about the report and is least knowledgeable in the medical field. Explain in their language what problem they are actually facing, what precautions and medications apply, and what daily lifestyle they should follow based on the report.\n\n%s"

// maxUploadBytes bounds a single report upload.
const maxUploadBytes = 20 << 20

// Handler handles HTTP requests for report analysis.
type Handler struct {
	extractor TextExtractor
	model     llm.Client
	logger    *logging.Logger
}

// NewHandler creates a new reports handler.
func NewHandler(extractor TextExtractor, model llm.Client, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{extractor: extractor, model: model, logger: logger}
}

// FileAnalysis is the per-file outcome.
type FileAnalysis struct {
	Filename string `json:"filename"`
	Analysis string `json:"analysis,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Analyze handles POST /reports/analyze with one or more "files" parts.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no report files uploaded")
		return
	}

	results := make([]FileAnalysis, 0, len(files))
	for _, header := range files {
		result := FileAnalysis{Filename: header.Filename}

		file, err := header.Open()
		if err != nil {
			result.Error = "failed to read upload"
			results = append(results, result)
			continue
		}
		data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		_ = file.Close()
		if err != nil {
			result.Error = "failed to read upload"
			results = append(results, result)
			continue
		}

		text, err := h.extractor.Extract(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			h.logger.Error("report extraction failed", "error", err, "file", header.Filename)
			result.Error = "failed to extract text from report"
			results = append(results, result)
			continue
		}

		resp, err := h.model.Complete(r.Context(), llm.Request{
			System: []string{systemPrompt},
			Messages: []llm.ChatMessage{
				{Role: llm.ChatRoleUser, Content: fmt.Sprintf(analysisPrompt, text)},
			},
		})
		if err != nil {
			h.logger.Error("report analysis failed", "error", err, "file", header.Filename)
			result.Error = "analysis error, please try again"
			results = append(results, result)
			continue
		}

		result.Analysis = resp.Text
		results = append(results, result)
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
