package predict

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vaidyahealth/vaidya-platform/pkg/logging"
)

// confidenceThreshold separates confident predictions from ones worth a
// better photo.
const confidenceThreshold = 0.8

// maxImageBytes bounds a single image upload.
const maxImageBytes = 10 << 20

// Handler handles HTTP requests for disease prediction.
type Handler struct {
	classifier Classifier
	logger     *logging.Logger
}

// NewHandler creates a new predict handler.
func NewHandler(classifier Classifier, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{classifier: classifier, logger: logger}
}

// LabelScore pairs a label with its probability.
type LabelScore struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}

// PredictionResponse carries the top label and the full vector.
type PredictionResponse struct {
	Model          string       `json:"model"`
	PredictedLabel string       `json:"predicted_label"`
	Confidence     float64      `json:"confidence"`
	HighConfidence bool         `json:"high_confidence"`
	Probabilities  []LabelScore `json:"probabilities"`
}

// ListModels handles GET /predict/models.
func (h *Handler) ListModels(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Key    string   `json:"key"`
		Title  string   `json:"title"`
		Labels []string `json:"labels"`
	}
	out := make([]entry, 0, len(models))
	for _, key := range []string{"eye", "heart", "hairfall", "skin"} {
		m := models[key]
		out = append(out, entry{Key: m.Key, Title: m.Title, Labels: m.Labels})
	}
	writeJSON(w, http.StatusOK, map[string]any{"models": out})
}

// Predict handles POST /predict/{model} with an "image" multipart part.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "model")
	model, ok := Lookup(key)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown prediction model")
		return
	}

	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid image upload")
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "please upload an image")
		return
	}
	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	_ = file.Close()
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read image")
		return
	}

	input, err := Preprocess(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not decode image, please upload a jpg or png")
		return
	}

	probs, err := h.classifier.Classify(r.Context(), model.Key, input)
	if err != nil {
		h.logger.Error("classification failed", "error", err, "model", model.Key)
		writeError(w, http.StatusBadGateway, "prediction failed, please try again")
		return
	}
	if len(probs) != len(model.Labels) {
		h.logger.Error("probability vector length mismatch",
			"model", model.Key, "got", len(probs), "want", len(model.Labels))
		writeError(w, http.StatusBadGateway, "prediction failed, please try again")
		return
	}

	best := 0
	scores := make([]LabelScore, len(model.Labels))
	for i, label := range model.Labels {
		scores[i] = LabelScore{Label: label, Probability: probs[i]}
		if probs[i] > probs[best] {
			best = i
		}
	}

	writeJSON(w, http.StatusOK, PredictionResponse{
		Model:          model.Key,
		PredictedLabel: model.Labels[best],
		Confidence:     probs[best],
		HighConfidence: probs[best] > confidenceThreshold,
		Probabilities:  scores,
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
