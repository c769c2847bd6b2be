package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"image/color"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaidyahealth/vaidya-platform/pkg/logging"
)

func imageUpload(t *testing.T, target string, payload []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", "scan.png")
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func predictVia(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Post("/predict/{model}", h.Predict)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPredictReturnsTopLabelAndVector(t *testing.T) {
	classifier := &StubClassifier{Probabilities: []float64{0.05, 0.85, 0.07, 0.03}}
	h := NewHandler(classifier, logging.Default())

	img := encodePNG(t, solidImage(32, 32, color.White))
	w := predictVia(h, imageUpload(t, "/predict/eye", img))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp PredictionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "eye", resp.Model)
	assert.Equal(t, "Diabetic Retinopathy", resp.PredictedLabel)
	assert.Equal(t, 0.85, resp.Confidence)
	assert.True(t, resp.HighConfidence)
	require.Len(t, resp.Probabilities, 4)
	assert.Equal(t, "Cataract", resp.Probabilities[0].Label)

	assert.Equal(t, []string{"eye"}, classifier.Calls)
}

func TestPredictLowConfidence(t *testing.T) {
	classifier := &StubClassifier{Probabilities: []float64{0.4, 0.6}}
	h := NewHandler(classifier, logging.Default())

	img := encodePNG(t, solidImage(32, 32, color.Black))
	w := predictVia(h, imageUpload(t, "/predict/heart", img))
	require.Equal(t, http.StatusOK, w.Code)

	var resp PredictionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Heart Disease", resp.PredictedLabel)
	assert.False(t, resp.HighConfidence)
}

func TestPredictUnknownModel(t *testing.T) {
	h := NewHandler(&StubClassifier{}, logging.Default())

	img := encodePNG(t, solidImage(8, 8, color.White))
	w := predictVia(h, imageUpload(t, "/predict/liver", img))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "unknown prediction model")
}

func TestPredictBadImage(t *testing.T) {
	h := NewHandler(&StubClassifier{Probabilities: []float64{1}}, logging.Default())

	w := predictVia(h, imageUpload(t, "/predict/skin", []byte("junk")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPredictMissingImage(t *testing.T) {
	h := NewHandler(&StubClassifier{}, logging.Default())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/predict/skin", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := predictVia(h, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInferenceClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/skin/predict", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"probabilities":[0.1,0.9]}`))
	}))
	defer srv.Close()

	client, err := NewInferenceClient(InferenceConfig{BaseURL: srv.URL, APIKey: "secret"})
	require.NoError(t, err)

	probs, err := client.Classify(context.Background(), "skin", []float32{0.5})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.9}, probs)
}

func TestInferenceClientErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"model loading"}`))
	}))
	defer srv.Close()

	client, err := NewInferenceClient(InferenceConfig{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.Classify(context.Background(), "eye", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model loading")
}
