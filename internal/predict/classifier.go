package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Classifier scores a preprocessed image against a model's label set and
// returns one probability per label.
type Classifier interface {
	Classify(ctx context.Context, modelKey string, input []float32) ([]float64, error)
}

// InferenceConfig controls the hosted inference client.
type InferenceConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// InferenceClient calls a hosted inference endpoint. One POST per
// prediction; the service returns the full probability vector.
type InferenceClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewInferenceClient creates a configured InferenceClient.
func NewInferenceClient(cfg InferenceConfig) (*InferenceClient, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errors.New("predict: inference base URL is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &InferenceClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}, nil
}

type inferenceRequest struct {
	Input []float32 `json:"input"`
}

type inferenceResponse struct {
	Probabilities []float64 `json:"probabilities"`
	Error         string    `json:"error"`
}

// Classify posts the preprocessed input to /models/{key}/predict.
func (c *InferenceClient) Classify(ctx context.Context, modelKey string, input []float32) ([]float64, error) {
	body, err := json.Marshal(inferenceRequest{Input: input})
	if err != nil {
		return nil, fmt.Errorf("predict: encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s/predict", c.baseURL, modelKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("predict: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("predict: call inference service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("predict: read response: %w", err)
	}

	var decoded inferenceResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, fmt.Errorf("predict: decode response: %w", err)
	}
	if resp.StatusCode >= 400 {
		if decoded.Error != "" {
			return nil, fmt.Errorf("predict: inference status %d: %s", resp.StatusCode, decoded.Error)
		}
		return nil, fmt.Errorf("predict: inference status %d", resp.StatusCode)
	}
	return decoded.Probabilities, nil
}

// StubClassifier returns a fixed probability vector. Used when no
// inference service is configured and in tests.
type StubClassifier struct {
	Probabilities []float64
	Err           error

	// Calls records the model keys classified, in order.
	Calls []string
}

// Classify returns the configured vector, padding or truncating to the
// model's label count so the stub stays usable for every model.
func (s *StubClassifier) Classify(ctx context.Context, modelKey string, input []float32) ([]float64, error) {
	s.Calls = append(s.Calls, modelKey)
	if s.Err != nil {
		return nil, s.Err
	}
	model, ok := Lookup(modelKey)
	if !ok {
		return nil, fmt.Errorf("predict: unknown model %q", modelKey)
	}
	probs := make([]float64, len(model.Labels))
	copy(probs, s.Probabilities)
	return probs, nil
}
