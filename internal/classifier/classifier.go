// Package classifier provides the risk-prediction collaborator. The trained
// model lives behind a scoring service; this package wraps the HTTP contract
// and exposes a mock for tests. The conversation core never retries a failed
// prediction; the error surfaces to the caller as terminal for that request.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/diavoice/DiaVoice/internal/models"
)

// Prediction is the classifier output: a binary label and the positive-class
// probability.
type Prediction struct {
	Label       int     `json:"prediction"`
	Probability float64 `json:"probability"`
}

// Service defines the prediction contract consumed by the API layer. The
// feature vector order is Pregnancies, Glucose, BloodPressure, SkinThickness,
// Insulin, BMI, DiabetesPedigreeFunction, Age.
type Service interface {
	Predict(ctx context.Context, features [8]float64) (Prediction, error)
}

// Opts holds configuration options for the scoring client.
type Opts struct {
	BaseURL string
	Timeout time.Duration
}

// Option defines a configuration option for the scoring client.
type Option func(*Opts)

// WithBaseURL sets the scoring service base URL.
func WithBaseURL(url string) Option {
	return func(o *Opts) { o.BaseURL = url }
}

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Opts) { o.Timeout = d }
}

// DefaultTimeout bounds a single scoring request.
const DefaultTimeout = 10 * time.Second

// Client calls a model-scoring service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient initializes a scoring client, falling back to the MODEL_URL
// environment variable when no base URL option is provided.
func NewClient(opts ...Option) (*Client, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("MODEL_URL")
	}
	slog.Debug("Classifier client config loaded", "BaseURL_set", cfg.BaseURL != "")
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("model scoring URL not set")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type predictRequest struct {
	Features [8]float64 `json:"features"`
}

// Predict posts the feature vector to the scoring service and decodes the
// label and probability.
func (c *Client) Predict(ctx context.Context, features [8]float64) (Prediction, error) {
	slog.Debug("Classifier Predict invoked")

	body, err := json.Marshal(predictRequest{Features: features})
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to marshal prediction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to build prediction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Error("Classifier request failed", "error", err)
		return Prediction{}, fmt.Errorf("%w: scoring service unreachable: %w", models.ErrClassifierFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("Classifier returned non-OK status", "status", resp.StatusCode)
		return Prediction{}, fmt.Errorf("%w: scoring service returned status %d", models.ErrClassifierFailed, resp.StatusCode)
	}

	var p Prediction
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		slog.Error("Classifier response decode failed", "error", err)
		return Prediction{}, fmt.Errorf("%w: failed to decode prediction response: %w", models.ErrClassifierFailed, err)
	}

	slog.Debug("Classifier Predict succeeded", "label", p.Label, "probability", p.Probability)
	return p, nil
}

// MockClassifier is a test double returning a fixed prediction.
type MockClassifier struct {
	Result Prediction
	Err    error
	// LastFeatures records the most recent feature vector received.
	LastFeatures [8]float64
	Calls        int
}

// Predict returns the configured prediction or error.
func (m *MockClassifier) Predict(ctx context.Context, features [8]float64) (Prediction, error) {
	m.Calls++
	m.LastFeatures = features
	if m.Err != nil {
		return Prediction{}, m.Err
	}
	return m.Result, nil
}
