// Package transcribe provides speech-to-text conversion using the OpenAI
// audio API. The conversation engine treats it as an external collaborator:
// a failed transcription is a turn-level error with no state mutation.
package transcribe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/diavoice/DiaVoice/internal/models"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ErrUnrecognized indicates the audio produced no usable transcript. The
// caller should ask the user to speak clearly and try again.
var ErrUnrecognized = errors.New("could not understand the audio")

// Service defines the transcription contract consumed by the API layer.
type Service interface {
	Transcribe(ctx context.Context, audio []byte, filename, contentType string) (string, error)
}

// Opts holds configuration options for the transcription client.
type Opts struct {
	APIKey string
	Model  string
}

// Option defines a configuration option for the transcription client.
type Option func(*Opts)

// WithAPIKey sets the OpenAI API key.
func WithAPIKey(key string) Option {
	return func(o *Opts) { o.APIKey = key }
}

// WithModel overrides the transcription model.
func WithModel(model string) Option {
	return func(o *Opts) { o.Model = model }
}

// Client wraps the OpenAI audio transcription endpoint.
type Client struct {
	client openai.Client
	model  openai.AudioModel
}

// NewClient initializes a transcription client, falling back to the
// OPENAI_API_KEY environment variable when no key option is provided.
func NewClient(opts ...Option) (*Client, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	slog.Debug("Transcribe client config loaded", "APIKey_set", cfg.APIKey != "", "model", cfg.Model)
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}

	model := openai.AudioModelWhisper1
	if cfg.Model != "" {
		model = openai.AudioModel(cfg.Model)
	}

	return &Client{
		client: openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:  model,
	}, nil
}

// Transcribe converts captured audio into text. It returns ErrUnrecognized
// when the service yields an empty transcript, and wraps transport errors
// otherwise.
func (c *Client) Transcribe(ctx context.Context, audio []byte, filename, contentType string) (string, error) {
	slog.Debug("Transcribe invoked", "bytes", len(audio), "filename", filename, "content_type", contentType)

	resp, err := c.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: c.model,
		File:  openai.File(bytes.NewReader(audio), filename, contentType),
	})
	if err != nil {
		slog.Error("Transcribe request failed", "error", err)
		return "", fmt.Errorf("%w: %w", models.ErrTranscriptionFailed, err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		slog.Warn("Transcribe produced empty transcript", "filename", filename)
		return "", ErrUnrecognized
	}

	slog.Debug("Transcribe succeeded", "chars", len(text))
	return text, nil
}

// MockTranscriber is a test double that returns canned transcripts.
type MockTranscriber struct {
	Text string
	Err  error
	// Calls records the audio payload sizes received.
	Calls []int
}

// Transcribe returns the configured transcript or error.
func (m *MockTranscriber) Transcribe(ctx context.Context, audio []byte, filename, contentType string) (string, error) {
	m.Calls = append(m.Calls, len(audio))
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}
