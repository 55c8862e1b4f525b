// Package models defines the core data structures for DiaVoice.
//
// It includes the turn and prediction result types shared across modules and
// the standard JSON response envelope used by the API layer.
package models

import "errors"

// Error variables for better error handling and testability
var (
	// ErrNotNumeric indicates input that does not parse as a real number.
	ErrNotNumeric = errors.New("input is not numeric")
	// ErrOutOfRange indicates a numeric value outside the field's acceptance bounds.
	ErrOutOfRange = errors.New("value out of accepted range")
	// ErrInvalidCategorical indicates a gender answer outside the synonym set.
	ErrInvalidCategorical = errors.New("invalid categorical value")
	// ErrInvalidEnum indicates an answer outside a closed choice list.
	ErrInvalidEnum = errors.New("invalid choice")
	// ErrInvalidYesNo indicates an answer outside the yes/no synonym sets.
	ErrInvalidYesNo = errors.New("invalid yes/no answer")
	// ErrNoNumberFound indicates free text with no extractable numeral.
	ErrNoNumberFound = errors.New("no number found in input")
	// ErrUnknownField indicates a field with no schema entry.
	ErrUnknownField = errors.New("unknown field")
	// ErrTranscriptionFailed indicates the speech-to-text collaborator failed.
	ErrTranscriptionFailed = errors.New("transcription failed")
	// ErrSessionIncomplete indicates a prediction request before all primary
	// questions were answered.
	ErrSessionIncomplete = errors.New("not all questions have been answered yet")
	// ErrClassifierFailed indicates the risk classifier collaborator failed.
	ErrClassifierFailed = errors.New("classifier request failed")
)

// ValidationError carries a user-facing re-prompt message alongside the
// error kind, so handlers can echo the message and tests can match the kind
// with errors.Is.
type ValidationError struct {
	Kind    error
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Unwrap exposes the error kind for errors.Is matching.
func (e *ValidationError) Unwrap() error { return e.Kind }

// NewValidationError builds a ValidationError for the given kind and message.
func NewValidationError(kind error, message string) *ValidationError {
	return &ValidationError{Kind: kind, Message: message}
}

// TurnResult describes the outcome of one processed conversation turn.
// Field names mirror the wire contract consumed by the web client.
type TurnResult struct {
	Message         string `json:"message"`
	NextField       Field  `json:"next_feature,omitempty"`
	IsFollowUp      bool   `json:"is_follow_up"`
	NextFollowUp    Field  `json:"next_follow_up,omitempty"`
	IsComplete      bool   `json:"is_complete"`
	CurrentQuestion Field  `json:"current_question,omitempty"`
	QuestionText    string `json:"question_text,omitempty"`
	HasFeedback     bool   `json:"has_feedback,omitempty"`

	// Valid is false when the turn failed validation and the state was left
	// unchanged. Not part of the wire contract; the envelope status carries it.
	Valid bool `json:"-"`
}

// QuestionInfo describes the question a session is currently waiting on.
type QuestionInfo struct {
	Field      Field  `json:"field,omitempty"`
	Question   string `json:"question,omitempty"`
	IsComplete bool   `json:"is_complete"`
}

// PredictionResult is the classifier outcome plus the composed narrative.
type PredictionResult struct {
	Prediction  int     `json:"prediction"`
	Probability float64 `json:"probability"`
	Message     string  `json:"message"`
}

// APIStatus represents the status of an API response.
type APIStatus string

const (
	// APIStatusOK indicates a successful API response.
	APIStatusOK APIStatus = "success"
	// APIStatusError indicates a failed API response.
	APIStatusError APIStatus = "error"
)

// APIResponse represents a standard API response with a status and optional data.
type APIResponse struct {
	Status  string      `json:"status"`            // status of the API response
	Message string      `json:"message,omitempty"` // optional message for error responses or additional info
	Result  interface{} `json:"result,omitempty"`  // optional result data for successful responses
}

// APIResponseBuilder provides a fluent interface for building API responses.
type APIResponseBuilder struct {
	response APIResponse
}

// NewAPIResponseBuilder creates a new APIResponseBuilder instance.
func NewAPIResponseBuilder() *APIResponseBuilder {
	return &APIResponseBuilder{response: APIResponse{}}
}

// WithStatus sets the status of the API response.
func (b *APIResponseBuilder) WithStatus(status APIStatus) *APIResponseBuilder {
	b.response.Status = string(status)
	return b
}

// WithMessage sets the message of the API response.
func (b *APIResponseBuilder) WithMessage(message string) *APIResponseBuilder {
	b.response.Message = message
	return b
}

// WithResult sets the result data of the API response.
func (b *APIResponseBuilder) WithResult(result interface{}) *APIResponseBuilder {
	b.response.Result = result
	return b
}

// Build constructs and returns the final APIResponse.
func (b *APIResponseBuilder) Build() APIResponse {
	return b.response
}

// Success creates a successful API response with optional result data.
func Success(result interface{}) APIResponse {
	return NewAPIResponseBuilder().
		WithStatus(APIStatusOK).
		WithResult(result).
		Build()
}

// SuccessWithMessage creates a successful API response with a message and optional result data.
func SuccessWithMessage(message string, result interface{}) APIResponse {
	return NewAPIResponseBuilder().
		WithStatus(APIStatusOK).
		WithMessage(message).
		WithResult(result).
		Build()
}

// Error creates an error API response with a message.
func Error(message string) APIResponse {
	return NewAPIResponseBuilder().
		WithStatus(APIStatusError).
		WithMessage(message).
		Build()
}
