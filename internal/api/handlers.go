// Package api provides HTTP handlers for DiaVoice endpoints.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/diavoice/DiaVoice/internal/flow"
	"github.com/diavoice/DiaVoice/internal/models"
	"github.com/diavoice/DiaVoice/internal/transcribe"
)

// MaxAudioBytes bounds an uploaded voice turn.
const MaxAudioBytes = 10 << 20

// turnResponse is the wire shape of a processed turn: the envelope status
// plus the inlined turn result fields.
type turnResponse struct {
	Status string `json:"status"`
	models.TurnResult
}

// questionResponse is the wire shape of the current-question endpoint.
type questionResponse struct {
	Status     string       `json:"status"`
	Field      models.Field `json:"field,omitempty"`
	Question   string       `json:"question,omitempty"`
	Message    string       `json:"message,omitempty"`
	IsComplete bool         `json:"is_complete"`
}

// predictResponse is the wire shape of a served prediction.
type predictResponse struct {
	Status      string  `json:"status"`
	Prediction  int     `json:"prediction"`
	Probability float64 `json:"probability"`
	Message     string  `json:"message"`
}

func statusOf(valid bool) string {
	if valid {
		return string(models.APIStatusOK)
	}
	return string(models.APIStatusError)
}

// processTextHandler handles POST /api/process-text: one typed conversation
// turn.
func (s *Server) processTextHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.processTextHandler: processing text turn", "method", r.Method, "path", r.URL.Path)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		slog.Warn("Server.processTextHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.processTextHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}

	sessionID := s.sessionID(w, r)
	unlock := s.locks.acquire(sessionID)
	result, err := s.engine.ProcessTurn(r.Context(), sessionID, req.Text)
	unlock()
	if err != nil {
		slog.Error("Server.processTextHandler: turn processing failed", "error", err, "session_id", sessionID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to process turn"))
		return
	}

	writeJSONResponse(w, http.StatusOK, turnResponse{Status: statusOf(result.Valid), TurnResult: result})
}

// processVoiceHandler handles POST /api/process-voice: a multipart audio
// upload that is transcribed and then processed as a turn. Transcription
// failures leave the conversation state unchanged.
func (s *Server) processVoiceHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.processVoiceHandler: processing voice turn", "method", r.Method, "path", r.URL.Path)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		slog.Warn("Server.processVoiceHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if s.transcriber == nil {
		slog.Warn("Server.processVoiceHandler: transcription not configured")
		writeJSONResponse(w, http.StatusServiceUnavailable, models.Error("Voice input is not available"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxAudioBytes)
	file, header, err := r.FormFile("audio")
	if err != nil {
		slog.Warn("Server.processVoiceHandler: no audio file in request", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("No audio file received"))
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		slog.Error("Server.processVoiceHandler: failed to read audio", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Failed to read audio file"))
		return
	}
	slog.Debug("Server.processVoiceHandler: audio received",
		"filename", header.Filename, "bytes", len(audio), "content_type", header.Header.Get("Content-Type"))

	// Transcription happens before the session lock is taken; it can be
	// slow and must not block other turns in the session queue.
	text, err := s.transcriber.Transcribe(r.Context(), audio, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, transcribe.ErrUnrecognized) {
			writeJSONResponse(w, http.StatusOK, models.Error("Could not understand the audio. Please speak clearly and try again."))
			return
		}
		slog.Error("Server.processVoiceHandler: transcription failed", "error", err)
		writeJSONResponse(w, http.StatusBadGateway, models.Error("Error with speech recognition service. Please try again."))
		return
	}
	slog.Debug("Server.processVoiceHandler: transcript obtained", "chars", len(text))

	sessionID := s.sessionID(w, r)
	unlock := s.locks.acquire(sessionID)
	result, err := s.engine.ProcessTurn(r.Context(), sessionID, text)
	unlock()
	if err != nil {
		slog.Error("Server.processVoiceHandler: turn processing failed", "error", err, "session_id", sessionID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Error processing voice input"))
		return
	}

	writeJSONResponse(w, http.StatusOK, turnResponse{Status: statusOf(result.Valid), TurnResult: result})
}

// currentQuestionHandler handles GET /api/current-question.
func (s *Server) currentQuestionHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.currentQuestionHandler invoked", "method", r.Method)
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sessionID := s.sessionID(w, r)
	unlock := s.locks.acquire(sessionID)
	info, err := s.engine.CurrentPrompt(r.Context(), sessionID)
	unlock()
	if err != nil {
		slog.Error("Server.currentQuestionHandler failed", "error", err, "session_id", sessionID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to load current question"))
		return
	}

	if info.IsComplete {
		writeJSONResponse(w, http.StatusOK, questionResponse{
			Status:     string(models.APIStatusOK),
			Message:    "All questions have been answered.",
			IsComplete: true,
		})
		return
	}
	writeJSONResponse(w, http.StatusOK, questionResponse{
		Status:   string(models.APIStatusOK),
		Field:    info.Field,
		Question: info.Question,
	})
}

// predictHandler handles GET /api/predict. The classifier is invoked outside
// the session lock; the session is cleared only after a successful
// prediction, so a classifier outage is retryable.
func (s *Server) predictHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.predictHandler invoked", "method", r.Method)
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if s.predictor == nil {
		slog.Warn("Server.predictHandler: classifier not configured")
		writeJSONResponse(w, http.StatusServiceUnavailable, models.Error("Prediction service is not available"))
		return
	}

	sessionID := s.sessionID(w, r)

	unlock := s.locks.acquire(sessionID)
	state, err := s.engine.Session(r.Context(), sessionID)
	if err != nil {
		unlock()
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to load session"))
		return
	}
	features, err := flow.FeatureVector(state)
	unlock()
	if err != nil {
		slog.Warn("Server.predictHandler: session incomplete", "session_id", sessionID)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Not all questions have been answered yet."))
		return
	}

	prediction, err := s.predictor.Predict(r.Context(), features)
	if err != nil {
		slog.Error("Server.predictHandler: classifier failed", "error", err, "session_id", sessionID)
		writeJSONResponse(w, http.StatusBadGateway, models.Error("Prediction failed. Please try again."))
		return
	}

	unlock = s.locks.acquire(sessionID)
	message := flow.ComposeRecommendation(state.Answers, state.FollowUpAnswers, prediction.Label, prediction.Probability)
	if err := s.engine.Reset(r.Context(), sessionID); err != nil {
		slog.Warn("Server.predictHandler: failed to clear session after prediction", "error", err, "session_id", sessionID)
	}
	unlock()

	if to := r.URL.Query().Get("notify"); to != "" && s.notifier != nil {
		if err := s.notifier.SendMessage(r.Context(), to, message); err != nil {
			slog.Warn("Server.predictHandler: SMS delivery failed", "error", err, "to", to)
		}
	}

	slog.Info("Server.predictHandler: prediction served", "session_id", sessionID, "label", prediction.Label)
	writeJSONResponse(w, http.StatusOK, predictResponse{
		Status:      string(models.APIStatusOK),
		Prediction:  prediction.Label,
		Probability: prediction.Probability,
		Message:     message,
	})
}

// preventiveMeasuresHandler handles POST /api/preventive-measures.
func (s *Server) preventiveMeasuresHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.preventiveMeasuresHandler invoked", "method", r.Method)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sessionID := s.sessionID(w, r)
	unlock := s.locks.acquire(sessionID)
	state, err := s.engine.Session(r.Context(), sessionID)
	unlock()
	if err != nil {
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to load session"))
		return
	}

	answers := map[models.Field]models.Value{}
	followUps := map[models.Field]models.Value{}
	if state != nil {
		answers = state.Answers
		followUps = state.FollowUpAnswers
	}

	message := flow.ComposePreventiveMeasures(answers, followUps)
	writeJSONResponse(w, http.StatusOK, struct {
		Status      string `json:"status"`
		Message     string `json:"message"`
		HasMoreInfo bool   `json:"has_more_info"`
	}{string(models.APIStatusOK), message, true})
}

// resetHandler handles POST /api/reset: discards all session state and
// returns the first question.
func (s *Server) resetHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.resetHandler invoked", "method", r.Method)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sessionID := s.sessionID(w, r)
	unlock := s.locks.acquire(sessionID)
	err := s.engine.Reset(r.Context(), sessionID)
	unlock()
	if err != nil {
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to reset session"))
		return
	}

	writeJSONResponse(w, http.StatusOK, struct {
		Status       string `json:"status"`
		Message      string `json:"message"`
		NextQuestion string `json:"next_question"`
	}{string(models.APIStatusOK), "Session reset successfully. Starting over...", models.PrimaryQuestions[0].Prompt})
}

// healthHandler handles GET /health.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("ok", nil))
}
