package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/diavoice/DiaVoice/internal/models"
	"github.com/diavoice/DiaVoice/internal/store"
)

// Engine drives the assessment conversation against a session store. All
// turn processing is synchronous, in-memory computation; the store is read
// once at the start of a turn and written once on success, so a failed
// validation never leaves partial mutation behind.
type Engine struct {
	store store.Store
}

// NewEngine creates a conversation engine backed by a session store.
func NewEngine(st store.Store) *Engine {
	slog.Debug("Creating conversation engine")
	return &Engine{store: st}
}

// loadOrCreate fetches the session state, creating a fresh one on first
// contact.
func (e *Engine) loadOrCreate(sessionID string) (*models.SessionState, error) {
	state, err := e.store.GetSession(sessionID)
	if err != nil {
		slog.Error("Engine.loadOrCreate: store get failed", "error", err, "session_id", sessionID)
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	if state == nil {
		slog.Debug("Engine.loadOrCreate: new session", "session_id", sessionID)
		state = models.NewSessionState(sessionID)
	}
	return state, nil
}

func (e *Engine) save(state *models.SessionState) error {
	state.UpdatedAt = time.Now()
	if err := e.store.SaveSession(*state); err != nil {
		slog.Error("Engine.save: store save failed", "error", err, "session_id", state.SessionID)
		return fmt.Errorf("failed to save session %s: %w", state.SessionID, err)
	}
	return nil
}

// ProcessTurn resolves one user utterance (already transcribed to text)
// against the active follow-up or the next primary question. Validation
// failures re-prompt the same question and leave the stored state untouched.
func (e *Engine) ProcessTurn(ctx context.Context, sessionID, text string) (models.TurnResult, error) {
	slog.Debug("Engine.ProcessTurn invoked", "session_id", sessionID)

	state, err := e.loadOrCreate(sessionID)
	if err != nil {
		return models.TurnResult{}, err
	}

	if state.InFollowUp() {
		return e.processFollowUpTurn(state, text)
	}
	return e.processPrimaryTurn(state, text)
}

// processFollowUpTurn resolves the turn against the active follow-up field.
func (e *Engine) processFollowUpTurn(state *models.SessionState, text string) (models.TurnResult, error) {
	field := state.ActiveFollowUp
	prompt := FollowUpPrompt(field)

	value, err := ValidateFollowUp(field, text)
	if err != nil {
		slog.Debug("Engine follow-up validation failed", "session_id", state.SessionID, "field", field, "error", err)
		return models.TurnResult{
			Message:         fmt.Sprintf("Please provide a valid response for: %s", prompt),
			IsFollowUp:      true,
			NextFollowUp:    field,
			CurrentQuestion: field,
			QuestionText:    prompt,
		}, nil
	}

	state.FollowUpAnswers[field] = value

	if state.PopFollowUp() {
		next := state.ActiveFollowUp
		nextPrompt := FollowUpPrompt(next)
		if err := e.save(state); err != nil {
			return models.TurnResult{}, err
		}
		slog.Debug("Engine follow-up answered, next queued", "session_id", state.SessionID, "field", field, "next", next)
		return models.TurnResult{
			Message:         fmt.Sprintf("Received %s: %s. %s", field, value, nextPrompt),
			IsFollowUp:      true,
			NextFollowUp:    next,
			CurrentQuestion: next,
			QuestionText:    nextPrompt,
			Valid:           true,
		}, nil
	}

	// Follow-up sub-flow drained; hand control back to the sequencer.
	question, more := NextQuestion(state)
	if err := e.save(state); err != nil {
		return models.TurnResult{}, err
	}
	if !more {
		slog.Debug("Engine follow-ups drained, questionnaire complete", "session_id", state.SessionID)
		return models.TurnResult{
			Message:    "Thank you for providing that information. All questions answered. Requesting prediction...",
			IsComplete: true,
			Valid:      true,
		}, nil
	}
	slog.Debug("Engine follow-ups drained, resuming primary questions", "session_id", state.SessionID, "next", question.Field)
	return models.TurnResult{
		Message:         fmt.Sprintf("Thank you for providing that information. %s", question.Prompt),
		NextField:       question.Field,
		CurrentQuestion: question.Field,
		QuestionText:    question.Prompt,
		Valid:           true,
	}, nil
}

// processPrimaryTurn resolves the turn against the next primary question.
func (e *Engine) processPrimaryTurn(state *models.SessionState, text string) (models.TurnResult, error) {
	question, more := NextQuestion(state)
	if !more {
		return models.TurnResult{
			Message:    "All questions have been answered. Please request prediction.",
			IsComplete: true,
		}, nil
	}
	field := question.Field

	value, err := ParsePrimary(field, text)
	if err != nil {
		slog.Debug("Engine primary validation failed", "session_id", state.SessionID, "field", field, "error", err)
		return models.TurnResult{
			Message:         err.Error(),
			CurrentQuestion: field,
			QuestionText:    question.Prompt,
		}, nil
	}

	state.Answers[field] = value
	if field == models.FieldGender && value.Text == "male" {
		state.Answers[models.FieldPregnancies] = models.NumberValue(0)
	}

	var feedback []string
	if field != models.FieldGender {
		feedback = RangeFeedback(field, value.Number)
	}

	var message string
	if len(feedback) > 0 {
		message = fmt.Sprintf("Received %s: %s.\n\nImportant Note:\n%s\n\n", field, value, strings.Join(feedback, "\n"))
	} else {
		message = fmt.Sprintf("Received %s: %s. ", field, value)
	}

	state.QuestionIndex++

	// Follow-ups take precedence over advancing, even after the final
	// primary question.
	if !value.IsText {
		if followUps := FollowUpsFor(field, value.Number); len(followUps) > 0 {
			first := followUps[0]
			state.ActiveFollowUp = first.Field
			state.PendingFollowUps = state.PendingFollowUps[:0]
			for _, q := range followUps[1:] {
				state.PendingFollowUps = append(state.PendingFollowUps, q.Field)
			}
			if err := e.save(state); err != nil {
				return models.TurnResult{}, err
			}
			slog.Debug("Engine dispatched follow-ups", "session_id", state.SessionID, "field", field, "count", len(followUps))
			return models.TurnResult{
				Message:         message + "\n" + first.Prompt,
				IsFollowUp:      true,
				NextFollowUp:    first.Field,
				CurrentQuestion: first.Field,
				QuestionText:    first.Prompt,
				HasFeedback:     len(feedback) > 0,
				Valid:           true,
			}, nil
		}
	}

	next, more := NextQuestion(state)
	if err := e.save(state); err != nil {
		return models.TurnResult{}, err
	}
	if !more {
		slog.Info("Engine questionnaire complete", "session_id", state.SessionID)
		return models.TurnResult{
			Message:     message + "\nAll questions answered. Requesting prediction...",
			IsComplete:  true,
			HasFeedback: len(feedback) > 0,
			Valid:       true,
		}, nil
	}
	return models.TurnResult{
		Message:         message + next.Prompt,
		NextField:       next.Field,
		CurrentQuestion: next.Field,
		QuestionText:    next.Prompt,
		HasFeedback:     len(feedback) > 0,
		Valid:           true,
	}, nil
}

// CurrentPrompt reports the question the session is currently waiting on
// without consuming a turn. Calling it repeatedly returns the same prompt.
func (e *Engine) CurrentPrompt(ctx context.Context, sessionID string) (models.QuestionInfo, error) {
	state, err := e.loadOrCreate(sessionID)
	if err != nil {
		return models.QuestionInfo{}, err
	}

	if state.InFollowUp() {
		return models.QuestionInfo{
			Field:    state.ActiveFollowUp,
			Question: FollowUpPrompt(state.ActiveFollowUp),
		}, nil
	}

	question, more := NextQuestion(state)
	if err := e.save(state); err != nil {
		return models.QuestionInfo{}, err
	}
	if !more {
		return models.QuestionInfo{IsComplete: true}, nil
	}
	return models.QuestionInfo{Field: question.Field, Question: question.Prompt}, nil
}

// Session returns the stored conversation state, or nil when the session
// has no state yet.
func (e *Engine) Session(ctx context.Context, sessionID string) (*models.SessionState, error) {
	state, err := e.store.GetSession(sessionID)
	if err != nil {
		slog.Error("Engine.Session: store get failed", "error", err, "session_id", sessionID)
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	return state, nil
}

// Reset discards all conversation state for the session. Safe to call
// regardless of current state.
func (e *Engine) Reset(ctx context.Context, sessionID string) error {
	if err := e.store.DeleteSession(sessionID); err != nil {
		slog.Error("Engine.Reset: store delete failed", "error", err, "session_id", sessionID)
		return fmt.Errorf("failed to reset session %s: %w", sessionID, err)
	}
	slog.Info("Engine.Reset succeeded", "session_id", sessionID)
	return nil
}

// FeatureVector assembles the classifier input in the exact feature order.
// The session must have every primary question answered.
func FeatureVector(state *models.SessionState) ([8]float64, error) {
	var features [8]float64
	if state == nil || !state.AllAnswered() {
		return features, models.ErrSessionIncomplete
	}
	for i, field := range models.FeatureOrder {
		features[i] = state.Answers[field].Number
	}
	return features, nil
}
