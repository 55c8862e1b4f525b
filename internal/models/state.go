// Package models defines state management structures for DiaVoice sessions.
package models

import (
	"strconv"
	"time"
)

// Value holds one validated answer. Numeric answers carry Number; gender,
// yes/no, and enum answers carry Text with IsText set.
type Value struct {
	Number float64 `json:"number,omitempty"`
	Text   string  `json:"text,omitempty"`
	IsText bool    `json:"is_text,omitempty"`
}

// NumberValue wraps a validated numeric answer.
func NumberValue(n float64) Value {
	return Value{Number: n}
}

// TextValue wraps a validated textual answer.
func TextValue(s string) Value {
	return Value{Text: s, IsText: true}
}

// String renders the value the way it is echoed back to the user.
func (v Value) String() string {
	if v.IsText {
		return v.Text
	}
	return strconv.FormatFloat(v.Number, 'g', -1, 64)
}

// SessionState is the per-session conversation record. One inbound turn is
// processed against it at a time; the API layer serializes access per session.
type SessionState struct {
	SessionID        string          `json:"session_id"`
	Answers          map[Field]Value `json:"answers"`
	QuestionIndex    int             `json:"question_index"`
	PendingFollowUps []Field         `json:"pending_follow_ups,omitempty"`
	ActiveFollowUp   Field           `json:"active_follow_up,omitempty"`
	FollowUpAnswers  map[Field]Value `json:"follow_up_answers,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// NewSessionState creates an empty conversation state for a session.
func NewSessionState(sessionID string) *SessionState {
	now := time.Now()
	return &SessionState{
		SessionID:       sessionID,
		Answers:         make(map[Field]Value),
		FollowUpAnswers: make(map[Field]Value),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// InFollowUp reports whether the conversation is mid follow-up sub-flow.
func (s *SessionState) InFollowUp() bool {
	return s.ActiveFollowUp != ""
}

// AllAnswered reports whether every primary question has a stored answer.
func (s *SessionState) AllAnswered() bool {
	return len(s.Answers) >= len(PrimaryQuestions)
}

// PopFollowUp dequeues the next pending follow-up into ActiveFollowUp.
// It returns false when the queue is empty, clearing the active field.
func (s *SessionState) PopFollowUp() bool {
	if len(s.PendingFollowUps) == 0 {
		s.ActiveFollowUp = ""
		return false
	}
	s.ActiveFollowUp = s.PendingFollowUps[0]
	s.PendingFollowUps = s.PendingFollowUps[1:]
	return true
}
