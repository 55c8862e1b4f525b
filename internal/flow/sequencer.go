package flow

import (
	"log/slog"

	"github.com/diavoice/DiaVoice/internal/models"
)

// pregnanciesIndex is the position of the Pregnancies question in the
// primary list; it is skipped for male participants.
const pregnanciesIndex = 1

// NextQuestion returns the primary question the session is waiting on.
// It applies the one implicit-answer rule in the system: when the current
// index addresses Pregnancies and the stored gender is male, Pregnancies is
// answered automatically with 0 and the index advances past it. The second
// return is false once every primary question has been answered.
//
// For a fixed answers map and index the returned question is always the
// same; NextQuestion mutates nothing except the male skip.
func NextQuestion(state *models.SessionState) (models.Question, bool) {
	if state.QuestionIndex >= len(models.PrimaryQuestions) {
		return models.Question{}, false
	}

	if state.QuestionIndex == pregnanciesIndex && state.Answers[models.FieldGender].Text == "male" {
		state.Answers[models.FieldPregnancies] = models.NumberValue(0)
		state.QuestionIndex++
		slog.Debug("Sequencer skipped Pregnancies for male participant", "session_id", state.SessionID)
		if state.QuestionIndex >= len(models.PrimaryQuestions) {
			return models.Question{}, false
		}
	}

	return models.PrimaryQuestions[state.QuestionIndex], true
}
