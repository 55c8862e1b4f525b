package flow

import (
	"testing"

	"github.com/diavoice/DiaVoice/internal/models"
)

func TestNextQuestionStartsWithGender(t *testing.T) {
	state := models.NewSessionState("s1")
	q, more := NextQuestion(state)
	if !more {
		t.Fatal("expected a question for a fresh session")
	}
	if q.Field != models.FieldGender {
		t.Errorf("first question = %s, want Gender", q.Field)
	}
}

func TestNextQuestionSkipsPregnanciesForMale(t *testing.T) {
	state := models.NewSessionState("s1")
	state.Answers[models.FieldGender] = models.TextValue("male")
	state.QuestionIndex = 1

	q, more := NextQuestion(state)
	if !more {
		t.Fatal("expected a question after the male skip")
	}
	if q.Field != models.FieldGlucose {
		t.Errorf("question after skip = %s, want Glucose", q.Field)
	}
	if v := state.Answers[models.FieldPregnancies]; v.IsText || v.Number != 0 {
		t.Errorf("Pregnancies should be auto-answered 0, got %v", v)
	}
	if state.QuestionIndex != 2 {
		t.Errorf("index after skip = %d, want 2", state.QuestionIndex)
	}
}

func TestNextQuestionAsksPregnanciesForFemale(t *testing.T) {
	state := models.NewSessionState("s1")
	state.Answers[models.FieldGender] = models.TextValue("female")
	state.QuestionIndex = 1

	q, more := NextQuestion(state)
	if !more {
		t.Fatal("expected a question")
	}
	if q.Field != models.FieldPregnancies {
		t.Errorf("question = %s, want Pregnancies", q.Field)
	}
	if _, ok := state.Answers[models.FieldPregnancies]; ok {
		t.Error("Pregnancies must not be auto-answered for female participants")
	}
}

func TestNextQuestionExhausted(t *testing.T) {
	state := models.NewSessionState("s1")
	state.QuestionIndex = len(models.PrimaryQuestions)
	if _, more := NextQuestion(state); more {
		t.Error("expected no question once the index passes the last entry")
	}
}

func TestNextQuestionIdempotentForFixedState(t *testing.T) {
	state := models.NewSessionState("s1")
	state.Answers[models.FieldGender] = models.TextValue("female")
	state.QuestionIndex = 3

	q1, _ := NextQuestion(state)
	q2, _ := NextQuestion(state)
	if q1 != q2 {
		t.Errorf("repeated calls disagreed: %v vs %v", q1, q2)
	}
}
