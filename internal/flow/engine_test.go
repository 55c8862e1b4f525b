package flow

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/diavoice/DiaVoice/internal/models"
	"github.com/diavoice/DiaVoice/internal/store"
)

func newTestEngine() *Engine {
	return NewEngine(store.NewInMemoryStore())
}

// turn processes one utterance and fails the test on an engine error.
func turn(t *testing.T, e *Engine, sessionID, text string) models.TurnResult {
	t.Helper()
	result, err := e.ProcessTurn(context.Background(), sessionID, text)
	if err != nil {
		t.Fatalf("ProcessTurn(%q) unexpected error: %v", text, err)
	}
	return result
}

func TestEngineFirstTurnGender(t *testing.T) {
	e := newTestEngine()
	result := turn(t, e, "s1", "male")
	if !result.Valid {
		t.Fatalf("gender turn rejected: %q", result.Message)
	}
	if result.NextField != models.FieldGlucose {
		t.Errorf("next field after male = %s, want Glucose (Pregnancies skipped)", result.NextField)
	}
	if !strings.Contains(result.Message, "Received Gender: male.") {
		t.Errorf("message missing echo: %q", result.Message)
	}
}

func TestEngineFemaleAsksPregnancies(t *testing.T) {
	e := newTestEngine()
	result := turn(t, e, "s1", "female")
	if result.NextField != models.FieldPregnancies {
		t.Errorf("next field after female = %s, want Pregnancies", result.NextField)
	}
}

func TestEngineInvalidGenderLeavesStateUnchanged(t *testing.T) {
	e := newTestEngine()
	result := turn(t, e, "s1", "unknown")
	if result.Valid {
		t.Fatal("invalid gender should not be accepted")
	}
	if result.Message != "Please provide a valid gender (male/female)." {
		t.Errorf("unexpected re-prompt: %q", result.Message)
	}
	if result.CurrentQuestion != models.FieldGender {
		t.Errorf("current question = %s, want Gender", result.CurrentQuestion)
	}

	// The rejected turn must not have persisted anything.
	state, err := e.Session(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != nil && len(state.Answers) > 0 {
		t.Errorf("rejected turn persisted answers: %v", state.Answers)
	}
}

func TestEngineNumberExtractionFromSpeech(t *testing.T) {
	e := newTestEngine()
	turn(t, e, "s1", "male")
	result := turn(t, e, "s1", "it is about 100 I think")
	if !result.Valid {
		t.Fatalf("embedded numeral rejected: %q", result.Message)
	}
	if !strings.Contains(result.Message, "Received Glucose: 100.") {
		t.Errorf("message missing echo: %q", result.Message)
	}
}

func TestEngineNoNumberReprompts(t *testing.T) {
	e := newTestEngine()
	turn(t, e, "s1", "male")
	result := turn(t, e, "s1", "quite high I believe")
	if result.Valid {
		t.Fatal("text with no numeral should be rejected")
	}
	want := "I couldn't understand the number for glucose. Please provide a numeric value."
	if result.Message != want {
		t.Errorf("re-prompt = %q, want %q", result.Message, want)
	}
}

func TestEngineFollowUpDispatchOnHighGlucose(t *testing.T) {
	e := newTestEngine()
	turn(t, e, "s1", "male")
	result := turn(t, e, "s1", "148")

	if !result.IsFollowUp {
		t.Fatal("glucose 148 should enter the follow-up sub-flow")
	}
	if result.NextFollowUp != models.FieldGlucoseFasting {
		t.Errorf("first follow-up = %s, want GlucoseFasting", result.NextFollowUp)
	}
	if !result.HasFeedback || !strings.Contains(result.Message, "Important Note:") {
		t.Errorf("high glucose should carry feedback: %q", result.Message)
	}

	state, err := e.Session(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.PendingFollowUps) != 7 {
		t.Errorf("pending queue = %d, want 7", len(state.PendingFollowUps))
	}
}

func TestEngineFollowUpInvalidAnswerReprompts(t *testing.T) {
	e := newTestEngine()
	turn(t, e, "s1", "male")
	turn(t, e, "s1", "148")

	result := turn(t, e, "s1", "maybe")
	if result.Valid {
		t.Fatal("ambiguous yes/no should be rejected")
	}
	if !strings.HasPrefix(result.Message, "Please provide a valid response for:") {
		t.Errorf("unexpected re-prompt: %q", result.Message)
	}
	if result.NextFollowUp != models.FieldGlucoseFasting {
		t.Errorf("follow-up should not advance on rejection, got %s", result.NextFollowUp)
	}

	// A valid answer then advances to the second follow-up.
	result = turn(t, e, "s1", "yes")
	if !result.Valid || result.NextFollowUp != models.FieldGlucoseTime {
		t.Errorf("expected advance to GlucoseTime, got %s (%q)", result.NextFollowUp, result.Message)
	}
}

// TestEngineFullAssessment walks the classic high-risk profile end to end:
// male, glucose 148, blood pressure 72, skin 35, insulin 0, BMI 33.6,
// pedigree 0.627, age 50. Glucose dispatches the high list, blood pressure
// the low list, BMI the high list; insulin 0 produces feedback only.
func TestEngineFullAssessment(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	const sid = "s1"

	turn(t, e, sid, "male")

	// Glucose 148 dispatches 8 follow-ups.
	result := turn(t, e, sid, "148")
	if !result.IsFollowUp {
		t.Fatalf("expected follow-up sub-flow after glucose 148: %q", result.Message)
	}
	for _, answer := range []string{"yes", "morning", "no", "no", "no", "yes", "healthy", "regularly"} {
		result = turn(t, e, sid, answer)
		if !result.Valid {
			t.Fatalf("follow-up answer %q rejected: %q", answer, result.Message)
		}
	}
	if result.NextField != models.FieldBloodPressure {
		t.Fatalf("after glucose follow-ups expected BloodPressure, got %s", result.NextField)
	}

	// Blood pressure 72 is below 90 and dispatches the low list.
	result = turn(t, e, sid, "72")
	if !result.IsFollowUp || result.NextFollowUp != models.FieldBPSymptoms {
		t.Fatalf("expected low blood pressure follow-ups, got %+v", result)
	}
	for _, answer := range []string{"no", "no", "no", "8", "no"} {
		result = turn(t, e, sid, answer)
		if !result.Valid {
			t.Fatalf("follow-up answer %q rejected: %q", answer, result.Message)
		}
	}
	if result.NextField != models.FieldSkinThickness {
		t.Fatalf("after blood pressure follow-ups expected SkinThickness, got %s", result.NextField)
	}

	result = turn(t, e, sid, "35")
	if result.NextField != models.FieldInsulin {
		t.Fatalf("after skin thickness expected Insulin, got %s", result.NextField)
	}

	// Insulin 0 carries low-insulin feedback but no follow-ups.
	result = turn(t, e, sid, "0")
	if result.IsFollowUp {
		t.Fatal("insulin must not dispatch follow-ups")
	}
	if !result.HasFeedback {
		t.Error("insulin 0 should carry low-insulin feedback")
	}
	if result.NextField != models.FieldBMI {
		t.Fatalf("after insulin expected BMI, got %s", result.NextField)
	}

	// BMI 33.6 dispatches the high list.
	result = turn(t, e, sid, "33.6")
	if !result.IsFollowUp || result.NextFollowUp != models.FieldBMIActivity {
		t.Fatalf("expected high BMI follow-ups, got %+v", result)
	}
	for _, answer := range []string{"regularly", "healthy", "no", "no", "7", "6", "3", "never"} {
		result = turn(t, e, sid, answer)
		if !result.Valid {
			t.Fatalf("follow-up answer %q rejected: %q", answer, result.Message)
		}
	}
	if result.NextField != models.FieldDiabetesPedigreeFunction {
		t.Fatalf("after BMI follow-ups expected DiabetesPedigreeFunction, got %s", result.NextField)
	}

	result = turn(t, e, sid, "0.627")
	if result.NextField != models.FieldAge {
		t.Fatalf("after pedigree expected Age, got %s", result.NextField)
	}

	result = turn(t, e, sid, "50")
	if !result.IsComplete {
		t.Fatalf("expected completion after age, got %+v", result)
	}
	if !strings.Contains(result.Message, "All questions answered. Requesting prediction...") {
		t.Errorf("completion message missing: %q", result.Message)
	}

	state, err := e.Session(ctx, sid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	features, err := FeatureVector(state)
	if err != nil {
		t.Fatalf("FeatureVector error: %v", err)
	}
	want := [8]float64{0, 148, 72, 35, 0, 33.6, 0.627, 50}
	if features != want {
		t.Errorf("feature vector = %v, want %v", features, want)
	}
}

func TestEngineElderlyFollowUpsAfterFinalQuestion(t *testing.T) {
	// Age is the last primary question; an elderly answer must still run its
	// follow-ups before the session completes.
	e := newTestEngine()
	const sid = "s1"

	for _, answer := range []string{"male", "100", "100", "20", "10", "22", "0.5"} {
		result := turn(t, e, sid, answer)
		if !result.Valid {
			t.Fatalf("answer %q rejected: %q", answer, result.Message)
		}
	}

	result := turn(t, e, sid, "70")
	if result.IsComplete {
		t.Fatal("elderly follow-ups must run before completion")
	}
	if !result.IsFollowUp || result.NextFollowUp != models.FieldAgeActivity {
		t.Fatalf("expected AgeActivity follow-up, got %+v", result)
	}

	for _, answer := range []string{"moderate", "no", "2", "yes"} {
		result = turn(t, e, sid, answer)
		if !result.Valid {
			t.Fatalf("follow-up answer %q rejected: %q", answer, result.Message)
		}
	}
	result = turn(t, e, sid, "yearly")
	if !result.IsComplete {
		t.Fatalf("expected completion after elderly follow-ups, got %+v", result)
	}
}

func TestEngineTurnAfterCompletion(t *testing.T) {
	e := newTestEngine()
	const sid = "s1"
	for _, answer := range []string{"male", "100", "100", "20", "10", "22", "0.5", "40"} {
		turn(t, e, sid, answer)
	}

	result := turn(t, e, sid, "hello")
	if !result.IsComplete {
		t.Fatal("post-completion turn should report completion")
	}
	if result.Message != "All questions have been answered. Please request prediction." {
		t.Errorf("unexpected message: %q", result.Message)
	}
}

func TestEngineCurrentPromptIdempotent(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	info1, err := e.CurrentPrompt(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info2, err := e.CurrentPrompt(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info1 != info2 {
		t.Errorf("repeated CurrentPrompt disagreed: %+v vs %+v", info1, info2)
	}
	if info1.Field != models.FieldGender {
		t.Errorf("fresh session prompt = %s, want Gender", info1.Field)
	}
}

func TestEngineCurrentPromptDuringFollowUp(t *testing.T) {
	e := newTestEngine()
	turn(t, e, "s1", "male")
	turn(t, e, "s1", "148")

	info, err := e.CurrentPrompt(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Field != models.FieldGlucoseFasting {
		t.Errorf("prompt mid follow-up = %s, want GlucoseFasting", info.Field)
	}
}

func TestEngineReset(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	turn(t, e, "s1", "male")
	turn(t, e, "s1", "148")

	if err := e.Reset(ctx, "s1"); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	state, err := e.Session(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != nil {
		t.Errorf("state should be gone after reset, got %+v", state)
	}

	result := turn(t, e, "s1", "female")
	if result.NextField != models.FieldPregnancies {
		t.Errorf("post-reset conversation should restart, got %s", result.NextField)
	}
}

func TestFeatureVectorIncomplete(t *testing.T) {
	state := models.NewSessionState("s1")
	if _, err := FeatureVector(state); !errors.Is(err, models.ErrSessionIncomplete) {
		t.Errorf("expected ErrSessionIncomplete, got %v", err)
	}
	if _, err := FeatureVector(nil); !errors.Is(err, models.ErrSessionIncomplete) {
		t.Errorf("expected ErrSessionIncomplete for nil state, got %v", err)
	}
}
