package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValueString(t *testing.T) {
	if got := NumberValue(33.6).String(); got != "33.6" {
		t.Errorf("NumberValue(33.6).String() = %q, want 33.6", got)
	}
	if got := NumberValue(148).String(); got != "148" {
		t.Errorf("NumberValue(148).String() = %q, want 148", got)
	}
	if got := TextValue("male").String(); got != "male" {
		t.Errorf("TextValue(male).String() = %q, want male", got)
	}
}

func TestValueJSONRoundTrip(t *testing.T) {
	state := NewSessionState("s1")
	state.Answers[FieldGender] = TextValue("female")
	state.Answers[FieldBMI] = NumberValue(33.6)

	data, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded SessionState
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if v := decoded.Answers[FieldGender]; !v.IsText || v.Text != "female" {
		t.Errorf("text answer lost in round trip: %v", v)
	}
	if v := decoded.Answers[FieldBMI]; v.IsText || v.Number != 33.6 {
		t.Errorf("numeric answer lost in round trip: %v", v)
	}
}

func TestPopFollowUp(t *testing.T) {
	state := NewSessionState("s1")
	state.ActiveFollowUp = FieldGlucoseFasting
	state.PendingFollowUps = []Field{FieldGlucoseTime, FieldGlucoseSymptoms}

	if !state.PopFollowUp() {
		t.Fatal("expected a queued follow-up")
	}
	if state.ActiveFollowUp != FieldGlucoseTime {
		t.Errorf("active = %s, want GlucoseTime", state.ActiveFollowUp)
	}
	if !state.PopFollowUp() {
		t.Fatal("expected a second queued follow-up")
	}
	if state.PopFollowUp() {
		t.Error("empty queue should report false")
	}
	if state.ActiveFollowUp != "" {
		t.Errorf("active should be cleared on drain, got %s", state.ActiveFollowUp)
	}
	if state.InFollowUp() {
		t.Error("InFollowUp should be false after drain")
	}
}

func TestAllAnswered(t *testing.T) {
	state := NewSessionState("s1")
	if state.AllAnswered() {
		t.Error("fresh session should not be complete")
	}
	for _, q := range PrimaryQuestions {
		state.Answers[q.Field] = NumberValue(1)
	}
	if !state.AllAnswered() {
		t.Error("session with every primary answer should be complete")
	}
}

func TestValidationErrorUnwrap(t *testing.T) {
	err := NewValidationError(ErrOutOfRange, "Please provide a valid age (21-81 years).")
	if !errors.Is(err, ErrOutOfRange) {
		t.Error("errors.Is should match the kind")
	}
	if err.Error() != "Please provide a valid age (21-81 years)." {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestPrimaryQuestionOrder(t *testing.T) {
	want := []Field{
		FieldGender, FieldPregnancies, FieldGlucose, FieldBloodPressure,
		FieldSkinThickness, FieldInsulin, FieldBMI,
		FieldDiabetesPedigreeFunction, FieldAge,
	}
	if len(PrimaryQuestions) != len(want) {
		t.Fatalf("primary question count = %d, want %d", len(PrimaryQuestions), len(want))
	}
	for i, q := range PrimaryQuestions {
		if q.Field != want[i] {
			t.Errorf("question %d = %s, want %s", i, q.Field, want[i])
		}
	}
}

func TestFeatureOrderMatchesSpecs(t *testing.T) {
	if len(FeatureOrder) != 8 {
		t.Fatalf("feature order length = %d, want 8", len(FeatureOrder))
	}
	for _, f := range FeatureOrder {
		if !IsPrimaryField(f) {
			t.Errorf("feature %s has no primary spec", f)
		}
	}
}
