package flow

import (
	"strings"
	"testing"

	"github.com/diavoice/DiaVoice/internal/models"
)

func TestRangeFeedbackGlucoseTiers(t *testing.T) {
	high := RangeFeedback(models.FieldGlucose, 150)
	if len(high) != 4 || !strings.Contains(high[0], "above normal range") {
		t.Errorf("high glucose feedback wrong: %v", high)
	}

	low := RangeFeedback(models.FieldGlucose, 65)
	if len(low) != 4 || !strings.Contains(low[1], "hypoglycemia") {
		t.Errorf("low glucose feedback wrong: %v", low)
	}

	borderline := RangeFeedback(models.FieldGlucose, 130)
	if len(borderline) != 3 || !strings.Contains(borderline[0], "slightly elevated") {
		t.Errorf("borderline glucose feedback wrong: %v", borderline)
	}

	if got := RangeFeedback(models.FieldGlucose, 100); len(got) != 0 {
		t.Errorf("in-band glucose should produce no feedback, got %v", got)
	}
}

func TestRangeFeedbackBloodPressureTiers(t *testing.T) {
	if got := RangeFeedback(models.FieldBloodPressure, 145); !strings.Contains(strings.Join(got, "\n"), "hypertension") {
		t.Errorf("high blood pressure feedback wrong: %v", got)
	}
	if got := RangeFeedback(models.FieldBloodPressure, 135); !strings.Contains(strings.Join(got, "\n"), "slightly elevated") {
		t.Errorf("borderline blood pressure feedback wrong: %v", got)
	}
	if got := RangeFeedback(models.FieldBloodPressure, 85); !strings.Contains(strings.Join(got, "\n"), "hypotension") {
		t.Errorf("low blood pressure feedback wrong: %v", got)
	}
	if got := RangeFeedback(models.FieldBloodPressure, 120); len(got) != 0 {
		t.Errorf("in-band blood pressure should produce no feedback, got %v", got)
	}
}

func TestRangeFeedbackBMIObesityBranch(t *testing.T) {
	obese := strings.Join(RangeFeedback(models.FieldBMI, 31), "\n")
	if !strings.Contains(obese, "obesity") {
		t.Errorf("BMI 31 should mention obesity: %q", obese)
	}
	overweight := strings.Join(RangeFeedback(models.FieldBMI, 27), "\n")
	if !strings.Contains(overweight, "overweight") || strings.Contains(overweight, "obesity") {
		t.Errorf("BMI 27 should mention overweight only: %q", overweight)
	}
	underweight := strings.Join(RangeFeedback(models.FieldBMI, 17), "\n")
	if !strings.Contains(underweight, "underweight") {
		t.Errorf("BMI 17 should mention underweight: %q", underweight)
	}
}

func TestRangeFeedbackOtherFields(t *testing.T) {
	if got := RangeFeedback(models.FieldPregnancies, 6); len(got) != 3 {
		t.Errorf("pregnancies > 5 feedback = %v", got)
	}
	if got := RangeFeedback(models.FieldPregnancies, 5); len(got) != 0 {
		t.Errorf("pregnancies 5 should produce no feedback, got %v", got)
	}
	if got := RangeFeedback(models.FieldSkinThickness, 45); !strings.Contains(strings.Join(got, "\n"), "elevated") {
		t.Errorf("skin thickness 45 feedback = %v", got)
	}
	if got := RangeFeedback(models.FieldInsulin, 30); !strings.Contains(strings.Join(got, "\n"), "insulin resistance") {
		t.Errorf("insulin 30 feedback = %v", got)
	}
	if got := RangeFeedback(models.FieldDiabetesPedigreeFunction, 1.6); len(got) != 4 {
		t.Errorf("pedigree 1.6 feedback = %v", got)
	}
	if got := RangeFeedback(models.FieldAge, 70); !strings.Contains(strings.Join(got, "\n"), "over 65") {
		t.Errorf("age 70 feedback = %v", got)
	}
	if got := RangeFeedback(models.FieldAge, 25); !strings.Contains(strings.Join(got, "\n"), "young") {
		t.Errorf("age 25 feedback = %v", got)
	}
	if got := RangeFeedback(models.FieldAge, 50); len(got) != 0 {
		t.Errorf("age 50 should produce no feedback, got %v", got)
	}
}
