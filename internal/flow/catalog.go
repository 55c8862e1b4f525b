package flow

import "github.com/diavoice/DiaVoice/internal/models"

// Band identifies which side of the clinical dispatch thresholds a validated
// value fell on.
type Band string

const (
	// BandHigh triggers the high-value follow-up list for a field.
	BandHigh Band = "high"
	// BandLow triggers the low-value follow-up list for a field.
	BandLow Band = "low"
	// BandElderly triggers the elderly follow-up list (Age only).
	BandElderly Band = "elderly"
	// BandNone produces no follow-ups.
	BandNone Band = ""
)

// followUpCatalog maps (primary field, band) to the ordered follow-up list.
// List order is the order the questions are asked and must stay fixed.
var followUpCatalog = map[models.Field]map[Band][]models.Question{
	models.FieldGlucose: {
		BandHigh: {
			{Field: models.FieldGlucoseFasting, Prompt: "Was this measurement taken while fasting? (yes/no)"},
			{Field: models.FieldGlucoseTime, Prompt: "When was this measurement taken? (morning/afternoon/evening)"},
			{Field: models.FieldGlucoseSymptoms, Prompt: "Are you experiencing any symptoms like increased thirst or frequent urination? (yes/no)"},
			{Field: models.FieldGlucoseHistory, Prompt: "Have you had high glucose readings before? (yes/no)"},
			{Field: models.FieldGlucoseMedication, Prompt: "Are you currently taking any diabetes medication? (yes/no)"},
			{Field: models.FieldGlucoseFamily, Prompt: "Do you have any family members with diabetes? (yes/no)"},
			{Field: models.FieldGlucoseDiet, Prompt: "How would you describe your typical diet? (healthy/moderate/poor)"},
			{Field: models.FieldGlucoseExercise, Prompt: "How often do you exercise? (never/occasionally/regularly)"},
		},
		BandLow: {
			{Field: models.FieldGlucoseSymptoms, Prompt: "Are you experiencing any symptoms like dizziness or sweating? (yes/no)"},
			{Field: models.FieldGlucoseLastMeal, Prompt: "When did you last eat? (hours ago)"},
			{Field: models.FieldGlucoseMedication, Prompt: "Are you taking any medications that might affect blood sugar? (yes/no)"},
			{Field: models.FieldGlucoseHistory, Prompt: "Have you had low glucose readings before? (yes/no)"},
		},
	},
	models.FieldBloodPressure: {
		BandHigh: {
			{Field: models.FieldBPMedication, Prompt: "Are you currently taking any blood pressure medication? (yes/no)"},
			{Field: models.FieldBPStress, Prompt: "Are you currently experiencing stress? (yes/no)"},
			{Field: models.FieldBPActivity, Prompt: "Were you physically active before this measurement? (yes/no)"},
			{Field: models.FieldBPHistory, Prompt: "Have you had high blood pressure before? (yes/no)"},
			{Field: models.FieldBPSalt, Prompt: "How would you describe your salt intake? (low/moderate/high)"},
			{Field: models.FieldBPFamily, Prompt: "Do you have any family members with high blood pressure? (yes/no)"},
			{Field: models.FieldBPSleep, Prompt: "How many hours of sleep do you typically get? (hours)"},
			{Field: models.FieldBPCaffeine, Prompt: "How many caffeinated drinks do you have daily? (number)"},
		},
		BandLow: {
			{Field: models.FieldBPSymptoms, Prompt: "Are you experiencing any symptoms like dizziness or fatigue? (yes/no)"},
			{Field: models.FieldBPMedication, Prompt: "Are you currently taking any blood pressure medication? (yes/no)"},
			{Field: models.FieldBPHistory, Prompt: "Have you had low blood pressure before? (yes/no)"},
			{Field: models.FieldBPHydration, Prompt: "How much water do you drink daily? (glasses)"},
			{Field: models.FieldBPStanding, Prompt: "Do you feel dizzy when standing up quickly? (yes/no)"},
		},
	},
	models.FieldBMI: {
		BandHigh: {
			{Field: models.FieldBMIActivity, Prompt: "How often do you exercise? (never/occasionally/regularly)"},
			{Field: models.FieldBMIDiet, Prompt: "How would you describe your diet? (healthy/moderate/poor)"},
			{Field: models.FieldBMIWeightHistory, Prompt: "Has your weight changed significantly in the last year? (yes/no)"},
			{Field: models.FieldBMIFamily, Prompt: "Do you have any family members with weight-related health issues? (yes/no)"},
			{Field: models.FieldBMISleep, Prompt: "How many hours of sleep do you typically get? (hours)"},
			{Field: models.FieldBMISedentary, Prompt: "How many hours do you spend sitting daily? (hours)"},
			{Field: models.FieldBMIMealPattern, Prompt: "How many meals do you eat per day? (number)"},
			{Field: models.FieldBMISnacking, Prompt: "How often do you snack between meals? (never/occasionally/frequently)"},
		},
		BandLow: {
			{Field: models.FieldBMIAppetite, Prompt: "Have you experienced any loss of appetite? (yes/no)"},
			{Field: models.FieldBMIWeightHistory, Prompt: "Has your weight changed significantly in the last year? (yes/no)"},
			{Field: models.FieldBMIMedical, Prompt: "Are you currently being treated for any medical conditions? (yes/no)"},
			{Field: models.FieldBMIDiet, Prompt: "How would you describe your diet? (healthy/moderate/poor)"},
			{Field: models.FieldBMISymptoms, Prompt: "Are you experiencing any other symptoms? (yes/no)"},
			{Field: models.FieldBMIFamily, Prompt: "Do you have any family members with similar weight patterns? (yes/no)"},
		},
	},
	models.FieldAge: {
		BandElderly: {
			{Field: models.FieldAgeActivity, Prompt: "How would you describe your physical activity level? (sedentary/moderate/active)"},
			{Field: models.FieldAgeMobility, Prompt: "Do you have any mobility issues? (yes/no)"},
			{Field: models.FieldAgeMedication, Prompt: "How many medications do you take daily? (number)"},
			{Field: models.FieldAgeSupport, Prompt: "Do you have family or caregiver support? (yes/no)"},
			{Field: models.FieldAgeCheckups, Prompt: "How often do you get medical checkups? (monthly/quarterly/yearly/rarely)"},
		},
	},
}

// bandFor evaluates the dispatch band for a validated primary value. The
// thresholds are independent of the validator's acceptance bounds.
func bandFor(field models.Field, value float64) Band {
	switch field {
	case models.FieldGlucose:
		if value > 140 {
			return BandHigh
		}
		if value < 70 {
			return BandLow
		}
	case models.FieldBloodPressure:
		if value > 140 {
			return BandHigh
		}
		if value < 90 {
			return BandLow
		}
	case models.FieldBMI:
		if value > 24.9 {
			return BandHigh
		}
		if value < 18.5 {
			return BandLow
		}
	case models.FieldAge:
		if value > 65 {
			return BandElderly
		}
	}
	return BandNone
}

// FollowUpsFor returns the ordered follow-up questions triggered by a
// validated primary answer, or nil when the value is in band. Pure lookup;
// the caller merges the result into the pending queue.
func FollowUpsFor(field models.Field, value float64) []models.Question {
	byBand, ok := followUpCatalog[field]
	if !ok {
		return nil
	}
	band := bandFor(field, value)
	if band == BandNone {
		return nil
	}
	return byBand[band]
}

// FollowUpPrompt returns the prompt text for a follow-up field, searching
// the full catalog. Used to re-prompt after a failed validation.
func FollowUpPrompt(field models.Field) string {
	for _, byBand := range followUpCatalog {
		for _, list := range byBand {
			for _, q := range list {
				if q.Field == field {
					return q.Prompt
				}
			}
		}
	}
	return ""
}
