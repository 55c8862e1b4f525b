package flow

import "github.com/diavoice/DiaVoice/internal/models"

// RangeFeedback produces advisory lines for a validated numeric answer that
// falls outside the clinically normal band for its field. The thresholds are
// fixed constants, independent of the validator's acceptance bounds and of
// the follow-up dispatch bands. Always returns a list, possibly empty, and
// never mutates state.
func RangeFeedback(field models.Field, value float64) []string {
	var feedback []string

	switch field {
	case models.FieldPregnancies:
		if value > 5 {
			feedback = append(feedback,
				"• Note: Multiple pregnancies can increase diabetes risk.",
				"• Regular monitoring of glucose levels is recommended.",
				"• Consider discussing with your healthcare provider about gestational diabetes screening.")
		}

	case models.FieldGlucose:
		switch {
		case value > 140:
			feedback = append(feedback,
				"• Your glucose level is above normal range (70-140 mg/dL).",
				"• This could indicate prediabetes or diabetes.",
				"• Consider getting a fasting glucose test.",
				"• Monitor for symptoms like increased thirst or frequent urination.")
		case value < 70:
			feedback = append(feedback,
				"• Your glucose level is below normal range (70-140 mg/dL).",
				"• This could indicate hypoglycemia.",
				"• Be aware of symptoms like dizziness, sweating, or confusion.",
				"• Consider eating a small snack if you feel symptoms.")
		case value > 120:
			feedback = append(feedback,
				"• Your glucose level is slightly elevated.",
				"• Consider monitoring your levels regularly.",
				"• Maintain a healthy diet and regular exercise.")
		}

	case models.FieldBloodPressure:
		switch {
		case value > 140:
			feedback = append(feedback,
				"• Your blood pressure is above normal range (90-140 mmHg).",
				"• This could indicate hypertension.",
				"• Consider reducing salt intake and managing stress.",
				"• Regular monitoring is recommended.")
		case value < 90:
			feedback = append(feedback,
				"• Your blood pressure is below normal range (90-140 mmHg).",
				"• This could indicate hypotension.",
				"• Stay hydrated and avoid sudden position changes.",
				"• Monitor for symptoms like dizziness or fatigue.")
		case value > 130:
			feedback = append(feedback,
				"• Your blood pressure is slightly elevated.",
				"• Consider monitoring it regularly.",
				"• Maintain a healthy lifestyle with regular exercise.")
		}

	case models.FieldSkinThickness:
		if value > 40 {
			feedback = append(feedback,
				"• Your skin thickness measurement is elevated.",
				"• This could be related to insulin resistance.",
				"• Consider discussing with your healthcare provider.")
		} else if value < 10 {
			feedback = append(feedback,
				"• Your skin thickness measurement is low.",
				"• This might indicate nutritional status.",
				"• Consider discussing with your healthcare provider.")
		}

	case models.FieldInsulin:
		if value > 24.9 {
			feedback = append(feedback,
				"• Your insulin level is above normal range (2.6-24.9 μU/mL).",
				"• This could indicate insulin resistance.",
				"• Consider discussing with your healthcare provider.",
				"• Regular exercise and healthy diet are important.")
		} else if value < 2.6 {
			feedback = append(feedback,
				"• Your insulin level is below normal range (2.6-24.9 μU/mL).",
				"• This might indicate pancreatic function issues.",
				"• Consider discussing with your healthcare provider.")
		}

	case models.FieldBMI:
		if value > 24.9 {
			feedback = append(feedback, "• Your BMI is above normal range (18.5-24.9).")
			if value > 30 {
				feedback = append(feedback,
					"• This indicates obesity, which increases diabetes risk.",
					"• Consider consulting a healthcare provider for weight management.")
			} else {
				feedback = append(feedback,
					"• This indicates overweight, which can increase diabetes risk.")
			}
			feedback = append(feedback,
				"• Regular exercise and healthy diet are recommended.",
				"• Consider consulting a nutritionist for dietary guidance.")
		} else if value < 18.5 {
			feedback = append(feedback,
				"• Your BMI is below normal range (18.5-24.9).",
				"• This indicates underweight, which can affect health.",
				"• Consider consulting a healthcare provider.",
				"• Focus on healthy weight gain through proper nutrition.")
		}

	case models.FieldDiabetesPedigreeFunction:
		if value > 1.5 {
			feedback = append(feedback,
				"• Your diabetes pedigree function value is elevated.",
				"• This indicates a stronger family history of diabetes.",
				"• Regular screening and monitoring are recommended.",
				"• Maintain a healthy lifestyle to reduce risk.")
		}

	case models.FieldAge:
		if value > 65 {
			feedback = append(feedback,
				"• As you're over 65, regular health screenings are important.",
				"• Consider more frequent check-ups.",
				"• Focus on maintaining a healthy lifestyle.")
		} else if value < 30 {
			feedback = append(feedback,
				"• While you're young, early prevention is important.",
				"• Maintain healthy habits to reduce future risk.")
		}
	}

	return feedback
}
