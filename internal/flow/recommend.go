package flow

import (
	"fmt"
	"strings"

	"github.com/diavoice/DiaVoice/internal/models"
)

// followUpText returns the stored textual follow-up answer, or "" if absent.
func followUpText(fa map[models.Field]models.Value, f models.Field) string {
	v, ok := fa[f]
	if !ok || !v.IsText {
		return ""
	}
	return v.Text
}

// followUpNumber returns the stored numeric follow-up answer and whether it
// was present.
func followUpNumber(fa map[models.Field]models.Value, f models.Field) (float64, bool) {
	v, ok := fa[f]
	if !ok || v.IsText {
		return 0, false
	}
	return v.Number, true
}

func answerNumber(answers map[models.Field]models.Value, f models.Field) float64 {
	return answers[f].Number
}

// ComposeRecommendation assembles the personalized risk narrative from the
// primary answers, the follow-up answers, and the classifier output. Section
// and line order is fixed; identical inputs always produce identical text.
// Performs no I/O and mutates nothing.
func ComposeRecommendation(answers, followUps map[models.Field]models.Value, label int, probability float64) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Based on the provided information, there is a %.1f%% chance of diabetes risk.\n\n", probability*100)

	if label == 1 {
		b.WriteString("Here are your personalized recommendations based on your responses:\n\n")

		if answerNumber(answers, models.FieldGlucose) > 140 {
			b.WriteString("• Regarding your glucose levels:\n")
			if followUpText(followUps, models.FieldGlucoseFasting) == "no" {
				b.WriteString("  - Consider getting a fasting glucose test\n")
			}
			if followUpText(followUps, models.FieldGlucoseSymptoms) == "yes" {
				b.WriteString("  - Please consult a doctor about your symptoms\n")
			}
			if followUpText(followUps, models.FieldGlucoseHistory) == "yes" {
				b.WriteString("  - Regular monitoring of your glucose levels is important\n")
			}
			if followUpText(followUps, models.FieldGlucoseFamily) == "yes" {
				b.WriteString("  - Given your family history, regular screening is recommended\n")
			}
			if diet := followUpText(followUps, models.FieldGlucoseDiet); diet == "moderate" || diet == "poor" {
				b.WriteString("  - Consider consulting a nutritionist for dietary guidance\n")
			}
			if ex := followUpText(followUps, models.FieldGlucoseExercise); ex == "never" || ex == "occasionally" {
				b.WriteString("  - Regular exercise can help manage glucose levels\n")
			}
			b.WriteString("  - Monitor your blood sugar regularly\n\n")
		}

		if answerNumber(answers, models.FieldBloodPressure) > 140 {
			b.WriteString("• Regarding your blood pressure:\n")
			if followUpText(followUps, models.FieldBPMedication) == "no" {
				b.WriteString("  - Consider consulting a doctor about blood pressure management\n")
			}
			if followUpText(followUps, models.FieldBPStress) == "yes" {
				b.WriteString("  - Practice stress management techniques\n")
			}
			if followUpText(followUps, models.FieldBPSalt) == "high" {
				b.WriteString("  - Reduce your salt intake\n")
			}
			if sleep, ok := followUpNumber(followUps, models.FieldBPSleep); ok && sleep < 7 {
				b.WriteString("  - Aim for 7-8 hours of sleep per night\n")
			}
			if caffeine, ok := followUpNumber(followUps, models.FieldBPCaffeine); ok && caffeine > 2 {
				b.WriteString("  - Consider reducing caffeine intake\n")
			}
			b.WriteString("  - Monitor your blood pressure regularly\n\n")
		}

		if answerNumber(answers, models.FieldBMI) > 24.9 {
			b.WriteString("• Regarding your BMI:\n")
			if act := followUpText(followUps, models.FieldBMIActivity); act == "never" || act == "occasionally" {
				b.WriteString("  - Start a regular exercise routine\n")
			}
			if diet := followUpText(followUps, models.FieldBMIDiet); diet == "moderate" || diet == "poor" {
				b.WriteString("  - Consider consulting a nutritionist\n")
			}
			if sitting, ok := followUpNumber(followUps, models.FieldBMISedentary); ok && sitting > 8 {
				b.WriteString("  - Try to reduce sitting time and take regular breaks\n")
			}
			if followUpText(followUps, models.FieldBMISnacking) == "frequently" {
				b.WriteString("  - Consider healthier snacking options\n")
			}
			b.WriteString("  - Work with a healthcare provider on a weight management plan\n\n")
		}

		if answerNumber(answers, models.FieldAge) > 65 {
			b.WriteString("• Additional recommendations for your age group:\n")
			if followUpText(followUps, models.FieldAgeActivity) == "sedentary" {
				b.WriteString("  - Consider gentle exercises like walking or swimming\n")
			}
			if followUpText(followUps, models.FieldAgeMobility) == "yes" {
				b.WriteString("  - Consult a physical therapist for safe exercise options\n")
			}
			if meds, ok := followUpNumber(followUps, models.FieldAgeMedication); ok && meds > 3 {
				b.WriteString("  - Regular medication review with your doctor is important\n")
			}
			b.WriteString("  - Regular health check-ups are essential\n\n")
		}

		b.WriteString("General recommendations:\n")
		b.WriteString("1. Maintain a healthy diet with low sugar and processed foods\n")
		b.WriteString("2. Exercise regularly (at least 30 minutes daily)\n")
		b.WriteString("3. Monitor blood sugar levels regularly\n")
		b.WriteString("4. Maintain a healthy weight\n")
		b.WriteString("5. Get regular check-ups with your doctor\n")
		b.WriteString("6. Avoid smoking and limit alcohol consumption\n")
		b.WriteString("7. Stay hydrated and get adequate sleep\n")
		b.WriteString("8. Manage stress through relaxation techniques\n\n")
		b.WriteString("Would you like me to provide more specific information about any of these recommendations?")
	} else {
		b.WriteString("While your risk is lower, here are some personalized recommendations:\n\n")

		if answerNumber(answers, models.FieldGlucose) > 120 {
			b.WriteString("• Consider monitoring your glucose levels periodically\n")
		}
		if answerNumber(answers, models.FieldBloodPressure) > 130 {
			b.WriteString("• Keep an eye on your blood pressure\n")
		}
		if answerNumber(answers, models.FieldBMI) > 23 {
			b.WriteString("• Consider maintaining a healthy weight through diet and exercise\n")
		}
		if answerNumber(answers, models.FieldAge) > 65 {
			b.WriteString("• As you're over 65, regular health screenings are important\n")
		}

		b.WriteString("\nGeneral recommendations:\n")
		b.WriteString("1. Maintain a healthy lifestyle\n")
		b.WriteString("2. Get regular check-ups\n")
		b.WriteString("3. Stay physically active\n")
		b.WriteString("4. Eat a balanced diet\n")
		b.WriteString("5. Monitor your health indicators regularly\n")
		b.WriteString("6. Stay informed about diabetes prevention\n\n")
		b.WriteString("Would you like more information about preventive measures?")
	}

	return b.String()
}
