package flow

import (
	"strings"

	"github.com/diavoice/DiaVoice/internal/models"
)

// measureSet is a titled block of preventive-measure lines.
type measureSet struct {
	Title    string
	Measures []string
}

var generalMeasures = measureSet{
	Title: "General Preventive Measures",
	Measures: []string{
		"1. Regular Health Check-ups:",
		"   • Annual physical examination",
		"   • Regular blood sugar monitoring",
		"   • Blood pressure checks",
		"   • Cholesterol screening",
		"   • Eye examination (for diabetic retinopathy)",
		"   • Foot examination (for diabetic neuropathy)",
		"",
		"2. Healthy Diet:",
		"   • Follow a balanced diet rich in fruits, vegetables, and whole grains",
		"   • Limit processed foods and sugary drinks",
		"   • Control portion sizes",
		"   • Choose lean proteins",
		"   • Stay hydrated with water",
		"   • Limit alcohol consumption",
		"",
		"3. Physical Activity:",
		"   • Aim for 150 minutes of moderate exercise weekly",
		"   • Include both cardio and strength training",
		"   • Take regular breaks from sitting",
		"   • Find activities you enjoy",
		"   • Start slowly and gradually increase intensity",
		"",
		"4. Weight Management:",
		"   • Maintain a healthy BMI (18.5-24.9)",
		"   • Set realistic weight loss goals",
		"   • Track your progress",
		"   • Get support from healthcare providers",
		"   • Focus on sustainable lifestyle changes",
		"",
		"5. Stress Management:",
		"   • Practice relaxation techniques",
		"   • Get adequate sleep (7-8 hours)",
		"   • Maintain work-life balance",
		"   • Consider meditation or yoga",
		"   • Seek support when needed",
		"",
		"6. Lifestyle Modifications:",
		"   • Quit smoking",
		"   • Limit alcohol intake",
		"   • Maintain regular sleep schedule",
		"   • Stay socially active",
		"   • Regular dental check-ups",
	},
}

var highRiskMeasures = measureSet{
	Title: "Additional Measures for High-Risk Individuals",
	Measures: []string{
		"1. Enhanced Monitoring:",
		"   • More frequent blood sugar checks",
		"   • Regular A1C testing",
		"   • Blood pressure monitoring at home",
		"   • Weight tracking",
		"   • Symptom diary maintenance",
		"",
		"2. Medical Management:",
		"   • Regular consultations with healthcare provider",
		"   • Medication adherence",
		"   • Regular lab work",
		"   • Specialist referrals as needed",
		"   • Vaccination updates",
		"",
		"3. Dietary Modifications:",
		"   • Consult a registered dietitian",
		"   • Meal planning",
		"   • Carbohydrate counting",
		"   • Regular meal timing",
		"   • Healthy snack options",
		"",
		"4. Exercise Guidelines:",
		"   • Medical clearance before starting",
		"   • Gradual progression",
		"   • Regular activity schedule",
		"   • Exercise with a partner",
		"   • Emergency contact information",
		"",
		"5. Emergency Preparedness:",
		"   • Keep emergency contacts handy",
		"   • Wear medical identification",
		"   • Know symptoms of complications",
		"   • Have glucose tablets/snacks available",
		"   • Regular emergency plan review",
	},
}

var elderlyMeasures = measureSet{
	Title: "Special Considerations for Elderly (65+)",
	Measures: []string{
		"1. Modified Exercise:",
		"   • Low-impact activities",
		"   • Balance exercises",
		"   • Regular walking",
		"   • Chair exercises",
		"   • Water aerobics",
		"",
		"2. Medication Management:",
		"   • Regular medication review",
		"   • Pill organizer use",
		"   • Medication reminder system",
		"   • Regular doctor consultations",
		"   • Side effect monitoring",
		"",
		"3. Fall Prevention:",
		"   • Home safety assessment",
		"   • Regular vision checks",
		"   • Proper footwear",
		"   • Assistive devices if needed",
		"   • Regular balance exercises",
		"",
		"4. Social Support:",
		"   • Regular check-ins",
		"   • Support group participation",
		"   • Caregiver communication",
		"   • Transportation assistance",
		"   • Meal delivery services if needed",
	},
}

var youngAdultMeasures = measureSet{
	Title: "Special Considerations for Young Adults",
	Measures: []string{
		"1. Lifestyle Balance:",
		"   • Work-life balance",
		"   • Stress management",
		"   • Regular sleep schedule",
		"   • Healthy social activities",
		"   • Time management",
		"",
		"2. Preventive Screening:",
		"   • Regular health check-ups",
		"   • Family planning considerations",
		"   • Mental health monitoring",
		"   • Dental care",
		"   • Vision checks",
		"",
		"3. Healthy Habits:",
		"   • Regular exercise routine",
		"   • Meal preparation",
		"   • Stress reduction techniques",
		"   • Social support network",
		"   • Health education",
	},
}

// ComposePreventiveMeasures assembles the detailed preventive-measures text
// for the user's risk profile: the general block always, the high-risk block
// when any high-risk indicator is present, an age-specific block, and
// conditional tip sections keyed to specific answers.
func ComposePreventiveMeasures(answers, followUps map[models.Field]models.Value) string {
	include := []measureSet{generalMeasures}

	highRisk := answerNumber(answers, models.FieldGlucose) > 140 ||
		answerNumber(answers, models.FieldBloodPressure) > 140 ||
		answerNumber(answers, models.FieldBMI) > 30 ||
		followUpText(followUps, models.FieldGlucoseFamily) == "yes"
	if highRisk {
		include = append(include, highRiskMeasures)
	}

	age := answerNumber(answers, models.FieldAge)
	if age > 65 {
		include = append(include, elderlyMeasures)
	} else if age > 0 && age < 30 {
		include = append(include, youngAdultMeasures)
	}

	var b strings.Builder
	b.WriteString("Here are detailed preventive measures based on your profile:\n\n")
	for _, set := range include {
		b.WriteString(set.Title)
		b.WriteString(":\n")
		b.WriteString(strings.Join(set.Measures, "\n"))
		b.WriteString("\n\n")
	}

	if answerNumber(answers, models.FieldBMI) > 24.9 {
		b.WriteString("Additional Weight Management Tips:\n")
		b.WriteString("• Consider consulting a nutritionist for personalized meal planning\n")
		b.WriteString("• Start with small, achievable exercise goals\n")
		b.WriteString("• Keep a food and activity diary\n")
		b.WriteString("• Join a support group or find an exercise buddy\n\n")
	}

	if answerNumber(answers, models.FieldBloodPressure) > 130 {
		b.WriteString("Additional Blood Pressure Management Tips:\n")
		b.WriteString("• Reduce sodium intake\n")
		b.WriteString("• Practice stress-reduction techniques\n")
		b.WriteString("• Monitor blood pressure at home\n")
		b.WriteString("• Limit caffeine and alcohol\n\n")
	}

	if act := followUpText(followUps, models.FieldBMIActivity); act == "never" || act == "occasionally" {
		b.WriteString("Additional Activity Tips:\n")
		b.WriteString("• Start with 10-minute walks\n")
		b.WriteString("• Take the stairs instead of the elevator\n")
		b.WriteString("• Park further from your destination\n")
		b.WriteString("• Stand up and stretch every hour\n")
		b.WriteString("• Consider a standing desk\n\n")
	}

	b.WriteString("Would you like more specific information about any of these areas?")
	return b.String()
}
