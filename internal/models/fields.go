// Package models defines the core data structures for DiaVoice.
//
// This file holds the questionnaire schema: the typed field identifiers,
// their validation kinds and bounds, the ordered primary question list,
// and the static follow-up catalog.
package models

// Field identifies a single datum collected during the assessment,
// either a primary questionnaire field or a follow-up field.
type Field string

// Primary assessment fields, in questionnaire order.
const (
	FieldGender                   Field = "Gender"
	FieldPregnancies              Field = "Pregnancies"
	FieldGlucose                  Field = "Glucose"
	FieldBloodPressure            Field = "BloodPressure"
	FieldSkinThickness            Field = "SkinThickness"
	FieldInsulin                  Field = "Insulin"
	FieldBMI                      Field = "BMI"
	FieldDiabetesPedigreeFunction Field = "DiabetesPedigreeFunction"
	FieldAge                      Field = "Age"
)

// Follow-up fields for elevated glucose readings.
const (
	FieldGlucoseFasting    Field = "GlucoseFasting"
	FieldGlucoseTime       Field = "GlucoseTime"
	FieldGlucoseSymptoms   Field = "GlucoseSymptoms"
	FieldGlucoseHistory    Field = "GlucoseHistory"
	FieldGlucoseMedication Field = "GlucoseMedication"
	FieldGlucoseFamily     Field = "GlucoseFamily"
	FieldGlucoseDiet       Field = "GlucoseDiet"
	FieldGlucoseExercise   Field = "GlucoseExercise"
	FieldGlucoseLastMeal   Field = "GlucoseLastMeal"
)

// Follow-up fields for out-of-band blood pressure readings.
const (
	FieldBPMedication Field = "BPMedication"
	FieldBPStress     Field = "BPStress"
	FieldBPActivity   Field = "BPActivity"
	FieldBPHistory    Field = "BPHistory"
	FieldBPSalt       Field = "BPSalt"
	FieldBPFamily     Field = "BPFamily"
	FieldBPSleep      Field = "BPSleep"
	FieldBPCaffeine   Field = "BPCaffeine"
	FieldBPSymptoms   Field = "BPSymptoms"
	FieldBPHydration  Field = "BPHydration"
	FieldBPStanding   Field = "BPStanding"
)

// Follow-up fields for out-of-band BMI readings.
const (
	FieldBMIActivity      Field = "BMIActivity"
	FieldBMIDiet          Field = "BMIDiet"
	FieldBMIWeightHistory Field = "BMIWeightHistory"
	FieldBMIFamily        Field = "BMIFamily"
	FieldBMISleep         Field = "BMISleep"
	FieldBMISedentary     Field = "BMISedentary"
	FieldBMIMealPattern   Field = "BMIMealPattern"
	FieldBMISnacking      Field = "BMISnacking"
	FieldBMIAppetite      Field = "BMIAppetite"
	FieldBMIMedical       Field = "BMIMedical"
	FieldBMISymptoms      Field = "BMISymptoms"
)

// Follow-up fields for elderly participants.
const (
	FieldAgeActivity   Field = "AgeActivity"
	FieldAgeMobility   Field = "AgeMobility"
	FieldAgeMedication Field = "AgeMedication"
	FieldAgeSupport    Field = "AgeSupport"
	FieldAgeCheckups   Field = "AgeCheckups"
)

// FieldKind describes how raw input for a field is validated.
type FieldKind string

const (
	// KindGender accepts a closed synonym set mapping to male/female.
	KindGender FieldKind = "gender"
	// KindNumericRange accepts a real number within inclusive bounds.
	KindNumericRange FieldKind = "numeric_range"
	// KindYesNo accepts a closed synonym set mapping to yes/no.
	KindYesNo FieldKind = "yes_no"
	// KindEnum accepts exact membership in a closed choice list.
	KindEnum FieldKind = "enum"
	// KindBoundedNumeric accepts a real number within inclusive bounds,
	// without a separate clinically normal band.
	KindBoundedNumeric FieldKind = "bounded_numeric"
	// KindNonNegativeNumeric accepts any real number >= 0.
	KindNonNegativeNumeric FieldKind = "non_negative_numeric"
)

// FieldSpec describes the validation schema for one field.
type FieldSpec struct {
	Kind FieldKind
	// Min and Max are the inclusive acceptance bounds for numeric kinds.
	Min float64
	Max float64
	// Choices lists the valid values for enum kinds.
	Choices []string
	// RangeMessage is the user-facing message returned when a numeric
	// value parses but falls outside the acceptance bounds.
	RangeMessage string
}

// Question pairs a field with the prompt shown to the user.
type Question struct {
	Field  Field  `json:"field"`
	Prompt string `json:"prompt"`
}

// PrimaryQuestions is the ordered primary questionnaire. The order is part
// of the conversation contract and must not change between releases.
var PrimaryQuestions = []Question{
	{FieldGender, "What is your gender? (male/female)"},
	{FieldPregnancies, "How many times have you been pregnant? (Valid range: 0-17)"},
	{FieldGlucose, "What is your glucose level in mg/dL? (Normal range: 70-140 mg/dL, accepted range: 40-400 mg/dL)"},
	{FieldBloodPressure, "What is your blood pressure in mmHg? (Normal range: 90-140 mmHg, accepted range: 60-250 mmHg)"},
	{FieldSkinThickness, "What is your triceps skinfold thickness in mm? (Valid range: 0-99 mm)"},
	{FieldInsulin, "What is your insulin level in μU/mL? (Normal range: 2.6-24.9 μU/mL, accepted range: 0-846 μU/mL)"},
	{FieldBMI, "What is your BMI? (Normal range: 18.5-24.9, accepted range: 10-70)"},
	{FieldDiabetesPedigreeFunction, "What is your diabetes pedigree function value? (Valid range: 0.078-2.42)"},
	{FieldAge, "What is your age in years? (Valid range: 21-81 years)"},
}

// FeatureOrder is the exact feature-vector ordering the classifier expects.
var FeatureOrder = []Field{
	FieldPregnancies,
	FieldGlucose,
	FieldBloodPressure,
	FieldSkinThickness,
	FieldInsulin,
	FieldBMI,
	FieldDiabetesPedigreeFunction,
	FieldAge,
}

// primarySpecs holds the validation schema for the primary fields.
var primarySpecs = map[Field]FieldSpec{
	FieldGender: {Kind: KindGender},
	FieldPregnancies: {Kind: KindNumericRange, Min: 0, Max: 17,
		RangeMessage: "Please provide a valid number of pregnancies (0-17)."},
	FieldGlucose: {Kind: KindNumericRange, Min: 40, Max: 400,
		RangeMessage: "Please provide a valid glucose level (40-400 mg/dL). Normal range is 70-140 mg/dL."},
	FieldBloodPressure: {Kind: KindNumericRange, Min: 60, Max: 250,
		RangeMessage: "Please provide a valid blood pressure (60-250 mmHg). Normal range is 90-140 mmHg."},
	FieldSkinThickness: {Kind: KindNumericRange, Min: 0, Max: 99,
		RangeMessage: "Please provide a valid skin thickness (0-99 mm). This is measured at the triceps."},
	FieldInsulin: {Kind: KindNumericRange, Min: 0, Max: 846,
		RangeMessage: "Please provide a valid insulin level (0-846 μU/mL). Normal range is 2.6-24.9 μU/mL."},
	FieldBMI: {Kind: KindNumericRange, Min: 10, Max: 70,
		RangeMessage: "Please provide a valid BMI (10-70). Normal range is 18.5-24.9."},
	FieldDiabetesPedigreeFunction: {Kind: KindNumericRange, Min: 0.078, Max: 2.42,
		RangeMessage: "Please provide a valid diabetes pedigree function value (0.078-2.42)."},
	FieldAge: {Kind: KindNumericRange, Min: 21, Max: 81,
		RangeMessage: "Please provide a valid age (21-81 years)."},
}

// followUpSpecs holds the validation schema for every follow-up field.
var followUpSpecs = map[Field]FieldSpec{
	FieldGlucoseFasting:    {Kind: KindYesNo},
	FieldGlucoseSymptoms:   {Kind: KindYesNo},
	FieldGlucoseHistory:    {Kind: KindYesNo},
	FieldGlucoseMedication: {Kind: KindYesNo},
	FieldGlucoseFamily:     {Kind: KindYesNo},
	FieldGlucoseTime:       {Kind: KindEnum, Choices: []string{"morning", "afternoon", "evening"}},
	FieldGlucoseDiet:       {Kind: KindEnum, Choices: []string{"healthy", "moderate", "poor"}},
	FieldGlucoseExercise:   {Kind: KindEnum, Choices: []string{"never", "occasionally", "regularly"}},
	FieldGlucoseLastMeal: {Kind: KindBoundedNumeric, Min: 0, Max: 24,
		RangeMessage: "Please provide a valid number of hours (0-24)."},

	FieldBPMedication: {Kind: KindYesNo},
	FieldBPStress:     {Kind: KindYesNo},
	FieldBPActivity:   {Kind: KindYesNo},
	FieldBPHistory:    {Kind: KindYesNo},
	FieldBPFamily:     {Kind: KindYesNo},
	FieldBPStanding:   {Kind: KindYesNo},
	FieldBPSymptoms:   {Kind: KindYesNo},
	FieldBPSalt:       {Kind: KindEnum, Choices: []string{"low", "moderate", "high"}},
	FieldBPSleep: {Kind: KindNonNegativeNumeric,
		RangeMessage: "Please provide a valid number."},
	FieldBPCaffeine: {Kind: KindNonNegativeNumeric,
		RangeMessage: "Please provide a valid number."},
	FieldBPHydration: {Kind: KindBoundedNumeric, Min: 0, Max: 20,
		RangeMessage: "Please provide a valid number of glasses (0-20)."},

	FieldBMIAppetite:      {Kind: KindYesNo},
	FieldBMIWeightHistory: {Kind: KindYesNo},
	FieldBMIMedical:       {Kind: KindYesNo},
	FieldBMISymptoms:      {Kind: KindYesNo},
	FieldBMIFamily:        {Kind: KindYesNo},
	FieldBMIActivity:      {Kind: KindEnum, Choices: []string{"never", "occasionally", "regularly"}},
	FieldBMIDiet:          {Kind: KindEnum, Choices: []string{"healthy", "moderate", "poor"}},
	FieldBMISnacking:      {Kind: KindEnum, Choices: []string{"never", "occasionally", "frequently"}},
	FieldBMISleep: {Kind: KindBoundedNumeric, Min: 0, Max: 24,
		RangeMessage: "Please provide a valid number of hours (0-24)."},
	FieldBMISedentary: {Kind: KindBoundedNumeric, Min: 0, Max: 24,
		RangeMessage: "Please provide a valid number of hours (0-24)."},
	FieldBMIMealPattern: {Kind: KindBoundedNumeric, Min: 1, Max: 6,
		RangeMessage: "Please provide a valid number of meals (1-6)."},

	FieldAgeMobility: {Kind: KindYesNo},
	FieldAgeSupport:  {Kind: KindYesNo},
	FieldAgeActivity: {Kind: KindEnum, Choices: []string{"sedentary", "moderate", "active"}},
	FieldAgeCheckups: {Kind: KindEnum, Choices: []string{"monthly", "quarterly", "yearly", "rarely"}},
	FieldAgeMedication: {Kind: KindNonNegativeNumeric,
		RangeMessage: "Please provide a valid number of medications."},
}

// PrimarySpec returns the validation schema for a primary field.
func PrimarySpec(f Field) (FieldSpec, bool) {
	spec, ok := primarySpecs[f]
	return spec, ok
}

// FollowUpSpec returns the validation schema for a follow-up field.
func FollowUpSpec(f Field) (FieldSpec, bool) {
	spec, ok := followUpSpecs[f]
	return spec, ok
}

// IsPrimaryField reports whether f is one of the primary assessment fields.
func IsPrimaryField(f Field) bool {
	_, ok := primarySpecs[f]
	return ok
}
