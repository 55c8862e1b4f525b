package flow

import (
	"strings"
	"testing"

	"github.com/diavoice/DiaVoice/internal/models"
)

func TestComposePreventiveMeasuresGeneralOnly(t *testing.T) {
	answers := map[models.Field]models.Value{
		models.FieldGlucose:       models.NumberValue(100),
		models.FieldBloodPressure: models.NumberValue(120),
		models.FieldBMI:           models.NumberValue(22),
		models.FieldAge:           models.NumberValue(45),
	}
	out := ComposePreventiveMeasures(answers, nil)

	if !strings.Contains(out, "General Preventive Measures:") {
		t.Error("general block missing")
	}
	if strings.Contains(out, "Additional Measures for High-Risk Individuals") {
		t.Error("high-risk block must be gated")
	}
	if strings.Contains(out, "Special Considerations for Elderly") ||
		strings.Contains(out, "Special Considerations for Young Adults") {
		t.Error("age blocks must be gated")
	}
	if !strings.HasSuffix(out, "Would you like more specific information about any of these areas?") {
		t.Error("closing question missing")
	}
}

func TestComposePreventiveMeasuresHighRisk(t *testing.T) {
	answers := map[models.Field]models.Value{
		models.FieldGlucose: models.NumberValue(150),
		models.FieldAge:     models.NumberValue(45),
	}
	out := ComposePreventiveMeasures(answers, nil)
	if !strings.Contains(out, "Additional Measures for High-Risk Individuals:") {
		t.Error("glucose > 140 should include the high-risk block")
	}

	// A family history alone is a high-risk indicator too.
	followUps := map[models.Field]models.Value{
		models.FieldGlucoseFamily: models.TextValue("yes"),
	}
	out = ComposePreventiveMeasures(map[models.Field]models.Value{}, followUps)
	if !strings.Contains(out, "Additional Measures for High-Risk Individuals:") {
		t.Error("family history should include the high-risk block")
	}
}

func TestComposePreventiveMeasuresAgeBlocks(t *testing.T) {
	elderly := ComposePreventiveMeasures(map[models.Field]models.Value{
		models.FieldAge: models.NumberValue(70),
	}, nil)
	if !strings.Contains(elderly, "Special Considerations for Elderly (65+):") {
		t.Error("elderly block missing for age 70")
	}

	young := ComposePreventiveMeasures(map[models.Field]models.Value{
		models.FieldAge: models.NumberValue(25),
	}, nil)
	if !strings.Contains(young, "Special Considerations for Young Adults:") {
		t.Error("young-adult block missing for age 25")
	}

	// An unanswered age must not look like a young adult.
	none := ComposePreventiveMeasures(map[models.Field]models.Value{}, nil)
	if strings.Contains(none, "Special Considerations for Young Adults:") {
		t.Error("missing age must not include the young-adult block")
	}
}

func TestComposePreventiveMeasuresConditionalTips(t *testing.T) {
	answers := map[models.Field]models.Value{
		models.FieldBloodPressure: models.NumberValue(135),
		models.FieldBMI:           models.NumberValue(27),
	}
	followUps := map[models.Field]models.Value{
		models.FieldBMIActivity: models.TextValue("occasionally"),
	}
	out := ComposePreventiveMeasures(answers, followUps)

	for _, want := range []string{
		"Additional Weight Management Tips:",
		"Additional Blood Pressure Management Tips:",
		"Additional Activity Tips:",
		"• Start with 10-minute walks",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("conditional tips missing %q", want)
		}
	}

	followUps[models.FieldBMIActivity] = models.TextValue("regularly")
	out = ComposePreventiveMeasures(answers, followUps)
	if strings.Contains(out, "Additional Activity Tips:") {
		t.Error("activity tips must be gated on never/occasionally")
	}
}
