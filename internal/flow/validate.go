// Package flow implements the DiaVoice conversation engine: input
// validation, question sequencing, follow-up dispatch, clinical feedback,
// and recommendation composition.
package flow

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/diavoice/DiaVoice/internal/models"
)

// Synonym sets for normalized categorical input.
var (
	maleSynonyms   = map[string]bool{"m": true, "male": true, "man": true, "boy": true}
	femaleSynonyms = map[string]bool{"f": true, "female": true, "woman": true, "girl": true}

	yesSynonyms = map[string]bool{
		"y": true, "yes": true, "yeah": true, "yep": true, "sure": true,
		"okay": true, "yup": true, "correct": true, "right": true,
	}
	noSynonyms = map[string]bool{
		"n": true, "no": true, "nope": true, "nah": true, "never": true,
		"negative": true, "incorrect": true, "wrong": true,
	}
)

// ValidatePrimary normalizes and range-checks raw input for a primary field.
// It is a pure function of (field, raw) and the static schema; failures carry
// the exact re-prompt message shown to the user.
func ValidatePrimary(field models.Field, raw string) (models.Value, error) {
	spec, ok := models.PrimarySpec(field)
	if !ok {
		return models.Value{}, models.NewValidationError(models.ErrUnknownField,
			fmt.Sprintf("Unknown field %s.", field))
	}

	if spec.Kind == models.KindGender {
		v := strings.ToLower(strings.TrimSpace(raw))
		switch {
		case maleSynonyms[v]:
			return models.TextValue("male"), nil
		case femaleSynonyms[v]:
			return models.TextValue("female"), nil
		default:
			return models.Value{}, models.NewValidationError(models.ErrInvalidCategorical,
				"Please provide a valid gender (male/female).")
		}
	}

	num, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return models.Value{}, models.NewValidationError(models.ErrNotNumeric,
			fmt.Sprintf("Please provide a valid number for %s.", strings.ToLower(string(field))))
	}
	if num < spec.Min || num > spec.Max {
		return models.Value{}, models.NewValidationError(models.ErrOutOfRange, spec.RangeMessage)
	}
	return models.NumberValue(num), nil
}

// ParsePrimary resolves one free-text utterance against a primary field.
// Gender input is matched verbatim; numeric fields extract the first numeral
// from the text before range-checking, failing with ErrNoNumberFound when the
// text carries no numeral at all.
func ParsePrimary(field models.Field, text string) (models.Value, error) {
	if field == models.FieldGender {
		return ValidatePrimary(field, text)
	}
	num, found := ExtractNumber(text)
	if !found {
		return models.Value{}, models.NewValidationError(models.ErrNoNumberFound,
			fmt.Sprintf("I couldn't understand the number for %s. Please provide a numeric value.",
				strings.ToLower(string(field))))
	}
	return ValidatePrimary(field, strconv.FormatFloat(num, 'g', -1, 64))
}

// ValidateFollowUp normalizes and checks raw input for a follow-up field.
// Yes/no fields accept a closed synonym set; enum fields require case-insensitive
// membership; numeric fields enforce the field-specific inclusive range.
func ValidateFollowUp(field models.Field, raw string) (models.Value, error) {
	spec, ok := models.FollowUpSpec(field)
	if !ok {
		return models.Value{}, models.NewValidationError(models.ErrUnknownField,
			fmt.Sprintf("Please provide a valid response for %s. For yes/no questions, please answer with 'yes' or 'no'.", field))
	}

	v := strings.ToLower(strings.TrimSpace(raw))

	switch spec.Kind {
	case models.KindYesNo:
		switch {
		case yesSynonyms[v]:
			return models.TextValue("yes"), nil
		case noSynonyms[v]:
			return models.TextValue("no"), nil
		default:
			return models.Value{}, models.NewValidationError(models.ErrInvalidYesNo,
				fmt.Sprintf("Please provide a valid response for %s. For yes/no questions, please answer with 'yes' or 'no'.", field))
		}

	case models.KindEnum:
		for _, choice := range spec.Choices {
			if v == choice {
				return models.TextValue(v), nil
			}
		}
		return models.Value{}, models.NewValidationError(models.ErrInvalidEnum,
			fmt.Sprintf("Please choose one of: %s", strings.Join(spec.Choices, ", ")))

	case models.KindBoundedNumeric:
		num, err := strconv.ParseFloat(v, 64)
		if err != nil || num < spec.Min || num > spec.Max {
			return models.Value{}, models.NewValidationError(models.ErrOutOfRange, spec.RangeMessage)
		}
		return models.NumberValue(num), nil

	case models.KindNonNegativeNumeric:
		num, err := strconv.ParseFloat(v, 64)
		if err != nil || num < 0 {
			return models.Value{}, models.NewValidationError(models.ErrOutOfRange, spec.RangeMessage)
		}
		return models.NumberValue(num), nil

	default:
		return models.Value{}, models.NewValidationError(models.ErrUnknownField,
			fmt.Sprintf("Please provide a valid response for %s.", field))
	}
}
