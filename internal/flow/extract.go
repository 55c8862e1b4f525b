package flow

import (
	"regexp"
	"strconv"
	"strings"
)

// numberPattern matches the first decimal or integer numeral in free text,
// with an optional sign. Decimals are preferred over bare integers so that
// "33.6" is not read as "33".
var numberPattern = regexp.MustCompile(`[-+]?\d*\.\d+|\d+`)

// ExtractNumber locates the first numeral in free text, as spoken or typed
// answers often embed the value in a sentence ("it is about 120 I think").
// It returns false when the text carries no numeral at all.
func ExtractNumber(text string) (float64, bool) {
	match := numberPattern.FindString(strings.ToLower(text))
	if match == "" {
		return 0, false
	}
	num, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}
