package rapaport

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// decimalPattern matches an optionally signed base-10 integer or decimal
var decimalPattern = regexp.MustCompile(`^[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)$`)

// IsNumeric reports whether token is a plain decimal number that fits a
// float64. It is the single test used both to recognise a data line and to
// pick its values.
func IsNumeric(token string) bool {
	_, ok := parseNumber(token)
	return ok
}

// parseNumber converts a decimal token, rejecting values out of float64 range
func parseNumber(token string) (float64, bool) {
	if !decimalPattern.MatchString(token) {
		return 0, false
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Tokens splits a line on runs of whitespace
func Tokens(line string) []string {
	return strings.Fields(line)
}

// IsTitle reports whether line contains the title marker anywhere
func (r Rules) IsTitle(line string) bool {
	return r.TitleMarker != "" && strings.Contains(line, r.TitleMarker)
}

// TitleName returns the text between the first title marker and the next
// colon (or the next marker, whichever comes first), trimmed.
func (r Rules) TitleName(line string) (string, bool) {
	if r.TitleMarker == "" {
		return "", false
	}
	_, after, ok := strings.Cut(line, r.TitleMarker)
	if !ok {
		return "", false
	}
	if i := strings.Index(after, r.TitleMarker); i >= 0 {
		after = after[:i]
	}
	name, _, _ := strings.Cut(after, ":")
	return strings.TrimSpace(name), true
}

// IsGradeLine reports whether line contains any grade marker
func (r Rules) IsGradeLine(line string) bool {
	for _, marker := range r.GradeMarkers {
		if marker != "" && strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// Grades keeps the tokens of a header line that are hyphenated grade ranges
// or single grade symbols.
func (r Rules) Grades(line string) []string {
	grades := []string{}
	for _, token := range Tokens(line) {
		if strings.Contains(token, "-") || slices.Contains(r.GradeSymbols, token) {
			grades = append(grades, token)
		}
	}
	return grades
}

// IsDataLine reports whether line looks like a price row: enough tokens, a
// numeric first token, and not a title line.
func (r Rules) IsDataLine(line string) bool {
	tokens := Tokens(line)
	if len(tokens) == 0 || len(tokens) < r.MinRowTokens {
		return false
	}
	if !IsNumeric(tokens[0]) {
		return false
	}
	return !r.IsTitle(line)
}

// Row returns the numeric tokens of line in order
func (r Rules) Row(line string) Row {
	var row Row
	for _, token := range Tokens(line) {
		if v, ok := parseNumber(token); ok {
			row = append(row, v)
		}
	}
	return row
}
