package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold uppercases a string and strips combining marks, so accented and
// plain spellings compare equal ("Março" and "MARCO" both fold to
// "MARCO"). Source documents are inconsistent about accents, both in the
// originals and after OCR.
func Fold(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return strings.ToUpper(s)
	}
	return strings.ToUpper(out)
}

// CollapseSpaces normalizes all runs of whitespace to single spaces.
// Casing is preserved: payslip names are printed in upper case and must
// not be re-cased.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// LastLine returns the last non-blank line of a cell. Extracted cells may
// contain embedded newlines when the source renderer wraps overflow text
// into the next visual row of the same cell; the wanted value is the last
// line.
func LastLine(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "\n") {
		return s
	}
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
