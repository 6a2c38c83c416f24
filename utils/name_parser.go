package utils

import (
	"regexp"
	"strings"
)

var (
	// nameAfterLabel matches an all-caps name on the line below a NOME
	// column label.
	nameAfterLabel = regexp.MustCompile(`(?i)NOME\s*\n([A-ZÀ-ÿ][A-ZÀ-ÿ\s]+?)(?:\n|$)`)

	// nameBeforeUnit matches the military header line "NNN <NAME> CMDO ...":
	// enrollment number, name, then the unit of attachment.
	nameBeforeUnit = regexp.MustCompile(`\d+\s+([^\n0-9]+?)\s+CMDO`)

	// nameAfterEnrollment is the generic "digits then caps run" heuristic.
	nameAfterEnrollment = regexp.MustCompile(`\d{2}[\s\d]{7,}\s+([A-ZÀ-ÿ][A-ZÀ-ÿ\s]+?)(?:\s+[A-Z]{2,}\d|\d|\n|$)`)

	// namePrecCP looks for the caps run following a PREC-CP label,
	// optionally skipping the enrollment-number line.
	namePrecCP = regexp.MustCompile(`PREC-CP[\s\n]+(?:[0-9\s]+\n)?([A-ZÀ-ÿ][A-ZÀ-ÿ\s]+?)(?:\s+[A-Z]{2,}\d|\n|$)`)

	nameLabels = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Nome[\s:]+([^\n]+)`),
		regexp.MustCompile(`(?i)Funcion[áa]rio[\s:]+([^\n]+)`),
		regexp.MustCompile(`(?i)Name[\s:]+([^\n]+)`),
	}

	letter = regexp.MustCompile(`\p{L}`)
)

// FindName locates the employee name, trying formats in priority order:
// the line under a NOME label, the text between the employee code and the
// unit column on the same line, the PREC-CP heuristic, then generic
// labeled fields. Whitespace is collapsed; the document's casing (all
// caps on these payslips) is preserved.
//
// employeeCodes are the raw and cleaned forms of an already-resolved
// enrollment code, used to anchor the same-line lookup; empty strings are
// skipped.
func FindName(text string, employeeCodes ...string) (string, bool) {
	if name, ok := validName(firstGroup(nameAfterLabel, text)); ok {
		return name, true
	}
	for _, code := range employeeCodes {
		if code == "" {
			continue
		}
		re := regexp.MustCompile(regexp.QuoteMeta(code) + `\s+([A-ZÀ-ÿ][A-ZÀ-ÿ\s]+?)(?:\s+CMDO|\n|$)`)
		if name, ok := validName(firstGroup(re, text)); ok {
			return name, true
		}
	}
	if name, ok := validName(firstGroup(nameBeforeUnit, text)); ok {
		return name, true
	}
	if name, ok := validName(firstGroup(namePrecCP, text)); ok {
		return name, true
	}
	if name, ok := validName(firstGroup(nameAfterEnrollment, text)); ok {
		return name, true
	}
	for _, re := range nameLabels {
		if name, ok := validName(firstGroup(re, text)); ok {
			return name, true
		}
	}
	return "", false
}

func firstGroup(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

func validName(raw string) (string, bool) {
	name := CollapseSpaces(raw)
	if len(name) < 3 || !letter.MatchString(name) {
		return "", false
	}
	// A single token is a column label or stray word, not a person.
	if !strings.Contains(name, " ") {
		return "", false
	}
	return name, true
}
