package utils

import "regexp"

var nonAlnum = regexp.MustCompile(`[^0-9A-Za-z]`)

// employeeCodePatterns favor the PREC-CP enrollment number formats
// (2+7 digits) before generic labeled forms and bare 9-digit runs.
var employeeCodePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)(?:^|\s)(\d{2}\s*\d{7})(?:\s|$)`),
	regexp.MustCompile(`(?i)PREC-CP[\s:]+(\d{2}\s*\d{7})`),
	regexp.MustCompile(`(?i)Matr[ií]cula[\s:]+([0-9A-Za-z.\-/]+)`),
	regexp.MustCompile(`(?i)PREC-CP[\s:]+(\S+)`),
	regexp.MustCompile(`\b(\d{9})\b`),
	regexp.MustCompile(`\b(\d{2}\s\d{3}\s\d{4})\b`),
}

var filenameCode = regexp.MustCompile(`(\d{4,})`)

// FindEmployeeCode locates the internal employee/enrollment code. It is a
// distinct field from the CPF. The cleaned form (non-alphanumerics
// stripped) is what downstream consumes; the raw form, as it appeared in
// the text, is kept for positional lookups such as the name locator.
func FindEmployeeCode(text string) (clean, raw string, ok bool) {
	for _, re := range employeeCodePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw = m[1]
		clean = nonAlnum.ReplaceAllString(raw, "")
		if len(clean) < 4 {
			continue
		}
		return clean, raw, true
	}
	return "", "", false
}

// FindEmployeeCodeInFilename is the last-resort fallback: the first run
// of four or more digits in the source filename.
func FindEmployeeCodeInFilename(filename string) (string, bool) {
	m := filenameCode.FindStringSubmatch(filename)
	if m == nil {
		return "", false
	}
	return m[1], true
}
