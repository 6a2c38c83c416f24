package utils

import "regexp"

var nonDigit = regexp.MustCompile(`\D`)

// cpfChain is ordered from the most to the least trustworthy way a CPF
// appears on a payslip: labeled and formatted, formatted but unlabeled,
// bare 11-digit runs, space-separated groups, and a loose labeled form.
var cpfChain = NewPatternChain(FormatCPF,
	`(?i)CPF[\s:]+(\d{3}\.\d{3}\.\d{3}-\d{2})`,
	`\d{3}\.\d{3}\.\d{3}-\d{2}`,
	`\d{3}\.\d{3}\.\d{3}/\d{2}`,
	`\b\d{11}\b`,
	`\b\d{3}\s\d{3}\s\d{3}\s\d{2}\b`,
	`(?i)CPF:\s*([\d.\-]+)`,
)

// cpfLoose is the last-resort sweep for partially punctuated numbers.
var cpfLoose = NewPatternChain(FormatCPF,
	`\b(\d{3}[.\s]?\d{3}[.\s]?\d{3}[-/]?\d{2})\b`,
)

// FindCPF locates a CPF in the text and returns it canonicalized. The
// normalized output is identical no matter which source format matched.
func FindCPF(text string) (string, bool) {
	if cpf, ok := cpfChain.Find(text); ok {
		return cpf, true
	}
	return cpfLoose.Find(text)
}

// FormatCPF strips all non-digits and accepts the candidate only if
// exactly 11 digits remain, reformatting to NNN.NNN.NNN-NN. This
// canonical form is the downstream de-duplication key.
func FormatCPF(raw string) (string, bool) {
	digits := nonDigit.ReplaceAllString(raw, "")
	if len(digits) != 11 {
		return "", false
	}
	return digits[:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:], true
}
