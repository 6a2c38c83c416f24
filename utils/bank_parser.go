package utils

import (
	"fmt"
	"regexp"
)

// bankAfterCPF matches the military layout where bank, agency and account
// numbers follow the CPF on the same line.
var bankAfterCPF = regexp.MustCompile(`CPF\s+\d{3}\.\d{3}\.\d{3}-\d{2}\s+(\d+)\s+(\d+)\s+(\d+)`)

// FindBankInfo extracts the bank account descriptor as free text.
func FindBankInfo(text string) (string, bool) {
	m := bankAfterCPF.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return fmt.Sprintf("Banco: %s, Ag: %s, CC: %s", m[1], m[2], m[3]), true
}
