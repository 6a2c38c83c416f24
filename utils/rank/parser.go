// Package rank expands Brazilian Army rank codes found on military
// payslips into human-readable form.
package rank

import "regexp"

// Rank is a numeric rank code with its abbreviation and full name.
type Rank struct {
	Code         string
	Abbreviation string
	FullName     string
}

// rankTable covers the officer codes that appear in the P/G fields.
// Read-only after initialization; safe for concurrent use.
var rankTable = map[string]Rank{
	"10": {Code: "10", Abbreviation: "2º Ten", FullName: "2º Tenente"},
	"11": {Code: "11", Abbreviation: "1º Ten", FullName: "1º Tenente"},
	"12": {Code: "12", Abbreviation: "Cap", FullName: "Capitão"},
	"13": {Code: "13", Abbreviation: "Maj", FullName: "Major"},
	"14": {Code: "14", Abbreviation: "Ten Cel", FullName: "Tenente-Coronel"},
	"15": {Code: "15", Abbreviation: "Cel", FullName: "Coronel"},
}

// FromCode expands a rank code. Unknown codes pass through as
// "Rank {code}" rather than failing; new codes appear as the source
// system evolves.
func FromCode(code string) Rank {
	if r, ok := rankTable[code]; ok {
		return r
	}
	return Rank{Code: code, Abbreviation: code, FullName: "Rank " + code}
}

var (
	realRank    = regexp.MustCompile(`P/G REAL[\s:]+(\d+)\s+\([^)]+\)`)
	paymentRank = regexp.MustCompile(`P/G DE PAGAMENTO[\s:]+(\d+)\s+\([^)]+\)`)
)

// FindCodes extracts the real and payment rank codes from a labeled
// military payslip, e.g. "P/G REAL: 10 (2º TEN)". Either may be absent.
func FindCodes(text string) (real, payment string) {
	if m := realRank.FindStringSubmatch(text); m != nil {
		real = m[1]
	}
	if m := paymentRank.FindStringSubmatch(text); m != nil {
		payment = m[1]
	}
	return real, payment
}
