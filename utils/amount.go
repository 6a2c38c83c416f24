package utils

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	timeOfDay    = regexp.MustCompile(`^\d{1,2}:\d{2}(?::\d{2})?$`)
	amountNoise  = regexp.MustCompile(`[^\d,.]`)
	percentToken = regexp.MustCompile(`(\d+(?:,\d+)?)\s*%`)
	hasDigit     = regexp.MustCompile(`\d`)
)

// ParseAmount converts a Brazilian-formatted currency string into a
// decimal value: "1.234,56" -> 1234.56, "R$ 8.695,00" -> 8695.00.
//
// Rejected (ok=false): empty cells, placeholder dashes, strings with no
// digits after stripping noise, and time-of-day values such as
// "10:30:52" — those are layout artifacts misaligned into the amount
// column, not real amounts. Multi-line cells keep only the last line
// containing a digit.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || s == "-" {
		return decimal.Zero, false
	}
	if strings.Contains(s, "\n") {
		lines := strings.Split(s, "\n")
		s = ""
		for i := len(lines) - 1; i >= 0; i-- {
			if hasDigit.MatchString(lines[i]) {
				s = strings.TrimSpace(lines[i])
				break
			}
		}
	}
	if timeOfDay.MatchString(s) {
		return decimal.Zero, false
	}
	s = amountNoise.ReplaceAllString(s, "")
	if !hasDigit.MatchString(s) {
		return decimal.Zero, false
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParsePercentage pulls an "NN,NN%" annotation out of auxiliary cell
// text. Absence is not an error; nil is returned.
func ParsePercentage(raw string) *float64 {
	m := percentToken.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return nil
	}
	return &v
}
