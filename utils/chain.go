package utils

import (
	"regexp"
	"strings"
)

// PatternChain applies a fixed, ordered list of regular expressions to a
// text and returns the first candidate that passes the chain's validator.
// The order is significant: it encodes which source formats are most
// trustworthy and must stay stable across the locators built on it.
type PatternChain struct {
	patterns []*regexp.Regexp
	validate func(string) (string, bool)
}

// NewPatternChain compiles the expressions up front. The validator may
// normalize the candidate; returning false moves on to the next match. A
// nil validator accepts the first trimmed candidate.
func NewPatternChain(validate func(string) (string, bool), exprs ...string) *PatternChain {
	ps := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		ps = append(ps, regexp.MustCompile(e))
	}
	return &PatternChain{patterns: ps, validate: validate}
}

// Find tries every match of every pattern, in pattern order. All matches
// of a pattern are considered before falling through, so an invalid early
// candidate does not shadow a valid later one on the same pattern.
func (c *PatternChain) Find(text string) (string, bool) {
	for _, re := range c.patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			candidate := m[0]
			for _, g := range m[1:] {
				if g != "" {
					candidate = g
					break
				}
			}
			if c.validate == nil {
				return strings.TrimSpace(candidate), true
			}
			if v, ok := c.validate(candidate); ok {
				return v, true
			}
		}
	}
	return "", false
}
