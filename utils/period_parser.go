package utils

import (
	"regexp"
	"strconv"
	"time"

	"contracheque-parser/dto"
)

// monthNumbers is keyed by the folded month name, so "MARÇO" and "MARCO"
// both resolve.
var monthNumbers = map[string]int{
	"JANEIRO": 1, "FEVEREIRO": 2, "MARCO": 3, "ABRIL": 4,
	"MAIO": 5, "JUNHO": 6, "JULHO": 7, "AGOSTO": 8,
	"SETEMBRO": 9, "OUTUBRO": 10, "NOVEMBRO": 11, "DEZEMBRO": 12,
}

// monthNames holds the canonical accented display form, indexed 1-12.
var monthNames = [13]string{"",
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// periodPatterns is tried in order: month and year anchored below a "MÊS"
// label line first, then any Portuguese month name followed by a year.
var periodPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)M[EÊ]S[^\S\n]*\n[^\n]*?(\p{L}+)\s+(\d{4})`),
	regexp.MustCompile(`(?i)\b(JANEIRO|FEVEREIRO|MAR[ÇC]O|ABRIL|MAIO|JUNHO|JULHO|AGOSTO|SETEMBRO|OUTUBRO|NOVEMBRO|DEZEMBRO)\s+(20\d{2})\b`),
}

// filenamePeriod matches an MMYYYY run at the end of the source filename,
// e.g. "Contracheque052025.pdf".
var filenamePeriod = regexp.MustCompile(`(\d{2})(\d{4})\.(?i:pdf)$`)

// FindPeriod resolves the reference period from the payslip text, falling
// back to digits embedded in the source filename.
func FindPeriod(text, filename string) (dto.ReferencePeriod, bool) {
	for _, re := range periodPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if p, ok := makePeriod(m[1], m[2]); ok {
				return p, true
			}
		}
	}
	if m := filenamePeriod.FindStringSubmatch(filename); m != nil {
		month, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		if p, ok := buildPeriod(year, month); ok {
			return p, true
		}
	}
	return dto.ReferencePeriod{}, false
}

func makePeriod(monthToken, yearToken string) (dto.ReferencePeriod, bool) {
	month, ok := monthNumbers[Fold(monthToken)]
	if !ok {
		return dto.ReferencePeriod{}, false
	}
	year, err := strconv.Atoi(yearToken)
	if err != nil {
		return dto.ReferencePeriod{}, false
	}
	return buildPeriod(year, month)
}

// buildPeriod checks that the resolved year/month form a real calendar
// date when combined with day 1.
func buildPeriod(year, month int) (dto.ReferencePeriod, bool) {
	if month < 1 || month > 12 || year < 1000 || year > 9999 {
		return dto.ReferencePeriod{}, false
	}
	d := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || int(d.Month()) != month {
		return dto.ReferencePeriod{}, false
	}
	return dto.ReferencePeriod{Year: year, Month: month, MonthName: monthNames[month]}, true
}
