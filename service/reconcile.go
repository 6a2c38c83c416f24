package service

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"contracheque-parser/dto"
	"contracheque-parser/utils"
)

// reconciliationEpsilon is the tolerance when comparing computed totals
// against totals the document itself states.
var reconciliationEpsilon = decimal.New(1, -2) // 0.01

// reportedTotals are amounts the document states about itself. They are
// used for audit logging only and never overwrite the computed totals.
type reportedTotals struct {
	Gross      *decimal.Decimal
	Deductions *decimal.Decimal
	Net        *decimal.Decimal
}

type assembler struct {
	logger *zap.Logger
}

// Assemble sums the classified line items into the authoritative totals,
// cross-checks them against the document-reported ones, and builds the
// final record. Mismatches are logged with both values; data is never
// discarded or silently corrected. Net is clamped at zero.
func (a *assembler) Assemble(
	employee dto.EmployeeIdentity,
	period dto.ReferencePeriod,
	earnings []dto.Earning,
	deductions []dto.Deduction,
	reported reportedTotals,
	layout dto.Layout,
	sourceFile, rawText string,
) *dto.ParsedPayslip {
	gross := decimal.Zero
	for _, e := range earnings {
		gross = gross.Add(e.Amount)
	}
	totalDeductions := decimal.Zero
	taxDeductions := decimal.Zero
	for _, d := range deductions {
		totalDeductions = totalDeductions.Add(d.Amount)
		if d.IsTax {
			taxDeductions = taxDeductions.Add(d.Amount)
		}
	}
	net := gross.Sub(totalDeductions)
	if net.IsNegative() {
		a.logger.Warn("computed net is negative, clamping to zero",
			zap.String("gross", gross.String()),
			zap.String("deductions", totalDeductions.String()))
		net = decimal.Zero
	}

	a.compareReported("gross", reported.Gross, gross)
	a.compareReported("deductions", reported.Deductions, totalDeductions)
	a.compareReported("net", reported.Net, net)

	record := &dto.ParsedPayslip{
		Employee:      employee,
		Period:        period.Key(),
		PeriodDisplay: period.Display(),
		Earnings:      earnings,
		Deductions:    deductions,
		Totals: dto.Totals{
			Gross:           gross,
			Deductions:      totalDeductions,
			Net:             net,
			TaxDeductions:   taxDeductions,
			OtherDeductions: totalDeductions.Sub(taxDeductions),
		},
		Layout:         layout,
		SourceFile:     sourceFile,
		RawTextExcerpt: excerpt(rawText),
	}
	a.validate(record)
	return record
}

func (a *assembler) compareReported(field string, stated *decimal.Decimal, computed decimal.Decimal) {
	if stated == nil {
		return
	}
	if stated.Sub(computed).Abs().GreaterThanOrEqual(reconciliationEpsilon) {
		a.logger.Warn("document-stated total does not reconcile with line items",
			zap.String("field", field),
			zap.String("stated", stated.String()),
			zap.String("computed", computed.String()))
	}
}

// validate re-logs the missing-critical-field conditions at assembly
// time. The record is still returned; the caller decides whether an
// incomplete record goes to manual review.
func (a *assembler) validate(record *dto.ParsedPayslip) {
	if record.Employee.Name == "" {
		a.logger.Warn("could not extract employee name from payslip",
			zap.String("file", record.SourceFile))
	}
	if !record.Employee.HasIdentityKey() {
		a.logger.Warn("record has neither CPF nor employee code; not usable for deduplication",
			zap.String("file", record.SourceFile))
	}
	if record.Period == "" {
		a.logger.Warn("could not extract reference period from payslip",
			zap.String("file", record.SourceFile))
	}
}

// extractReportedTotals scans a normalized table for a totals row and, as
// a fallback for the net, the last populated net-column value (the
// military statement prints the net on its final line).
func extractReportedTotals(t Table, cols ColumnMap, headerIdx int) reportedTotals {
	var reported reportedTotals
	var lastNet *decimal.Decimal
	for _, row := range t[headerIdx+1:] {
		isTotal := strings.Contains(utils.Fold(cellAt(row, cols.Code)), "TOTAL") ||
			strings.Contains(utils.Fold(cellAt(row, cols.Description)), "TOTAL")
		if isTotal {
			if v, ok := utils.ParseAmount(cellAt(row, cols.Earning)); ok {
				reported.Gross = &v
			}
			if v, ok := utils.ParseAmount(cellAt(row, cols.Deduction)); ok {
				reported.Deductions = &v
			}
			if v, ok := utils.ParseAmount(cellAt(row, cols.Net)); ok {
				reported.Net = &v
			}
			continue
		}
		if v, ok := utils.ParseAmount(cellAt(row, cols.Net)); ok {
			net := v
			lastNet = &net
		}
	}
	if reported.Net == nil {
		reported.Net = lastNet
	}
	return reported
}

// excerpt keeps the first 1000 characters of raw text for audit and
// debugging.
func excerpt(text string) string {
	const maxExcerpt = 1000
	if utf8.RuneCountInString(text) <= maxExcerpt {
		return text
	}
	seen := 0
	for i := range text {
		if seen == maxExcerpt {
			return text[:i]
		}
		seen++
	}
	return text
}
