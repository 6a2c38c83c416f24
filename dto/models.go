package dto

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Layout identifies which payslip format the document follows. The two
// supported formats use different letterheads, field labels and table
// shapes, so the parser selects a rule set up front.
type Layout string

const (
	LayoutMilitary Layout = "military"
	LayoutCivilian Layout = "civilian"
)

// Category is the semantic classification of a line item.
type Category string

const (
	CategorySalary     Category = "salary"
	CategoryBonus      Category = "bonus"
	CategoryOvertime   Category = "overtime"
	CategoryAllowance  Category = "allowance"
	CategoryCommission Category = "commission"
	CategoryTax        Category = "tax"
	CategoryInsurance  Category = "insurance"
	CategoryRetirement Category = "retirement"
	CategoryLoan       Category = "loan"
	CategoryAdvance    Category = "advance"
	CategoryOther      Category = "other"
)

// EmployeeIdentity is the identity block extracted from the document.
// CPF is always stored in the canonical NNN.NNN.NNN-NN form; it is the
// de-duplication key for employee records downstream.
type EmployeeIdentity struct {
	Name         string `json:"name,omitempty"`
	CPF          string `json:"national_id,omitempty"`
	EmployeeCode string `json:"employee_code,omitempty"`
	Rank         string `json:"rank,omitempty"`
	RankCode     string `json:"rank_code,omitempty"`
	PaymentRank  string `json:"payment_rank,omitempty"`
	BankInfo     string `json:"bank_info,omitempty"`
}

// HasIdentityKey reports whether the record carries at least one of the
// keys the persistence layer can deduplicate on.
func (e EmployeeIdentity) HasIdentityKey() bool {
	return e.CPF != "" || e.EmployeeCode != ""
}

// ReferencePeriod is the calendar month the payslip applies to.
type ReferencePeriod struct {
	Year      int
	Month     int
	MonthName string
}

func (p ReferencePeriod) IsZero() bool {
	return p.Year == 0 || p.Month == 0
}

// Key returns the canonical "YYYY-MM" form.
func (p ReferencePeriod) Key() string {
	if p.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Display returns the human form, e.g. "Maio 2024".
func (p ReferencePeriod) Display() string {
	if p.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s %d", p.MonthName, p.Year)
}

// Earning is one itemized pay row. Amount is always non-negative; the
// earning/deduction distinction is carried by list membership, never by
// sign.
type Earning struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category"`
	IsTaxable   bool            `json:"is_taxable"`
	Percentage  *float64        `json:"percentage,omitempty"`
	Reference   string          `json:"reference,omitempty"`
}

// Deduction is one itemized withholding row. Amount is always
// non-negative.
type Deduction struct {
	Code                   string          `json:"code"`
	Description            string          `json:"description"`
	Amount                 decimal.Decimal `json:"amount"`
	Category               Category        `json:"category"`
	IsTax                  bool            `json:"is_tax"`
	IsPretax               bool            `json:"is_pretax"`
	IsEmployerContribution bool            `json:"is_employer_contribution"`
	Percentage             *float64        `json:"percentage,omitempty"`
	Reference              string          `json:"reference,omitempty"`
}

// Totals carries the computed sums. These are authoritative for
// persistence; totals the document itself states are only compared
// against them for audit logging.
type Totals struct {
	Gross           decimal.Decimal `json:"gross"`
	Deductions      decimal.Decimal `json:"deductions"`
	Net             decimal.Decimal `json:"net"`
	TaxDeductions   decimal.Decimal `json:"tax_deductions"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
}

// ParsedPayslip is the structured record returned to the caller. It is
// assembled once per document and not mutated afterwards; the caller owns
// persistence and any later mutation.
type ParsedPayslip struct {
	Employee       EmployeeIdentity `json:"employee"`
	Period         string           `json:"period"`
	PeriodDisplay  string           `json:"period_display"`
	Earnings       []Earning        `json:"earnings"`
	Deductions     []Deduction      `json:"deductions"`
	Totals         Totals           `json:"totals"`
	Layout         Layout           `json:"layout"`
	SourceFile     string           `json:"source_file,omitempty"`
	RawTextExcerpt string           `json:"raw_text_excerpt,omitempty"`
}
