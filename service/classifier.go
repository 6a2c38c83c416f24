package service

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"contracheque-parser/dto"
	"contracheque-parser/utils"
)

// codeDescriptions maps known military line-item codes to their official
// descriptions. A known code overrides whatever the document printed;
// unknown codes keep the literal document text. Read-only after
// initialization.
var codeDescriptions = map[string]string{
	"B01": "SOLDO",
	"B06": "ADICIONAL DE HABILITAÇÃO",
	"B20": "SERVIÇO MILITAR",
	"BL0": "AD C DISP MIL",
	"Z01": "FUSEX",
	"Z02": "PENSÃO MILITAR",
	"Z35": "FUNDO DE MONTE PIO",
	"ZQ6": "ASSISTÊNCIA JURÍDICA",
	"ZRO": "POUPANÇA MILITAR",
}

// earningCategories maps the leading character of an earning code to its
// category. Anything else falls back to "other".
var earningCategories = map[byte]dto.Category{
	'B': dto.CategorySalary,
	'A': dto.CategoryAllowance,
	'G': dto.CategoryBonus,
	'H': dto.CategoryOvertime,
}

// deductionRules is checked in this exact order: tax first, then
// insurance, retirement, loan, advance. The ordering is load-bearing —
// a description matching both a tax and a loan indicator must classify
// as tax. Terms and code prefixes are matched accent-insensitively
// against the folded code and description.
var deductionRules = []struct {
	category     dto.Category
	codePrefixes []string
	terms        []string
}{
	{dto.CategoryTax, []string{"Z01", "Z02"},
		[]string{"IRRF", "INSS", "IMPOSTO", "CONTRIBUICAO", "TAXA", "CPRB", "IRPF"}},
	{dto.CategoryInsurance, []string{"ZQ", "ZR"},
		[]string{"SEGURO", "SAUDE", "PLANO", "ASSISTENCIA"}},
	{dto.CategoryRetirement, []string{"Z35"},
		[]string{"PREVIDENCIA", "APOSENTADORIA", "FGTS", "MONTE PIO"}},
	{dto.CategoryLoan, nil,
		[]string{"EMPRESTIMO", "CONSIGNADO", "PARCELA", "PRESTACAO"}},
	{dto.CategoryAdvance, nil,
		[]string{"ADIANTAMENTO", "ADTO", "ANTECIPACAO"}},
}

type classifier struct {
	logger *zap.Logger
}

// ClassifyRow maps one data row to at most one line item. Rows that
// cannot be interpreted (no code, totals line, ambiguous or empty amount
// columns) are dropped with a debug log and never affect sibling rows.
func (c *classifier) ClassifyRow(row []string, cols ColumnMap) (*dto.Earning, *dto.Deduction) {
	code := utils.LastLine(cellAt(row, cols.Code))
	first, _ := utf8.DecodeRuneInString(code)
	if code == "" || !isAlnum(first) {
		c.logger.Debug("skipping row without code", zap.Strings("row", row))
		return nil, nil
	}

	description := utils.LastLine(cellAt(row, cols.Description))
	if strings.Contains(utils.Fold(code), "TOTAL") || strings.Contains(utils.Fold(description), "TOTAL") {
		// Totals rows are consumed by the reconciler, not classified.
		return nil, nil
	}

	reference := strings.TrimSpace(cellAt(row, cols.Reference))
	earningAmt, earningOK := utils.ParseAmount(cellAt(row, cols.Earning))
	deductionAmt, deductionOK := utils.ParseAmount(cellAt(row, cols.Deduction))
	hasEarning := earningOK && earningAmt.IsPositive()
	hasDeduction := deductionOK && deductionAmt.IsPositive()

	if hasEarning == hasDeduction {
		// Both populated is ambiguous, neither is empty; drop either way.
		c.logger.Debug("skipping ambiguous or empty row",
			zap.String("code", code), zap.Strings("row", row))
		return nil, nil
	}

	if known, ok := codeDescriptions[code]; ok {
		description = known
	}
	percentage := utils.ParsePercentage(reference)

	if hasEarning {
		return &dto.Earning{
			Code:        code,
			Description: description,
			Amount:      earningAmt,
			Category:    earningCategory(code),
			IsTaxable:   !strings.HasPrefix(code, "B"),
			Percentage:  percentage,
			Reference:   reference,
		}, nil
	}

	category := deductionCategory(code, description)
	return nil, &dto.Deduction{
		Code:        code,
		Description: description,
		Amount:      deductionAmt,
		Category:    category,
		IsTax:       category == dto.CategoryTax,
		Percentage:  percentage,
		Reference:   reference,
	}
}

func earningCategory(code string) dto.Category {
	if cat, ok := earningCategories[code[0]]; ok {
		return cat
	}
	return dto.CategoryOther
}

// deductionCategory walks the rule list in fixed priority order and falls
// back to "other".
func deductionCategory(code, description string) dto.Category {
	foldedCode := utils.Fold(code)
	folded := foldedCode + " " + utils.Fold(description)
	for _, rule := range deductionRules {
		for _, prefix := range rule.codePrefixes {
			if strings.HasPrefix(foldedCode, prefix) {
				return rule.category
			}
		}
		for _, term := range rule.terms {
			if strings.Contains(folded, term) {
				return rule.category
			}
		}
	}
	return dto.CategoryOther
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
