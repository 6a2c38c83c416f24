package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"contracheque-parser/dto"
)

var militaryCols = ColumnMap{Code: 0, Description: 1, Reference: 2, Earning: 3, Deduction: 4, Net: 5}

func newTestClassifier() *classifier {
	return &classifier{logger: zap.NewNop()}
}

func TestClassifyRowDeduction(t *testing.T) {
	c := newTestClassifier()

	earning, deduction := c.ClassifyRow([]string{"Z01", "FUSEX", "", "", "450,00", ""}, militaryCols)
	assert.Nil(t, earning)
	require.NotNil(t, deduction)
	assert.Equal(t, "Z01", deduction.Code)
	assert.Equal(t, "FUSEX", deduction.Description)
	assert.True(t, deduction.Amount.Equal(decimal.NewFromFloat(450.00)))
	assert.Equal(t, dto.CategoryTax, deduction.Category)
	assert.True(t, deduction.IsTax)
}

func TestClassifyRowEarning(t *testing.T) {
	c := newTestClassifier()

	earning, deduction := c.ClassifyRow([]string{"B01", "SOLDO", "", "8.245,00", "", "8.245,00"}, militaryCols)
	assert.Nil(t, deduction)
	require.NotNil(t, earning)
	assert.True(t, earning.Amount.Equal(decimal.NewFromFloat(8245.00)))
	assert.Equal(t, dto.CategorySalary, earning.Category)
	assert.False(t, earning.IsTaxable)
}

func TestClassifyRowPercentageFromReference(t *testing.T) {
	c := newTestClassifier()

	earning, _ := c.ClassifyRow([]string{"B06", "ADIC HABILITACAO", "25,00%", "450,00", "", ""}, militaryCols)
	require.NotNil(t, earning)
	require.NotNil(t, earning.Percentage)
	assert.InDelta(t, 25.0, *earning.Percentage, 0.001)
	assert.Equal(t, "25,00%", earning.Reference)
}

func TestClassifyRowKnownCodeOverridesDescription(t *testing.T) {
	c := newTestClassifier()

	_, deduction := c.ClassifyRow([]string{"Z35", "FDO MONTE", "", "", "67,50", ""}, militaryCols)
	require.NotNil(t, deduction)
	assert.Equal(t, "FUNDO DE MONTE PIO", deduction.Description)
	assert.Equal(t, dto.CategoryRetirement, deduction.Category)
	assert.False(t, deduction.IsTax)
}

func TestClassifyRowTimeArtifactIgnored(t *testing.T) {
	c := newTestClassifier()

	// A print timestamp leaking into an amount column must not become a
	// line item.
	earning, deduction := c.ClassifyRow([]string{"B01", "SOLDO", "", "10:30:52", "", ""}, militaryCols)
	assert.Nil(t, earning)
	assert.Nil(t, deduction)
}

func TestClassifyRowAmbiguousOrEmptyDropped(t *testing.T) {
	c := newTestClassifier()

	earning, deduction := c.ClassifyRow([]string{"B01", "SOLDO", "", "100,00", "50,00", ""}, militaryCols)
	assert.Nil(t, earning)
	assert.Nil(t, deduction)

	earning, deduction = c.ClassifyRow([]string{"B01", "SOLDO", "", "", "", ""}, militaryCols)
	assert.Nil(t, earning)
	assert.Nil(t, deduction)
}

func TestClassifyRowTotalsAndCodelessSkipped(t *testing.T) {
	c := newTestClassifier()

	earning, deduction := c.ClassifyRow([]string{"TOTAL", "", "", "8.695,00", "356,07", ""}, militaryCols)
	assert.Nil(t, earning)
	assert.Nil(t, deduction)

	earning, deduction = c.ClassifyRow([]string{"", "SOLDO", "", "8.245,00", "", ""}, militaryCols)
	assert.Nil(t, earning)
	assert.Nil(t, deduction)
}

func TestClassifyRowAccentedCode(t *testing.T) {
	c := newTestClassifier()

	// OCR can garble a code's first letter into an accented one; the row
	// is still a line item, not noise.
	_, deduction := c.ClassifyRow([]string{"É01", "MENSALIDADE", "", "", "45,00", ""}, militaryCols)
	require.NotNil(t, deduction)
	assert.Equal(t, "É01", deduction.Code)

	earning, deduction := c.ClassifyRow([]string{"--", "SOLDO", "", "8.245,00", "", ""}, militaryCols)
	assert.Nil(t, earning)
	assert.Nil(t, deduction)
}

func TestDeductionCategoryPriority(t *testing.T) {
	// Tax indicators win over loan indicators when both match.
	assert.Equal(t, dto.CategoryTax, deductionCategory("D10", "IMPOSTO PARCELA 3/10"))
	assert.Equal(t, dto.CategoryLoan, deductionCategory("D11", "EMPRESTIMO CONSIGNADO"))
	assert.Equal(t, dto.CategoryInsurance, deductionCategory("ZQ6", "ASSISTENCIA JURIDICA"))
	assert.Equal(t, dto.CategoryAdvance, deductionCategory("D12", "ADIANTAMENTO SALARIAL"))
	assert.Equal(t, dto.CategoryOther, deductionCategory("X99", "MENSALIDADE CLUBE"))
}

func TestEarningCategoryByCodePrefix(t *testing.T) {
	assert.Equal(t, dto.CategorySalary, earningCategory("B01"))
	assert.Equal(t, dto.CategoryAllowance, earningCategory("A07"))
	assert.Equal(t, dto.CategoryBonus, earningCategory("G02"))
	assert.Equal(t, dto.CategoryOvertime, earningCategory("H15"))
	assert.Equal(t, dto.CategoryOther, earningCategory("X01"))
}
