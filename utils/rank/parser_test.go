package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromCodeKnown(t *testing.T) {
	r := FromCode("10")
	assert.Equal(t, "2º Tenente", r.FullName)
	assert.Equal(t, "2º Ten", r.Abbreviation)

	assert.Equal(t, "Coronel", FromCode("15").FullName)
}

func TestFromCodeUnknownPassesThrough(t *testing.T) {
	r := FromCode("99")
	assert.Equal(t, "99", r.Code)
	assert.Equal(t, "Rank 99", r.FullName)
}

func TestFindCodes(t *testing.T) {
	text := "P/G REAL: 10 (2º TEN)\nP/G DE PAGAMENTO: 12 (CAP)\n"

	real, payment := FindCodes(text)
	assert.Equal(t, "10", real)
	assert.Equal(t, "12", payment)
}

func TestFindCodesPaymentAbsent(t *testing.T) {
	real, payment := FindCodes("P/G REAL 11 (1º TEN)")
	assert.Equal(t, "11", real)
	assert.Empty(t, payment)
}
