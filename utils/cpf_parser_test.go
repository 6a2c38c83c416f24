package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindCPFCanonicalizesAllSourceFormats(t *testing.T) {
	const want = "061.114.500-10"

	cases := map[string]string{
		"labeled":      "NOME: FULANO\nCPF: 061.114.500-10\nBANCO 063",
		"formatted":    "identificação 061.114.500-10 conta 123",
		"slash":        "identificação 061.114.500/10 conta 123",
		"concatenated": "matrícula 06111450010 conta",
		"spaced":       "registro 061 114 500 10 fim",
	}

	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			got, ok := FindCPF(text)
			assert.True(t, ok)
			assert.Equal(t, want, got)
		})
	}
}

func TestFindCPFRejectsWrongDigitCount(t *testing.T) {
	_, ok := FindCPF("CPF: 061.114.500-1")
	assert.False(t, ok)

	_, ok = FindCPF("sem documento nenhum")
	assert.False(t, ok)
}

func TestFormatCPF(t *testing.T) {
	got, ok := FormatCPF("06111450010")
	assert.True(t, ok)
	assert.Equal(t, "061.114.500-10", got)

	_, ok = FormatCPF("123")
	assert.False(t, ok)
}
