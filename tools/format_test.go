package tools_test

import (
	"testing"

	"corujoticket/tools"

	"github.com/stretchr/testify/assert"
)

func TestFormatTelefone(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected string
	}{
		"Celular11Digitos":  {"11987654321", "(11) 98765-4321"},
		"Fixo10Digitos":     {"1133334444", "(11) 3333-4444"},
		"JaMascarado":       {"(11) 98765-4321", "(11) 98765-4321"},
		"ComLixo":           {"11 9 8765-4321", "(11) 98765-4321"},
		"CurtoDemaisPassa":  {"12345", "12345"},
		"LongoDemaisPassa":  {"5511987654321", "5511987654321"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tools.FormatTelefone(tc.input))
		})
	}
}

func TestNormalizeTelefone(t *testing.T) {
	out, err := tools.NormalizeTelefone("(11) 98765-4321")
	assert.NoError(t, err)
	assert.Equal(t, "5511987654321", out)

	out, err = tools.NormalizeTelefone("5511987654321")
	assert.NoError(t, err)
	assert.Equal(t, "5511987654321", out)

	_, err = tools.NormalizeTelefone("")
	assert.Error(t, err)

	_, err = tools.NormalizeTelefone("123")
	assert.Error(t, err)
}

func TestFormatValor(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected string
	}{
		"Centavos":      {"56", "0,56"},
		"Reais":         {"123456", "1.234,56"},
		"Zero":          {"", "0,00"},
		"ComMascara":    {"R$ 1.234,56", "1.234,56"},
		"Milhoes":       {"123456789", "1.234.567,89"},
		"ZerosAEsquerda": {"000120", "1,20"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tools.FormatValor(tc.input))
		})
	}
}

func TestParseValor(t *testing.T) {
	v, err := tools.ParseValor("1.234,56")
	assert.NoError(t, err)
	assert.InDelta(t, 1234.56, v, 0.001)

	v, err = tools.ParseValor("1234.56")
	assert.NoError(t, err)
	assert.InDelta(t, 1234.56, v, 0.001)

	v, err = tools.ParseValor("1000,00")
	assert.NoError(t, err)
	assert.InDelta(t, 1000.0, v, 0.001)

	_, err = tools.ParseValor("")
	assert.Error(t, err)

	_, err = tools.ParseValor("abc")
	assert.Error(t, err)

	_, err = tools.ParseValor("-10")
	assert.Error(t, err)
}

func TestEncodeSenha(t *testing.T) {
	a := tools.EncodeSenha("a@b.com", "segredo")
	b := tools.EncodeSenha("a@b.com", "segredo")
	c := tools.EncodeSenha("outro@b.com", "segredo")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 128)
}
