package tools

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatValor formata um stream de dígitos como moeda pt-BR ("123456" -> "1.234,56").
// Entrada sem dígitos vira "0,00".
func FormatValor(raw string) string {
	digits := strings.TrimLeft(OnlyDigits(raw), "0")
	if digits == "" {
		digits = "0"
	}
	for len(digits) < 3 {
		digits = "0" + digits
	}

	intPart := digits[:len(digits)-2]
	centPart := digits[len(digits)-2:]

	// separador de milhar
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteRune('.')
		}
		b.WriteRune(r)
	}

	return fmt.Sprintf("%s,%s", b.String(), centPart)
}

// ParseValor converte um valor mascarado pt-BR ("1.234,56") para float64.
// Aceita também o formato com ponto decimal ("1234.56").
func ParseValor(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty value")
	}

	if strings.Contains(raw, ",") {
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.ReplaceAll(raw, ",", ".")
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q: %w", raw, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative value: %f", v)
	}
	return v, nil
}
