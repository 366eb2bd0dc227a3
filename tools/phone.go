package tools

import (
	"fmt"
	"strings"
	"unicode"
)

// OnlyDigits devolve apenas os dígitos da string.
func OnlyDigits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatTelefone aplica a máscara brasileira de exibição:
// 11 dígitos -> (NN) NNNNN-NNNN, 10 dígitos -> (NN) NNNN-NNNN.
// Entrada fora desses tamanhos volta como veio; é puramente apresentação.
func FormatTelefone(raw string) string {
	digits := OnlyDigits(raw)
	switch len(digits) {
	case 11:
		return fmt.Sprintf("(%s) %s-%s", digits[0:2], digits[2:7], digits[7:11])
	case 10:
		return fmt.Sprintf("(%s) %s-%s", digits[0:2], digits[2:6], digits[6:10])
	}
	return raw
}

// NormalizeTelefone normaliza um telefone para formato internacional sem '+'
// (apenas dígitos, com DDI).
//
// Heurística atual (Brasil):
// - remove tudo que não é dígito
// - se vier com 10/11 dígitos, assume BR e prefixa 55
// - se já vier com DDI (>= 12 dígitos), mantém
func NormalizeTelefone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty phone")
	}

	phone := OnlyDigits(raw)
	phone = strings.TrimLeft(phone, "0")

	// BR comum (DDD+numero): 10 ou 11 dígitos -> prefixa 55
	if len(phone) == 10 || len(phone) == 11 {
		phone = "55" + phone
	}

	// validação bem leve: DDI + número
	if len(phone) < 12 {
		return "", fmt.Errorf("invalid phone length: %d", len(phone))
	}
	return phone, nil
}
