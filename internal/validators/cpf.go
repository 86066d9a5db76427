package validators

import "strings"

// NormalizeCPF remove tudo que não for dígito.
func NormalizeCPF(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsCPFValid só exige 11 dígitos; dígitos verificadores não são conferidos.
func IsCPFValid(cpf string) bool {
	return len(cpf) == 11 && NormalizeCPF(cpf) == cpf
}
