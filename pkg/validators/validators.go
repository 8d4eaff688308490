// Package validators implementa as validações de formulário do sistema AMEG.
package validators

import (
	"regexp"
	"strings"
)

// Cores de borda usadas pelos formulários.
const (
	ColorValid   = "#28a745"
	ColorInvalid = "#dc3545"
)

// Func valida um único valor.
type Func func(value string) bool

// RuleResult is the outcome of one password rule.
type RuleResult struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Passed  bool   `json:"passed"`
}

// Icon retorna ✅ ou ❌.
func (r RuleResult) Icon() string {
	if r.Passed {
		return "✅"
	}
	return "❌"
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var registry = map[string]Func{
	"senha":    SenhaValid,
	"cpf":      CPF,
	"telefone": Telefone,
	"email":    Email,
}

// Lookup returns the validator registered under name.
func Lookup(name string) (Func, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// Senha checks every password rule and returns one result per rule, in display order.
func Senha(value string) []RuleResult {
	return []RuleResult{
		{Name: "length", Message: "Mínimo 8 caracteres", Passed: len([]rune(value)) >= 8},
		{Name: "uppercase", Message: "Pelo menos 1 letra maiúscula", Passed: strings.IndexFunc(value, isASCIIUpper) >= 0},
		{Name: "lowercase", Message: "Pelo menos 1 letra minúscula", Passed: strings.IndexFunc(value, isASCIILower) >= 0},
		{Name: "number", Message: "Pelo menos 1 número", Passed: strings.IndexFunc(value, isASCIIDigit) >= 0},
	}
}

// SenhaValid reports whether the password passes every rule.
func SenhaValid(value string) bool {
	for _, r := range Senha(value) {
		if !r.Passed {
			return false
		}
	}
	return true
}

// SenhaMessage retorna a primeira regra violada como mensagem de erro.
func SenhaMessage(value string) (bool, string) {
	if value == "" {
		return false, "Senha é obrigatória"
	}
	for _, r := range Senha(value) {
		if r.Passed {
			continue
		}
		switch r.Name {
		case "length":
			return false, "Senha deve ter pelo menos 8 caracteres"
		case "uppercase":
			return false, "Senha deve conter pelo menos uma letra maiúscula"
		case "lowercase":
			return false, "Senha deve conter pelo menos uma letra minúscula"
		default:
			return false, "Senha deve conter pelo menos um número"
		}
	}
	return true, "Senha válida"
}

// CPF validates a Brazilian CPF: 11 digits, not all equal, with both check digits correct.
// Formatting characters are ignored.
func CPF(value string) bool {
	digits := onlyDigits(value)
	if len(digits) != 11 {
		return false
	}
	if strings.Count(digits, digits[:1]) == 11 {
		return false
	}
	return checkDigit(digits[:9]) == int(digits[9]-'0') &&
		checkDigit(digits[:10]) == int(digits[10]-'0')
}

func checkDigit(partial string) int {
	sum := 0
	weight := len(partial) + 1
	for i := 0; i < len(partial); i++ {
		sum += int(partial[i]-'0') * (weight - i)
	}
	rem := sum % 11
	if rem < 2 {
		return 0
	}
	return 11 - rem
}

// Telefone aceita 10 ou 11 dígitos, ignorando a formatação.
func Telefone(value string) bool {
	n := len(onlyDigits(value))
	return n >= 10 && n <= 11
}

// Email valida o formato básico usuario@dominio.tld.
func Email(value string) bool {
	return emailPattern.MatchString(value)
}

func onlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if isASCIIDigit(r) {
			return r
		}
		return -1
	}, s)
}

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }
func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }
