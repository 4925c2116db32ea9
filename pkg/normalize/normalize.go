// Package normalize concentra a canonicalização de texto usada em todas
// as passadas de agregação. As funções são puras e idempotentes: o nome
// normalizado é a única chave de correspondência do motor.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	// "4E B" no fim do código: o "E" é ruído de digitação entre o
	// número e a letra da turma
	classWithERegex = regexp.MustCompile(`([0-9])E ([A-Z])$`)
	// "5 J" no fim do código: número e letra separados por espaço
	classSplitRegex = regexp.MustCompile(`([0-9]) ([A-Z])$`)
	// código de turma completo no fim: "4B", "5J"...
	classCodeRegex = regexp.MustCompile(`([0-9][A-Z])$`)
)

// stripDiacritics decompõe os caracteres (NFD) e descarta as marcas
// combinantes, reduzindo cada letra acentuada à sua base.
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// ProductName normaliza um nome de produto: remove acentos, minúsculas,
// apara espaços nas bordas.
func ProductName(name string) string {
	return strings.TrimSpace(strings.ToLower(stripDiacritics(name)))
}

// ReferralCode normaliza um código de padrinho. Os códigos são respostas
// livres de formulário, com espaçamento e caixa inconsistentes, então a
// heurística corrige os padrões de digitação conhecidos e reduz o código
// a "<primeiro nome> <turma>" quando há uma turma no final.
func ReferralCode(code string) string {
	code = strings.ToUpper(stripDiacritics(code))
	code = strings.TrimSpace(whitespaceRegex.ReplaceAllString(code, " "))

	// "DUPONT JEAN 4E B" -> "DUPONT JEAN 4B"
	if m := classWithERegex.FindStringSubmatchIndex(code); m != nil {
		code = code[:m[0]] + code[m[2]:m[3]] + code[m[4]:m[5]]
	}

	// "MARTIN PAUL 5 J" -> "MARTIN PAUL 5J"
	if m := classSplitRegex.FindStringSubmatchIndex(code); m != nil {
		code = code[:m[0]] + code[m[2]:m[3]] + code[m[4]:m[5]]
	}

	m := classCodeRegex.FindStringSubmatch(code)
	if m == nil {
		// Sem turma no final: o código fica como está
		return code
	}

	class := m[1]
	rest := strings.TrimSpace(strings.TrimSuffix(code, class))
	if rest == "" {
		return class
	}
	name := strings.Split(rest, " ")[0]
	return name + " " + class
}
