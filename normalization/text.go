package normalization

import (
	"regexp"
	"strings"
)

var nonAlphanumericPattern = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeText приводит произвольный текст к канонической форме для
// keyword-сопоставления: нижний регистр, все не-алфавитно-цифровые
// символы схлопываются в одиночные пробелы.
func NormalizeText(value string) string {
	lowered := strings.ToLower(value)
	return strings.TrimSpace(nonAlphanumericPattern.ReplaceAllString(lowered, " "))
}

// Tokenize разбивает нормализованный текст на токены.
func Tokenize(value string) []string {
	normalized := NormalizeText(value)
	if normalized == "" {
		return []string{}
	}
	return strings.Fields(normalized)
}

// TokenSet возвращает множество токенов текста.
func TokenSet(value string) map[string]struct{} {
	tokens := Tokenize(value)
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}
