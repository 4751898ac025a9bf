package normalization

import (
	"strings"
	"sync"

	"github.com/kljensen/snowball"
)

// EnglishStemmer стеммер Snowball для английского языка с кэшем.
// Используется при сравнении токенов товаров: "speakers" и "speaker"
// должны считаться одним сигналом.
type EnglishStemmer struct {
	language string
	cache    map[string]string
	mu       sync.RWMutex
}

// NewEnglishStemmer создает новый стеммер английского языка
func NewEnglishStemmer() *EnglishStemmer {
	return &EnglishStemmer{
		language: "english",
		cache:    make(map[string]string),
	}
}

// Stem возвращает основу слова по алгоритму Snowball.
// Пример: "chargers" -> "charger", "cleaning" -> "clean"
func (s *EnglishStemmer) Stem(word string) string {
	normalized := strings.ToLower(strings.TrimSpace(word))
	if normalized == "" {
		return ""
	}

	s.mu.RLock()
	if cached, found := s.cache[normalized]; found {
		s.mu.RUnlock()
		return cached
	}
	s.mu.RUnlock()

	stemmed, err := snowball.Stem(normalized, s.language, true)
	if err != nil {
		// Если стемминг не удался, используем нормализованное слово как есть
		stemmed = normalized
	}

	s.mu.Lock()
	s.cache[normalized] = stemmed
	s.mu.Unlock()

	return stemmed
}

// StemTokens возвращает основы для набора токенов
func (s *EnglishStemmer) StemTokens(tokens []string) []string {
	if len(tokens) == 0 {
		return []string{}
	}
	stemmed := make([]string, len(tokens))
	for i, token := range tokens {
		stemmed[i] = s.Stem(token)
	}
	return stemmed
}

// StemSet возвращает множество основ всех токенов текста
func (s *EnglishStemmer) StemSet(text string) map[string]struct{} {
	tokens := Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[s.Stem(token)] = struct{}{}
	}
	return set
}
