package normalization

import (
	"regexp"
	"strconv"
	"strings"
)

// Ценовые уровни-заглушки для товаров без числовой цены.
// Символьная запись "$".."$$$" встречается в выгрузках каталога,
// когда поставщик передал только ценовой диапазон.
const (
	priceTierLow    = 25
	priceTierMedium = 75
	priceTierHigh   = 150
)

var priceStripPattern = regexp.MustCompile(`[^0-9.\-]`)

// NormalizePrice приводит произвольное представление цены к числу
// в основных единицах валюты. Поддерживаются числовые значения,
// символьные уровни ("$", "$$", "$$$"), европейский формат с запятой
// ("12,50", "1.234,56") и строки с валютными символами ("€19.99").
// Нормализация никогда не возвращает ошибку: нераспознанное значение
// деградирует до 0.
func NormalizePrice(value interface{}) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		return normalizePriceString(v)
	default:
		return 0
	}
}

func normalizePriceString(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	// Символьные ценовые уровни
	switch s {
	case "$":
		return priceTierLow
	case "$$":
		return priceTierMedium
	case "$$$":
		return priceTierHigh
	}

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")

	switch {
	case hasDot && hasComma:
		// Европейский формат: точка — разделитель тысяч, запятая — десятичный
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}

	s = priceStripPattern.ReplaceAllString(s, "")

	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return parsed
}
