package normalization

import "testing"

// TestNormalizePrice_Tiers проверяет символьные ценовые уровни
func TestNormalizePrice_Tiers(t *testing.T) {
	cases := map[string]float64{
		"$":   25,
		"$$":  75,
		"$$$": 150,
	}
	for input, expected := range cases {
		if got := NormalizePrice(input); got != expected {
			t.Errorf("NormalizePrice(%q) = %v, ожидалось %v", input, got, expected)
		}
	}
}

// TestNormalizePrice_EuropeanFormat проверяет европейский формат записи
func TestNormalizePrice_EuropeanFormat(t *testing.T) {
	cases := map[string]float64{
		"12,50":    12.5,
		"1.234,56": 1234.56,
		"19.99":    19.99,
	}
	for input, expected := range cases {
		if got := NormalizePrice(input); got != expected {
			t.Errorf("NormalizePrice(%q) = %v, ожидалось %v", input, got, expected)
		}
	}
}

// TestNormalizePrice_CurrencySymbols проверяет очистку валютных символов
func TestNormalizePrice_CurrencySymbols(t *testing.T) {
	cases := map[string]float64{
		"€19.99":    19.99,
		"EUR 12,50": 12.5,
		"  49.90 ":  49.9,
	}
	for input, expected := range cases {
		if got := NormalizePrice(input); got != expected {
			t.Errorf("NormalizePrice(%q) = %v, ожидалось %v", input, got, expected)
		}
	}
}

// TestNormalizePrice_Numeric проверяет, что числовые значения проходят без изменений
func TestNormalizePrice_Numeric(t *testing.T) {
	if got := NormalizePrice(149.99); got != 149.99 {
		t.Errorf("NormalizePrice(149.99) = %v", got)
	}
	if got := NormalizePrice(100); got != 100 {
		t.Errorf("NormalizePrice(100) = %v", got)
	}
}

// TestNormalizePrice_Degraded проверяет деградацию к нулю без ошибок
func TestNormalizePrice_Degraded(t *testing.T) {
	for _, input := range []interface{}{"abc", "", nil, []string{"x"}, "$?"} {
		if got := NormalizePrice(input); got != 0 {
			t.Errorf("NormalizePrice(%v) = %v, ожидалось 0", input, got)
		}
	}
}

// TestNormalizeText проверяет каноническую форму текста
func TestNormalizeText(t *testing.T) {
	cases := map[string]string{
		"Gaming-Laptop (15\")": "gaming laptop 15",
		"  Smart TV, OLED! ":   "smart tv oled",
		"":                     "",
	}
	for input, expected := range cases {
		if got := NormalizeText(input); got != expected {
			t.Errorf("NormalizeText(%q) = %q, ожидалось %q", input, got, expected)
		}
	}
}

// TestTokenize проверяет разбиение на токены
func TestTokenize(t *testing.T) {
	tokens := Tokenize("USB-C Cable 100W")
	expected := []string{"usb", "c", "cable", "100w"}
	if len(tokens) != len(expected) {
		t.Fatalf("Tokenize() вернул %d токенов, ожидалось %d: %v", len(tokens), len(expected), tokens)
	}
	for i, token := range expected {
		if tokens[i] != token {
			t.Errorf("токен %d = %q, ожидалось %q", i, tokens[i], token)
		}
	}
}

// TestEnglishStemmer_Stem проверяет стемминг с кэшированием
func TestEnglishStemmer_Stem(t *testing.T) {
	stemmer := NewEnglishStemmer()

	if stemmer.Stem("chargers") != stemmer.Stem("charger") {
		t.Error("ожидалась одинаковая основа для 'chargers' и 'charger'")
	}
	if stemmer.Stem("") != "" {
		t.Error("пустое слово должно возвращать пустую основу")
	}

	// Повторный вызов должен попасть в кэш и дать тот же результат
	first := stemmer.Stem("cleaning")
	second := stemmer.Stem("cleaning")
	if first != second {
		t.Errorf("результат из кэша отличается: %q != %q", first, second)
	}
}
