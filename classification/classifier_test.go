package classification

import "testing"

// TestCategoryIntent_PC проверяет определение категории ПК
func TestCategoryIntent_PC(t *testing.T) {
	classifier := NewClassifier(nil)

	categories, hasScreen := classifier.CategoryIntent("Gaming Laptop 15 pollici, i7")
	if len(categories) == 0 || categories[0] != CategoryPC {
		t.Fatalf("ожидалась категория pc, получено %v", categories)
	}
	if !hasScreen {
		t.Error("ожидался признак устройства с экраном")
	}
}

// TestCategoryIntent_MultiWordKeyword проверяет многословные ключи через подстроку
func TestCategoryIntent_MultiWordKeyword(t *testing.T) {
	classifier := NewClassifier(nil)

	categories, _ := classifier.CategoryIntent("Sistema Home Theater 5.1 Dolby")
	found := false
	for _, category := range categories {
		if category == CategoryAudio {
			found = true
		}
	}
	if !found {
		t.Errorf("ожидалась категория audio, получено %v", categories)
	}
}

// TestCategoryIntent_Empty проверяет пустой текст
func TestCategoryIntent_Empty(t *testing.T) {
	classifier := NewClassifier(nil)

	categories, hasScreen := classifier.CategoryIntent("   ")
	if len(categories) != 0 || hasScreen {
		t.Errorf("пустой текст не должен давать категорий: %v, %v", categories, hasScreen)
	}
}

// TestCategoryIntent_Order проверяет, что порядок категорий детерминирован
func TestCategoryIntent_Order(t *testing.T) {
	classifier := NewClassifier(nil)

	categories, _ := classifier.CategoryIntent("soundbar per smart tv e laptop")
	expected := []Category{CategoryPC, CategoryTV, CategoryAudio}
	if len(categories) != len(expected) {
		t.Fatalf("получено %v, ожидалось %v", categories, expected)
	}
	for i := range expected {
		if categories[i] != expected[i] {
			t.Errorf("категория %d = %v, ожидалось %v", i, categories[i], expected[i])
		}
	}
}

// TestIsAccessory проверяет распознавание аксессуаров
func TestIsAccessory(t *testing.T) {
	classifier := NewClassifier(nil)

	accessories := []string{
		"Cavo USB-C 100W intrecciato",
		"Panno in microfibra per schermi",
		"Staffa TV slim orientabile",
		"Mouse wireless ergonomico",
	}
	for _, text := range accessories {
		if !classifier.IsAccessory(text) {
			t.Errorf("IsAccessory(%q) = false, ожидалось true", text)
		}
	}

	if classifier.IsAccessory("Televisore OLED 55 pollici") {
		t.Error("телевизор не должен классифицироваться как аксессуар")
	}
}

// TestIsPrimaryDevice проверяет распознавание основных устройств
func TestIsPrimaryDevice(t *testing.T) {
	classifier := NewClassifier(nil)

	if !classifier.IsPrimaryDevice("Smart TV OLED 55") {
		t.Error("Smart TV должен быть основным устройством")
	}
	if !classifier.IsPrimaryDevice("Gaming Laptop 15") {
		t.Error("ноутбук должен быть основным устройством")
	}
	// Аксессуар с упоминанием устройства остается аксессуаром
	if classifier.IsPrimaryDevice("Staffa TV slim orientabile") {
		t.Error("крепление для TV не должно быть основным устройством")
	}
	if classifier.IsPrimaryDevice("Soundbar compatta") {
		t.Error("аудио не входит в категории устройств")
	}
}

// TestDetectTier проверяет определение уровня производительности
func TestDetectTier(t *testing.T) {
	classifier := NewClassifier(nil)

	cases := map[string]int{
		"Laptop i3 entry level":        1,
		"Ultrabook Intel i5-1235U":     2,
		"Workstation i7 32GB":          3,
		"Gaming laptop i9 RTX":         4,
		"Notebook AMD Ryzen 7 5800H":   3,
		"Laptop i5 vs i7 comparison":   3,
		"Televisore OLED senza marker": 0,
		"":                             0,
	}
	for text, expected := range cases {
		if got := classifier.DetectTier(text); got != expected {
			t.Errorf("DetectTier(%q) = %d, ожидалось %d", text, got, expected)
		}
	}
}

// TestCustomRuleTable проверяет работу с внешней таблицей правил
func TestCustomRuleTable(t *testing.T) {
	rules := &RuleTable{
		Categories: []CategoryRule{
			{Category: Category("camera"), Keywords: []string{"camera", "fotocamera"}},
		},
		DeviceCategories:  []Category{Category("camera")},
		ScreenCategories:  []Category{},
		AccessoryKeywords: []string{"tripod"},
	}
	classifier := NewClassifier(rules)

	categories, matched := classifier.CategoryIntent("Fotocamera mirrorless")
	if !matched || len(categories) != 1 || categories[0] != Category("camera") {
		t.Errorf("кастомная таблица не сработала: %v", categories)
	}
	if classifier.IsPrimaryDevice("Tripod per camera") {
		t.Error("tripod должен классифицироваться как аксессуар")
	}
}
