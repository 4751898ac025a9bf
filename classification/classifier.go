package classification

import (
	"strings"

	"shopserver/normalization"
)

// Classifier keyword-классификатор свободного текста товаров.
// Структурированной таксономии в каталоге нет, поэтому категория,
// аксессуарность и уровень производительности выводятся из текста
// по таблице правил.
type Classifier struct {
	rules *RuleTable
}

// NewClassifier создает классификатор с заданной таблицей правил.
// При nil используется таблица по умолчанию.
func NewClassifier(rules *RuleTable) *Classifier {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Rules возвращает текущую таблицу правил
func (c *Classifier) Rules() *RuleTable {
	return c.rules
}

// matchKeyword проверяет вхождение ключевого слова: точный токен либо
// подстрока нормализованного текста (покрывает многословные ключи).
func matchKeyword(normalized string, tokens map[string]struct{}, keyword string) bool {
	if keyword == "" {
		return false
	}
	if _, ok := tokens[keyword]; ok {
		return true
	}
	return strings.Contains(normalized, keyword)
}

// CategoryIntent определяет категории, упомянутые в тексте, и признак
// "в корзине есть устройство с экраном". Порядок категорий в результате
// повторяет порядок правил в таблице.
func (c *Classifier) CategoryIntent(text string) ([]Category, bool) {
	normalized := normalization.NormalizeText(text)
	if normalized == "" {
		return []Category{}, false
	}
	tokens := normalization.TokenSet(normalized)

	categories := []Category{}
	for _, rule := range c.rules.Categories {
		for _, keyword := range rule.Keywords {
			if matchKeyword(normalized, tokens, keyword) {
				categories = append(categories, rule.Category)
				break
			}
		}
	}

	return categories, len(categories) > 0
}

// HasAnyKeyword проверяет, содержит ли текст хотя бы одно из ключевых слов
func (c *Classifier) HasAnyKeyword(text string, keywords []string) bool {
	normalized := normalization.NormalizeText(text)
	if normalized == "" {
		return false
	}
	tokens := normalization.TokenSet(normalized)
	for _, keyword := range keywords {
		if matchKeyword(normalized, tokens, keyword) {
			return true
		}
	}
	return false
}

// IsAccessory определяет, является ли товар аксессуаром
// (кабель, зарядка, чехол, крепление и т.п.)
func (c *Classifier) IsAccessory(text string) bool {
	return c.HasAnyKeyword(text, c.rules.AccessoryKeywords)
}

// IsPrimaryDevice определяет, является ли товар основным устройством:
// текст попадает в категорию устройств и не классифицирован как аксессуар.
func (c *Classifier) IsPrimaryDevice(text string) bool {
	if c.IsAccessory(text) {
		return false
	}
	normalized := normalization.NormalizeText(text)
	if normalized == "" {
		return false
	}
	tokens := normalization.TokenSet(normalized)
	for _, device := range c.rules.DeviceCategories {
		for _, rule := range c.rules.Categories {
			if rule.Category != device {
				continue
			}
			for _, keyword := range rule.Keywords {
				if matchKeyword(normalized, tokens, keyword) {
					return true
				}
			}
		}
	}
	return false
}

// HasScreenCategory проверяет, есть ли среди категорий устройство с экраном
func (c *Classifier) HasScreenCategory(categories []Category) bool {
	for _, category := range categories {
		for _, screen := range c.rules.ScreenCategories {
			if category == screen {
				return true
			}
		}
	}
	return false
}

// DetectTier ищет маркер уровня производительности и возвращает
// уровень 1-4; 0 означает отсутствие сигнала. При нескольких маркерах
// берется максимальный уровень.
func (c *Classifier) DetectTier(text string) int {
	normalized := normalization.NormalizeText(text)
	if normalized == "" {
		return 0
	}
	tokens := normalization.TokenSet(normalized)

	tier := 0
	for _, marker := range c.rules.TierMarkers {
		if marker.Level <= tier {
			continue
		}
		if matchKeyword(normalized, tokens, marker.Token) {
			tier = marker.Level
		}
	}
	return tier
}
