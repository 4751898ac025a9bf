package recommendation

import (
	"sort"
	"strings"

	"shopserver/cart"
	"shopserver/classification"
	"shopserver/normalization"
)

// Config конфигурация движка рекомендаций
type Config struct {
	// Classifier при nil создается с правилами по умолчанию
	Classifier *classification.Classifier
	// Stemmer при nil создается новый
	Stemmer *normalization.EnglishStemmer
	// MaxSuggestions и MaxRelated при нуле получают значения по умолчанию
	MaxSuggestions int
	MaxRelated     int
}

// Engine движок рекомендаций
type Engine struct {
	classifier     *classification.Classifier
	stemmer        *normalization.EnglishStemmer
	maxSuggestions int
	maxRelated     int
}

// NewEngine создает движок рекомендаций
func NewEngine(cfg Config) *Engine {
	e := &Engine{
		classifier:     cfg.Classifier,
		stemmer:        cfg.Stemmer,
		maxSuggestions: cfg.MaxSuggestions,
		maxRelated:     cfg.MaxRelated,
	}
	if e.classifier == nil {
		e.classifier = classification.NewClassifier(nil)
	}
	if e.stemmer == nil {
		e.stemmer = normalization.NewEnglishStemmer()
	}
	if e.maxSuggestions == 0 {
		e.maxSuggestions = DefaultMaxSuggestions
	}
	if e.maxRelated == 0 {
		e.maxRelated = DefaultMaxRelated
	}
	return e
}

// gapRule правило заполнения пробела: если в тексте корзины не
// упоминается тип аксессуара (ownedKeywords), предлагается один
// наиболее приоритетный совместимый товар с подходящим тегом
type gapRule struct {
	ownedKeywords []string
	tags          []string
}

// gapRules упорядоченные правила по категориям. Порядок правил
// определяет порядок предложений в выдаче.
var gapRules = map[classification.Category][]gapRule{
	classification.CategoryPC: {
		{ownedKeywords: []string{"usb-c", "usb c"}, tags: []string{"usb-c"}},
		{ownedKeywords: []string{"charger", "caricatore"}, tags: []string{"charger"}},
		{ownedKeywords: []string{"mouse", "keyboard", "tastiera"}, tags: []string{"mouse", "keyboard"}},
	},
	classification.CategoryTV: {
		{ownedKeywords: []string{"soundbar"}, tags: []string{TagSoundbar}},
		{ownedKeywords: []string{"subwoofer"}, tags: []string{TagSubwoofer}},
		{ownedKeywords: []string{"hdmi"}, tags: []string{"hdmi"}},
		{ownedKeywords: []string{"remote", "telecomando"}, tags: []string{"remote"}},
		{ownedKeywords: []string{"support", "staffa", "mount", "bracket", "stand"}, tags: []string{"tv-mount", "stand", TagMount}},
		{ownedKeywords: []string{"led", "lighting", "ambient", "backlight", "back light"}, tags: []string{TagLED}},
	},
}

// CrossSell собирает cross-sell предложения по содержимому корзины.
// Порядок детерминирован: чистка экрана, затем правила заполнения
// пробелов по категориям, затем остаток по убыванию оценки.
func (e *Engine) CrossSell(cartItems []cart.CartItem, catalog []CrossSellItem) []CrossSellItem {
	if len(cartItems) == 0 || len(catalog) == 0 {
		return []CrossSellItem{}
	}

	combined := cart.CombinedText(cartItems)
	categories, hasScreenDevice := e.classifier.CategoryIntent(combined)
	normalizedCartText := normalization.NormalizeText(combined)
	cartIDs, cartNames := cartIdentifiers(cartItems)

	eligible := dedupeBySKU(e.filterEligible(catalog, cartIDs, cartNames))

	suggestions := make([]CrossSellItem, 0, e.maxSuggestions)
	seen := make(map[string]struct{})
	push := func(item CrossSellItem) {
		if item.SKU == "" {
			return
		}
		if _, ok := seen[item.SKU]; ok {
			return
		}
		seen[item.SKU] = struct{}{}
		suggestions = append(suggestions, item)
	}

	// Устройства с экраном всегда получают до двух средств по уходу
	if hasScreenDevice && len(categories) > 0 {
		cleaning := make([]CrossSellItem, 0)
		for _, item := range eligible {
			if item.HasTag(TagCleaning) && item.compatibleWithAny(categories) {
				cleaning = append(cleaning, item)
			}
		}
		sortByPriority(cleaning)
		for i := 0; i < len(cleaning) && i < 2; i++ {
			push(cleaning[i])
		}
	}

	for _, category := range categories {
		rules, ok := gapRules[category]
		if !ok {
			continue
		}
		candidates := make([]CrossSellItem, 0)
		for _, item := range eligible {
			if item.compatibleWith(category) {
				candidates = append(candidates, item)
			}
		}
		sortByPriority(candidates)

		for _, rule := range rules {
			if containsAnyKeyword(normalizedCartText, rule.ownedKeywords) {
				continue
			}
			for _, item := range candidates {
				if item.hasAnyTag(rule.tags) {
					push(item)
					break
				}
			}
		}
	}

	// Остаток каталога по убыванию оценки
	type scoredItem struct {
		item  CrossSellItem
		score int
	}
	scored := make([]scoredItem, 0, len(eligible))
	for _, item := range eligible {
		if _, ok := seen[item.SKU]; ok {
			continue
		}
		if len(categories) > 0 && !item.compatibleWithAny(categories) {
			continue
		}

		score := item.Priority
		if hasScreenDevice && item.HasTag(TagCleaning) {
			score += 15
		}
		if item.HasTag(TagSoundbar) {
			score += 20
		}
		if item.HasTag(TagSubwoofer) {
			score += 18
		}
		if item.HasTag(TagLED) {
			score += 6
		}
		for _, category := range categories {
			if item.compatibleWith(category) {
				score += 10
			}
		}
		if item.HasTag(TagPopular) {
			score += 4
		}
		scored = append(scored, scoredItem{item: item, score: score})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	for _, entry := range scored {
		push(entry.item)
	}

	if len(suggestions) > e.maxSuggestions {
		suggestions = suggestions[:e.maxSuggestions]
	}
	return suggestions
}

// MergeCrossSell объединяет внешние предложения с локальной выдачей.
// Внешний список фильтруется: основные устройства отбрасываются, при
// обнаруженных категориях остаются только совместимые записи. Пустой
// после фильтрации внешний список означает выдачу только локальных
// предложений.
func (e *Engine) MergeCrossSell(cartItems []cart.CartItem, external []CrossSellItem, catalog []CrossSellItem) []CrossSellItem {
	local := e.CrossSell(cartItems, catalog)

	categories, _ := e.classifier.CategoryIntent(cart.CombinedText(cartItems))

	filtered := make([]CrossSellItem, 0, len(external))
	for _, item := range external {
		if e.classifier.IsPrimaryDevice(crossSellText(item)) {
			continue
		}
		if len(categories) > 0 && !item.compatibleWithAny(categories) {
			continue
		}
		filtered = append(filtered, item)
	}

	if len(filtered) == 0 {
		return local
	}

	merged := dedupeBySKU(append(filtered, local...))
	if len(merged) > e.maxSuggestions {
		merged = merged[:e.maxSuggestions]
	}
	return merged
}

// crossSellText текст записи каталога для классификации
func crossSellText(item CrossSellItem) string {
	return strings.TrimSpace(item.Name + " " + strings.Join(item.Tags, " "))
}

func cartIdentifiers(items []cart.CartItem) (ids map[string]struct{}, names map[string]struct{}) {
	ids = make(map[string]struct{}, len(items))
	names = make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.ID != "" {
			ids[normalization.NormalizeText(item.ID)] = struct{}{}
		}
		if item.Name != "" {
			names[normalization.NormalizeText(item.Name)] = struct{}{}
		}
	}
	return ids, names
}

// filterEligible отбрасывает записи каталога, уже присутствующие в
// корзине (по нормализованным sku, id или имени), и основные
// устройства: импортированный каталог может содержать ноутбуки и
// телевизоры, которые никогда не предлагаются как аксессуары
func (e *Engine) filterEligible(catalog []CrossSellItem, cartIDs, cartNames map[string]struct{}) []CrossSellItem {
	eligible := make([]CrossSellItem, 0, len(catalog))
	for _, item := range catalog {
		if e.classifier.IsPrimaryDevice(crossSellText(item)) {
			continue
		}
		if _, ok := cartIDs[normalization.NormalizeText(item.SKU)]; ok {
			continue
		}
		if _, ok := cartIDs[normalization.NormalizeText(item.ID)]; ok {
			continue
		}
		if _, ok := cartNames[normalization.NormalizeText(item.Name)]; ok {
			continue
		}
		eligible = append(eligible, item)
	}
	return eligible
}

func dedupeBySKU(items []CrossSellItem) []CrossSellItem {
	seen := make(map[string]struct{}, len(items))
	result := make([]CrossSellItem, 0, len(items))
	for _, item := range items {
		if item.SKU == "" {
			continue
		}
		if _, ok := seen[item.SKU]; ok {
			continue
		}
		seen[item.SKU] = struct{}{}
		result = append(result, item)
	}
	return result
}

func sortByPriority(items []CrossSellItem) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Priority > items[j].Priority })
}

func containsAnyKeyword(normalizedText string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(normalizedText, keyword) {
			return true
		}
	}
	return false
}
