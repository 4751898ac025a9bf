// Package recommendation собирает cross-sell предложения по содержимому
// корзины и оценивает похожие товары для одной фокусной позиции.
// Все правила детерминированы: одинаковый вход дает одинаковый
// упорядоченный результат.
package recommendation

import (
	"shopserver/classification"
)

// Теги каталога cross-sell
const (
	TagCleaning    = "screen-cleaning"
	TagPopular     = "popular"
	TagRecommended = "recommended"
	TagSoundbar    = "soundbar"
	TagSubwoofer   = "subwoofer"
	TagLED         = "led"
	TagMount       = "mount"
)

// DefaultMaxSuggestions верхняя граница списка cross-sell предложений
const DefaultMaxSuggestions = 8

// DefaultMaxRelated верхняя граница списка похожих товаров
const DefaultMaxRelated = 3

// CrossSellItem запись каталога аксессуаров. Записи неизменяемы и
// определяются извне; движок их только читает.
type CrossSellItem struct {
	ID             string                    `json:"id"`
	SKU            string                    `json:"sku"`
	Name           string                    `json:"name"`
	Price          float64                   `json:"price"`
	ImageURL       string                    `json:"imageUrl,omitempty"`
	Tags           []string                  `json:"tags,omitempty"`
	CompatibleWith []classification.Category `json:"compatibleWith"`
	Priority       int                       `json:"priority"`
}

// HasTag проверяет наличие тега у записи каталога
func (i CrossSellItem) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (i CrossSellItem) hasAnyTag(tags []string) bool {
	for _, tag := range tags {
		if i.HasTag(tag) {
			return true
		}
	}
	return false
}

// compatibleWithAny пересечение compatibleWith с набором категорий
func (i CrossSellItem) compatibleWithAny(categories []classification.Category) bool {
	for _, c := range i.CompatibleWith {
		for _, detected := range categories {
			if c == detected {
				return true
			}
		}
	}
	return false
}

func (i CrossSellItem) compatibleWith(category classification.Category) bool {
	for _, c := range i.CompatibleWith {
		if c == category {
			return true
		}
	}
	return false
}

// FallbackCatalog статический каталог аксессуаров, используемый когда
// внешний каталог недоступен или пуст
func FallbackCatalog() []CrossSellItem {
	pc := []classification.Category{classification.CategoryPC}
	tv := []classification.Category{classification.CategoryTV}
	screen := []classification.Category{classification.CategoryPC, classification.CategoryTV}

	return []CrossSellItem{
		{
			ID: "cs-clean-cloth-01", SKU: "CS-CLEAN-CLOTH-01",
			Name: "Panno in microfibra per schermi", Price: 9.9,
			Tags: []string{TagCleaning, TagPopular}, CompatibleWith: screen, Priority: 95,
		},
		{
			ID: "cs-clean-spray-01", SKU: "CS-CLEAN-SPRAY-01",
			Name: "Spray delicato per pulizia display", Price: 12.9,
			Tags: []string{TagCleaning, TagRecommended}, CompatibleWith: screen, Priority: 90,
		},
		{
			ID: "cs-usb-c-01", SKU: "CS-USB-C-01",
			Name: "Cavo USB-C 100W intrecciato", Price: 19.9,
			Tags: []string{"usb-c", TagRecommended}, CompatibleWith: pc, Priority: 80,
		},
		{
			ID: "cs-charger-01", SKU: "CS-CHARGER-01",
			Name: "Caricatore USB-C 65W", Price: 34.9,
			Tags: []string{"charger", TagPopular}, CompatibleWith: pc, Priority: 78,
		},
		{
			ID: "cs-hdmi-01", SKU: "CS-HDMI-01",
			Name: "Cavo HDMI 2.1 ad alta velocita", Price: 24.9,
			Tags: []string{"hdmi", TagPopular}, CompatibleWith: tv, Priority: 82,
		},
		{
			ID: "cs-remote-01", SKU: "CS-REMOTE-01",
			Name: "Telecomando universale smart", Price: 29.9,
			Tags: []string{"remote", TagRecommended}, CompatibleWith: tv, Priority: 75,
		},
		{
			ID: "cs-mount-01", SKU: "CS-MOUNT-01",
			Name: "Staffa TV slim orientabile", Price: 49.9,
			Tags: []string{"tv-mount", TagRecommended}, CompatibleWith: tv, Priority: 72,
		},
		{
			ID: "cs-ups-01", SKU: "CS-UPS-01",
			Name: "Ciabatta con protezione UPS", Price: 39.9,
			Tags: []string{"power", TagPopular}, CompatibleWith: screen, Priority: 70,
		},
		{
			ID: "cs-stand-01", SKU: "CS-STAND-01",
			Name: "Supporto da scrivania regolabile", Price: 44.9,
			Tags: []string{"stand", TagRecommended}, CompatibleWith: pc, Priority: 68,
		},
		{
			ID: "cs-mouse-01", SKU: "CS-MOUSE-01",
			Name: "Mouse wireless ergonomico", Price: 27.9,
			Tags: []string{"mouse", TagPopular}, CompatibleWith: pc, Priority: 74,
		},
		{
			ID: "cs-keyboard-01", SKU: "CS-KEYBOARD-01",
			Name: "Tastiera compatta retroilluminata", Price: 54.9,
			Tags: []string{"keyboard", TagRecommended}, CompatibleWith: pc, Priority: 66,
		},
	}
}
