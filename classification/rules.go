package classification

// Category категория товара из закрытого набора
type Category string

const (
	CategoryPC    Category = "pc"
	CategoryTV    Category = "tv"
	CategoryAudio Category = "audio"
	CategoryLED   Category = "led"
)

// CategoryRule набор ключевых слов одной категории.
// Порядок правил в таблице определяет порядок категорий в результате.
type CategoryRule struct {
	Category Category
	Keywords []string
}

// TierMarker маркер уровня производительности в свободном тексте.
// Token сопоставляется как отдельный токен нормализованного текста.
type TierMarker struct {
	Token string
	Level int
}

// RuleTable таблица правил классификатора. Алгоритм сопоставления не
// содержит зашитых литералов: все ключевые слова приходят отсюда,
// что упрощает тестирование и локализацию.
type RuleTable struct {
	Categories []CategoryRule
	// DeviceCategories категории, матч по которым означает "основное
	// устройство" (а не аксессуар)
	DeviceCategories []Category
	// ScreenCategories категории устройств с экраном
	ScreenCategories  []Category
	AccessoryKeywords []string
	TierMarkers       []TierMarker
}

// DefaultRules возвращает таблицу правил магазина электроники.
// Ключевые слова смешивают английские и итальянские формы — так
// размечен исходный каталог.
func DefaultRules() *RuleTable {
	return &RuleTable{
		Categories: []CategoryRule{
			{
				Category: CategoryPC,
				Keywords: []string{
					"pc", "laptop", "notebook", "desktop", "computer",
					"ultrabook", "macbook", "gaming",
				},
			},
			{
				Category: CategoryTV,
				Keywords: []string{
					"tv", "televisore", "television", "smart tv", "oled", "qled",
				},
			},
			{
				Category: CategoryAudio,
				Keywords: []string{
					"soundbar", "subwoofer", "home theater", "home-theater",
					"surround", "dolby", "sound system", "speaker",
				},
			},
			{
				Category: CategoryLED,
				Keywords: []string{
					"led", "ambient", "strip", "lighting", "backlight", "back light",
				},
			},
		},
		DeviceCategories: []Category{CategoryPC, CategoryTV},
		ScreenCategories: []Category{CategoryPC, CategoryTV},
		AccessoryKeywords: []string{
			// Кабели и питание
			"cable", "cavo", "hdmi", "usb", "charger", "caricatore",
			"adapter", "power", "ups", "ciabatta",
			// Устройства ввода
			"mouse", "keyboard", "tastiera", "webcam", "headset", "cuffie",
			// Чехлы и уход
			"case", "custodia", "cover", "sleeve", "clean", "pulizia",
			"panno", "microfibra", "spray",
			// Крепления и подставки
			"mount", "staffa", "bracket", "stand", "supporto", "dock", "hub",
			// Накопители
			"ssd", "storage", "memoria", "sd card", "pendrive",
			// Прочее
			"remote", "telecomando", "telecomand",
		},
		TierMarkers: []TierMarker{
			{Token: "i3", Level: 1},
			{Token: "i5", Level: 2},
			{Token: "i7", Level: 3},
			{Token: "i9", Level: 4},
			{Token: "ryzen 3", Level: 1},
			{Token: "ryzen 5", Level: 2},
			{Token: "ryzen 7", Level: 3},
			{Token: "ryzen 9", Level: 4},
			{Token: "tier 1", Level: 1},
			{Token: "tier 2", Level: 2},
			{Token: "tier 3", Level: 3},
			{Token: "tier 4", Level: 4},
		},
	}
}
