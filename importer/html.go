package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"shopserver/classification"
	"shopserver/normalization"
	"shopserver/recommendation"
)

// HTMLImporter извлекает записи каталога из HTML-страниц витрин.
// Страница обходится по карточкам товаров; совместимость и теги
// выводятся классификатором из текста карточки.
type HTMLImporter struct {
	classifier *classification.Classifier
	logger     interface{ Printf(format string, v ...interface{}) }
}

// NewHTMLImporter создает импортер HTML
func NewHTMLImporter(classifier *classification.Classifier, logger interface{ Printf(format string, v ...interface{}) }) *HTMLImporter {
	if classifier == nil {
		classifier = classification.NewClassifier(nil)
	}
	return &HTMLImporter{classifier: classifier, logger: logger}
}

// Parse разбирает HTML-страницу витрины
func (p *HTMLImporter) Parse(r io.Reader) ([]recommendation.CrossSellItem, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	items := make([]recommendation.CrossSellItem, 0)
	doc.Find("[data-product-sku], .product-card").Each(func(i int, card *goquery.Selection) {
		item, ok := p.extractCard(card)
		if !ok {
			return
		}
		items = append(items, item)
	})

	return items, nil
}

// extractCard извлекает одну карточку товара
func (p *HTMLImporter) extractCard(card *goquery.Selection) (recommendation.CrossSellItem, bool) {
	sku, _ := card.Attr("data-product-sku")
	sku = strings.TrimSpace(sku)

	name := strings.TrimSpace(card.Find(".product-name, h3, h2").First().Text())
	if name == "" {
		if p.logger != nil {
			p.logger.Printf("[HTMLImporter] карточка без имени пропущена")
		}
		return recommendation.CrossSellItem{}, false
	}
	if sku == "" {
		sku = strings.ToUpper(strings.ReplaceAll(normalization.NormalizeText(name), " ", "-"))
	}

	priceText := strings.TrimSpace(card.Find(".product-price, .price").First().Text())
	price := normalization.NormalizePrice(priceText)

	imageURL, _ := card.Find("img").First().Attr("src")

	description := strings.TrimSpace(card.Find(".product-description").First().Text())
	cardText := name + " " + description

	compatible := make([]classification.Category, 0, 2)
	categories, _ := p.classifier.CategoryIntent(cardText)
	compatible = append(compatible, categories...)

	var tags []string
	if p.classifier.IsAccessory(cardText) {
		tags = append(tags, recommendation.TagRecommended)
	}

	return recommendation.CrossSellItem{
		ID:             strings.ToLower(sku),
		SKU:            sku,
		Name:           name,
		Price:          price,
		ImageURL:       strings.TrimSpace(imageURL),
		Tags:           tags,
		CompatibleWith: compatible,
		Priority:       defaultImportPriority,
	}, true
}

// defaultImportPriority приоритет импортированных записей до ручной
// настройки мерчандайзером
const defaultImportPriority = 50
