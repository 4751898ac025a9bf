// Package enrichment дополняет записи каталога данными со страниц
// товаров: извлекает URL изображения там, где выгрузка его не дала.
package enrichment

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"shopserver/recommendation"
)

// ImageEnricherConfig конфигурация обогатителя изображений
type ImageEnricherConfig struct {
	Timeout   time.Duration
	RateLimit rate.Limit
	UserAgent string
}

// ImageEnricher извлекает изображения со страниц товаров. Частота
// обращений к витрине ограничена.
type ImageEnricher struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
}

// NewImageEnricher создает обогатитель изображений
func NewImageEnricher(config ImageEnricherConfig) *ImageEnricher {
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.RateLimit == 0 {
		config.RateLimit = rate.Every(time.Second)
	}
	if config.UserAgent == "" {
		config.UserAgent = "ShopServer/1.0"
	}

	return &ImageEnricher{
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    rate.NewLimiter(config.RateLimit, 1),
		userAgent:  config.UserAgent,
	}
}

// EnrichItems заполняет пустые ImageURL записей каталога по их
// страницам товаров. Ошибки отдельных страниц логируются и не
// прерывают обход.
func (e *ImageEnricher) EnrichItems(ctx context.Context, items []recommendation.CrossSellItem, pageURL func(recommendation.CrossSellItem) string) []recommendation.CrossSellItem {
	enriched := make([]recommendation.CrossSellItem, len(items))
	copy(enriched, items)

	for i := range enriched {
		if enriched[i].ImageURL != "" {
			continue
		}
		page := pageURL(enriched[i])
		if page == "" {
			continue
		}

		imageURL, err := e.ExtractImage(ctx, page)
		if err != nil {
			log.Printf("[ImageEnricher] страница %s: %v", page, err)
			continue
		}
		enriched[i].ImageURL = imageURL
	}

	return enriched
}

// ExtractImage извлекает URL основного изображения со страницы товара:
// og:image, затем первый подходящий img
func (e *ImageEnricher) ExtractImage(ctx context.Context, pageURL string) (string, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit exceeded: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	image := findImage(doc)
	if image == "" {
		return "", fmt.Errorf("no image found")
	}
	return resolveURL(pageURL, image), nil
}

// findImage обходит дерево: og:image имеет приоритет над первым img
func findImage(root *html.Node) string {
	var firstImg string
	var ogImage string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if ogImage != "" {
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				if attrValue(n, "property") == "og:image" {
					ogImage = attrValue(n, "content")
					return
				}
			case "img":
				if firstImg == "" {
					if src := attrValue(n, "src"); src != "" && !strings.HasPrefix(src, "data:") {
						firstImg = src
					}
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	if ogImage != "" {
		return ogImage
	}
	return firstImg
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return strings.TrimSpace(attr.Val)
		}
	}
	return ""
}

// resolveURL приводит относительный src к абсолютному URL страницы
func resolveURL(pageURL, image string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return image
	}
	ref, err := url.Parse(image)
	if err != nil {
		return image
	}
	return base.ResolveReference(ref).String()
}
