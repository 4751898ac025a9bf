package recommendation

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"shopserver/cart"
)

// LookupQueryItem позиция корзины в запросе к внешнему сервису
type LookupQueryItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// LookupQuery запрос к внешнему сервису рекомендаций
type LookupQuery struct {
	Items      []LookupQueryItem `json:"items"`
	MaxResults int               `json:"maxResults"`
}

// lookupResponse ответ внешнего сервиса
type lookupResponse struct {
	Suggestions []CrossSellItem `json:"suggestions"`
}

// LookupClientConfig конфигурация клиента внешних рекомендаций
type LookupClientConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit rate.Limit
	CacheTTL  time.Duration
}

// LookupClient клиент внешнего сервиса рекомендаций. Ответы кэшируются
// по хэшу запроса, частота обращений ограничена.
type LookupClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	cacheTTL   time.Duration

	mu    sync.RWMutex
	cache map[string]lookupCacheEntry
}

type lookupCacheEntry struct {
	suggestions []CrossSellItem
	expiration  time.Time
}

// NewLookupClient создает клиент внешних рекомендаций
func NewLookupClient(config LookupClientConfig) *LookupClient {
	if config.Timeout == 0 {
		config.Timeout = 5 * time.Second
	}
	if config.RateLimit == 0 {
		config.RateLimit = rate.Every(time.Second)
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = 5 * time.Minute
	}

	return &LookupClient{
		baseURL: config.BaseURL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter:  rate.NewLimiter(config.RateLimit, 1),
		cacheTTL: config.CacheTTL,
		cache:    make(map[string]lookupCacheEntry),
	}
}

// BuildQuery формирует запрос по снимку корзины
func BuildQuery(items []cart.CartItem, maxResults int) LookupQuery {
	query := LookupQuery{
		Items:      make([]LookupQueryItem, 0, len(items)),
		MaxResults: maxResults,
	}
	for _, item := range items {
		query.Items = append(query.Items, LookupQueryItem{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Tags:        item.Tags,
		})
	}
	return query
}

// Fetch запрашивает внешние предложения. Пустой или некорректный ответ
// не является ошибкой: вызывающая сторона в обоих случаях использует
// локальную выдачу.
func (c *LookupClient) Fetch(ctx context.Context, query LookupQuery) ([]CrossSellItem, error) {
	if c.baseURL == "" || len(query.Items) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	cacheKey := generateLookupCacheKey(body)
	if cached, found := c.getCached(cacheKey); found {
		return cached, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/recommendations", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var decoded lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.setCached(cacheKey, decoded.Suggestions)
	return decoded.Suggestions, nil
}

func (c *LookupClient) getCached(key string) ([]CrossSellItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.cache[key]
	if !ok || time.Now().After(entry.expiration) {
		return nil, false
	}
	return entry.suggestions, true
}

func (c *LookupClient) setCached(key string, suggestions []CrossSellItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = lookupCacheEntry{
		suggestions: suggestions,
		expiration:  time.Now().Add(c.cacheTTL),
	}
}

// generateLookupCacheKey хэш тела запроса как ключ кэша
func generateLookupCacheKey(body []byte) string {
	hash := sha256.Sum256(body)
	return hex.EncodeToString(hash[:])
}
