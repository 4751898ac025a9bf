package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"shopserver/cart"
	"shopserver/classification"
	"shopserver/recommendation"
)

func laptopCart() []cart.CartItem {
	return []cart.CartItem{
		{ID: "p1", Name: "Gaming Laptop", Price: 1299, Quantity: 1, Tags: []string{"pc", "laptop"}},
	}
}

func externalSuggestion(sku string) recommendation.CrossSellItem {
	return recommendation.CrossSellItem{
		ID:             "ext-" + sku,
		SKU:            sku,
		Name:           "Hub USB-C esterno",
		Price:          39.9,
		CompatibleWith: []classification.Category{classification.CategoryPC},
	}
}

func suggestionContains(items []recommendation.CrossSellItem, sku string) bool {
	for _, item := range items {
		if item.SKU == sku {
			return true
		}
	}
	return false
}

// TestCrossSellWithoutLookup без внешнего сервиса и хранилища
// используется встроенный каталог
func TestCrossSellWithoutLookup(t *testing.T) {
	service := NewRecommendationService(recommendation.NewEngine(recommendation.Config{}), nil, nil)

	suggestions := service.CrossSell(context.Background(), laptopCart())
	if len(suggestions) == 0 {
		t.Fatal("Ожидались локальные подсказки")
	}
	if !suggestionContains(suggestions, "CS-USB-C-01") {
		t.Error("Встроенный каталог должен давать кабель USB-C")
	}
}

// TestCrossSellMergesExternal ответ внешнего сервиса сливается с
// локальными подсказками и идет первым
func TestCrossSellMergesExternal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"suggestions": []recommendation.CrossSellItem{externalSuggestion("EXT-HUB-01")},
		})
	}))
	defer server.Close()

	lookup := recommendation.NewLookupClient(recommendation.LookupClientConfig{
		BaseURL:   server.URL,
		RateLimit: rate.Inf,
	})
	service := NewRecommendationService(recommendation.NewEngine(recommendation.Config{}), lookup, nil)

	suggestions := service.CrossSell(context.Background(), laptopCart())
	if len(suggestions) == 0 || suggestions[0].SKU != "EXT-HUB-01" {
		t.Errorf("Внешняя подсказка должна идти первой: %+v", suggestions)
	}
}

// TestCrossSellLookupFailure ошибка внешнего сервиса деградирует до
// локальных подсказок
func TestCrossSellLookupFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	lookup := recommendation.NewLookupClient(recommendation.LookupClientConfig{
		BaseURL:   server.URL,
		RateLimit: rate.Inf,
	})
	service := NewRecommendationService(recommendation.NewEngine(recommendation.Config{}), lookup, nil)

	suggestions := service.CrossSell(context.Background(), laptopCart())
	if len(suggestions) == 0 {
		t.Fatal("Ожидались локальные подсказки")
	}
	if !suggestionContains(suggestions, "CS-USB-C-01") {
		t.Error("Деградация должна возвращать встроенный каталог")
	}
}

// TestCrossSellDiscardsStaleResponse ответ запроса, пережитого более
// новым запросом, отбрасывается: засчитывается только последний
func TestCrossSellDiscardsStaleResponse(t *testing.T) {
	var requests atomic.Int64
	firstReceived := make(chan struct{})
	release := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			close(firstReceived)
			<-release
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"suggestions": []recommendation.CrossSellItem{externalSuggestion("EXT-STALE-01")},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"suggestions": []recommendation.CrossSellItem{externalSuggestion("EXT-FRESH-01")},
		})
	}))
	defer server.Close()

	lookup := recommendation.NewLookupClient(recommendation.LookupClientConfig{
		BaseURL:   server.URL,
		RateLimit: rate.Inf,
		// Разные ответы на один и тот же запрос не должны склеиваться
		CacheTTL: time.Nanosecond,
	})
	service := NewRecommendationService(recommendation.NewEngine(recommendation.Config{}), lookup, nil)

	staleResult := make(chan []recommendation.CrossSellItem, 1)
	go func() {
		staleResult <- service.CrossSell(context.Background(), laptopCart())
	}()

	<-firstReceived

	fresh := service.CrossSell(context.Background(), laptopCart())
	if !suggestionContains(fresh, "EXT-FRESH-01") {
		t.Errorf("Свежий ответ должен быть в подсказках: %+v", fresh)
	}

	close(release)
	stale := <-staleResult
	if suggestionContains(stale, "EXT-STALE-01") {
		t.Errorf("Устаревший ответ не должен попадать в подсказки: %+v", stale)
	}
	if len(stale) == 0 {
		t.Error("Устаревший запрос должен деградировать до локальных подсказок")
	}
}

// TestRelatedDelegation сервис пробрасывает запрос похожих товаров
func TestRelatedDelegation(t *testing.T) {
	service := NewRecommendationService(recommendation.NewEngine(recommendation.Config{}), nil, nil)

	focal := cart.CartItem{ID: "p1", Name: "Laptop Pro i5", Price: 1000}
	pool := []cart.CartItem{
		focal,
		{ID: "p2", Name: "Laptop Pro i7", Price: 1050},
	}

	related := service.Related(focal, pool)
	if len(related) != 1 || related[0].ID != "p2" {
		t.Errorf("Ожидался один похожий товар: %+v", related)
	}
}
