package recommendation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopserver/cart"
	"shopserver/classification"
)

// TestLookupClientFetch клиент декодирует корректный ответ сервиса
func TestLookupClientFetch(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.Method != http.MethodPost || r.URL.Path != "/recommendations" {
			t.Errorf("Неожиданный запрос: %s %s", r.Method, r.URL.Path)
		}

		var query LookupQuery
		if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
			t.Errorf("Некорректное тело запроса: %v", err)
		}
		if query.MaxResults != 8 || len(query.Items) != 1 {
			t.Errorf("Некорректный запрос: %+v", query)
		}

		_ = json.NewEncoder(w).Encode(lookupResponse{
			Suggestions: []CrossSellItem{
				{ID: "r1", SKU: "R-1", Name: "Hub USB-C", Price: 39,
					CompatibleWith: []classification.Category{classification.CategoryPC}},
			},
		})
	}))
	defer server.Close()

	client := NewLookupClient(LookupClientConfig{BaseURL: server.URL})
	query := BuildQuery([]cart.CartItem{{ID: "p1", Name: "Laptop", Quantity: 1}}, 8)

	suggestions, err := client.Fetch(context.Background(), query)
	if err != nil {
		t.Fatalf("Неожиданная ошибка: %v", err)
	}
	if len(suggestions) != 1 || suggestions[0].SKU != "R-1" {
		t.Errorf("Некорректный результат: %+v", suggestions)
	}

	// Повторный идентичный запрос обслуживается из кэша
	if _, err := client.Fetch(context.Background(), query); err != nil {
		t.Fatalf("Неожиданная ошибка повторного запроса: %v", err)
	}
	if requests != 1 {
		t.Errorf("Ожидался 1 сетевой запрос, выполнено %d", requests)
	}
}

// TestLookupClientErrorStatuses не-200 статус возвращается ошибкой
func TestLookupClientErrorStatuses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewLookupClient(LookupClientConfig{BaseURL: server.URL})
	query := BuildQuery([]cart.CartItem{{ID: "p1", Name: "Laptop", Quantity: 1}}, 8)

	if _, err := client.Fetch(context.Background(), query); err == nil {
		t.Error("Ожидалась ошибка при статусе 500")
	}
}

// TestLookupClientMalformedResponse битый JSON возвращается ошибкой,
// вызывающая сторона переходит на локальную выдачу
func TestLookupClientMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"suggestions": not-json`))
	}))
	defer server.Close()

	client := NewLookupClient(LookupClientConfig{BaseURL: server.URL})
	query := BuildQuery([]cart.CartItem{{ID: "p1", Name: "Laptop", Quantity: 1}}, 8)

	if _, err := client.Fetch(context.Background(), query); err == nil {
		t.Error("Ожидалась ошибка при битом ответе")
	}
}

// TestLookupClientEmptyQuery пустая корзина не порождает сетевой запрос
func TestLookupClientEmptyQuery(t *testing.T) {
	client := NewLookupClient(LookupClientConfig{BaseURL: "http://localhost:0"})

	suggestions, err := client.Fetch(context.Background(), BuildQuery(nil, 8))
	if err != nil {
		t.Fatalf("Неожиданная ошибка: %v", err)
	}
	if suggestions != nil {
		t.Errorf("Ожидался nil, получено %+v", suggestions)
	}
}
