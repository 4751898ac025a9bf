package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"shopserver/server/services"
)

func newCheckoutRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := NewCheckoutHandler(services.NewCheckoutService())

	router := gin.New()
	api := router.Group("/api")
	api.POST("/checkout/totals", handler.HandleTotalsGin)
	api.POST("/checkout/sessions", handler.HandleCreateSessionGin)
	api.PATCH("/checkout/sessions/:id", handler.HandleUpdateSessionGin)
	api.POST("/checkout/sessions/:id/complete", handler.HandleCompleteSessionGin)
	return router
}

// TestHandleTotals расчет сумм с доставкой EUR
func TestHandleTotals(t *testing.T) {
	router := newCheckoutRouter(t)

	body := `{"items":[{"product_id":"p1","name":"Mouse","unit_amount_major":9.90,"quantity":2}],"currency":"EUR"}`
	req := httptest.NewRequest(http.MethodPost, "/api/checkout/totals", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Ожидался 200, получено %d: %s", w.Code, w.Body.String())
	}

	var totals services.CheckoutTotals
	if err := json.Unmarshal(w.Body.Bytes(), &totals); err != nil {
		t.Fatalf("Не удалось разобрать ответ: %v", err)
	}
	if totals.SubtotalMinor != 1980 || totals.ShippingMinor != 500 {
		t.Errorf("Некорректные суммы: %+v", totals)
	}
}

// TestHandleTotalsValidation некорректная позиция дает 400
func TestHandleTotalsValidation(t *testing.T) {
	router := newCheckoutRouter(t)

	body := `{"items":[{"product_id":"p1","name":"Broken","unit_amount_major":0,"quantity":1}],"currency":"EUR"}`
	req := httptest.NewRequest(http.MethodPost, "/api/checkout/totals", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Ожидался 400, получено %d", w.Code)
	}
}

// TestHandleSessionLifecycle создание, обновление и завершение сессии
func TestHandleSessionLifecycle(t *testing.T) {
	router := newCheckoutRouter(t)

	create := `{"items":[{"product_id":"p1","name":"TV","unit_amount_major":499.00,"quantity":1}],"currency":"EUR"}`
	req := httptest.NewRequest(http.MethodPost, "/api/checkout/sessions", strings.NewReader(create))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", "key-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Ожидался 200, получено %d: %s", w.Code, w.Body.String())
	}

	var session services.CheckoutSession
	if err := json.Unmarshal(w.Body.Bytes(), &session); err != nil {
		t.Fatalf("Не удалось разобрать ответ: %v", err)
	}
	if session.Status != services.SessionRequiresConfirmation {
		t.Errorf("Некорректный статус: %q", session.Status)
	}

	// Повторный запрос с тем же ключом возвращает ту же сессию
	req = httptest.NewRequest(http.MethodPost, "/api/checkout/sessions", strings.NewReader(create))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", "key-1")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	var repeat services.CheckoutSession
	if err := json.Unmarshal(w.Body.Bytes(), &repeat); err != nil {
		t.Fatalf("Не удалось разобрать ответ: %v", err)
	}
	if repeat.ID != session.ID {
		t.Errorf("Идемпотентный повтор должен вернуть ту же сессию: %q != %q", repeat.ID, session.ID)
	}

	// Обновление промокода
	update := `{"promo_code":"WELCOME10"}`
	req = httptest.NewRequest(http.MethodPatch, "/api/checkout/sessions/"+session.ID, strings.NewReader(update))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Ожидался 200, получено %d: %s", w.Code, w.Body.String())
	}
	var updated services.CheckoutSession
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("Не удалось разобрать ответ: %v", err)
	}
	if updated.Totals.DiscountMinor != 4990 {
		t.Errorf("Скидка не применена: %+v", updated.Totals)
	}

	// Завершение
	req = httptest.NewRequest(http.MethodPost, "/api/checkout/sessions/"+session.ID+"/complete", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Ожидался 200, получено %d: %s", w.Code, w.Body.String())
	}
	var completed services.CheckoutSession
	if err := json.Unmarshal(w.Body.Bytes(), &completed); err != nil {
		t.Fatalf("Не удалось разобрать ответ: %v", err)
	}
	if completed.Status != services.SessionSucceeded {
		t.Errorf("Некорректный статус: %q", completed.Status)
	}

	// Несуществующая сессия
	req = httptest.NewRequest(http.MethodPost, "/api/checkout/sessions/missing/complete", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("Ожидался 404, получено %d", w.Code)
	}
}
