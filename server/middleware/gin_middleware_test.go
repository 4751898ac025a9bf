package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func newTestRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(mw...)
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

// TestRequestIDGenerated сервер генерирует request ID и возвращает его
// в заголовке
func TestRequestIDGenerated(t *testing.T) {
	router := newTestRouter(GinRequestIDMiddleware())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("Ожидался сгенерированный X-Request-ID")
	}
}

// TestRequestIDPropagated клиентский request ID сохраняется
func TestRequestIDPropagated(t *testing.T) {
	router := newTestRouter(GinRequestIDMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "client-id-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") != "client-id-1" {
		t.Errorf("Клиентский request ID потерян: %q", w.Header().Get("X-Request-ID"))
	}
}

// TestCORSPreflight OPTIONS завершается 204 с CORS заголовками
func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(GinCORSMiddleware())

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Ожидался 204, получено %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Отсутствует заголовок Access-Control-Allow-Origin")
	}
}

// TestRateLimit превышение лимита дает 429
func TestRateLimit(t *testing.T) {
	router := newTestRouter(GinRateLimitMiddleware(rate.Limit(1), 2))

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("Запросы в пределах burst должны проходить: %v", codes)
	}
	if codes[3] != http.StatusTooManyRequests {
		t.Errorf("Ожидался 429 после исчерпания burst: %v", codes)
	}
}

// TestRecoveryMiddleware паника обработчика превращается в JSON 500
func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinRequestIDMiddleware(), GinRecoveryMiddleware())
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Ожидался 500, получено %d", w.Code)
	}
}
