package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"shopserver/classification"
	"shopserver/database"
	"shopserver/recommendation"
	"shopserver/server/services"
)

func newCatalogRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDB(":memory:")
	if err != nil {
		t.Fatalf("Не удалось открыть базу данных: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := database.NewCatalogStore(db)
	if err := store.EnsureSeeded(); err != nil {
		t.Fatalf("Не удалось засеять каталог: %v", err)
	}

	handler := NewCatalogHandler(services.NewCatalogService(store, classification.NewClassifier(nil)))

	router := gin.New()
	api := router.Group("/api")
	api.POST("/catalog/import", handler.HandleImportGin)
	api.GET("/catalog", handler.HandleListGin)
	api.GET("/export/suggestions", handler.HandleExportGin)
	return router
}

// TestHandleCatalogList выборка каталога с фильтром по категории
func TestHandleCatalogList(t *testing.T) {
	router := newCatalogRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Ожидался 200, получено %d: %s", w.Code, w.Body.String())
	}

	var resp CatalogResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Не удалось разобрать ответ: %v", err)
	}
	if resp.Total == 0 {
		t.Fatal("Засеянный каталог не должен быть пустым")
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/catalog?category=tv", nil))
	var filtered CatalogResponse
	if err := json.Unmarshal(w.Body.Bytes(), &filtered); err != nil {
		t.Fatalf("Не удалось разобрать ответ: %v", err)
	}
	if filtered.Total == 0 || filtered.Total >= resp.Total {
		t.Errorf("Фильтр по категории должен сужать выборку: %d из %d", filtered.Total, resp.Total)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/catalog?max_price=abc", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Ожидался 400 на некорректный max_price, получено %d", w.Code)
	}
}

// TestHandleCatalogImport импорт CSV добавляет записи
func TestHandleCatalogImport(t *testing.T) {
	router := newCatalogRouter(t)

	csv := "id,sku,name,price,image_url,tags,compatible_with,priority\n" +
		"cs-hub-01,CS-HUB-01,Hub USB-C 7 porte,\"39,90\",,hub,pc,60\n"
	req := httptest.NewRequest(http.MethodPost, "/api/catalog/import?format=csv", strings.NewReader(csv))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Ожидался 200, получено %d: %s", w.Code, w.Body.String())
	}
	var resp ImportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Не удалось разобрать ответ: %v", err)
	}
	if resp.Imported != 1 {
		t.Errorf("Ожидалась 1 запись, получено %d", resp.Imported)
	}

	// Пустое тело и неизвестный формат отклоняются
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/catalog/import", strings.NewReader("")))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Ожидался 400 на пустое тело, получено %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/catalog/import?format=xml", strings.NewReader("data")))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Ожидался 400 на неизвестный формат, получено %d", w.Code)
	}
}

// TestHandleCatalogEnrich обогащение заполняет пустые изображения по
// страницам товаров; пустой шаблон отклоняется
func TestHandleCatalogEnrich(t *testing.T) {
	gin.SetMode(gin.TestMode)

	pageServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><meta property="og:image" content="https://cdn.example.com/hub.jpg"></head><body></body></html>`))
	}))
	defer pageServer.Close()

	db, err := database.NewDB(":memory:")
	if err != nil {
		t.Fatalf("Не удалось открыть базу данных: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := database.NewCatalogStore(db)
	if err := store.UpsertItems([]recommendation.CrossSellItem{
		{ID: "cs-hub-01", SKU: "CS-HUB-01", Name: "Hub USB-C 7 porte", Price: 39.9, Priority: 60},
	}); err != nil {
		t.Fatalf("Не удалось сохранить запись каталога: %v", err)
	}

	handler := NewCatalogHandler(services.NewCatalogService(store, classification.NewClassifier(nil)))
	router := gin.New()
	router.POST("/api/catalog/enrich", handler.HandleEnrichGin)

	body := `{"page_url_template":"` + pageServer.URL + `/products/{sku}"}`
	req := httptest.NewRequest(http.MethodPost, "/api/catalog/enrich", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Ожидался 200, получено %d: %s", w.Code, w.Body.String())
	}
	var resp EnrichResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Не удалось разобрать ответ: %v", err)
	}
	if resp.Enriched != 1 {
		t.Errorf("Ожидалась 1 обогащенная запись, получено %d", resp.Enriched)
	}

	items, err := store.ListItems(database.CatalogFilter{})
	if err != nil {
		t.Fatalf("Не удалось прочитать каталог: %v", err)
	}
	if len(items) != 1 || items[0].ImageURL != "https://cdn.example.com/hub.jpg" {
		t.Errorf("Изображение не сохранено: %+v", items)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/catalog/enrich", strings.NewReader(`{"page_url_template":""}`)))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Ожидался 400 на пустой шаблон, получено %d", w.Code)
	}
}

// TestHandleExport экспорт каталога в CSV и JSON
func TestHandleExport(t *testing.T) {
	router := newCatalogRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/export/suggestions?format=csv", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Ожидался 200, получено %d", w.Code)
	}
	if !strings.Contains(w.Header().Get("Content-Type"), "text/csv") {
		t.Errorf("Некорректный Content-Type: %q", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), "SKU") {
		t.Error("CSV должен содержать заголовки")
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/export/suggestions", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Ожидался 200, получено %d", w.Code)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("JSON-экспорт не разбирается: %v", err)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/export/suggestions?format=bad", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Ожидался 400 на неизвестный формат, получено %d", w.Code)
	}
}
