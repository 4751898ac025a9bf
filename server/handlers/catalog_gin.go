package handlers

import (
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"shopserver/recommendation"
	"shopserver/server/services"
)

// CatalogHandler обработчики каталога cross-sell
type CatalogHandler struct {
	catalogService *services.CatalogService
}

// NewCatalogHandler создает новый обработчик каталога
func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ImportResponse результат импорта каталога
type ImportResponse struct {
	Imported int `json:"imported"`
}

// CatalogResponse список записей каталога
type CatalogResponse struct {
	Items []recommendation.CrossSellItem `json:"items"`
	Total int                            `json:"total"`
}

// maxImportBodySize предел размера импортируемой выгрузки
const maxImportBodySize = 10 << 20

// HandleImportGin обработчик импорта каталога
// @Summary Импортировать записи каталога
// @Description Принимает CSV-выгрузку или HTML-страницу витрины; формат задается параметром format
// @Tags catalog
// @Accept plain
// @Produce json
// @Param format query string false "Формат выгрузки: csv или html" default(csv)
// @Success 200 {object} ImportResponse "Число принятых записей"
// @Failure 400 {object} ErrorResponse "Неверный запрос"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/catalog/import [post]
func (h *CatalogHandler) HandleImportGin(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBodySize))
	if err != nil {
		SendJSONError(c, http.StatusBadRequest, "не удалось прочитать тело запроса")
		return
	}
	if len(data) == 0 {
		SendJSONError(c, http.StatusBadRequest, "пустое тело запроса")
		return
	}

	format := strings.ToLower(c.DefaultQuery("format", "csv"))

	var imported int
	switch format {
	case "csv":
		imported, err = h.catalogService.ImportCSV(data)
	case "html":
		imported, err = h.catalogService.ImportHTML(strings.NewReader(string(data)))
	default:
		SendJSONError(c, http.StatusBadRequest, "неизвестный формат импорта")
		return
	}
	if err != nil {
		SendAppError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, ImportResponse{Imported: imported})
}

// HandleListGin обработчик выборки каталога
// @Summary Получить записи каталога
// @Tags catalog
// @Produce json
// @Param category query string false "Фильтр по категории (pc, tv, audio, led)"
// @Param max_price query number false "Верхняя граница цены"
// @Success 200 {object} CatalogResponse "Записи каталога"
// @Failure 400 {object} ErrorResponse "Неверный запрос"
// @Router /api/catalog [get]
func (h *CatalogHandler) HandleListGin(c *gin.Context) {
	maxPrice := 0.0
	if raw := c.Query("max_price"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			SendJSONError(c, http.StatusBadRequest, "некорректное значение max_price")
			return
		}
		maxPrice = parsed
	}

	items, err := h.catalogService.List(c.Query("category"), maxPrice)
	if err != nil {
		SendAppError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, CatalogResponse{Items: items, Total: len(items)})
}

// EnrichRequest параметры обогащения изображений
type EnrichRequest struct {
	// PageURLTemplate шаблон URL страницы товара; {sku} заменяется
	// на SKU записи каталога
	PageURLTemplate string `json:"page_url_template"`
}

// EnrichResponse результат обогащения изображений
type EnrichResponse struct {
	Enriched int `json:"enriched"`
}

// HandleEnrichGin обработчик обогащения изображений
// @Summary Обогатить записи каталога изображениями
// @Description Для записей без изображения загружает страницу товара по шаблону и извлекает URL изображения (og:image или первый img)
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body EnrichRequest true "Шаблон URL страницы товара"
// @Success 200 {object} EnrichResponse "Число обогащенных записей"
// @Failure 400 {object} ErrorResponse "Неверный запрос"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/catalog/enrich [post]
func (h *CatalogHandler) HandleEnrichGin(c *gin.Context) {
	var req EnrichRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendJSONError(c, http.StatusBadRequest, "некорректное тело запроса")
		return
	}
	template := strings.TrimSpace(req.PageURLTemplate)
	if template == "" {
		SendJSONError(c, http.StatusBadRequest, "не указан шаблон URL страницы товара")
		return
	}

	pageURL := func(item recommendation.CrossSellItem) string {
		if item.SKU == "" {
			return ""
		}
		return strings.ReplaceAll(template, "{sku}", url.PathEscape(item.SKU))
	}

	enriched, err := h.catalogService.EnrichImages(c.Request.Context(), pageURL)
	if err != nil {
		SendAppError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, EnrichResponse{Enriched: enriched})
}

// HandleExportGin обработчик экспорта каталога
// @Summary Выгрузить каталог подсказок
// @Description Экспорт каталога в JSON, CSV или Excel
// @Tags catalog
// @Produce octet-stream
// @Param format query string false "Формат: json, csv, excel" default(json)
// @Success 200 {file} file "Файл экспорта"
// @Failure 400 {object} ErrorResponse "Неверный формат"
// @Router /api/export/suggestions [get]
func (h *CatalogHandler) HandleExportGin(c *gin.Context) {
	format := c.DefaultQuery("format", "json")

	switch strings.ToLower(format) {
	case "csv":
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="suggestions.csv"`)
	case "excel", "xlsx":
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", `attachment; filename="suggestions.xlsx"`)
	default:
		c.Header("Content-Type", "application/json")
	}

	if err := h.catalogService.Export(c.Writer, format); err != nil {
		SendAppError(c, err)
	}
}
