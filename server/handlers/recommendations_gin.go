package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopserver/cart"
	"shopserver/recommendation"
	"shopserver/server/services"
)

// RecommendationsHandler обработчики рекомендаций
type RecommendationsHandler struct {
	recommendationService *services.RecommendationService
}

// NewRecommendationsHandler создает новый обработчик рекомендаций
func NewRecommendationsHandler(recommendationService *services.RecommendationService) *RecommendationsHandler {
	return &RecommendationsHandler{recommendationService: recommendationService}
}

// CrossSellRequest тело запроса cross-sell подсказок
type CrossSellRequest struct {
	Items []cart.CartItem `json:"items"`
}

// CrossSellResponse ответ с cross-sell подсказками
type CrossSellResponse struct {
	Suggestions []recommendation.CrossSellItem `json:"suggestions"`
	Total       int                            `json:"total"`
}

// MergeRequest тело запроса слияния подсказок
type MergeRequest struct {
	Items    []cart.CartItem                `json:"items"`
	External []recommendation.CrossSellItem `json:"external"`
}

// RelatedRequest тело запроса похожих товаров
type RelatedRequest struct {
	Focal cart.CartItem   `json:"focal"`
	Pool  []cart.CartItem `json:"pool"`
}

// RelatedResponse ответ с похожими товарами
type RelatedResponse struct {
	Related []recommendation.RelatedItem `json:"related"`
	Total   int                          `json:"total"`
}

// HandleCrossSellGin обработчик cross-sell подсказок
// @Summary Получить cross-sell подсказки для корзины
// @Description Подсказки аксессуаров по содержимому корзины; при наличии внешнего сервиса его ответ сливается с локальными
// @Tags recommendations
// @Accept json
// @Produce json
// @Param cart body CrossSellRequest true "Содержимое корзины"
// @Success 200 {object} CrossSellResponse "Подсказки"
// @Failure 400 {object} ErrorResponse "Неверный запрос"
// @Router /api/recommendations/cross-sell [post]
func (h *RecommendationsHandler) HandleCrossSellGin(c *gin.Context) {
	var req CrossSellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendJSONError(c, http.StatusBadRequest, "некорректное тело запроса")
		return
	}

	suggestions := h.recommendationService.CrossSell(c.Request.Context(), req.Items)
	SendJSONResponse(c, http.StatusOK, CrossSellResponse{
		Suggestions: suggestions,
		Total:       len(suggestions),
	})
}

// HandleMergeCrossSellGin обработчик слияния внешних подсказок
// @Summary Слить внешние подсказки с локальными
// @Description Внешние подсказки фильтруются (первичные устройства и несовместимые категории отбрасываются) и идут первыми; дубликаты по SKU удаляются
// @Tags recommendations
// @Accept json
// @Produce json
// @Param request body MergeRequest true "Корзина и внешние подсказки"
// @Success 200 {object} CrossSellResponse "Слитые подсказки"
// @Failure 400 {object} ErrorResponse "Неверный запрос"
// @Router /api/recommendations/cross-sell/merge [post]
func (h *RecommendationsHandler) HandleMergeCrossSellGin(c *gin.Context) {
	var req MergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendJSONError(c, http.StatusBadRequest, "некорректное тело запроса")
		return
	}

	merged := h.recommendationService.Merge(req.Items, req.External)
	SendJSONResponse(c, http.StatusOK, CrossSellResponse{
		Suggestions: merged,
		Total:       len(merged),
	})
}

// HandleRelatedGin обработчик похожих товаров
// @Summary Получить похожие товары
// @Description Похожие товары для фокусного товара из переданного пула
// @Tags recommendations
// @Accept json
// @Produce json
// @Param request body RelatedRequest true "Фокусный товар и пул кандидатов"
// @Success 200 {object} RelatedResponse "Похожие товары"
// @Failure 400 {object} ErrorResponse "Неверный запрос"
// @Router /api/recommendations/related [post]
func (h *RecommendationsHandler) HandleRelatedGin(c *gin.Context) {
	var req RelatedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendJSONError(c, http.StatusBadRequest, "некорректное тело запроса")
		return
	}
	if req.Focal.ID == "" {
		SendJSONError(c, http.StatusBadRequest, "не указан фокусный товар")
		return
	}

	related := h.recommendationService.Related(req.Focal, req.Pool)
	SendJSONResponse(c, http.StatusOK, RelatedResponse{
		Related: related,
		Total:   len(related),
	})
}
