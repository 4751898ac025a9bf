package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopserver/server/services"
)

// CheckoutHandler обработчики оформления заказа
type CheckoutHandler struct {
	checkoutService *services.CheckoutService
}

// NewCheckoutHandler создает новый обработчик оформления
func NewCheckoutHandler(checkoutService *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// TotalsRequest тело запроса расчета сумм
type TotalsRequest struct {
	Items     []services.CheckoutItem `json:"items"`
	Currency  string                  `json:"currency"`
	PromoCode string                  `json:"promo_code"`
}

// SessionRequest тело запроса создания сессии
type SessionRequest struct {
	Items     []services.CheckoutItem `json:"items"`
	Currency  string                  `json:"currency"`
	PromoCode string                  `json:"promo_code"`
}

// SessionUpdateRequest тело запроса обновления сессии; nil-поля
// оставляют текущие значения
type SessionUpdateRequest struct {
	Items     []services.CheckoutItem `json:"items"`
	Currency  *string                 `json:"currency"`
	PromoCode *string                 `json:"promo_code"`
}

// HandleTotalsGin обработчик расчета сумм заказа
// @Summary Рассчитать суммы заказа
// @Description Суммы в минорных единицах валюты: подытог, скидка промокода, доставка, итог
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body TotalsRequest true "Позиции, валюта и промокод"
// @Success 200 {object} services.CheckoutTotals "Суммы заказа"
// @Failure 400 {object} ErrorResponse "Неверный запрос"
// @Router /api/checkout/totals [post]
func (h *CheckoutHandler) HandleTotalsGin(c *gin.Context) {
	var req TotalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendJSONError(c, http.StatusBadRequest, "некорректное тело запроса")
		return
	}

	totals, err := h.checkoutService.ComputeTotals(req.Items, req.Currency, req.PromoCode)
	if err != nil {
		SendAppError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, totals)
}

// HandleCreateSessionGin обработчик создания сессии оформления
// @Summary Создать сессию оформления заказа
// @Description Повторный запрос с тем же заголовком Idempotency-Key возвращает сохраненный ответ
// @Tags checkout
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Ключ идемпотентности"
// @Param request body SessionRequest true "Позиции, валюта и промокод"
// @Success 200 {object} services.CheckoutSession "Сессия"
// @Failure 400 {object} ErrorResponse "Неверный запрос"
// @Router /api/checkout/sessions [post]
func (h *CheckoutHandler) HandleCreateSessionGin(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendJSONError(c, http.StatusBadRequest, "некорректное тело запроса")
		return
	}

	session, err := h.checkoutService.CreateSession(req.Items, req.Currency, req.PromoCode, c.GetHeader("Idempotency-Key"))
	if err != nil {
		SendAppError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, session)
}

// HandleUpdateSessionGin обработчик обновления сессии оформления
// @Summary Обновить сессию оформления заказа
// @Tags checkout
// @Accept json
// @Produce json
// @Param id path string true "Идентификатор сессии"
// @Param request body SessionUpdateRequest true "Изменяемые поля"
// @Success 200 {object} services.CheckoutSession "Сессия"
// @Failure 404 {object} ErrorResponse "Сессия не найдена"
// @Router /api/checkout/sessions/{id} [patch]
func (h *CheckoutHandler) HandleUpdateSessionGin(c *gin.Context) {
	var req SessionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendJSONError(c, http.StatusBadRequest, "некорректное тело запроса")
		return
	}

	session, err := h.checkoutService.UpdateSession(c.Param("id"), req.Items, req.Currency, req.PromoCode)
	if err != nil {
		SendAppError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, session)
}

// HandleCompleteSessionGin обработчик завершения сессии оформления
// @Summary Завершить сессию оформления заказа
// @Description Завершение идемпотентно по заголовку Idempotency-Key
// @Tags checkout
// @Produce json
// @Param id path string true "Идентификатор сессии"
// @Param Idempotency-Key header string false "Ключ идемпотентности"
// @Success 200 {object} services.CheckoutSession "Сессия"
// @Failure 404 {object} ErrorResponse "Сессия не найдена"
// @Router /api/checkout/sessions/{id}/complete [post]
func (h *CheckoutHandler) HandleCompleteSessionGin(c *gin.Context) {
	session, err := h.checkoutService.CompleteSession(c.Param("id"), c.GetHeader("Idempotency-Key"))
	if err != nil {
		SendAppError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, session)
}
