package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopserver/cart"
	"shopserver/server/services"
)

// CartHandler обработчики операций корзины
type CartHandler struct {
	cartService *services.CartService
}

// NewCartHandler создает новый обработчик корзины
func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// AddItemRequest тело запроса добавления товара
type AddItemRequest struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Price            interface{} `json:"price"`
	Description      string      `json:"description"`
	Image            string      `json:"image"`
	Tags             []string    `json:"tags"`
	ShortDescription string      `json:"shortDescription"`
	DetailSummary    string      `json:"detailSummary"`
	Highlights       []string    `json:"highlights"`
}

// CartResponse снимок корзины
type CartResponse struct {
	Items []cart.CartItem `json:"items"`
	State string          `json:"state"`
}

// ContainsResponse ответ проверки наличия товара
type ContainsResponse struct {
	ID       string `json:"id"`
	Contains bool   `json:"contains"`
}

// HandleAddItemGin обработчик добавления товара в корзину
// @Summary Добавить товар в корзину
// @Description Добавляет товар или увеличивает количество; цена принимается в любом формате витрины
// @Tags cart
// @Accept json
// @Produce json
// @Param item body AddItemRequest true "Товар"
// @Success 200 {object} CartResponse "Снимок корзины"
// @Failure 400 {object} ErrorResponse "Неверный запрос"
// @Router /api/cart/items [post]
func (h *CartHandler) HandleAddItemGin(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendJSONError(c, http.StatusBadRequest, "некорректное тело запроса")
		return
	}

	err := h.cartService.AddItem(cart.ProductInput{
		ID:               req.ID,
		Name:             req.Name,
		Price:            req.Price,
		Description:      req.Description,
		Image:            req.Image,
		Tags:             req.Tags,
		ShortDescription: req.ShortDescription,
		DetailSummary:    req.DetailSummary,
		Highlights:       req.Highlights,
	})
	if err != nil {
		SendAppError(c, err)
		return
	}

	h.sendSnapshot(c)
}

// HandleRemoveItemGin обработчик удаления товара из корзины
// @Summary Удалить единицу товара из корзины
// @Description Уменьшает количество; последняя единица удаляет позицию
// @Tags cart
// @Produce json
// @Param id path string true "Идентификатор товара"
// @Success 200 {object} CartResponse "Снимок корзины"
// @Failure 404 {object} ErrorResponse "Товар не найден"
// @Router /api/cart/items/{id} [delete]
func (h *CartHandler) HandleRemoveItemGin(c *gin.Context) {
	if err := h.cartService.RemoveItem(c.Param("id")); err != nil {
		SendAppError(c, err)
		return
	}
	h.sendSnapshot(c)
}

// HandleClearGin обработчик очистки корзины
// @Summary Очистить корзину
// @Tags cart
// @Produce json
// @Success 200 {object} CartResponse "Снимок корзины"
// @Router /api/cart/clear [post]
func (h *CartHandler) HandleClearGin(c *gin.Context) {
	h.cartService.Clear()
	h.sendSnapshot(c)
}

// HandleGetCartGin обработчик получения снимка корзины
// @Summary Получить содержимое корзины
// @Tags cart
// @Produce json
// @Success 200 {object} CartResponse "Снимок корзины"
// @Router /api/cart [get]
func (h *CartHandler) HandleGetCartGin(c *gin.Context) {
	h.sendSnapshot(c)
}

// HandleContainsGin обработчик проверки наличия товара
// @Summary Проверить наличие товара в корзине
// @Tags cart
// @Produce json
// @Param id path string true "Идентификатор товара"
// @Success 200 {object} ContainsResponse "Результат проверки"
// @Router /api/cart/contains/{id} [get]
func (h *CartHandler) HandleContainsGin(c *gin.Context) {
	id := c.Param("id")
	SendJSONResponse(c, http.StatusOK, ContainsResponse{
		ID:       id,
		Contains: h.cartService.Contains(id),
	})
}

func (h *CartHandler) sendSnapshot(c *gin.Context) {
	SendJSONResponse(c, http.StatusOK, CartResponse{
		Items: h.cartService.Snapshot(),
		State: h.cartService.State().String(),
	})
}
