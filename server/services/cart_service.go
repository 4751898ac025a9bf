package services

import (
	"errors"
	"strings"

	"shopserver/cart"
	apperrors "shopserver/server/errors"
)

// CartService сервис для работы с корзиной
type CartService struct {
	engine *cart.Engine
}

// NewCartService создает новый сервис корзины
func NewCartService(engine *cart.Engine) *CartService {
	return &CartService{engine: engine}
}

// AddItem добавляет товар в корзину. Цена принимается в любом формате
// витрины и нормализуется движком
func (cs *CartService) AddItem(product cart.ProductInput) error {
	if strings.TrimSpace(product.ID) == "" {
		return apperrors.NewValidationError("не указан идентификатор товара", errors.New("empty product id"))
	}
	if strings.TrimSpace(product.Name) == "" {
		return apperrors.NewValidationError("не указано имя товара", errors.New("empty product name"))
	}

	cs.engine.AddItem(product)
	return nil
}

// RemoveItem уменьшает количество товара; последняя единица удаляет
// позицию
func (cs *CartService) RemoveItem(productID string) error {
	if strings.TrimSpace(productID) == "" {
		return apperrors.NewValidationError("не указан идентификатор товара", errors.New("empty product id"))
	}
	if !cs.engine.IsInCart(productID) {
		return apperrors.NewNotFoundError("товар не найден в корзине", nil)
	}

	cs.engine.RemoveItem(productID)
	return nil
}

// Clear очищает корзину
func (cs *CartService) Clear() {
	cs.engine.Clear()
}

// Snapshot возвращает копию содержимого корзины
func (cs *CartService) Snapshot() []cart.CartItem {
	return cs.engine.Snapshot()
}

// Contains проверяет наличие товара в корзине
func (cs *CartService) Contains(productID string) bool {
	return cs.engine.IsInCart(productID)
}

// State возвращает состояние синхронизации движка
func (cs *CartService) State() cart.State {
	return cs.engine.State()
}
