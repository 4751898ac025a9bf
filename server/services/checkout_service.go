package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/google/uuid"

	apperrors "shopserver/server/errors"
)

// zeroDecimalCurrencies валюты без минорных единиц
var zeroDecimalCurrencies = map[string]struct{}{
	"bif": {}, "clp": {}, "djf": {}, "gnf": {}, "jpy": {}, "kmf": {},
	"krw": {}, "mga": {}, "pyg": {}, "rwf": {}, "ugx": {}, "vnd": {},
	"vuv": {}, "xaf": {}, "xof": {}, "xpf": {},
}

// threeDecimalCurrencies валюты с тремя знаками минорных единиц
var threeDecimalCurrencies = map[string]struct{}{
	"bhd": {}, "jod": {}, "kwd": {}, "omr": {}, "tnd": {},
}

// CurrencyExponent возвращает число знаков минорных единиц валюты
func CurrencyExponent(currency string) int {
	lower := strings.ToLower(currency)
	if _, ok := zeroDecimalCurrencies[lower]; ok {
		return 0
	}
	if _, ok := threeDecimalCurrencies[lower]; ok {
		return 3
	}
	return 2
}

// ToMinorAmount переводит сумму в минорные единицы валюты с
// округлением half-up
func ToMinorAmount(amountMajor float64, currency string) int64 {
	scale := math.Pow(10, float64(CurrencyExponent(currency)))
	return int64(math.Round(amountMajor * scale))
}

// CheckoutItem позиция оформляемого заказа
type CheckoutItem struct {
	ProductID       string  `json:"product_id"`
	Name            string  `json:"name"`
	UnitAmountMajor float64 `json:"unit_amount_major"`
	Quantity        int     `json:"quantity"`
}

// CheckoutTotals суммы заказа в минорных единицах
type CheckoutTotals struct {
	SubtotalMinor   int64  `json:"subtotal_minor"`
	DiscountMinor   int64  `json:"discount_minor"`
	TaxMinor        int64  `json:"tax_minor"`
	ShippingMinor   int64  `json:"shipping_minor"`
	GrandTotalMinor int64  `json:"grand_total_minor"`
	Currency        string `json:"currency"`
}

// CheckoutSession сессия оформления заказа
type CheckoutSession struct {
	ID        string         `json:"id"`
	Status    string         `json:"status"`
	Items     []CheckoutItem `json:"items"`
	Currency  string         `json:"currency"`
	PromoCode string         `json:"promo_code,omitempty"`
	Totals    CheckoutTotals `json:"totals"`
}

// Статусы сессии оформления
const (
	SessionRequiresConfirmation = "requires_confirmation"
	SessionSucceeded            = "succeeded"
)

// promoWelcomeDiscount скидка промокода WELCOME10
const promoWelcomeDiscount = 0.10

// idempotencyKey кэш идемпотентности ключуется парой (ключ, операция):
// один ключ может использоваться для create и complete независимо
type idempotencyKey struct {
	key       string
	operation string
}

// CheckoutService сервис оформления заказа: расчет сумм, сессии,
// идемпотентность повторных запросов
type CheckoutService struct {
	mu          sync.Mutex
	sessions    map[string]*CheckoutSession
	idempotency map[idempotencyKey]string
}

// NewCheckoutService создает новый сервис оформления
func NewCheckoutService() *CheckoutService {
	return &CheckoutService{
		sessions:    make(map[string]*CheckoutSession),
		idempotency: make(map[idempotencyKey]string),
	}
}

// ComputeTotals рассчитывает суммы заказа. Промокод WELCOME10 дает 10%
// скидки; доставка 5.00 EUR при подытоге меньше 50.00 EUR
func (cs *CheckoutService) ComputeTotals(items []CheckoutItem, currency string, promoCode string) (CheckoutTotals, error) {
	if len(items) == 0 {
		return CheckoutTotals{}, apperrors.NewValidationError("пустой список позиций", errors.New("no checkout items"))
	}
	if strings.TrimSpace(currency) == "" {
		return CheckoutTotals{}, apperrors.NewValidationError("не указана валюта", errors.New("empty currency"))
	}

	var subtotal int64
	for _, item := range items {
		unitAmount := ToMinorAmount(item.UnitAmountMajor, currency)
		if unitAmount <= 0 {
			return CheckoutTotals{}, apperrors.NewValidationError(
				fmt.Sprintf("некорректная цена позиции %q", item.Name),
				fmt.Errorf("invalid unit_amount %v", item.UnitAmountMajor),
			)
		}
		if item.Quantity <= 0 {
			return CheckoutTotals{}, apperrors.NewValidationError(
				fmt.Sprintf("некорректное количество позиции %q", item.Name),
				fmt.Errorf("invalid quantity %d", item.Quantity),
			)
		}
		subtotal += unitAmount * int64(item.Quantity)
	}

	var discount int64
	if strings.EqualFold(strings.TrimSpace(promoCode), "WELCOME10") {
		discount = int64(float64(subtotal) * promoWelcomeDiscount)
	}

	taxableBase := subtotal - discount
	if taxableBase < 0 {
		taxableBase = 0
	}

	var shipping int64
	if strings.EqualFold(currency, "EUR") && float64(subtotal)/100.0 < 50.0 {
		shipping = 500
	}

	grand := taxableBase + shipping
	if grand < 0 {
		grand = 0
	}

	return CheckoutTotals{
		SubtotalMinor:   subtotal,
		DiscountMinor:   discount,
		TaxMinor:        0,
		ShippingMinor:   shipping,
		GrandTotalMinor: grand,
		Currency:        strings.ToUpper(currency),
	}, nil
}

// CreateSession создает сессию оформления. Повторный запрос с тем же
// idempotency key возвращает сохраненный ответ
func (cs *CheckoutService) CreateSession(items []CheckoutItem, currency, promoCode, idemKey string) (*CheckoutSession, error) {
	if cached, ok := cs.cachedResponse(idemKey, "create"); ok {
		return cached, nil
	}

	totals, err := cs.ComputeTotals(items, currency, promoCode)
	if err != nil {
		return nil, err
	}

	session := &CheckoutSession{
		ID:        uuid.New().String(),
		Status:    SessionRequiresConfirmation,
		Items:     items,
		Currency:  currency,
		PromoCode: promoCode,
		Totals:    totals,
	}

	cs.mu.Lock()
	cs.sessions[session.ID] = session
	cs.mu.Unlock()

	cs.saveResponse(idemKey, "create", session)
	return session, nil
}

// UpdateSession пересчитывает сессию с новыми позициями, валютой или
// промокодом; nil-параметры оставляют текущие значения
func (cs *CheckoutService) UpdateSession(sessionID string, items []CheckoutItem, currency, promoCode *string) (*CheckoutSession, error) {
	cs.mu.Lock()
	session, ok := cs.sessions[sessionID]
	cs.mu.Unlock()
	if !ok {
		return nil, apperrors.NewNotFoundError("сессия не найдена", fmt.Errorf("session %q", sessionID))
	}

	newItems := session.Items
	if items != nil {
		newItems = items
	}
	newCurrency := session.Currency
	if currency != nil {
		newCurrency = *currency
	}
	newPromo := session.PromoCode
	if promoCode != nil {
		newPromo = *promoCode
	}

	totals, err := cs.ComputeTotals(newItems, newCurrency, newPromo)
	if err != nil {
		return nil, err
	}

	cs.mu.Lock()
	session.Items = newItems
	session.Currency = newCurrency
	session.PromoCode = newPromo
	session.Totals = totals
	updated := *session
	cs.mu.Unlock()

	return &updated, nil
}

// CompleteSession завершает сессию оформления. Повторный запрос с тем
// же idempotency key возвращает сохраненный ответ без повторного
// завершения
func (cs *CheckoutService) CompleteSession(sessionID, idemKey string) (*CheckoutSession, error) {
	if cached, ok := cs.cachedResponse(idemKey, "complete"); ok {
		return cached, nil
	}

	cs.mu.Lock()
	session, ok := cs.sessions[sessionID]
	if ok {
		session.Status = SessionSucceeded
	}
	var completed CheckoutSession
	if ok {
		completed = *session
	}
	cs.mu.Unlock()

	if !ok {
		return nil, apperrors.NewNotFoundError("сессия не найдена", fmt.Errorf("session %q", sessionID))
	}

	cs.saveResponse(idemKey, "complete", &completed)
	return &completed, nil
}

// GetSession возвращает сессию по идентификатору
func (cs *CheckoutService) GetSession(sessionID string) (*CheckoutSession, error) {
	cs.mu.Lock()
	session, ok := cs.sessions[sessionID]
	var copied CheckoutSession
	if ok {
		copied = *session
	}
	cs.mu.Unlock()

	if !ok {
		return nil, apperrors.NewNotFoundError("сессия не найдена", fmt.Errorf("session %q", sessionID))
	}
	return &copied, nil
}

func (cs *CheckoutService) cachedResponse(idemKey, operation string) (*CheckoutSession, bool) {
	if idemKey == "" {
		return nil, false
	}

	cs.mu.Lock()
	payload, ok := cs.idempotency[idempotencyKey{key: idemKey, operation: operation}]
	cs.mu.Unlock()
	if !ok {
		return nil, false
	}

	var session CheckoutSession
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, false
	}
	return &session, true
}

func (cs *CheckoutService) saveResponse(idemKey, operation string, session *CheckoutSession) {
	if idemKey == "" {
		return
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return
	}

	cs.mu.Lock()
	cs.idempotency[idempotencyKey{key: idemKey, operation: operation}] = string(payload)
	cs.mu.Unlock()
}
