package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutItems() []CheckoutItem {
	return []CheckoutItem{
		{ProductID: "p1", Name: "Gaming Laptop", UnitAmountMajor: 29.90, Quantity: 1},
		{ProductID: "p2", Name: "Mouse wireless", UnitAmountMajor: 9.90, Quantity: 2},
	}
}

// TestComputeTotalsEUR подытог меньше 50 EUR добавляет доставку 5.00
func TestComputeTotalsEUR(t *testing.T) {
	service := NewCheckoutService()

	totals, err := service.ComputeTotals(checkoutItems(), "eur", "")
	require.NoError(t, err)

	// 2990 + 2*990 = 4970
	assert.Equal(t, int64(4970), totals.SubtotalMinor)
	assert.Equal(t, int64(0), totals.DiscountMinor)
	assert.Equal(t, int64(500), totals.ShippingMinor)
	assert.Equal(t, int64(5470), totals.GrandTotalMinor)
	assert.Equal(t, "EUR", totals.Currency)
}

// TestComputeTotalsPromo промокод WELCOME10 дает 10% скидки; скидка
// считается от подытога с усечением
func TestComputeTotalsPromo(t *testing.T) {
	service := NewCheckoutService()

	items := []CheckoutItem{
		{ProductID: "p1", Name: "TV", UnitAmountMajor: 599.95, Quantity: 1},
	}
	totals, err := service.ComputeTotals(items, "EUR", "welcome10")
	require.NoError(t, err)

	assert.Equal(t, int64(59995), totals.SubtotalMinor)
	assert.Equal(t, int64(5999), totals.DiscountMinor)
	// Подытог выше порога, доставка бесплатная
	assert.Equal(t, int64(0), totals.ShippingMinor)
	assert.Equal(t, int64(53996), totals.GrandTotalMinor)
}

// TestComputeTotalsCurrencyExponent минорные единицы зависят от валюты
func TestComputeTotalsCurrencyExponent(t *testing.T) {
	service := NewCheckoutService()

	jpy := []CheckoutItem{{ProductID: "p1", Name: "Cavo", UnitAmountMajor: 1500, Quantity: 1}}
	totals, err := service.ComputeTotals(jpy, "JPY", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1500), totals.SubtotalMinor)

	kwd := []CheckoutItem{{ProductID: "p1", Name: "Cavo", UnitAmountMajor: 1.2346, Quantity: 1}}
	totals, err = service.ComputeTotals(kwd, "KWD", "")
	require.NoError(t, err)
	// Три знака минорных единиц
	assert.Equal(t, int64(1235), totals.SubtotalMinor)
	assert.Equal(t, int64(0), totals.ShippingMinor)
}

// TestComputeTotalsRejectsInvalidItems нулевая цена и нулевое
// количество отклоняются
func TestComputeTotalsRejectsInvalidItems(t *testing.T) {
	service := NewCheckoutService()

	_, err := service.ComputeTotals([]CheckoutItem{
		{ProductID: "p1", Name: "Broken", UnitAmountMajor: 0, Quantity: 1},
	}, "EUR", "")
	assert.Error(t, err)

	_, err = service.ComputeTotals([]CheckoutItem{
		{ProductID: "p1", Name: "Broken", UnitAmountMajor: 10, Quantity: 0},
	}, "EUR", "")
	assert.Error(t, err)

	_, err = service.ComputeTotals(nil, "EUR", "")
	assert.Error(t, err)
}

// TestCreateSessionIdempotency повторный запрос с тем же ключом
// возвращает ту же сессию без создания новой
func TestCreateSessionIdempotency(t *testing.T) {
	service := NewCheckoutService()

	first, err := service.CreateSession(checkoutItems(), "EUR", "", "key-1")
	require.NoError(t, err)
	require.Equal(t, SessionRequiresConfirmation, first.Status)

	second, err := service.CreateSession(checkoutItems(), "EUR", "", "key-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// Другой ключ создает новую сессию
	third, err := service.CreateSession(checkoutItems(), "EUR", "", "key-2")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
}

// TestUpdateSession пересчет сумм с новым промокодом; nil-параметры
// не меняют сессию
func TestUpdateSession(t *testing.T) {
	service := NewCheckoutService()

	session, err := service.CreateSession(checkoutItems(), "EUR", "", "")
	require.NoError(t, err)

	promo := "WELCOME10"
	updated, err := service.UpdateSession(session.ID, nil, nil, &promo)
	require.NoError(t, err)
	assert.Equal(t, int64(497), updated.Totals.DiscountMinor)
	assert.Len(t, updated.Items, 2)

	_, err = service.UpdateSession("missing", nil, nil, nil)
	assert.Error(t, err)
}

// TestCompleteSessionIdempotency завершение сессии идемпотентно по
// ключу; один ключ независим между операциями create и complete
func TestCompleteSessionIdempotency(t *testing.T) {
	service := NewCheckoutService()

	session, err := service.CreateSession(checkoutItems(), "EUR", "", "shared-key")
	require.NoError(t, err)

	completed, err := service.CompleteSession(session.ID, "shared-key")
	require.NoError(t, err)
	assert.Equal(t, SessionSucceeded, completed.Status)

	again, err := service.CompleteSession(session.ID, "shared-key")
	require.NoError(t, err)
	assert.Equal(t, completed.ID, again.ID)

	_, err = service.CompleteSession("missing", "")
	assert.Error(t, err)
}
