// Package cart реализует движок разделяемого состояния корзины.
// Каждая смонтированная поверхность UI держит свой экземпляр движка
// поверх одного внешнего моста состояния; согласованность достигается
// протоколом реконсиляции, а не транзакциями.
package cart

import (
	"strings"
)

// CartItem позиция корзины. Ключом служит ID: на один id приходится
// не более одной записи, количество никогда не хранится равным нулю —
// удаление последней единицы удаляет запись.
type CartItem struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Price            float64  `json:"price"`
	Description      string   `json:"description,omitempty"`
	Quantity         int      `json:"quantity"`
	Image            string   `json:"image,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	ShortDescription string   `json:"shortDescription,omitempty"`
	DetailSummary    string   `json:"detailSummary,omitempty"`
	Highlights       []string `json:"highlights,omitempty"`
}

// CartState форма блоба в разделяемом хранилище
type CartState struct {
	Items []CartItem `json:"items"`
}

// SearchText собирает все текстовые поля позиции для keyword-анализа
func (i CartItem) SearchText() string {
	chunks := []string{
		i.Name,
		i.Description,
		i.ShortDescription,
		i.DetailSummary,
		strings.Join(i.Tags, " "),
		strings.Join(i.Highlights, " "),
	}
	nonEmpty := chunks[:0]
	for _, chunk := range chunks {
		if strings.TrimSpace(chunk) != "" {
			nonEmpty = append(nonEmpty, chunk)
		}
	}
	return strings.Join(nonEmpty, " ")
}

// CombinedText объединяет текстовые поля всех позиций корзины
func CombinedText(items []CartItem) string {
	chunks := make([]string, 0, len(items))
	for _, item := range items {
		if text := item.SearchText(); text != "" {
			chunks = append(chunks, text)
		}
	}
	return strings.Join(chunks, " ")
}

// dedupeByID оставляет первое вхождение каждого id. Через публичный
// API дубликаты не возникают, но внешний блоб мог быть поврежден.
func dedupeByID(items []CartItem) []CartItem {
	seen := make(map[string]struct{}, len(items))
	result := make([]CartItem, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		result = append(result, item)
	}
	return result
}

// itemsEqual структурное равенство двух списков позиций
func itemsEqual(a, b []CartItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !itemEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func itemEqual(a, b CartItem) bool {
	if a.ID != b.ID || a.Name != b.Name || a.Price != b.Price ||
		a.Quantity != b.Quantity || a.Description != b.Description ||
		a.Image != b.Image || a.ShortDescription != b.ShortDescription ||
		a.DetailSummary != b.DetailSummary {
		return false
	}
	return stringsEqual(a.Tags, b.Tags) && stringsEqual(a.Highlights, b.Highlights)
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
