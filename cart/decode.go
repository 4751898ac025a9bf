package cart

import (
	"bytes"
	"encoding/json"
)

// DecodeStatus результат декодирования внешнего блоба
type DecodeStatus int

const (
	// StateValid блоб соответствует схеме CartState
	StateValid DecodeStatus = iota
	// StateAbsent состояние отсутствует (nil, пустой блоб, null)
	StateAbsent
	// StateMalformed блоб есть, но схеме не соответствует.
	// Реконсиляция обрабатывает его как отсутствующее состояние,
	// но случай логируется отдельно.
	StateMalformed
)

// DecodeResult размеченный результат декодирования. Границей схемы
// владеет движок: мост возвращает сырой JSON, и любой не прошедший
// валидацию payload деградирует до Absent/Malformed вместо ошибки.
type DecodeResult struct {
	Status DecodeStatus
	Items  []CartItem
}

// DecodeState валидирует сырой блоб внешнего хранилища.
// Контракт: payload обязан round-trip'иться как {items: CartItem[]};
// всё остальное считается отсутствующим состоянием.
func DecodeState(raw json.RawMessage) DecodeResult {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return DecodeResult{Status: StateAbsent}
	}

	var probe struct {
		Items *[]CartItem `json:"items"`
	}
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return DecodeResult{Status: StateMalformed}
	}
	if probe.Items == nil {
		return DecodeResult{Status: StateMalformed}
	}

	items := make([]CartItem, 0, len(*probe.Items))
	for _, item := range *probe.Items {
		if item.ID == "" {
			continue
		}
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		items = append(items, item)
	}

	return DecodeResult{Status: StateValid, Items: dedupeByID(items)}
}

// EncodeState сериализует список позиций в форму блоба
func EncodeState(items []CartItem) json.RawMessage {
	if items == nil {
		items = []CartItem{}
	}
	payload, err := json.Marshal(CartState{Items: items})
	if err != nil {
		// CartState состоит из сериализуемых полей; сюда попасть нельзя
		return json.RawMessage(`{"items":[]}`)
	}
	return payload
}
