package cart

import (
	"encoding/json"
	"testing"
)

// TestDecodeStateValid проверяет декодирование корректного блоба
func TestDecodeStateValid(t *testing.T) {
	raw := json.RawMessage(`{"items":[{"id":"p1","name":"Laptop","price":999.5,"quantity":2}]}`)

	result := DecodeState(raw)

	if result.Status != StateValid {
		t.Fatalf("Ожидался статус StateValid, получен %v", result.Status)
	}
	if len(result.Items) != 1 {
		t.Fatalf("Ожидалась 1 позиция, получено %d", len(result.Items))
	}
	if result.Items[0].ID != "p1" || result.Items[0].Quantity != 2 {
		t.Errorf("Некорректная позиция: %+v", result.Items[0])
	}
}

// TestDecodeStateAbsent пустой блоб и null означают отсутствие состояния
func TestDecodeStateAbsent(t *testing.T) {
	cases := []json.RawMessage{nil, json.RawMessage(""), json.RawMessage("  "), json.RawMessage("null")}

	for _, raw := range cases {
		result := DecodeState(raw)
		if result.Status != StateAbsent {
			t.Errorf("Для %q ожидался StateAbsent, получен %v", string(raw), result.Status)
		}
	}
}

// TestDecodeStateMalformed блоб без поля items или с битым JSON
func TestDecodeStateMalformed(t *testing.T) {
	cases := []json.RawMessage{
		json.RawMessage(`{"cart":[]}`),
		json.RawMessage(`{items:}`),
		json.RawMessage(`[1,2,3]`),
		json.RawMessage(`"items"`),
	}

	for _, raw := range cases {
		result := DecodeState(raw)
		if result.Status != StateMalformed {
			t.Errorf("Для %s ожидался StateMalformed, получен %v", string(raw), result.Status)
		}
	}
}

// TestDecodeStateSanitize позиции без id отбрасываются, количество
// меньше 1 поднимается до 1, дубликаты id схлопываются
func TestDecodeStateSanitize(t *testing.T) {
	raw := json.RawMessage(`{"items":[
		{"id":"","name":"ghost","quantity":1},
		{"id":"p1","name":"Mouse","quantity":0},
		{"id":"p1","name":"Mouse copy","quantity":5},
		{"id":"p2","name":"Cable","quantity":-3}
	]}`)

	result := DecodeState(raw)

	if result.Status != StateValid {
		t.Fatalf("Ожидался StateValid, получен %v", result.Status)
	}
	if len(result.Items) != 2 {
		t.Fatalf("Ожидалось 2 позиции, получено %d", len(result.Items))
	}
	if result.Items[0].ID != "p1" || result.Items[0].Name != "Mouse" || result.Items[0].Quantity != 1 {
		t.Errorf("Первое вхождение p1 должно выжить с quantity=1: %+v", result.Items[0])
	}
	if result.Items[1].ID != "p2" || result.Items[1].Quantity != 1 {
		t.Errorf("Количество p2 должно быть поднято до 1: %+v", result.Items[1])
	}
}

// TestEncodeStateRoundTrip кодирование и обратное декодирование
func TestEncodeStateRoundTrip(t *testing.T) {
	items := []CartItem{
		{ID: "a", Name: "Monitor", Price: 249.99, Quantity: 1, Tags: []string{"pc"}},
	}

	payload := EncodeState(items)
	result := DecodeState(payload)

	if result.Status != StateValid {
		t.Fatalf("Ожидался StateValid после round-trip, получен %v", result.Status)
	}
	if !itemsEqual(items, result.Items) {
		t.Errorf("Позиции изменились при round-trip: %+v", result.Items)
	}
}

// TestEncodeStateNil nil кодируется как пустой список, не как null
func TestEncodeStateNil(t *testing.T) {
	payload := EncodeState(nil)
	if string(payload) != `{"items":[]}` {
		t.Errorf("Ожидался пустой список, получено %s", string(payload))
	}
}
