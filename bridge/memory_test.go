package bridge

import (
	"encoding/json"
	"testing"
)

// TestMemoryBridgeReadEmpty пустой мост возвращает nil без ошибки
func TestMemoryBridgeReadEmpty(t *testing.T) {
	br := NewMemoryBridge()

	raw, err := br.Read()
	if err != nil {
		t.Fatalf("Неожиданная ошибка: %v", err)
	}
	if raw != nil {
		t.Errorf("Ожидался nil, получено %s", string(raw))
	}
}

// TestMemoryBridgeWriteNotifiesAll запись уведомляет всех подписчиков,
// включая автора
func TestMemoryBridgeWriteNotifiesAll(t *testing.T) {
	br := NewMemoryBridge()

	var first, second int
	br.Subscribe(func() { first++ })
	br.Subscribe(func() { second++ })

	if err := br.Write(json.RawMessage(`{"items":[]}`)); err != nil {
		t.Fatalf("Неожиданная ошибка записи: %v", err)
	}

	if first != 1 || second != 1 {
		t.Errorf("Ожидалось по одному уведомлению, получено %d и %d", first, second)
	}

	raw, _ := br.Read()
	if string(raw) != `{"items":[]}` {
		t.Errorf("Блоб не сохранился: %s", string(raw))
	}
}

// TestMemoryBridgeUnsubscribe отписанный подписчик уведомлений не получает
func TestMemoryBridgeUnsubscribe(t *testing.T) {
	br := NewMemoryBridge()

	var calls int
	unsubscribe := br.Subscribe(func() { calls++ })
	unsubscribe()

	_ = br.Write(json.RawMessage(`{}`))

	if calls != 0 {
		t.Errorf("Отписанный подписчик получил %d уведомлений", calls)
	}
}

// TestMemoryBridgeReadReturnsCopy мутация прочитанного блоба не влияет
// на хранимое состояние
func TestMemoryBridgeReadReturnsCopy(t *testing.T) {
	br := NewMemoryBridge()
	_ = br.Write(json.RawMessage(`{"items":[]}`))

	raw, _ := br.Read()
	raw[0] = 'X'

	again, _ := br.Read()
	if string(again) != `{"items":[]}` {
		t.Errorf("Хранимый блоб поврежден мутацией копии: %s", string(again))
	}
}

// TestMemoryScratch базовые операции scratch-хранилища
func TestMemoryScratch(t *testing.T) {
	s := NewMemoryScratch()

	if _, ok := s.Get("missing"); ok {
		t.Error("Отсутствующий ключ не должен находиться")
	}

	s.Set("key", "value")
	if v, ok := s.Get("key"); !ok || v != "value" {
		t.Errorf("Ожидалось value, получено %q (ok=%v)", v, ok)
	}
}
