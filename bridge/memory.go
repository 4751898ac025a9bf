package bridge

import (
	"encoding/json"
	"sync"
)

// MemoryBridge внутрипроцессная реализация моста. Играет роль хоста,
// когда несколько движков корзины живут в одном процессе (демо-режим,
// тесты): каждая поверхность получает те же уведомления, что дал бы
// настоящий мост хоста.
type MemoryBridge struct {
	mu          sync.Mutex
	payload     json.RawMessage
	subscribers map[int]func()
	nextID      int
}

// NewMemoryBridge создает пустой мост
func NewMemoryBridge() *MemoryBridge {
	return &MemoryBridge{
		subscribers: make(map[int]func()),
	}
}

// Read возвращает копию текущего блоба или nil
func (b *MemoryBridge) Read() (json.RawMessage, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.payload == nil {
		return nil, nil
	}
	copied := make(json.RawMessage, len(b.payload))
	copy(copied, b.payload)
	return copied, nil
}

// Write сохраняет блоб и синхронно уведомляет всех подписчиков.
// Уведомление получает и автор записи — подавление собственного эха
// является обязанностью движка (guard-флаг), как и с настоящим мостом.
func (b *MemoryBridge) Write(payload json.RawMessage) error {
	b.mu.Lock()
	copied := make(json.RawMessage, len(payload))
	copy(copied, payload)
	b.payload = copied

	notify := make([]func(), 0, len(b.subscribers))
	for _, fn := range b.subscribers {
		notify = append(notify, fn)
	}
	b.mu.Unlock()

	for _, fn := range notify {
		fn()
	}
	return nil
}

// Subscribe регистрирует подписчика и возвращает функцию отписки
func (b *MemoryBridge) Subscribe(fn func()) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subscribers[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subscribers, id)
		b.mu.Unlock()
	}
}

// MemoryScratch scratch-хранилище в памяти для тестов и демо-режима
type MemoryScratch struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryScratch создает пустое scratch-хранилище
func NewMemoryScratch() *MemoryScratch {
	return &MemoryScratch{values: make(map[string]string)}
}

// Get возвращает значение по ключу
func (s *MemoryScratch) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok
}

// Set сохраняет значение по ключу
func (s *MemoryScratch) Set(key string, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}
