// Package bridge описывает контракт внешнего моста состояния:
// key-value интерфейс хоста, через который изолированные поверхности UI
// обмениваются блобом состояния корзины, и локальное scratch-хранилище
// для резервной копии на том же устройстве.
package bridge

import "encoding/json"

// Bridge внешний мост разделяемого состояния. Payload — сырой JSON-блоб:
// валидация схемы выполняется на границе движком корзины, мост о форме
// данных ничего не знает.
type Bridge interface {
	// Read возвращает текущий блоб или nil, если состояние отсутствует
	Read() (json.RawMessage, error)

	// Write записывает блоб и уведомляет подписчиков
	Write(payload json.RawMessage) error

	// Subscribe подписывает на уведомления об изменении состояния.
	// Возвращает функцию отписки.
	Subscribe(fn func()) (unsubscribe func())
}

// Scratch локальное резервное хранилище. Используется только как
// fallback на том же устройстве, не для синхронизации между
// устройствами. Ошибки записи подавляются реализацией: scratch —
// best-effort хранилище.
type Scratch interface {
	Get(key string) (string, bool)
	Set(key string, value string)
}
