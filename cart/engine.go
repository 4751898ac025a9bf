package cart

import (
	"bytes"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"shopserver/bridge"
	"shopserver/normalization"
)

// State состояние конечного автомата движка
type State int

const (
	// StateUninitialized до первой загрузки состояния
	StateUninitialized State = iota
	// StateSynced локальное состояние совпадает с внешним
	StateSynced
	// StateLocallyDirty локальная мутация еще не записана во внешний
	// мост (мост недоступен или запись не удалась); локальное
	// состояние остается авторитетным до успешной записи
	StateLocallyDirty
)

// String имя состояния для логов и ответов API
func (s State) String() string {
	switch s {
	case StateSynced:
		return "synced"
	case StateLocallyDirty:
		return "locally_dirty"
	default:
		return "uninitialized"
	}
}

const (
	// DefaultDebounceWindow окно подавления повторных добавлений
	// одного id (двойной клик не должен удваивать количество)
	DefaultDebounceWindow = 500 * time.Millisecond
	// DefaultGuardWindow окно подавления реакции на собственную
	// запись, наблюдаемую как внешнее изменение
	DefaultGuardWindow = 200 * time.Millisecond
	// DefaultStateKey зарезервированный ключ блоба корзины.
	// Ключ специфичен для приложения: чужие поверхности не должны
	// писать в тот же блоб.
	DefaultStateKey = "shopcart:cart-state:v1"
)

// ProductInput входные данные addItem. Цена приходит в произвольном
// представлении и нормализуется движком.
type ProductInput struct {
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

// Config конфигурация движка корзины
type Config struct {
	Bridge   bridge.Bridge
	Scratch  bridge.Scratch
	StateKey string
	// DebounceWindow и GuardWindow при нуле получают значения по умолчанию
	DebounceWindow time.Duration
	GuardWindow    time.Duration
	// Clock инъекция времени для тестов
	Clock func() time.Time
}

// Engine движок состояния корзины одной поверхности. Все мутации
// проходят через единственную точку входа syncLocal, все внешние
// изменения — через handleExternalChange; обе воронки сведены к одной
// функции реконсиляции.
//
// Разрешение конфликтов ограничено эвристикой "непустое побеждает":
// одновременные записи разных позиций с двух поверхностей не
// гарантированно выживают обе. Исходное поведение не определяет
// разрешение истинно конкурентных расходящихся записей; более строгая
// схема потребовала бы версионирования блоба.
type Engine struct {
	mu sync.Mutex

	bridge   bridge.Bridge
	scratch  bridge.Scratch
	stateKey string

	debounceWindow time.Duration
	guardWindow    time.Duration
	clock          func() time.Time

	// lastMutation отметки последнего принятого addItem по id.
	// Поле принадлежит экземпляру: движки разных поверхностей не
	// разделяют debounce-состояние.
	lastMutation map[string]time.Time

	// guardUntil до этого момента внешние уведомления игнорируются
	// (подавление эха собственной записи)
	guardUntil time.Time

	// writing поднят на время собственной записи в мост. Мост вправе
	// уведомить подписчиков синхронно из Write, пока mu еще удержан;
	// флаг проверяется до захвата mu и отсекает собственное эхо без
	// взаимной блокировки.
	writing atomic.Bool

	// knownBase последний блоб, с которым локальное состояние было
	// согласовано: наша успешная запись либо принятое внешнее
	// состояние. Непустой блоб, совпадающий с базой, можно затирать
	// пустой записью (clear, удаление последней позиции); непустой
	// блоб, которого мы еще не видели, пустой записью не затирается.
	knownBase json.RawMessage

	items []CartItem
	state State

	unsubscribe func()
}

// NewEngine создает движок и выполняет первичную загрузку состояния:
// внешний мост, затем scratch-резерв, затем пустая корзина.
func NewEngine(cfg Config) *Engine {
	e := &Engine{
		bridge:         cfg.Bridge,
		scratch:        cfg.Scratch,
		stateKey:       cfg.StateKey,
		debounceWindow: cfg.DebounceWindow,
		guardWindow:    cfg.GuardWindow,
		clock:          cfg.Clock,
		lastMutation:   make(map[string]time.Time),
		items:          []CartItem{},
		state:          StateUninitialized,
	}
	if e.stateKey == "" {
		e.stateKey = DefaultStateKey
	}
	if e.debounceWindow == 0 {
		e.debounceWindow = DefaultDebounceWindow
	}
	if e.guardWindow == 0 {
		e.guardWindow = DefaultGuardWindow
	}
	if e.clock == nil {
		e.clock = time.Now
	}

	e.mu.Lock()
	e.loadInitialLocked()
	e.mu.Unlock()

	if e.bridge != nil {
		e.unsubscribe = e.bridge.Subscribe(e.handleExternalChange)
	}

	return e
}

// loadInitialLocked первичная загрузка: мост -> scratch -> пусто.
// Поверхность, смонтированная позже других, обязана увидеть уже
// наполненную корзину, а не пустую.
func (e *Engine) loadInitialLocked() {
	if e.bridge != nil {
		raw, err := e.bridge.Read()
		if err == nil {
			result := DecodeState(raw)
			switch result.Status {
			case StateValid:
				e.items = result.Items
				e.knownBase = raw
				e.state = StateSynced
				e.mirrorScratchLocked()
				return
			case StateMalformed:
				log.Printf("[CartEngine] внешний блоб не соответствует схеме, игнорируется")
			}
		} else {
			log.Printf("[CartEngine] мост недоступен при загрузке, локальный режим: %v", err)
		}
	}

	// Резервная копия с того же устройства
	if e.scratch != nil {
		if stored, ok := e.scratch.Get(e.stateKey); ok {
			result := DecodeState(json.RawMessage(stored))
			if result.Status == StateValid && len(result.Items) > 0 {
				e.items = result.Items
				e.state = StateSynced
				// Восстановленное из scratch состояние публикуется
				// в мост (если тот пуст)
				e.syncLocalLocked()
				return
			}
		}
	}

	e.state = StateSynced
}

// Close отписывает движок от уведомлений моста
func (e *Engine) Close() {
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
}

// AddItem добавляет товар в корзину. Пустые id или name делают вызов
// no-op. Повторное добавление того же id внутри debounce-окна
// игнорируется; иначе количество существующей позиции увеличивается
// ровно на 1, остальные поля не трогаются.
func (e *Engine) AddItem(product ProductInput) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := strings.TrimSpace(product.ID)
	name := strings.TrimSpace(product.Name)
	if id == "" || name == "" {
		log.Printf("[CartEngine] addItem проигнорирован: пустой id или name")
		return
	}

	now := e.clock()
	if last, ok := e.lastMutation[id]; ok && now.Sub(last) < e.debounceWindow {
		return
	}
	e.lastMutation[id] = now

	found := false
	for i := range e.items {
		if e.items[i].ID == id {
			e.items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		e.items = append(e.items, CartItem{
			ID:               id,
			Name:             name,
			Price:            normalization.NormalizePrice(product.Price),
			Description:      product.Description,
			Quantity:         1,
			Image:            product.Image,
			Tags:             product.Tags,
			ShortDescription: product.ShortDescription,
			DetailSummary:    product.DetailSummary,
			Highlights:       product.Highlights,
		})
	}

	e.items = dedupeByID(e.items)
	e.syncLocalLocked()
}

// RemoveItem уменьшает количество позиции на 1; при нуле запись
// удаляется. Отсутствующий id — no-op.
func (e *Engine) RemoveItem(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.items {
		if e.items[i].ID != id {
			continue
		}
		e.items[i].Quantity--
		if e.items[i].Quantity <= 0 {
			e.items = append(e.items[:i], e.items[i+1:]...)
		}
		e.syncLocalLocked()
		return
	}
}

// Clear очищает корзину
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.items) == 0 {
		return
	}
	e.items = []CartItem{}
	e.syncLocalLocked()
}

// IsInCart проверяет наличие позиции
func (e *Engine) IsInCart(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, item := range e.items {
		if item.ID == id {
			return true
		}
	}
	return false
}

// Snapshot возвращает копию текущего списка позиций
func (e *Engine) Snapshot() []CartItem {
	e.mu.Lock()
	defer e.mu.Unlock()

	snapshot := make([]CartItem, len(e.items))
	copy(snapshot, e.items)
	return snapshot
}

// State возвращает текущее состояние конечного автомата
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// syncLocalLocked шаг 5 протокола реконсиляции: публикация локального
// состояния после мутации. Непосредственно перед записью внешнее
// состояние перечитывается: пустая локальная корзина не затирает
// непустое состояние, которого мы не видели, — вместо записи оно
// принимается локально (защита первого монтирования). Известную базу
// (knownBase) затирать пустой записью можно: clear и удаление
// последней позиции — намеренные действия пользователя.
func (e *Engine) syncLocalLocked() {
	e.state = StateLocallyDirty

	if e.bridge == nil {
		// Деградированный режим: только scratch
		e.mirrorScratchLocked()
		return
	}

	raw, err := e.bridge.Read()
	if err != nil {
		log.Printf("[CartEngine] чтение моста перед записью не удалось: %v", err)
		e.mirrorScratchLocked()
		return
	}

	if len(e.items) == 0 {
		result := DecodeState(raw)
		if result.Status == StateValid && len(result.Items) > 0 && !e.isKnownBaseLocked(raw) {
			e.items = result.Items
			e.knownBase = raw
			e.state = StateSynced
			e.mirrorScratchLocked()
			return
		}
	}

	payload := EncodeState(e.items)

	// Guard выставляется до записи: уведомление о собственной записи
	// может прийти и с задержкой, уже после снятия флага writing
	e.guardUntil = e.clock().Add(e.guardWindow)

	e.writing.Store(true)
	err = e.bridge.Write(payload)
	e.writing.Store(false)
	if err != nil {
		log.Printf("[CartEngine] запись в мост не удалась: %v", err)
		// Guard снимается сразу, чтобы не блокировать следующие попытки
		e.guardUntil = time.Time{}
		e.mirrorScratchLocked()
		return
	}

	e.knownBase = payload
	e.state = StateSynced
	e.mirrorScratchLocked()
}

// isKnownBaseLocked проверяет, совпадает ли внешний блоб с последней
// согласованной базой
func (e *Engine) isKnownBaseLocked(raw json.RawMessage) bool {
	return e.knownBase != nil && bytes.Equal(bytes.TrimSpace(raw), bytes.TrimSpace(e.knownBase))
}

// handleExternalChange шаги 1-4 протокола: реакция на уведомление об
// изменении внешнего состояния.
func (e *Engine) handleExternalChange() {
	if e.writing.Load() {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.clock().Before(e.guardUntil) {
		return
	}

	raw, err := e.bridge.Read()
	if err != nil {
		log.Printf("[CartEngine] чтение моста не удалось: %v", err)
		return
	}

	result := DecodeState(raw)
	var external []CartItem
	switch result.Status {
	case StateValid:
		external = result.Items
	case StateMalformed:
		log.Printf("[CartEngine] внешний блоб не соответствует схеме, трактуется как отсутствие состояния")
	}

	if itemsEqual(external, e.items) {
		e.state = StateSynced
		return
	}

	if len(external) == 0 && len(e.items) > 0 {
		// Транзиентное пустое чтение не затирает наполненную корзину
		return
	}

	// Непустое внешнее состояние принимается: либо локальная корзина
	// пуста (свежее монтирование), либо оба непусты и различаются
	e.items = dedupeByID(external)
	e.knownBase = raw
	e.state = StateSynced
	e.mirrorScratchLocked()
}

// mirrorScratchLocked зеркалирует текущее состояние в scratch-резерв
func (e *Engine) mirrorScratchLocked() {
	if e.scratch == nil {
		return
	}
	e.scratch.Set(e.stateKey, string(EncodeState(e.items)))
}
