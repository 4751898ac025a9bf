package services

import (
	"context"
	"log"
	"sync/atomic"

	"shopserver/cart"
	"shopserver/database"
	"shopserver/recommendation"
)

// RecommendationService сервис рекомендаций: cross-sell по каталогу,
// слияние с внешним сервисом подсказок, похожие товары
type RecommendationService struct {
	engine  *recommendation.Engine
	lookup  *recommendation.LookupClient
	catalog *database.CatalogStore

	// generation отбрасывает устаревшие ответы внешнего сервиса:
	// засчитывается только ответ последнего отправленного запроса
	generation atomic.Uint64
}

// NewRecommendationService создает новый сервис рекомендаций.
// lookup и catalog могут быть nil: без lookup используются только
// локальные подсказки, без catalog — встроенный каталог
func NewRecommendationService(engine *recommendation.Engine, lookup *recommendation.LookupClient, catalog *database.CatalogStore) *RecommendationService {
	if engine == nil {
		engine = recommendation.NewEngine(recommendation.Config{})
	}
	return &RecommendationService{
		engine:  engine,
		lookup:  lookup,
		catalog: catalog,
	}
}

// CrossSell возвращает cross-sell подсказки для корзины. При наличии
// внешнего сервиса его ответ сливается с локальными подсказками;
// ошибки и устаревшие ответы деградируют до локального результата
func (rs *RecommendationService) CrossSell(ctx context.Context, items []cart.CartItem) []recommendation.CrossSellItem {
	catalogItems := rs.catalogItems()

	if rs.lookup == nil {
		return rs.engine.CrossSell(items, catalogItems)
	}

	token := rs.generation.Add(1)

	query := recommendation.BuildQuery(items, recommendation.DefaultMaxSuggestions)
	external, err := rs.lookup.Fetch(ctx, query)
	if err != nil {
		log.Printf("[Recommendations] внешний сервис недоступен: %v", err)
		return rs.engine.CrossSell(items, catalogItems)
	}

	if rs.generation.Load() != token {
		log.Printf("[Recommendations] устаревший ответ внешнего сервиса отброшен")
		return rs.engine.CrossSell(items, catalogItems)
	}

	return rs.engine.MergeCrossSell(items, external, catalogItems)
}

// Merge сливает переданные извне подсказки с локальными: внешние
// фильтруются и идут первыми, дубликаты по SKU отбрасываются. Пустой
// список внешних подсказок эквивалентен CrossSell без внешнего сервиса
func (rs *RecommendationService) Merge(items []cart.CartItem, external []recommendation.CrossSellItem) []recommendation.CrossSellItem {
	return rs.engine.MergeCrossSell(items, external, rs.catalogItems())
}

// Related возвращает похожие товары для фокусного товара из пула
func (rs *RecommendationService) Related(focal cart.CartItem, pool []cart.CartItem) []recommendation.RelatedItem {
	return rs.engine.Related(focal, pool)
}

// catalogItems загружает каталог cross-sell из хранилища; пустое или
// недоступное хранилище деградирует до встроенного каталога
func (rs *RecommendationService) catalogItems() []recommendation.CrossSellItem {
	if rs.catalog == nil {
		return recommendation.FallbackCatalog()
	}

	items, err := rs.catalog.ListItems(database.CatalogFilter{})
	if err != nil {
		log.Printf("[Recommendations] каталог недоступен, используется встроенный: %v", err)
		return recommendation.FallbackCatalog()
	}
	if len(items) == 0 {
		return recommendation.FallbackCatalog()
	}
	return items
}
