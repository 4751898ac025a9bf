package services

import (
	"context"
	"io"
	"log"
	"strings"

	"shopserver/classification"
	"shopserver/database"
	"shopserver/enrichment"
	"shopserver/importer"
	"shopserver/recommendation"
	apperrors "shopserver/server/errors"
)

// CatalogService сервис каталога cross-sell: импорт выгрузок,
// выборка, экспорт
type CatalogService struct {
	store       *database.CatalogStore
	csvImporter *importer.CSVImporter
	htmlImport  *importer.HTMLImporter
	enricher    *enrichment.ImageEnricher
	exporter    *recommendation.Exporter
}

// NewCatalogService создает новый сервис каталога
func NewCatalogService(store *database.CatalogStore, classifier *classification.Classifier) *CatalogService {
	return &CatalogService{
		store:       store,
		csvImporter: importer.NewCSVImporter(importer.DefaultCSVConfig(), log.Default()),
		htmlImport:  importer.NewHTMLImporter(classifier, log.Default()),
		enricher:    enrichment.NewImageEnricher(enrichment.ImageEnricherConfig{}),
		exporter:    recommendation.NewExporter(),
	}
}

// ImportCSV разбирает CSV-выгрузку и сохраняет записи в каталог.
// Возвращает число принятых записей
func (cs *CatalogService) ImportCSV(data []byte) (int, error) {
	items, err := cs.csvImporter.ParseData(data)
	if err != nil {
		return 0, apperrors.NewValidationError("не удалось разобрать CSV", err)
	}
	return cs.storeItems(items)
}

// ImportHTML разбирает HTML-страницу витрины и сохраняет записи
func (cs *CatalogService) ImportHTML(r io.Reader) (int, error) {
	items, err := cs.htmlImport.Parse(r)
	if err != nil {
		return 0, apperrors.NewValidationError("не удалось разобрать HTML", err)
	}
	return cs.storeItems(items)
}

func (cs *CatalogService) storeItems(items []recommendation.CrossSellItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if err := cs.store.UpsertItems(items); err != nil {
		return 0, apperrors.NewInternalError("не удалось сохранить записи каталога", err)
	}
	return len(items), nil
}

// List возвращает записи каталога с фильтрацией по категории и цене
func (cs *CatalogService) List(category string, maxPrice float64) ([]recommendation.CrossSellItem, error) {
	filter := database.CatalogFilter{MaxPrice: maxPrice}
	if trimmed := strings.TrimSpace(category); trimmed != "" {
		filter.Category = classification.Category(strings.ToLower(trimmed))
	}

	items, err := cs.store.ListItems(filter)
	if err != nil {
		return nil, apperrors.NewInternalError("не удалось прочитать каталог", err)
	}
	return items, nil
}

// Export выгружает каталог в указанном формате
func (cs *CatalogService) Export(w io.Writer, formatValue string) error {
	format, err := recommendation.ParseExportFormat(formatValue)
	if err != nil {
		return apperrors.NewValidationError("неизвестный формат экспорта", err)
	}

	items, err := cs.store.ListItems(database.CatalogFilter{})
	if err != nil {
		return apperrors.NewInternalError("не удалось прочитать каталог", err)
	}

	if err := cs.exporter.Export(w, items, format); err != nil {
		return apperrors.NewInternalError("не удалось сформировать экспорт", err)
	}
	return nil
}

// EnrichImages заполняет отсутствующие изображения записей каталога по
// страницам товаров и сохраняет результат
func (cs *CatalogService) EnrichImages(ctx context.Context, pageURL func(recommendation.CrossSellItem) string) (int, error) {
	items, err := cs.store.ListItems(database.CatalogFilter{})
	if err != nil {
		return 0, apperrors.NewInternalError("не удалось прочитать каталог", err)
	}

	enriched := cs.enricher.EnrichItems(ctx, items, pageURL)

	changed := make([]recommendation.CrossSellItem, 0)
	for i := range enriched {
		if enriched[i].ImageURL != items[i].ImageURL {
			changed = append(changed, enriched[i])
		}
	}
	if len(changed) == 0 {
		return 0, nil
	}

	if err := cs.store.UpsertItems(changed); err != nil {
		return 0, apperrors.NewInternalError("не удалось сохранить обогащенные записи", err)
	}
	return len(changed), nil
}
