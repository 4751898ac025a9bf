package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"shopserver/classification"
	"shopserver/recommendation"
)

// CatalogStore хранилище каталога cross-sell аксессуаров
type CatalogStore struct {
	db *DB
}

// NewCatalogStore создает хранилище каталога
func NewCatalogStore(db *DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// UpsertItems вставляет или обновляет записи каталога одной транзакцией
func (s *CatalogStore) UpsertItems(items []recommendation.CrossSellItem) error {
	tx, err := s.db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO cross_sell_catalog (id, sku, name, price, image_url, tags, compatible_with, priority, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(sku) DO UPDATE SET
			name = excluded.name,
			price = excluded.price,
			image_url = excluded.image_url,
			tags = excluded.tags,
			compatible_with = excluded.compatible_with,
			priority = excluded.priority,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		if item.SKU == "" || item.Name == "" {
			continue
		}
		tags, err := json.Marshal(item.Tags)
		if err != nil {
			return fmt.Errorf("failed to encode tags for %s: %w", item.SKU, err)
		}
		compatible, err := json.Marshal(item.CompatibleWith)
		if err != nil {
			return fmt.Errorf("failed to encode compatibility for %s: %w", item.SKU, err)
		}
		id := item.ID
		if id == "" {
			id = item.SKU
		}
		if _, err := stmt.Exec(id, item.SKU, item.Name, item.Price, item.ImageURL, string(tags), string(compatible), item.Priority); err != nil {
			return fmt.Errorf("failed to upsert %s: %w", item.SKU, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog upsert: %w", err)
	}
	return nil
}

// CatalogFilter фильтры выборки каталога
type CatalogFilter struct {
	// Category при непустом значении оставляет только совместимые записи
	Category classification.Category
	// MaxPrice при положительном значении ограничивает цену сверху
	MaxPrice float64
	// Limit при положительном значении ограничивает размер выборки
	Limit int
}

// ListItems возвращает записи каталога по убыванию приоритета
func (s *CatalogStore) ListItems(filter CatalogFilter) ([]recommendation.CrossSellItem, error) {
	query := `SELECT id, sku, name, price, image_url, tags, compatible_with, priority
		FROM cross_sell_catalog`
	args := make([]interface{}, 0, 2)

	if filter.MaxPrice > 0 {
		query += ` WHERE price <= ?`
		args = append(args, filter.MaxPrice)
	}
	query += ` ORDER BY priority DESC, sku ASC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	items := make([]recommendation.CrossSellItem, 0)
	for rows.Next() {
		item, err := scanCatalogItem(rows)
		if err != nil {
			return nil, err
		}
		// Фильтрация по категории после декодирования JSON-колонки
		if filter.Category != "" && !hasCategory(item.CompatibleWith, filter.Category) {
			continue
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate catalog rows: %w", err)
	}
	return items, nil
}

// Count возвращает число записей каталога
func (s *CatalogStore) Count() (int, error) {
	var count int
	if err := s.db.conn.QueryRow(`SELECT COUNT(*) FROM cross_sell_catalog`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count catalog: %w", err)
	}
	return count, nil
}

// EnsureSeeded заполняет пустой каталог резервными записями
func (s *CatalogStore) EnsureSeeded() error {
	count, err := s.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return s.UpsertItems(recommendation.FallbackCatalog())
}

func scanCatalogItem(rows *sql.Rows) (recommendation.CrossSellItem, error) {
	var item recommendation.CrossSellItem
	var tagsRaw, compatibleRaw string

	if err := rows.Scan(&item.ID, &item.SKU, &item.Name, &item.Price, &item.ImageURL, &tagsRaw, &compatibleRaw, &item.Priority); err != nil {
		return item, fmt.Errorf("failed to scan catalog row: %w", err)
	}
	if err := json.Unmarshal([]byte(tagsRaw), &item.Tags); err != nil {
		return item, fmt.Errorf("failed to decode tags for %s: %w", item.SKU, err)
	}
	if err := json.Unmarshal([]byte(compatibleRaw), &item.CompatibleWith); err != nil {
		return item, fmt.Errorf("failed to decode compatibility for %s: %w", item.SKU, err)
	}
	return item, nil
}

func hasCategory(categories []classification.Category, category classification.Category) bool {
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}
