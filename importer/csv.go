// Package importer загружает записи каталога cross-sell из внешних
// файлов: CSV-выгрузок поставщиков и HTML-страниц витрин.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"shopserver/classification"
	"shopserver/normalization"
	"shopserver/recommendation"
)

// CSVConfig конфигурация разбора CSV
type CSVConfig struct {
	// Delimiter разделитель полей, по умолчанию запятая
	Delimiter rune
	// HasHeader первая строка содержит имена колонок
	HasHeader bool
	// MaxErrors предел ошибок строк до остановки разбора
	MaxErrors int
}

// DefaultCSVConfig конфигурация по умолчанию
func DefaultCSVConfig() CSVConfig {
	return CSVConfig{
		Delimiter: ',',
		HasHeader: true,
		MaxErrors: 100,
	}
}

// CSVImporter разбирает CSV-выгрузки каталога. Выгрузки поставщиков
// приходят и в UTF-8, и в однобайтовых кодировках; кодировка
// определяется по валидности UTF-8.
type CSVImporter struct {
	config     CSVConfig
	logger     interface{ Printf(format string, v ...interface{}) }
	errorCount int
}

// NewCSVImporter создает импортер CSV
func NewCSVImporter(config CSVConfig, logger interface{ Printf(format string, v ...interface{}) }) *CSVImporter {
	if config.Delimiter == 0 {
		config.Delimiter = ','
	}
	if config.MaxErrors == 0 {
		config.MaxErrors = 100
	}
	return &CSVImporter{config: config, logger: logger}
}

// ParseFile разбирает CSV-файл каталога
func (p *CSVImporter) ParseFile(filePath string) ([]recommendation.CrossSellItem, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return p.ParseData(data)
}

// ParseData разбирает CSV из байтового среза
func (p *CSVImporter) ParseData(data []byte) ([]recommendation.CrossSellItem, error) {
	converted, err := p.convertEncoding(data)
	if err != nil {
		return nil, fmt.Errorf("failed to convert encoding: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(string(converted)))
	reader.Comma = p.config.Delimiter
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	columns := defaultColumns()
	if p.config.HasHeader {
		headers, err := reader.Read()
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV headers: %w", err)
		}
		columns = mapColumns(headers)
	}

	p.errorCount = 0
	items := make([]recommendation.CrossSellItem, 0)
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			p.reportError(fmt.Errorf("line %d: %w", line, err))
			if p.errorCount >= p.config.MaxErrors {
				return nil, fmt.Errorf("too many parsing errors (%d)", p.errorCount)
			}
			continue
		}

		item, err := columns.buildItem(record)
		if err != nil {
			p.reportError(fmt.Errorf("line %d: %w", line, err))
			if p.errorCount >= p.config.MaxErrors {
				return nil, fmt.Errorf("too many parsing errors (%d)", p.errorCount)
			}
			continue
		}
		items = append(items, item)
	}

	return items, nil
}

func (p *CSVImporter) reportError(err error) {
	p.errorCount++
	if p.logger != nil {
		p.logger.Printf("[CSVImporter] %v", err)
	}
}

// convertEncoding перекодирует не-UTF-8 данные из Windows-1252
func (p *CSVImporter) convertEncoding(data []byte) ([]byte, error) {
	if utf8.Valid(data) {
		return data, nil
	}

	decoder := charmap.Windows1252.NewDecoder()
	converted, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return nil, fmt.Errorf("windows-1252 decode failed: %w", err)
	}
	if !utf8.Valid(converted) {
		return nil, fmt.Errorf("data is neither UTF-8 nor Windows-1252")
	}
	if p.logger != nil {
		p.logger.Printf("[CSVImporter] входные данные перекодированы из Windows-1252")
	}
	return converted, nil
}

// columnIndices индексы колонок каталога в CSV
type columnIndices struct {
	id             int
	sku            int
	name           int
	price          int
	imageURL       int
	tags           int
	compatibleWith int
	priority       int
}

func defaultColumns() columnIndices {
	return columnIndices{id: 0, sku: 1, name: 2, price: 3, imageURL: 4, tags: 5, compatibleWith: 6, priority: 7}
}

// mapColumns строит индексы по именам заголовков; неизвестные колонки
// игнорируются, отсутствующие помечаются -1
func mapColumns(headers []string) columnIndices {
	columns := columnIndices{id: -1, sku: -1, name: -1, price: -1, imageURL: -1, tags: -1, compatibleWith: -1, priority: -1}
	for i, header := range headers {
		switch strings.ToLower(strings.TrimSpace(header)) {
		case "id":
			columns.id = i
		case "sku":
			columns.sku = i
		case "name", "nome":
			columns.name = i
		case "price", "prezzo":
			columns.price = i
		case "image_url", "imageurl", "image":
			columns.imageURL = i
		case "tags":
			columns.tags = i
		case "compatible_with", "compatiblewith", "compatibility":
			columns.compatibleWith = i
		case "priority", "priorita":
			columns.priority = i
		}
	}
	return columns
}

func (c columnIndices) field(record []string, index int) string {
	if index < 0 || index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}

func (c columnIndices) buildItem(record []string) (recommendation.CrossSellItem, error) {
	sku := c.field(record, c.sku)
	name := c.field(record, c.name)
	if sku == "" || name == "" {
		return recommendation.CrossSellItem{}, fmt.Errorf("missing sku or name")
	}

	id := c.field(record, c.id)
	if id == "" {
		id = strings.ToLower(sku)
	}

	priority := 0
	if raw := c.field(record, c.priority); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return recommendation.CrossSellItem{}, fmt.Errorf("invalid priority %q", raw)
		}
		priority = parsed
	}

	return recommendation.CrossSellItem{
		ID:             id,
		SKU:            sku,
		Name:           name,
		Price:          normalization.NormalizePrice(c.field(record, c.price)),
		ImageURL:       c.field(record, c.imageURL),
		Tags:           splitList(c.field(record, c.tags)),
		CompatibleWith: parseCategories(c.field(record, c.compatibleWith)),
		Priority:       priority,
	}, nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ";")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func parseCategories(value string) []classification.Category {
	parts := splitList(value)
	categories := make([]classification.Category, 0, len(parts))
	for _, part := range parts {
		categories = append(categories, classification.Category(strings.ToLower(part)))
	}
	return categories
}
