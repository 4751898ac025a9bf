package recommendation

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportFormat формат экспорта подборки предложений
type ExportFormat string

const (
	FormatJSON  ExportFormat = "json"
	FormatCSV   ExportFormat = "csv"
	FormatExcel ExportFormat = "excel"
)

// ParseExportFormat разбирает формат из строки запроса
func ParseExportFormat(value string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(value))) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatExcel, "xlsx":
		return FormatExcel, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", value)
	}
}

// Exporter выгружает подборку cross-sell предложений для ручного
// разбора мерчандайзерами
type Exporter struct{}

// NewExporter создает экспортер
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export пишет подборку в указанном формате
func (e *Exporter) Export(w io.Writer, items []CrossSellItem, format ExportFormat) error {
	switch format {
	case FormatJSON:
		return e.exportJSON(w, items)
	case FormatCSV:
		return e.exportCSV(w, items)
	case FormatExcel:
		return e.exportExcel(w, items)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

func (e *Exporter) exportJSON(w io.Writer, items []CrossSellItem) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	result := map[string]interface{}{
		"exported_at": time.Now().Format(time.RFC3339),
		"total":       len(items),
		"suggestions": items,
	}

	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func (e *Exporter) exportCSV(w io.Writer, items []CrossSellItem) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	headers := []string{"SKU", "Name", "Price", "Tags", "Compatible With", "Priority"}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for _, item := range items {
		record := []string{
			item.SKU,
			item.Name,
			fmt.Sprintf("%.2f", item.Price),
			strings.Join(item.Tags, ";"),
			joinCategories(item),
			fmt.Sprintf("%d", item.Priority),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	return nil
}

func (e *Exporter) exportExcel(w io.Writer, items []CrossSellItem) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Suggestions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	headers := []string{"SKU", "Name", "Price", "Tags", "Compatible With", "Priority"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, item := range items {
		row := rowIdx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), item.SKU)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), item.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), item.Price)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), strings.Join(item.Tags, ";"))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), joinCategories(item))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), item.Priority)
	}

	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	f.SetActiveSheet(index)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

func joinCategories(item CrossSellItem) string {
	parts := make([]string, 0, len(item.CompatibleWith))
	for _, category := range item.CompatibleWith {
		parts = append(parts, string(category))
	}
	return strings.Join(parts, ";")
}
