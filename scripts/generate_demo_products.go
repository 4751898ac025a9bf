package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/brianvoe/gofakeit/v6"
)

// demoCategory шаблон генерации записей одной категории
type demoCategory struct {
	category string
	names    []string
	tags     string
	minPrice float64
	maxPrice float64
}

var demoCategories = []demoCategory{
	{
		category: "pc",
		names:    []string{"Hub USB-C", "Cavo USB-C", "Caricatore rapido", "Mouse wireless", "Tastiera compatta", "Supporto laptop"},
		tags:     "recommended",
		minPrice: 9.90,
		maxPrice: 79.90,
	},
	{
		category: "tv",
		names:    []string{"Cavo HDMI", "Telecomando universale", "Staffa da parete", "Soundbar compatta", "Striscia LED ambient"},
		tags:     "recommended",
		minPrice: 14.90,
		maxPrice: 199.90,
	},
	{
		category: "pc;tv",
		names:    []string{"Panno in microfibra", "Spray pulizia schermi", "Kit pulizia schermi"},
		tags:     "screen-cleaning;popular",
		minPrice: 4.90,
		maxPrice: 19.90,
	},
}

// generateDemoCatalog пишет CSV-выгрузку демо-каталога, пригодную для
// POST /api/catalog/import
func generateDemoCatalog(path string, perCategory int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"id", "sku", "name", "price", "image_url", "tags", "compatible_with", "priority"}); err != nil {
		return err
	}

	counter := 0
	for _, category := range demoCategories {
		for i := 0; i < perCategory; i++ {
			counter++
			name := category.names[gofakeit.Number(0, len(category.names)-1)] + " " + gofakeit.AppName()
			sku := fmt.Sprintf("CS-DEMO-%03d", counter)
			price := gofakeit.Price(category.minPrice, category.maxPrice)
			priority := gofakeit.Number(40, 95)

			record := []string{
				"",
				sku,
				name,
				strconv.FormatFloat(price, 'f', 2, 64),
				gofakeit.ImageURL(320, 240),
				category.tags,
				category.category,
				strconv.Itoa(priority),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}

	return nil
}

func main() {
	gofakeit.Seed(0)

	perCategory := 10
	if len(os.Args) > 1 {
		parsed, err := strconv.Atoi(os.Args[1])
		if err != nil || parsed <= 0 {
			log.Fatalf("Некорректное число записей на категорию: %q", os.Args[1])
		}
		perCategory = parsed
	}

	dataDir := "data"
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	path := filepath.Join(dataDir, "demo_catalog.csv")
	if err := generateDemoCatalog(path, perCategory); err != nil {
		log.Fatalf("Failed to generate demo catalog: %v", err)
	}

	log.Printf("Demo catalog written to %s (%d записей)", path, perCategory*len(demoCategories))
}
