package main

import (
	"flag"
	"log"
	"os"

	"retailserver/discovery"
	"retailserver/export"
	"retailserver/importer"
)

// Утилита пакетного обнаружения паттернов: читает CSV каталога,
// прогоняет движок и сохраняет ранжированные паттерны в файл.
func main() {
	catalogPath := flag.String("catalog", "", "путь к CSV каталога товаров")
	outPath := flag.String("out", "patterns.json", "файл результата")
	format := flag.String("format", "json", "формат результата: json, csv или excel")
	statePath := flag.String("state", "", "файл для сохранения состояния движка (опционально)")
	batchSize := flag.Int("batch-size", 0, "размер пакета (0 = по умолчанию)")
	minThreshold := flag.Int("min-threshold", 0, "минимальное число вхождений слова (0 = по умолчанию)")
	flag.Parse()

	if *catalogPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	exportFormat, err := export.ParseFormat(*format)
	if err != nil {
		log.Fatalf("Неверный формат: %v", err)
	}

	products, err := importer.LoadCatalog(*catalogPath)
	if err != nil {
		log.Fatalf("Ошибка чтения каталога: %v", err)
	}
	log.Printf("[Discover] Loaded %d products from %s", len(products), *catalogPath)

	cfg := discovery.DefaultConfig()
	if *batchSize > 0 {
		cfg.BatchSize = *batchSize
	}
	if *minThreshold > 0 {
		cfg.MinThreshold = *minThreshold
	}

	engine := discovery.NewEngine(cfg)
	engine.SetProgressFunc(func(batch, total int) {
		log.Printf("[Discover] Batch %d/%d", batch, total)
	})

	patterns := engine.DiscoverPatterns(products)
	log.Printf("[Discover] Found %d patterns", len(patterns))

	if err := export.ExportPatterns(*outPath, exportFormat, patterns); err != nil {
		log.Fatalf("Ошибка экспорта: %v", err)
	}
	log.Printf("[Discover] Patterns written to %s", *outPath)

	if *statePath != "" {
		if err := engine.ExportState(*statePath); err != nil {
			log.Fatalf("Ошибка сохранения состояния: %v", err)
		}
		log.Printf("[Discover] Engine state written to %s", *statePath)
	}
}
