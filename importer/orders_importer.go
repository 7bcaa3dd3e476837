package importer

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"retailserver/calculations"
)

// Загрузка выгрузок витрины: на каждый календарный месяц скрейпер
// кладёт пару соседних файлов *_orders.csv и *_line-items.csv,
// соединяемых по order_id. Значения в CSV строковые; числовой разбор
// выполняется ниже по конвейеру и деградирует к нулю, не падая.

// ImportResult итог загрузки и соединения пары файлов.
type ImportResult struct {
	Total     int           `json:"total"`
	Success   int           `json:"success"`
	Orphaned  int           `json:"orphaned"` // строки без подходящего заказа
	Errors    []string      `json:"errors"`
	Started   time.Time     `json:"started"`
	Completed time.Time     `json:"completed"`
	Duration  time.Duration `json:"duration"`
}

// ReadCSV читает CSV-файл с заголовком в список строк-записей.
func ReadCSV(filename string) ([]calculations.Row, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv file: %w", err)
	}
	return ParseCSV(raw)
}

// ParseCSV разбирает содержимое CSV с заголовком. Файлы старой выгрузки
// встречаются в windows-1252; при невалидном UTF-8 содержимое
// перекодируется.
func ParseCSV(raw []byte) ([]calculations.Row, error) {
	if !utf8.Valid(raw) {
		decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode csv file: %w", err)
		}
		raw = decoded
	}

	reader := csv.NewReader(strings.NewReader(string(raw)))
	reader.FieldsPerRecord = -1 // выгрузки бывают с рваными строками

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return []calculations.Row{}, nil
	}

	header := records[0]
	for i, name := range header {
		header[i] = strings.TrimSpace(name)
	}

	rows := make([]calculations.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(calculations.Row, len(header))
		for i, value := range record {
			if i >= len(header) || header[i] == "" {
				continue
			}
			row[header[i]] = strings.TrimSpace(value)
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// JoinOrders обогащает строки позиций полями заказа: каждая позиция
// наследует поля уровня заказа (канал, продавец, дата, покупатель,
// статус), отсутствующие в самой позиции. Позиции без подходящего
// заказа сохраняются как есть и считаются в Orphaned.
func JoinOrders(orders, lineItems []calculations.Row) ([]calculations.Row, *ImportResult) {
	result := &ImportResult{
		Total:   len(lineItems),
		Errors:  make([]string, 0),
		Started: time.Now(),
	}

	byOrderID := make(map[string]calculations.Row, len(orders))
	for _, order := range orders {
		if id := calculations.ChainString(order, calculations.OrderFieldChain); id != "" {
			byOrderID[id] = order
		}
	}

	logInterval := 1000
	if len(lineItems) > 20000 {
		logInterval = 5000
	}

	joined := make([]calculations.Row, 0, len(lineItems))
	for idx, item := range lineItems {
		enriched := make(calculations.Row, len(item)+4)
		for k, v := range item {
			enriched[k] = v
		}

		orderID := calculations.ChainString(item, calculations.OrderFieldChain)
		if order, ok := byOrderID[orderID]; ok {
			for k, v := range order {
				if _, present := enriched[k]; !present {
					enriched[k] = v
				}
			}
			result.Success++
		} else {
			result.Orphaned++
		}
		joined = append(joined, enriched)

		if (idx+1)%logInterval == 0 {
			log.Printf("[Import] Joined %d/%d line items (%.1f%%)",
				idx+1, len(lineItems), float64(idx+1)/float64(len(lineItems))*100)
		}
	}

	result.Completed = time.Now()
	result.Duration = result.Completed.Sub(result.Started)

	log.Printf("[Import] Join complete: %d/%d matched, %d orphaned",
		result.Success, result.Total, result.Orphaned)

	return joined, result
}

// LoadMonth загружает и соединяет пару файлов одного месяца.
func LoadMonth(ordersFile, lineItemsFile string) ([]calculations.Row, *ImportResult, error) {
	orders, err := ReadCSV(ordersFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load orders: %w", err)
	}
	lineItems, err := ReadCSV(lineItemsFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load line items: %w", err)
	}
	joined, result := JoinOrders(orders, lineItems)
	return joined, result, nil
}

// LoadCatalog читает CSV каталога товаров для движка обнаружения.
func LoadCatalog(filename string) ([]map[string]interface{}, error) {
	rows, err := ReadCSV(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	products := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		products = append(products, row)
	}
	return products, nil
}
