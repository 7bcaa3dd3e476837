package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"retailserver/calculations"
	"retailserver/discovery"
)

// ExportFormat формат экспорта отчётов.
type ExportFormat string

const (
	FormatJSON  ExportFormat = "json"
	FormatCSV   ExportFormat = "csv"
	FormatExcel ExportFormat = "excel"
)

// ParseFormat разбирает формат из строки; пустая строка даёт JSON.
func ParseFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "excel", "xlsx":
		return FormatExcel, nil
	default:
		return "", fmt.Errorf("unknown export format: %q", s)
	}
}

// ExportPatterns сохраняет ранжированные паттерны в указанном формате.
func ExportPatterns(filename string, format ExportFormat, patterns []discovery.RankedPattern) error {
	switch format {
	case FormatJSON:
		return patternsToJSON(filename, patterns)
	case FormatCSV:
		return patternsToCSV(filename, patterns)
	case FormatExcel:
		return patternsToExcel(filename, patterns)
	default:
		return fmt.Errorf("unknown export format: %q", format)
	}
}

func patternsToJSON(filename string, patterns []discovery.RankedPattern) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	result := map[string]interface{}{
		"exported_at": time.Now().Format(time.RFC3339),
		"total":       len(patterns),
		"patterns":    patterns,
	}
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func patternsToCSV(filename string, patterns []discovery.RankedPattern) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{
		"Word", "Count", "Unique Products", "Confidence", "Fields",
		"Variations", "Semantic Variants", "Price Min", "Price Max", "Price Avg",
	}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for _, p := range patterns {
		priceMin, priceMax, priceAvg := "", "", ""
		if pc := p.Metrics.PriceCorrelation; pc != nil {
			priceMin = fmt.Sprintf("%.2f", pc.Min)
			priceMax = fmt.Sprintf("%.2f", pc.Max)
			priceAvg = fmt.Sprintf("%.2f", pc.Avg)
		}
		record := []string{
			p.Word,
			fmt.Sprintf("%d", p.Count),
			fmt.Sprintf("%d", p.UniqueProducts),
			fmt.Sprintf("%.2f", p.Confidence),
			strings.Join(p.Fields, "; "),
			strings.Join(p.Variations, "; "),
			strings.Join(p.SemanticVariants, "; "),
			priceMin, priceMax, priceAvg,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	return nil
}

func patternsToExcel(filename string, patterns []discovery.RankedPattern) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Discovered Patterns"
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

	headers := []string{
		"Word", "Count", "Unique Products", "Confidence", "Fields",
		"Variations", "Semantic Variants", "Price Min", "Price Max", "Price Avg",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, p := range patterns {
		row := rowIdx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), p.Word)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), p.Count)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), p.UniqueProducts)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), p.Confidence)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), strings.Join(p.Fields, "; "))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), strings.Join(p.Variations, "; "))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), strings.Join(p.SemanticVariants, "; "))
		if pc := p.Metrics.PriceCorrelation; pc != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), pc.Min)
			f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), pc.Max)
			f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), pc.Avg)
		}
	}

	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	f.SetActiveSheet(index)

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}

// ExportMetricTable сохраняет табличный метрический отчёт (строки-карты
// с общими колонками) в указанном формате.
func ExportMetricTable(filename string, format ExportFormat, columns []string, rows []calculations.Row) error {
	switch format {
	case FormatJSON:
		return tableToJSON(filename, rows)
	case FormatCSV:
		return tableToCSV(filename, columns, rows)
	case FormatExcel:
		return tableToExcel(filename, columns, rows)
	default:
		return fmt.Errorf("unknown export format: %q", format)
	}
}

func tableToJSON(filename string, rows []calculations.Row) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	result := map[string]interface{}{
		"exported_at": time.Now().Format(time.RFC3339),
		"total":       len(rows),
		"rows":        rows,
	}
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func tableToCSV(filename string, columns []string, rows []calculations.Row) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for _, row := range rows {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = calculations.StringValue(row[col])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	return nil
}

func tableToExcel(filename string, columns []string, rows []calculations.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Report"
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

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}
	for rowIdx, row := range rows {
		for colIdx, col := range columns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, row[col])
		}
	}

	for i := range columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	f.SetActiveSheet(index)

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}
