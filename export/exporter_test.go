package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"retailserver/calculations"
	"retailserver/discovery"
)

func samplePatterns() []discovery.RankedPattern {
	return []discovery.RankedPattern{
		{
			Word:           "canvas",
			Count:          42,
			UniqueProducts: 30,
			Variations:     []string{"Canvas", "canvas"},
			Fields:         []string{"title"},
			Confidence:     0.72,
			Metrics: discovery.PatternMetrics{
				Frequency:          42,
				ProductPenetration: 30,
				PriceCorrelation:   &discovery.PriceCorrelation{Min: 40, Max: 180, Avg: 95.5},
			},
		},
		{
			Word:           "wool",
			Count:          12,
			UniqueProducts: 10,
			Fields:         []string{"title", "description"},
			Confidence:     0.41,
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ExportFormat
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"", FormatJSON, false},
		{"CSV", FormatCSV, false},
		{"xlsx", FormatExcel, false},
		{"excel", FormatExcel, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExportPatterns_JSON(t *testing.T) {
	file := filepath.Join(t.TempDir(), "patterns.json")
	if err := ExportPatterns(file, FormatJSON, samplePatterns()); err != nil {
		t.Fatalf("ExportPatterns: %v", err)
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var payload struct {
		Total    int                       `json:"total"`
		Patterns []discovery.RankedPattern `json:"patterns"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if payload.Total != 2 || len(payload.Patterns) != 2 {
		t.Errorf("payload total = %d with %d patterns, want 2/2", payload.Total, len(payload.Patterns))
	}
	if payload.Patterns[0].Word != "canvas" {
		t.Errorf("first pattern = %q, want canvas", payload.Patterns[0].Word)
	}
}

func TestExportPatterns_CSV(t *testing.T) {
	file := filepath.Join(t.TempDir(), "patterns.csv")
	if err := ExportPatterns(file, FormatCSV, samplePatterns()); err != nil {
		t.Fatalf("ExportPatterns: %v", err)
	}

	f, err := os.Open(file)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	// Заголовок плюс две записи.
	if len(records) != 3 {
		t.Fatalf("csv has %d records, want 3", len(records))
	}
	if records[1][0] != "canvas" || records[1][1] != "42" {
		t.Errorf("first record = %v", records[1])
	}
	// Без ценовой сводки ценовые колонки пустые.
	if records[2][7] != "" || records[2][8] != "" {
		t.Errorf("wool price columns = %q/%q, want empty", records[2][7], records[2][8])
	}
}

func TestExportPatterns_Excel(t *testing.T) {
	file := filepath.Join(t.TempDir(), "patterns.xlsx")
	if err := ExportPatterns(file, FormatExcel, samplePatterns()); err != nil {
		t.Fatalf("ExportPatterns: %v", err)
	}

	f, err := excelize.OpenFile(file)
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(f.GetActiveSheetIndex()))
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("sheet has %d rows, want 3", len(rows))
	}
	if rows[1][0] != "canvas" {
		t.Errorf("first data row = %v", rows[1])
	}
}

func TestExportPatterns_UnknownFormat(t *testing.T) {
	file := filepath.Join(t.TempDir(), "patterns.bin")
	if err := ExportPatterns(file, ExportFormat("bin"), samplePatterns()); err == nil {
		t.Error("unknown format succeeded, want error")
	}
}

func TestExportMetricTable(t *testing.T) {
	rows := []calculations.Row{
		{"product_name": "Jacket", "total_revenue": 200.0},
		{"product_name": "Scarf", "total_revenue": 40.0},
	}
	columns := []string{"product_name", "total_revenue"}

	for _, format := range []ExportFormat{FormatJSON, FormatCSV, FormatExcel} {
		file := filepath.Join(t.TempDir(), "table."+string(format))
		if err := ExportMetricTable(file, format, columns, rows); err != nil {
			t.Errorf("ExportMetricTable(%s): %v", format, err)
			continue
		}
		info, err := os.Stat(file)
		if err != nil || info.Size() == 0 {
			t.Errorf("export %s missing or empty", format)
		}
	}

	csvFile := filepath.Join(t.TempDir(), "table.csv")
	if err := ExportMetricTable(csvFile, FormatCSV, columns, rows); err != nil {
		t.Fatalf("ExportMetricTable: %v", err)
	}
	f, err := os.Open(csvFile)
	if err != nil {
		t.Fatalf("open table: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read table: %v", err)
	}
	if len(records) != 3 || records[1][0] != "Jacket" {
		t.Errorf("table records = %v", records)
	}
}
