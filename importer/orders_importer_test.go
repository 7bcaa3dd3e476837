package importer

import (
	"os"
	"path/filepath"
	"testing"

	"retailserver/calculations"
)

func writeTestCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParseCSV(t *testing.T) {
	rows, err := ParseCSV([]byte("order_id,product_name,net_price\no1,Jacket,100.00\no2,Scarf,20.00\n"))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("parsed %d rows, want 2", len(rows))
	}
	if rows[0]["order_id"] != "o1" || rows[0]["product_name"] != "Jacket" {
		t.Errorf("first row = %v", rows[0])
	}
	// Значения остаются строками; числовой разбор ниже по конвейеру.
	if rows[0]["net_price"] != "100.00" {
		t.Errorf("net_price = %v, want string \"100.00\"", rows[0]["net_price"])
	}
}

func TestParseCSV_RaggedAndEmpty(t *testing.T) {
	// Рваная строка не роняет разбор.
	rows, err := ParseCSV([]byte("a,b,c\n1,2\n3,4,5,6\n"))
	if err != nil {
		t.Fatalf("ParseCSV ragged: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("parsed %d rows, want 2", len(rows))
	}
	if _, ok := rows[0]["c"]; ok {
		t.Errorf("short row gained column c: %v", rows[0])
	}

	empty, err := ParseCSV(nil)
	if err != nil {
		t.Fatalf("ParseCSV(empty): %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("empty input produced %d rows", len(empty))
	}
}

// TestParseCSV_Windows1252 старая выгрузка в windows-1252 перекодируется.
func TestParseCSV_Windows1252(t *testing.T) {
	// 0xE9 в windows-1252 это "é"; как UTF-8 байт невалиден.
	raw := []byte("product_name\nCaf\xe9 Tee\n")
	rows, err := ParseCSV(raw)
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(rows) != 1 || rows[0]["product_name"] != "Café Tee" {
		t.Errorf("rows = %v, want Café Tee", rows)
	}
}

func TestJoinOrders(t *testing.T) {
	orders := []calculations.Row{
		{"order_id": "o1", "channel": "Store", "associate": "Kim", "date_time": "2024-01-15 10:00"},
		{"order_id": "o2", "channel": "Online"},
	}
	lineItems := []calculations.Row{
		{"order_id": "o1", "product_name": "Jacket", "net_price": "100"},
		{"order_id": "o1", "product_name": "Scarf", "net_price": "20", "channel": "Kiosk"},
		{"order_id": "o3", "product_name": "Gloves", "net_price": "15"},
	}

	joined, result := JoinOrders(orders, lineItems)
	if len(joined) != 3 {
		t.Fatalf("joined %d rows, want 3", len(joined))
	}
	if result.Total != 3 || result.Success != 2 || result.Orphaned != 1 {
		t.Errorf("result = %+v, want total 3 success 2 orphaned 1", result)
	}

	// Поля заказа наследуются позицией.
	if joined[0]["channel"] != "Store" || joined[0]["associate"] != "Kim" {
		t.Errorf("first item not enriched: %v", joined[0])
	}
	// Собственное значение позиции не перетирается полем заказа.
	if joined[1]["channel"] != "Kiosk" {
		t.Errorf("item field overwritten: channel = %v, want Kiosk", joined[1]["channel"])
	}
	// Сирота сохраняется как есть.
	if joined[2]["product_name"] != "Gloves" {
		t.Errorf("orphan row lost: %v", joined[2])
	}
	if _, ok := joined[2]["channel"]; ok {
		t.Errorf("orphan row gained order fields: %v", joined[2])
	}
}

func TestLoadMonth(t *testing.T) {
	ordersFile := writeTestCSV(t, "2024-01_orders.csv",
		"order_id,channel,date_time\no1,Store,2024-01-15 10:00\n")
	itemsFile := writeTestCSV(t, "2024-01_line-items.csv",
		"order_id,product_name,net_price,quantity\no1,Jacket,100.00,1\no1,Scarf,20.00,2\n")

	joined, result, err := LoadMonth(ordersFile, itemsFile)
	if err != nil {
		t.Fatalf("LoadMonth: %v", err)
	}
	if result.Success != 2 || result.Orphaned != 0 {
		t.Errorf("result = %+v, want 2 matched", result)
	}

	// Соединённые строки готовы для слоя метрик.
	if got := calculations.TotalRevenue(joined); got != 120 {
		t.Errorf("TotalRevenue = %v, want 120", got)
	}
	if got := calculations.TotalOrders(joined); got != 1 {
		t.Errorf("TotalOrders = %v, want 1", got)
	}
}

func TestLoadMonth_MissingFile(t *testing.T) {
	itemsFile := writeTestCSV(t, "items.csv", "order_id\no1\n")
	if _, _, err := LoadMonth(filepath.Join(t.TempDir(), "missing.csv"), itemsFile); err == nil {
		t.Error("LoadMonth with missing orders file succeeded, want error")
	}
}

func TestLoadCatalog(t *testing.T) {
	catalogFile := writeTestCSV(t, "catalog.csv",
		"product_id,title,price\np1,Blue Canvas Jacket,100\np2,Red Wool Coat,200\n")

	products, err := LoadCatalog(catalogFile)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("loaded %d products, want 2", len(products))
	}
	if products[0]["title"] != "Blue Canvas Jacket" {
		t.Errorf("first product = %v", products[0])
	}
}
