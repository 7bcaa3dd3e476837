package grouping

import (
	"testing"

	"retailserver/calculations"
)

func saleRow(name, color, size string, qty, net float64) calculations.Row {
	return calculations.Row{
		"product_name":     name,
		"color":            color,
		"size":             size,
		"quantity":         qty,
		"discounted_price": net,
	}
}

func TestParseBaseName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"с цветом", "Shirt - Red", "Shirt"},
		{"без разделителя", "Shirt", "Shirt"},
		{"два разделителя", "Shirt - Red - Slim", "Shirt"},
		{"пробелы", "  Shirt - Red  ", "Shirt"},
		{"пустая строка", "", ""},
		{"дефис без пробелов не разделитель", "T-Shirt", "T-Shirt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseBaseName(tt.in); got != tt.want {
				t.Errorf("ParseBaseName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestVariantKey(t *testing.T) {
	if got := VariantKey("Shirt - Red", "Red"); got != "Shirt - Red" {
		t.Errorf("VariantKey = %q, want \"Shirt - Red\"", got)
	}
	if got := VariantKey("Shirt", ""); got != "Shirt" {
		t.Errorf("VariantKey without color = %q, want \"Shirt\"", got)
	}
}

func TestSizeRank_Order(t *testing.T) {
	// Буквенные < числовые < брючные < One Size < неизвестные.
	ordered := []string{"XXS", "XS", "S", "M", "L", "XL", "XXL", "3XL", "28", "30", "32", "30x30", "30x32", "32x30", "One Size", "???"}
	for i := 1; i < len(ordered); i++ {
		if SizeRank(ordered[i-1]) > SizeRank(ordered[i]) {
			t.Errorf("SizeRank(%q)=%d > SizeRank(%q)=%d, want ascending",
				ordered[i-1], SizeRank(ordered[i-1]), ordered[i], SizeRank(ordered[i]))
		}
	}
	// 2XL синоним XXL.
	if SizeRank("2XL") != SizeRank("XXL") {
		t.Errorf("SizeRank(2XL) = %d, want equal to XXL %d", SizeRank("2XL"), SizeRank("XXL"))
	}
	if SizeRank("os") != SizeRank("One Size") {
		t.Errorf("SizeRank(os) != SizeRank(One Size)")
	}
}

// TestGenerateProductConfig базовый сценарий: две строки одного варианта
// складываются, итоги доходят до уровня товара.
func TestGenerateProductConfig(t *testing.T) {
	rows := []calculations.Row{
		saleRow("Shirt - Red", "Red", "M", 2, 20),
		saleRow("Shirt - Red", "Red", "M", 3, 30),
		saleRow("Shirt - Blue", "Blue", "L", 1, 10),
	}

	config := GenerateProductConfig(rows, Config{})
	if len(config.Products) != 1 {
		t.Fatalf("produced %d products, want 1", len(config.Products))
	}

	shirt := config.Products[0]
	if shirt.Name != "Shirt" {
		t.Errorf("product name = %q, want \"Shirt\"", shirt.Name)
	}
	if shirt.Units != 6 || shirt.Net != 60 {
		t.Errorf("product totals = %v units %v net, want 6 and 60", shirt.Units, shirt.Net)
	}
	if len(shirt.Variants) != 2 {
		t.Fatalf("produced %d variants, want 2", len(shirt.Variants))
	}

	// Варианты отсортированы по убыванию Units: Red (5) раньше Blue (1).
	red := shirt.Variants[0]
	if red.Key != "Shirt - Red" || red.Color != "Red" {
		t.Errorf("first variant = %q/%q, want Shirt - Red/Red", red.Key, red.Color)
	}
	if red.Units != 5 || red.Net != 50 {
		t.Errorf("Red totals = %v units %v net, want 5 and 50", red.Units, red.Net)
	}
	if len(red.Sizes) != 1 || red.Sizes[0].Size != "M" || red.Sizes[0].Units != 5 {
		t.Errorf("Red sizes = %+v, want one M row with 5 units", red.Sizes)
	}
}

func TestGenerateProductConfig_Empty(t *testing.T) {
	config := GenerateProductConfig(nil, Config{})
	if len(config.Products) != 0 {
		t.Errorf("empty input produced %d products, want 0", len(config.Products))
	}

	// Строки без названия отбрасываются.
	config = GenerateProductConfig([]calculations.Row{{"quantity": 5.0}}, Config{})
	if len(config.Products) != 0 {
		t.Errorf("nameless rows produced %d products, want 0", len(config.Products))
	}
}

func TestGenerateProductConfig_SizeOrdering(t *testing.T) {
	rows := []calculations.Row{
		saleRow("Shirt - Red", "Red", "XL", 1, 10),
		saleRow("Shirt - Red", "Red", "S", 1, 10),
		saleRow("Shirt - Red", "Red", "M", 1, 10),
		saleRow("Shirt - Red", "Red", "One Size", 1, 10),
	}

	config := GenerateProductConfig(rows, Config{})
	sizes := config.Products[0].Variants[0].Sizes
	want := []string{"S", "M", "XL", "One Size"}
	if len(sizes) != len(want) {
		t.Fatalf("produced %d size rows, want %d", len(sizes), len(want))
	}
	for i, w := range want {
		if sizes[i].Size != w {
			t.Errorf("size[%d] = %q, want %q", i, sizes[i].Size, w)
		}
	}
}

// TestFlatten_Conservation суммы units и net в обоих плоских
// представлениях совпадают с итогами иерархии.
func TestFlatten_Conservation(t *testing.T) {
	rows := []calculations.Row{
		saleRow("Shirt - Red", "Red", "M", 2, 20),
		saleRow("Shirt - Red", "Red", "L", 3, 30),
		saleRow("Shirt - Blue", "Blue", "M", 1, 10),
		saleRow("Jacket - Navy", "Navy", "XL", 4, 400),
	}

	config := GenerateProductConfig(rows, Config{})
	wantUnits, wantNet := 0.0, 0.0
	for _, p := range config.Products {
		wantUnits += p.Units
		wantNet += p.Net
	}

	colorFirst := FlattenColorFirst(config)
	gotUnits, gotNet := 0.0, 0.0
	for _, r := range colorFirst {
		gotUnits += r["units"].(float64)
		gotNet += r["net"].(float64)
		if r["size"].(string) != "All Sizes" {
			t.Errorf("color-first size = %q, want \"All Sizes\"", r["size"])
		}
	}
	if gotUnits != wantUnits || gotNet != wantNet {
		t.Errorf("color-first totals = %v/%v, want %v/%v", gotUnits, gotNet, wantUnits, wantNet)
	}

	sizeFirst := FlattenSizeFirst(rows, Config{})
	gotUnits, gotNet = 0, 0
	for _, r := range sizeFirst {
		gotUnits += r["units"].(float64)
		gotNet += r["net"].(float64)
		if r["color"].(string) != "All Colors" {
			t.Errorf("size-first color = %q, want \"All Colors\"", r["color"])
		}
	}
	if gotUnits != wantUnits || gotNet != wantNet {
		t.Errorf("size-first totals = %v/%v, want %v/%v", gotUnits, gotNet, wantUnits, wantNet)
	}
}

func TestFlattenSizeFirst_Order(t *testing.T) {
	rows := []calculations.Row{
		saleRow("Shirt - Red", "Red", "L", 1, 10),
		saleRow("Shirt - Blue", "Blue", "M", 1, 10),
		saleRow("Jacket - Navy", "Navy", "S", 1, 10),
	}

	flat := FlattenSizeFirst(rows, Config{})
	if len(flat) != 3 {
		t.Fatalf("produced %d rows, want 3", len(flat))
	}
	// Сортировка: база по алфавиту, внутри базы по рангу размера.
	if flat[0]["product"].(string) != "Jacket" {
		t.Errorf("first row product = %q, want \"Jacket\"", flat[0]["product"])
	}
	if flat[1]["size"].(string) != "M" || flat[2]["size"].(string) != "L" {
		t.Errorf("Shirt sizes order = %q, %q, want M, L", flat[1]["size"], flat[2]["size"])
	}
}

func TestCustomFieldChains(t *testing.T) {
	rows := []calculations.Row{
		{"item": "Shirt - Red", "colour": "Red", "sz": "M", "sold": 2.0, "amount": 20.0},
	}
	cfg := Config{
		NameFields:     []string{"item"},
		ColorFields:    []string{"colour"},
		SizeFields:     []string{"sz"},
		QuantityFields: []string{"sold"},
		RevenueFields:  []string{"amount"},
	}

	config := GenerateProductConfig(rows, cfg)
	if len(config.Products) != 1 {
		t.Fatalf("produced %d products, want 1", len(config.Products))
	}
	if config.Products[0].Units != 2 || config.Products[0].Net != 20 {
		t.Errorf("totals = %v/%v, want 2/20", config.Products[0].Units, config.Products[0].Net)
	}
}
