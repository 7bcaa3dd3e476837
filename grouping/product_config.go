package grouping

import (
	"sort"

	"retailserver/calculations"
)

// Детерминированная (без ML) группировка уже размеченных строк выгрузки в
// иерархию Товар -> Цвет -> Размер с накопительными итогами. Конфигурация
// перестраивается с нуля при каждом вызове: инкрементального обновления и
// сохраняемой идентичности групп между вызовами нет, единственный ключ -
// строка "{база} - {цвет}".

// SizeRow строка размера с агрегированными количеством и выручкой.
type SizeRow struct {
	Size  string  `json:"size"`
	Units float64 `json:"units"`
	Net   float64 `json:"net"`
}

// Variant товар, суженный до одного цвета, с разбивкой по размерам.
type Variant struct {
	Key   string    `json:"key"` // "{база} - {цвет}"
	Color string    `json:"color"`
	Sizes []SizeRow `json:"sizes"`
	Units float64   `json:"units"`
	Net   float64   `json:"net"`
}

// Product базовый товар со списком цветовых вариантов.
type Product struct {
	Name     string    `json:"name"`
	Variants []Variant `json:"variants"`
	Units    float64   `json:"units"`
	Net      float64   `json:"net"`
}

// ProductConfig результат группировки для слоя таблиц.
type ProductConfig struct {
	Products []Product `json:"products"`
}

// Config переопределяет цепочки полей для нестандартных выгрузок.
// Нулевое значение использует цепочки по умолчанию из calculations.
type Config struct {
	NameFields     []string
	ColorFields    []string
	SizeFields     []string
	QuantityFields []string
	RevenueFields  []string
}

func (c Config) withDefaults() Config {
	if len(c.NameFields) == 0 {
		c.NameFields = calculations.ProductFieldChain
	}
	if len(c.ColorFields) == 0 {
		c.ColorFields = calculations.ColorFieldChain
	}
	if len(c.SizeFields) == 0 {
		c.SizeFields = calculations.SizeFieldChain
	}
	if len(c.QuantityFields) == 0 {
		c.QuantityFields = calculations.QuantityFieldChain
	}
	if len(c.RevenueFields) == 0 {
		c.RevenueFields = calculations.RevenueFieldChain
	}
	return c
}

// GenerateProductConfig группирует плоские строки в иерархию
// Товар -> Вариант (цвет) -> Размер. Пустой вход даёт пустую
// конфигурацию с нулевыми итогами, ошибок не бывает.
func GenerateProductConfig(rows []calculations.Row, cfg Config) *ProductConfig {
	cfg = cfg.withDefaults()

	type variantAcc struct {
		base  string
		color string
		sizes map[string]*SizeRow
		order []string // порядок появления размеров до сортировки
	}

	variants := make(map[string]*variantAcc)
	variantOrder := make([]string, 0)

	for _, row := range rows {
		name := calculations.ChainString(row, cfg.NameFields)
		if name == "" {
			continue
		}
		color := calculations.ChainString(row, cfg.ColorFields)
		key := VariantKey(name, color)

		acc, ok := variants[key]
		if !ok {
			acc = &variantAcc{
				base:  ParseBaseName(name),
				color: color,
				sizes: make(map[string]*SizeRow),
			}
			variants[key] = acc
			variantOrder = append(variantOrder, key)
		}

		size := calculations.ChainString(row, cfg.SizeFields)
		sr, ok := acc.sizes[size]
		if !ok {
			sr = &SizeRow{Size: size}
			acc.sizes[size] = sr
			acc.order = append(acc.order, size)
		}
		sr.Units += calculations.ChainNumeric(row, cfg.QuantityFields)
		sr.Net += calculations.ChainNumeric(row, cfg.RevenueFields)
	}

	// Собираем варианты под общими базовыми названиями.
	productIndex := make(map[string]*Product)
	productOrder := make([]string, 0)
	for _, key := range variantOrder {
		acc := variants[key]

		variant := Variant{Key: key, Color: acc.color}
		for _, size := range acc.order {
			sr := acc.sizes[size]
			variant.Sizes = append(variant.Sizes, *sr)
			variant.Units += sr.Units
			variant.Net += sr.Net
		}
		SortSizeRows(variant.Sizes)

		product, ok := productIndex[acc.base]
		if !ok {
			product = &Product{Name: acc.base}
			productIndex[acc.base] = product
			productOrder = append(productOrder, acc.base)
		}
		product.Variants = append(product.Variants, variant)
		product.Units += variant.Units
		product.Net += variant.Net
	}

	config := &ProductConfig{Products: make([]Product, 0, len(productOrder))}
	for _, base := range productOrder {
		product := *productIndex[base]
		sort.SliceStable(product.Variants, func(i, j int) bool {
			return product.Variants[i].Units > product.Variants[j].Units
		})
		config.Products = append(config.Products, product)
	}
	sort.SliceStable(config.Products, func(i, j int) bool {
		return config.Products[i].Units > config.Products[j].Units
	})
	return config
}
