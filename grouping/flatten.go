package grouping

import (
	"sort"

	"retailserver/calculations"
)

// Два альтернативных плоских представления для таблиц: "сначала цвет"
// (одна строка на вариант, размеры свёрнуты) и "сначала размер"
// (повторный проход по исходным строкам, цвета свёрнуты).

// FlattenColorFirst разворачивает конфигурацию в строки по вариантам:
// одна строка на цвет, размер свёрнут в "All Sizes".
func FlattenColorFirst(config *ProductConfig) []calculations.Row {
	rows := make([]calculations.Row, 0)
	if config == nil {
		return rows
	}
	for _, product := range config.Products {
		for _, variant := range product.Variants {
			rows = append(rows, calculations.Row{
				"product": product.Name,
				"variant": variant.Key,
				"color":   variant.Color,
				"size":    "All Sizes",
				"units":   variant.Units,
				"net":     calculations.Round2(variant.Net),
			})
		}
	}
	return rows
}

// FlattenSizeFirst повторно проходит по исходным строкам и группирует по
// базовому названию и размеру, сворачивая цвет в "All Colors".
func FlattenSizeFirst(rows []calculations.Row, cfg Config) []calculations.Row {
	cfg = cfg.withDefaults()

	type sizeAcc struct {
		base  string
		size  string
		units float64
		net   float64
	}

	groups := make(map[string]*sizeAcc)
	order := make([]string, 0)
	for _, row := range rows {
		name := calculations.ChainString(row, cfg.NameFields)
		if name == "" {
			continue
		}
		base := ParseBaseName(name)
		size := calculations.ChainString(row, cfg.SizeFields)
		key := base + "\x00" + size

		acc, ok := groups[key]
		if !ok {
			acc = &sizeAcc{base: base, size: size}
			groups[key] = acc
			order = append(order, key)
		}
		acc.units += calculations.ChainNumeric(row, cfg.QuantityFields)
		acc.net += calculations.ChainNumeric(row, cfg.RevenueFields)
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := groups[order[i]], groups[order[j]]
		if a.base != b.base {
			return a.base < b.base
		}
		ra, rb := SizeRank(a.size), SizeRank(b.size)
		if ra != rb {
			return ra < rb
		}
		return a.size < b.size
	})

	flattened := make([]calculations.Row, 0, len(order))
	for _, key := range order {
		acc := groups[key]
		flattened = append(flattened, calculations.Row{
			"product": acc.base,
			"color":   "All Colors",
			"size":    acc.size,
			"units":   acc.units,
			"net":     calculations.Round2(acc.net),
		})
	}
	return flattened
}
