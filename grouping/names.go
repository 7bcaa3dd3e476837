package grouping

import "strings"

// baseNameDelimiter разделитель между базовым названием товара и вариантом
// в выгрузках витрины: "Jacket - Navy" -> база "Jacket", цвет "Navy".
const baseNameDelimiter = " - "

// ParseBaseName возвращает базовое название товара: первый сегмент полного
// названия до " - ". Если разделителя нет, возвращается полное название.
// Контракт разделителя фиксирован: изменение соглашения об именовании на
// витрине ломает группировку, поэтому парсер вынесен в отдельную функцию.
func ParseBaseName(productName string) string {
	name := strings.TrimSpace(productName)
	if name == "" {
		return ""
	}
	if idx := strings.Index(name, baseNameDelimiter); idx >= 0 {
		return strings.TrimSpace(name[:idx])
	}
	return name
}

// VariantKey строит ключ группы варианта "{база} - {цвет}".
func VariantKey(productName, color string) string {
	base := ParseBaseName(productName)
	color = strings.TrimSpace(color)
	if color == "" {
		return base
	}
	return base + baseNameDelimiter + color
}
