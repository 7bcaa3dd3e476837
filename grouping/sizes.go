package grouping

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Порядок сортировки размеров для таблиц: буквенные размеры по шкале,
// затем числовые, затем размеры брюк "талия x длина", "One Size"
// предпоследним, неизвестные размеры в самом конце.

// namedSizeOrder фиксированная таблица рангов буквенных размеров.
var namedSizeOrder = map[string]int{
	"XXS": 10,
	"XS":  20,
	"S":   30,
	"M":   40,
	"L":   50,
	"XL":  60,
	"XXL": 70,
	"2XL": 70,
	"3XL": 80,
	"4XL": 90,
	"5XL": 100,
}

const (
	numericSizeBase = 200   // числовые размеры после буквенных
	pantSizeBase    = 10000 // размеры брюк после числовых
	oneSizeRank     = 99998 // "One Size"/"OS" предпоследние
	unknownSizeRank = 99999 // неизвестные размеры всегда последние
)

var pantSizeRe = regexp.MustCompile(`^(\d{2})\s*[xX/]\s*(\d{2})$`)

// SizeRank возвращает ранг размера для сортировки.
func SizeRank(size string) int {
	s := strings.ToUpper(strings.TrimSpace(size))
	if s == "" {
		return unknownSizeRank
	}
	if rank, ok := namedSizeOrder[s]; ok {
		return rank
	}
	if s == "ONE SIZE" || s == "OS" {
		return oneSizeRank
	}
	if m := pantSizeRe.FindStringSubmatch(s); m != nil {
		waist, _ := strconv.Atoi(m[1])
		inseam, _ := strconv.Atoi(m[2])
		// Сначала по талии, затем по длине.
		return pantSizeBase + waist*100 + inseam
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return numericSizeBase + n
	}
	return unknownSizeRank
}

// SortSizeRows сортирует строки размеров по фиксированному порядку.
// Равные ранги (две неизвестные метки) упорядочиваются по алфавиту,
// чтобы вывод был детерминированным.
func SortSizeRows(rows []SizeRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := SizeRank(rows[i].Size), SizeRank(rows[j].Size)
		if ri != rj {
			return ri < rj
		}
		return rows[i].Size < rows[j].Size
	})
}
