package discovery

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Извлечение и нормализация слов из текстовых полей каталога.

const (
	minWordLen = 2
	maxWordLen = 50

	// contextRadius число символов контекста с каждой стороны вхождения
	contextRadius = 20

	// maxStoredContexts потолок хранимых контекстов на слово; в отчёт
	// попадают не более трёх
	maxStoredContexts = 10
	maxReportContexts = 3
)

// wordRe граница слова с сохранением внутренних апострофов и дефисов:
// "don't" и "pre-washed" извлекаются целиком.
var wordRe = regexp.MustCompile(`[A-Za-z0-9]+(?:['’-][A-Za-z0-9]+)*`)

var (
	normStripRe    = regexp.MustCompile(`[^a-z0-9\s-]`)
	normCollapseRe = regexp.MustCompile(`\s+`)
	numericRe      = regexp.MustCompile(`^[0-9]+$`)
)

// NormalizeWord приводит слово к канонической форме: нижний регистр,
// удаление всех символов кроме букв, цифр, пробелов и дефисов, схлопывание
// пробелов. Функция идемпотентна: NormalizeWord(NormalizeWord(w)) ==
// NormalizeWord(w).
func NormalizeWord(word string) string {
	w := strings.ToLower(word)
	w = normStripRe.ReplaceAllString(w, "")
	w = normCollapseRe.ReplaceAllString(w, " ")
	return strings.TrimSpace(w)
}

// IsValidWord проверяет нормализованное слово: длина 2..50, не стоп-слово,
// не чисто числовое.
func IsValidWord(word string) bool {
	if len(word) < minWordLen || len(word) > maxWordLen {
		return false
	}
	if IsStopWord(word) {
		return false
	}
	if numericRe.MatchString(word) {
		return false
	}
	return true
}

// CoerceFieldValue приводит значение поля каталога к строке. Массивы
// соединяются пробелом, вложенные объекты сериализуются в JSON, прочие
// скаляры форматируются как есть. Ошибок не бывает: неразборчивое
// значение даёт пустую строку.
func CoerceFieldValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		return strings.Join(val, " ")
	case []interface{}:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := CoerceFieldValue(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	case map[string]interface{}:
		raw, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(raw)
	case float64, float32, int, int64, bool:
		return fmt.Sprintf("%v", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// contextSnippet вырезает фрагмент текста вокруг вхождения слова,
// не более contextRadius символов с каждой стороны. Границы среза
// откатываются к началу руны, чтобы не порвать многобайтовый символ.
func contextSnippet(text string, start, end int) string {
	from := start - contextRadius
	if from < 0 {
		from = 0
	}
	to := end + contextRadius
	if to > len(text) {
		to = len(text)
	}
	for from > 0 && !utf8.RuneStart(text[from]) {
		from--
	}
	for to < len(text) && !utf8.RuneStart(text[to]) {
		to--
	}
	return strings.TrimSpace(text[from:to])
}

// fieldAliases альтернативные имена полей между поколениями выгрузок.
var fieldAliases = map[string][]string{
	"title":      {"title", "product_name", "name"},
	"categories": {"categories", "category"},
	"keywords":   {"keywords", "tags"},
}

// fieldText возвращает текст поля с учётом псевдонимов между схемами.
func fieldText(product ProductRecord, field string) string {
	candidates, ok := fieldAliases[field]
	if !ok {
		candidates = []string{field}
	}
	for _, name := range candidates {
		if v, present := product[name]; present {
			if text := CoerceFieldValue(v); text != "" {
				return text
			}
		}
	}
	return ""
}
