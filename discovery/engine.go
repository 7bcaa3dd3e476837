package discovery

import (
	"log"
	"math"
	"sort"
	"time"

	"retailserver/calculations"
)

// confidenceTieBand паттерны с уверенностью в пределах этой полосы
// считаются равными и упорядочиваются по сырому счётчику.
const confidenceTieBand = 0.1

// ProgressFunc уведомление о ходе прохода: вызывается после каждого
// пакета с числом обработанных и общим числом пакетов. Это синхронное
// уведомление, а не точка отмены: прервать проход изнутри нельзя.
type ProgressFunc func(processedBatches, totalBatches int)

// Engine движок обнаружения паттернов. Держит изменяемое состояние
// прохода (карту паттернов и результаты по номерам проходов), поэтому
// параллельные вызовы DiscoverPatterns на одном экземпляре недопустимы:
// вызывающая сторона обязана их сериализовать. Для изолированных сессий
// создавайте отдельные экземпляры через NewEngine.
type Engine struct {
	cfg         Config
	patterns    map[string]*wordPattern
	passResults map[int]*PassResult
	currentPass int
	progressFn  ProgressFunc
	stemmer     *EnglishStemmer
}

// NewEngine создает движок с заданной конфигурацией. Нулевые поля
// конфигурации заменяются значениями по умолчанию.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		cfg:         cfg.withDefaults(),
		patterns:    make(map[string]*wordPattern),
		passResults: make(map[int]*PassResult),
		currentPass: 1,
		stemmer:     NewEnglishStemmer(),
	}
}

// Config возвращает действующую конфигурацию движка.
func (e *Engine) Config() Config {
	return e.cfg
}

// SetProgressFunc задает уведомление о ходе прохода.
func (e *Engine) SetProgressFunc(fn ProgressFunc) {
	e.progressFn = fn
}

// CurrentPass возвращает номер текущего прохода.
// Номер управляется вызывающей стороной: повторный DiscoverPatterns
// перезаписывает результат того же прохода, пока не вызван SetPass.
func (e *Engine) CurrentPass() int {
	return e.currentPass
}

// SetPass задает номер прохода для следующих запусков.
func (e *Engine) SetPass(pass int) {
	if pass > 0 {
		e.currentPass = pass
	}
}

// PassResult возвращает сохранённый результат по номеру прохода.
func (e *Engine) PassResult(pass int) (*PassResult, bool) {
	result, ok := e.passResults[pass]
	return result, ok
}

// Passes возвращает номера сохранённых проходов по возрастанию.
func (e *Engine) Passes() []int {
	passes := make([]int, 0, len(e.passResults))
	for pass := range e.passResults {
		passes = append(passes, pass)
	}
	sort.Ints(passes)
	return passes
}

// DiscoverPatterns выполняет один полный проход по каталогу: разбивает
// товары на пакеты, извлекает слова-кандидаты, сливает пакетные
// накопители, консолидирует по порогу и ранжирует по уверенности.
// Пустой каталог даёт пустую выдачу, ошибок в проходе не бывает.
func (e *Engine) DiscoverPatterns(products []ProductRecord) []RankedPattern {
	started := time.Now()

	// Счётчики слова сбрасываются в начале каждого прохода.
	e.patterns = make(map[string]*wordPattern)

	totalBatches := 0
	if len(products) > 0 {
		totalBatches = int(math.Ceil(float64(len(products)) / float64(e.cfg.BatchSize)))
	}

	log.Printf("[Discovery] Pass %d: %d products in %d batches (batch size %d)",
		e.currentPass, len(products), totalBatches, e.cfg.BatchSize)

	for batch := 0; batch < totalBatches; batch++ {
		from := batch * e.cfg.BatchSize
		to := from + e.cfg.BatchSize
		if to > len(products) {
			to = len(products)
		}

		local := e.extractBatch(products[from:to], from)
		for word, pattern := range local {
			global, ok := e.patterns[word]
			if !ok {
				e.patterns[word] = pattern
				continue
			}
			global.merge(pattern)
		}

		if e.progressFn != nil {
			e.progressFn(batch+1, totalBatches)
		}
	}

	ranked := e.consolidate()

	result := &PassResult{
		Pass:         e.currentPass,
		Timestamp:    time.Now(),
		BatchCount:   totalBatches,
		ProductCount: len(products),
		Patterns:     ranked,
	}
	e.passResults[e.currentPass] = result

	log.Printf("[Discovery] Pass %d complete: %d candidate words, %d ranked patterns in %dms",
		e.currentPass, len(e.patterns), len(ranked), time.Since(started).Milliseconds())

	return ranked
}

// extractBatch независимо извлекает кандидатов из одного пакета товаров.
// offset глобальное смещение пакета, используется для запасных ID товаров.
func (e *Engine) extractBatch(batch []ProductRecord, offset int) map[string]*wordPattern {
	local := make(map[string]*wordPattern)

	for i, product := range batch {
		productID := resolveProductID(product, offset+i)
		price := calculations.NumericValue(product["price"])

		for _, field := range e.cfg.Fields {
			text := fieldText(product, field)
			if text == "" {
				// Товар без поля вносит ноль слов; это не ошибка.
				continue
			}

			for _, loc := range wordRe.FindAllStringIndex(text, -1) {
				original := text[loc[0]:loc[1]]
				word := NormalizeWord(original)
				if !IsValidWord(word) {
					continue
				}

				pattern, ok := local[word]
				if !ok {
					pattern = newWordPattern(word)
					pattern.variants = variantSet(word, e.stemmer)
					local[word] = pattern
				}

				pattern.count++
				pattern.variations[original] = struct{}{}
				pattern.fields[field] = struct{}{}
				if len(pattern.contexts) < maxStoredContexts {
					pattern.contexts[contextSnippet(text, loc[0], loc[1])] = struct{}{}
				}
				if _, seen := pattern.products[productID]; !seen {
					pattern.products[productID] = struct{}{}
					// Цена учитывается один раз на товар.
					pattern.addPrice(price)
				}
			}
		}
	}

	return local
}

// consolidate отбрасывает слова ниже порога, вычисляет метрики и
// уверенность, ранжирует и усекает выдачу.
func (e *Engine) consolidate() []RankedPattern {
	ranked := make([]RankedPattern, 0)

	for _, pattern := range e.patterns {
		if pattern.count < e.cfg.MinThreshold {
			continue
		}
		metrics := computeMetrics(pattern)
		confidence := ComputeConfidence(metrics)
		if confidence < e.cfg.ConfidenceThreshold {
			continue
		}
		ranked = append(ranked, RankedPattern{
			Word:             pattern.word,
			Count:            pattern.count,
			UniqueProducts:   len(pattern.products),
			Variations:       sortedKeys(pattern.variations),
			Contexts:         reportContexts(pattern.contexts),
			Fields:           sortedKeys(pattern.fields),
			SemanticVariants: sortedKeys(pattern.variants),
			Metrics:          metrics,
			Confidence:       calculations.Round2(confidence),
		})
	}

	// Сортировка по убыванию уверенности; уверенности в пределах 0.1
	// считаются равными и разрешаются по сырому счётчику.
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if math.Abs(a.Confidence-b.Confidence) <= confidenceTieBand {
			return a.Count > b.Count
		}
		return a.Confidence > b.Confidence
	})

	if len(ranked) > e.cfg.MaxPatternsPerRound {
		ranked = ranked[:e.cfg.MaxPatternsPerRound]
	}
	return ranked
}

// resolveProductID возвращает идентификатор товара для множества
// проникновения; при отсутствии явного ID используется порядковый номер.
func resolveProductID(product ProductRecord, index int) string {
	for _, field := range []string{"product_id", "id", "sku"} {
		if v, ok := product[field]; ok {
			if id := calculations.StringValue(v); id != "" {
				return id
			}
		}
	}
	return "row:" + calculations.StringValue(index)
}

// variantSet строит множество семантических вариантов слова.
func variantSet(word string, stemmer *EnglishStemmer) map[string]struct{} {
	set := make(map[string]struct{})
	for _, v := range SemanticVariants(word, stemmer) {
		set[v] = struct{}{}
	}
	return set
}

// sortedKeys возвращает ключи множества в алфавитном порядке.
func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// reportContexts отбирает не более трёх контекстов для отчёта.
func reportContexts(set map[string]struct{}) []string {
	contexts := sortedKeys(set)
	if len(contexts) > maxReportContexts {
		contexts = contexts[:maxReportContexts]
	}
	return contexts
}
