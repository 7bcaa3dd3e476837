package discovery

import "time"

// ProductRecord запись каталога из выгрузки витрины. Поля присутствуют не
// всегда; отсутствие любого поля допустимо и не является ошибкой.
type ProductRecord = map[string]interface{}

// Config конфигурация движка обнаружения паттернов.
type Config struct {
	// BatchSize размер пакета при обходе каталога
	BatchSize int `json:"batch_size"`
	// MinThreshold минимальное число вхождений слова за проход
	MinThreshold int `json:"min_threshold"`
	// ConfidenceThreshold минимальная уверенность для попадания в выдачу
	ConfidenceThreshold float64 `json:"confidence_threshold"`
	// MaxPatternsPerRound максимум паттернов в одном проходе
	MaxPatternsPerRound int `json:"max_patterns_per_round"`
	// Fields текстовые поля каталога, участвующие в извлечении
	Fields []string `json:"fields"`
}

// DefaultConfig возвращает конфигурацию по умолчанию.
func DefaultConfig() Config {
	return Config{
		BatchSize:           2000,
		MinThreshold:        50,
		ConfidenceThreshold: 0.3,
		MaxPatternsPerRound: 50,
		Fields:              []string{"title", "description", "categories", "keywords"},
	}
}

// withDefaults заполняет нулевые поля значениями по умолчанию.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.BatchSize <= 0 {
		c.BatchSize = def.BatchSize
	}
	if c.MinThreshold <= 0 {
		c.MinThreshold = def.MinThreshold
	}
	if c.ConfidenceThreshold <= 0 {
		c.ConfidenceThreshold = def.ConfidenceThreshold
	}
	if c.MaxPatternsPerRound <= 0 {
		c.MaxPatternsPerRound = def.MaxPatternsPerRound
	}
	if len(c.Fields) == 0 {
		c.Fields = def.Fields
	}
	return c
}

// PriceCorrelation сводка цен товаров, содержащих слово.
type PriceCorrelation struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// PatternMetrics метрики паттерна, вычисляемые при консолидации.
type PatternMetrics struct {
	Frequency          int               `json:"frequency"`
	ProductPenetration int               `json:"product_penetration"`
	VariationCount     int               `json:"variation_count"`
	FieldSpread        int               `json:"field_spread"`
	PriceCorrelation   *PriceCorrelation `json:"price_correlation"`
	SemanticRichness   int               `json:"semantic_richness"`
}

// RankedPattern паттерн в итоговой выдаче прохода.
type RankedPattern struct {
	Word             string         `json:"word"`
	Count            int            `json:"count"`
	UniqueProducts   int            `json:"unique_products"`
	Variations       []string       `json:"variations"`
	Contexts         []string       `json:"contexts"` // не более 3 для отчёта
	Fields           []string       `json:"fields"`
	SemanticVariants []string       `json:"semantic_variants"`
	Metrics          PatternMetrics `json:"metrics"`
	Confidence       float64        `json:"confidence"`
}

// PassResult результат одного полного прохода по каталогу.
type PassResult struct {
	Pass         int             `json:"pass"`
	Timestamp    time.Time       `json:"timestamp"`
	BatchCount   int             `json:"batch_count"`
	ProductCount int             `json:"product_count"`
	Patterns     []RankedPattern `json:"patterns"`
}

// wordPattern накопитель по одному нормализованному слову.
// Инвариант: Count равен сумме вхождений по всем слитым пакетам;
// len(Products) <= Count, так как товар добавляется в множество один раз.
type wordPattern struct {
	word        string
	count       int
	products    map[string]struct{}
	variations  map[string]struct{}
	contexts    map[string]struct{}
	fields      map[string]struct{}
	priceMin    float64
	priceMax    float64
	priceValues []float64
	variants    map[string]struct{}
}

func newWordPattern(word string) *wordPattern {
	return &wordPattern{
		word:       word,
		products:   make(map[string]struct{}),
		variations: make(map[string]struct{}),
		contexts:   make(map[string]struct{}),
		fields:     make(map[string]struct{}),
		variants:   make(map[string]struct{}),
	}
}

// addPrice расширяет ценовую сводку новым наблюдением.
func (p *wordPattern) addPrice(price float64) {
	if price <= 0 {
		return
	}
	if len(p.priceValues) == 0 || price < p.priceMin {
		p.priceMin = price
	}
	if len(p.priceValues) == 0 || price > p.priceMax {
		p.priceMax = price
	}
	p.priceValues = append(p.priceValues, price)
}

// merge сливает пакетный накопитель в глобальный: счётчики складываются,
// множества объединяются, границы цен расширяются.
func (p *wordPattern) merge(other *wordPattern) {
	p.count += other.count
	for k := range other.products {
		p.products[k] = struct{}{}
	}
	for k := range other.variations {
		p.variations[k] = struct{}{}
	}
	for k := range other.contexts {
		if len(p.contexts) >= maxStoredContexts {
			break
		}
		p.contexts[k] = struct{}{}
	}
	for k := range other.fields {
		p.fields[k] = struct{}{}
	}
	for k := range other.variants {
		p.variants[k] = struct{}{}
	}
	if len(other.priceValues) > 0 {
		if len(p.priceValues) == 0 || other.priceMin < p.priceMin {
			p.priceMin = other.priceMin
		}
		if len(p.priceValues) == 0 || other.priceMax > p.priceMax {
			p.priceMax = other.priceMax
		}
		p.priceValues = append(p.priceValues, other.priceValues...)
	}
}
