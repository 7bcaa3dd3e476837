package discovery

import (
	"retailserver/calculations"
)

// Вычисление метрик и уверенности паттерна. Уверенность - взвешенная
// смесь частоты, проникновения по товарам, разброса по полям, богатства
// вариаций, наличия ценовых данных и семантической насыщенности.

// Веса и шкалы компонент уверенности. Каждая компонента насыщается на
// своей шкале и входит с фиксированным весом; сумма весов равна 1.
const (
	weightFrequency   = 0.30
	weightPenetration = 0.20
	weightFieldSpread = 0.20
	weightVariations  = 0.15
	weightPriceData   = 0.10
	weightRichness    = 0.05

	scaleFrequency   = 100.0
	scalePenetration = 1000.0
	scaleFieldSpread = 4.0
	scaleVariations  = 5.0
	scaleRichness    = 10.0
)

// computeMetrics выводит метрики из накопителя слова.
func computeMetrics(p *wordPattern) PatternMetrics {
	metrics := PatternMetrics{
		Frequency:          p.count,
		ProductPenetration: len(p.products),
		VariationCount:     len(p.variations),
		FieldSpread:        len(p.fields),
		SemanticRichness:   len(p.variants),
	}
	if len(p.priceValues) > 0 {
		metrics.PriceCorrelation = &PriceCorrelation{
			Min: p.priceMin,
			Max: p.priceMax,
			Avg: calculations.Round2(calculations.Mean(p.priceValues)),
		}
	}
	return metrics
}

// saturate нормирует значение на шкале в [0,1].
func saturate(value, scale float64) float64 {
	v := value / scale
	if v > 1 {
		return 1
	}
	return v
}

// ComputeConfidence возвращает уверенность паттерна в [0,1].
func ComputeConfidence(m PatternMetrics) float64 {
	score := weightFrequency*saturate(float64(m.Frequency), scaleFrequency) +
		weightPenetration*saturate(float64(m.ProductPenetration), scalePenetration) +
		weightFieldSpread*saturate(float64(m.FieldSpread), scaleFieldSpread) +
		weightVariations*saturate(float64(m.VariationCount), scaleVariations) +
		weightRichness*saturate(float64(m.SemanticRichness), scaleRichness)
	if m.PriceCorrelation != nil {
		score += weightPriceData
	}
	return calculations.Clamp01(score)
}
