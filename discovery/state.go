package discovery

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Экспорт и импорт состояния движка в плоский JSON-файл. Вызывается
// только по инициативе вызывающей стороны; никакого другого хранения
// у движка нет.

// patternState сериализуемая форма накопителя слова.
type patternState struct {
	Word             string    `json:"word"`
	Count            int       `json:"count"`
	Products         []string  `json:"products"`
	Variations       []string  `json:"variations"`
	Contexts         []string  `json:"contexts"`
	Fields           []string  `json:"fields"`
	PriceMin         float64   `json:"price_min"`
	PriceMax         float64   `json:"price_max"`
	PriceValues      []float64 `json:"price_values"`
	SemanticVariants []string  `json:"semantic_variants"`
}

// engineState сериализуемое состояние движка.
type engineState struct {
	CurrentPass int                    `json:"current_pass"`
	Config      Config                 `json:"config"`
	Patterns    []patternState         `json:"patterns"`
	PassResults map[string]*PassResult `json:"pass_results"`
}

// ExportState сохраняет состояние движка в JSON-файл.
func (e *Engine) ExportState(filename string) error {
	state := engineState{
		CurrentPass: e.currentPass,
		Config:      e.cfg,
		Patterns:    make([]patternState, 0, len(e.patterns)),
		PassResults: make(map[string]*PassResult, len(e.passResults)),
	}
	for _, p := range e.patterns {
		state.Patterns = append(state.Patterns, patternState{
			Word:             p.word,
			Count:            p.count,
			Products:         sortedKeys(p.products),
			Variations:       sortedKeys(p.variations),
			Contexts:         sortedKeys(p.contexts),
			Fields:           sortedKeys(p.fields),
			PriceMin:         p.priceMin,
			PriceMax:         p.priceMax,
			PriceValues:      p.priceValues,
			SemanticVariants: sortedKeys(p.variants),
		})
	}
	for pass, result := range e.passResults {
		state.PassResults[strconv.Itoa(pass)] = result
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create state file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(state); err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	return nil
}

// ImportState восстанавливает состояние движка из JSON-файла,
// замещая текущее.
func (e *Engine) ImportState(filename string) error {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read state file: %w", err)
	}

	var state engineState
	if err := json.Unmarshal(raw, &state); err != nil {
		return fmt.Errorf("failed to decode state: %w", err)
	}

	e.cfg = state.Config.withDefaults()
	if state.CurrentPass > 0 {
		e.currentPass = state.CurrentPass
	}

	e.patterns = make(map[string]*wordPattern, len(state.Patterns))
	for _, ps := range state.Patterns {
		p := newWordPattern(ps.Word)
		p.count = ps.Count
		for _, v := range ps.Products {
			p.products[v] = struct{}{}
		}
		for _, v := range ps.Variations {
			p.variations[v] = struct{}{}
		}
		for _, v := range ps.Contexts {
			p.contexts[v] = struct{}{}
		}
		for _, v := range ps.Fields {
			p.fields[v] = struct{}{}
		}
		for _, v := range ps.SemanticVariants {
			p.variants[v] = struct{}{}
		}
		p.priceMin = ps.PriceMin
		p.priceMax = ps.PriceMax
		p.priceValues = ps.PriceValues
		e.patterns[ps.Word] = p
	}

	e.passResults = make(map[int]*PassResult, len(state.PassResults))
	for key, result := range state.PassResults {
		pass, err := strconv.Atoi(key)
		if err != nil || result == nil {
			continue
		}
		e.passResults[pass] = result
	}
	return nil
}
