package questions

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// learnedMinUses минимальная частота пользовательской классификации,
// после которой она начинает предлагаться как подсказка.
const learnedMinUses = 2

// LearnCustomClassification учитывает пользовательскую классификацию в
// обучаемых таблицах: частота по нормализованной строке и пара
// тип/подтип, извлечённая разбиением по запятой.
func (g *Generator) LearnCustomClassification(classification string) {
	key := strings.ToLower(strings.TrimSpace(classification))
	if key == "" {
		return
	}
	g.customClassifications[key]++

	parts := strings.SplitN(key, ",", 2)
	primary := strings.TrimSpace(parts[0])
	if primary == "" {
		return
	}
	if g.classificationPatterns[primary] == nil {
		g.classificationPatterns[primary] = make(map[string]struct{})
	}
	if len(parts) == 2 {
		if secondary := strings.TrimSpace(parts[1]); secondary != "" {
			g.classificationPatterns[primary][secondary] = struct{}{}
		}
	}
}

// ClassificationCount возвращает частоту использования классификации.
func (g *Generator) ClassificationCount(classification string) int {
	return g.customClassifications[strings.ToLower(strings.TrimSpace(classification))]
}

// FindSimilarClassifications возвращает не более одной "похожей"
// классификации: самую часто использованную с частотой >= 2.
// Настоящая текстовая близость не вычисляется, Similarity всегда 0.8 -
// поведение сознательно сохранено, потому что его смена незаметно
// изменила бы подсказки для пользователя.
func (g *Generator) FindSimilarClassifications(word string) []SimilarClassification {
	best := ""
	bestCount := 0
	for classification, count := range g.customClassifications {
		if count < learnedMinUses {
			continue
		}
		if count > bestCount || (count == bestCount && classification < best) {
			best = classification
			bestCount = count
		}
	}
	if best == "" {
		return nil
	}
	return []SimilarClassification{{
		Classification: best,
		Count:          bestCount,
		Similarity:     0.8,
	}}
}

// learningState сериализуемое обучаемое состояние генератора.
type learningState struct {
	CustomClassifications  map[string]int      `json:"custom_classifications"`
	ClassificationPatterns map[string][]string `json:"classification_patterns"`
}

// ExportLearning сохраняет обучаемое состояние в JSON-файл.
func (g *Generator) ExportLearning(filename string) error {
	state := learningState{
		CustomClassifications:  g.customClassifications,
		ClassificationPatterns: make(map[string][]string, len(g.classificationPatterns)),
	}
	for primary, subtypes := range g.classificationPatterns {
		list := make([]string, 0, len(subtypes))
		for subtype := range subtypes {
			list = append(list, subtype)
		}
		sort.Strings(list)
		state.ClassificationPatterns[primary] = list
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create learning file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(state); err != nil {
		return fmt.Errorf("failed to encode learning state: %w", err)
	}
	return nil
}

// ImportLearning восстанавливает обучаемое состояние из JSON-файла,
// замещая текущее.
func (g *Generator) ImportLearning(filename string) error {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read learning file: %w", err)
	}

	var state learningState
	if err := json.Unmarshal(raw, &state); err != nil {
		return fmt.Errorf("failed to decode learning state: %w", err)
	}

	g.customClassifications = make(map[string]int, len(state.CustomClassifications))
	for classification, count := range state.CustomClassifications {
		g.customClassifications[classification] = count
	}
	g.classificationPatterns = make(map[string]map[string]struct{}, len(state.ClassificationPatterns))
	for primary, subtypes := range state.ClassificationPatterns {
		set := make(map[string]struct{}, len(subtypes))
		for _, subtype := range subtypes {
			set[subtype] = struct{}{}
		}
		g.classificationPatterns[primary] = set
	}
	return nil
}
