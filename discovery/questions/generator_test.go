package questions

import (
	"strings"
	"testing"

	"retailserver/discovery"
)

func rankedPattern(word string, uniqueProducts int, variations, fields []string) *discovery.RankedPattern {
	return &discovery.RankedPattern{
		Word:           word,
		Count:          uniqueProducts * 2,
		UniqueProducts: uniqueProducts,
		Variations:     variations,
		Fields:         fields,
		Confidence:     0.5,
	}
}

func TestDetectPatternType(t *testing.T) {
	tests := []struct {
		name    string
		pattern *discovery.RankedPattern
		want    PatternType
	}{
		{"материал", rankedPattern("canvas", 3, []string{"canvas"}, []string{"title"}), TypeMaterial},
		{"цвет", rankedPattern("navy", 3, []string{"navy"}, []string{"title"}), TypeColor},
		{"размер", rankedPattern("xl", 3, []string{"XL"}, []string{"title"}), TypeSize},
		{"товар", rankedPattern("jacket", 3, []string{"jacket"}, []string{"title"}), TypeProduct},
		{"характеристика", rankedPattern("waterproof", 3, []string{"waterproof"}, []string{"description"}), TypeFeature},
		{"стиль", rankedPattern("casual", 3, []string{"casual"}, []string{"title"}), TypeStyle},
		{"неизвестное", rankedPattern("zzyzx", 2, []string{"zzyzx"}, []string{"description"}), TypeGeneral},
		{"nil паттерн", nil, TypeGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectPatternType(tt.pattern); got != tt.want {
				t.Errorf("DetectPatternType = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestDetectPatternType_Priority слово из двух словарей получает тип по
// фиксированному порядку приоритета.
func TestDetectPatternType_Priority(t *testing.T) {
	// Если слово одновременно материал и похоже на бренд, побеждает
	// материал: словарные проверки идут раньше эвристики бренда.
	p := rankedPattern("canvas", 10, []string{"Canvas"}, []string{"title"})
	if got := DetectPatternType(p); got != TypeMaterial {
		t.Errorf("DetectPatternType = %q, want material over brand", got)
	}
}

func TestLooksLikeBrand(t *testing.T) {
	tests := []struct {
		name    string
		pattern *discovery.RankedPattern
		want    PatternType
	}{
		{
			"бренд: заглавная, в заголовке, 5+ товаров",
			rankedPattern("patagonia", 6, []string{"Patagonia"}, []string{"title"}),
			TypeBrand,
		},
		{
			"мало товаров",
			rankedPattern("patagonia", 4, []string{"Patagonia"}, []string{"title"}),
			TypeGeneral,
		},
		{
			"нет заглавного написания",
			rankedPattern("patagonia", 6, []string{"patagonia"}, []string{"title"}),
			TypeGeneral,
		},
		{
			"не в заголовке",
			rankedPattern("patagonia", 6, []string{"Patagonia"}, []string{"description"}),
			TypeGeneral,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectPatternType(tt.pattern); got != tt.want {
				t.Errorf("DetectPatternType = %q, want %q", got, tt.want)
			}
		})
	}
}

func questionByIDSuffix(set *QuestionSet, suffix string) *Question {
	for i := range set.Questions {
		if strings.HasSuffix(set.Questions[i].ID, suffix) {
			return &set.Questions[i]
		}
	}
	return nil
}

// TestGenerateQuestions_Material анкета материала: классификация,
// иерархия, свойства, расширение; без комбинаций и обучения.
func TestGenerateQuestions_Material(t *testing.T) {
	g := NewGenerator()
	set, err := g.GenerateQuestions(rankedPattern("canvas", 3, []string{"Canvas"}, []string{"title"}), nil)
	if err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}

	if set.PatternType != TypeMaterial {
		t.Errorf("PatternType = %q, want material", set.PatternType)
	}
	if !strings.HasPrefix(set.PatternID, "pattern-canvas-") {
		t.Errorf("PatternID = %q, want pattern-canvas-* prefix", set.PatternID)
	}

	for _, suffix := range []string{"_classification", "_hierarchy", "_properties", "_expansion"} {
		if questionByIDSuffix(set, suffix) == nil {
			t.Errorf("question %s missing", suffix)
		}
	}
	if questionByIDSuffix(set, "_combinations") != nil {
		t.Error("combination question present without combinations")
	}
	if questionByIDSuffix(set, "_learning") != nil {
		t.Error("learning question present without learned classifications")
	}

	// Первый вопрос всегда классификация, со свободным вводом.
	first := set.Questions[0]
	if !strings.HasSuffix(first.ID, "_classification") || !first.AllowCustom {
		t.Errorf("first question = %+v, want classification with AllowCustom", first)
	}
}

func TestGenerateQuestions_ProductType(t *testing.T) {
	g := NewGenerator()
	set, err := g.GenerateQuestions(rankedPattern("jacket", 4, []string{"Jacket"}, []string{"title"}), nil)
	if err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}
	for _, suffix := range []string{"_hierarchy", "_parent_category", "_gender"} {
		if questionByIDSuffix(set, suffix) == nil {
			t.Errorf("question %s missing for product type", suffix)
		}
	}
}

func TestGenerateQuestions_Combinations(t *testing.T) {
	g := NewGenerator()
	combos := []Combination{
		{Words: []string{"canvas", "jacket"}, Count: 12},
		{Words: []string{"canvas", "tote"}, Count: 4},
	}
	set, err := g.GenerateQuestions(rankedPattern("canvas", 3, []string{"canvas"}, []string{"title"}), combos)
	if err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}

	q := questionByIDSuffix(set, "_combinations")
	if q == nil {
		t.Fatal("combination question missing")
	}
	// Две комбинации плюс track_all и track_none.
	if len(q.Options) != 4 {
		t.Errorf("combination options = %d, want 4", len(q.Options))
	}
	if q.Options[0].Value != "canvas + jacket" {
		t.Errorf("first option = %q, want \"canvas + jacket\"", q.Options[0].Value)
	}
}

func TestGenerateQuestions_LearnedSuggestions(t *testing.T) {
	g := NewGenerator()
	g.LearnCustomClassification("Ткань, Хлопок")
	g.LearnCustomClassification("Ткань, Хлопок")

	set, err := g.GenerateQuestions(rankedPattern("linen", 3, []string{"linen"}, []string{"title"}), nil)
	if err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}

	classification := questionByIDSuffix(set, "_classification")
	found := false
	for _, opt := range classification.Options {
		if opt.Value == "ткань, хлопок" && opt.IsCustom {
			found = true
		}
	}
	if !found {
		t.Errorf("learned classification missing from options: %+v", classification.Options)
	}

	learning := questionByIDSuffix(set, "_learning")
	if learning == nil {
		t.Fatal("learning question missing after repeated classification")
	}
	if learning.Options[0].Confidence != 0.8 {
		t.Errorf("learning confidence = %v, want fixed 0.8", learning.Options[0].Confidence)
	}
}

func TestGenerateQuestions_NilPattern(t *testing.T) {
	if _, err := NewGenerator().GenerateQuestions(nil, nil); err == nil {
		t.Error("GenerateQuestions(nil) succeeded, want error")
	}
}
