package questions

import "testing"

func TestProcessResponse(t *testing.T) {
	g := NewGenerator()

	result := g.ProcessResponse("pattern-canvas-abc123", map[string]interface{}{
		"pattern-canvas-abc123_classification": "material",
		"pattern-canvas-abc123_hierarchy":      "subgroup",
		"pattern-canvas-abc123_properties":     []interface{}{"durable", "breathable"},
		"pattern-canvas-abc123_expansion":      "synonyms, spelling_variants",
		"pattern-canvas-abc123_combinations":   []interface{}{"canvas + jacket"},
		"pattern-canvas-abc123_gender":         "mens", // в результат не входит
	})

	if result.PatternID != "pattern-canvas-abc123" {
		t.Errorf("PatternID = %q", result.PatternID)
	}
	if result.Classification != "material" || result.IsCustom {
		t.Errorf("Classification = %q IsCustom %v, want material/false", result.Classification, result.IsCustom)
	}
	if result.Hierarchy != "subgroup" {
		t.Errorf("Hierarchy = %q, want subgroup", result.Hierarchy)
	}
	if len(result.Properties) != 2 {
		t.Errorf("Properties = %v, want 2 items", result.Properties)
	}
	// Строка со списком через запятую разворачивается.
	if len(result.Expansion) != 2 || result.Expansion[0] != "synonyms" {
		t.Errorf("Expansion = %v, want [synonyms spelling_variants]", result.Expansion)
	}
	if len(result.Combinations) != 1 {
		t.Errorf("Combinations = %v, want 1 item", result.Combinations)
	}
	if result.ProcessedAt.IsZero() {
		t.Error("ProcessedAt not set")
	}
}

// TestProcessResponse_CustomLearns пользовательская классификация
// попадает в обучаемые таблицы.
func TestProcessResponse_CustomLearns(t *testing.T) {
	g := NewGenerator()

	result := g.ProcessResponse("pattern-linen-xyz", map[string]interface{}{
		"pattern-linen-xyz_classification": map[string]interface{}{
			"value":     "Ткань, Лён",
			"is_custom": true,
		},
	})

	if !result.IsCustom || result.Classification != "Ткань, Лён" {
		t.Errorf("result = %+v, want custom Ткань, Лён", result)
	}
	if got := g.ClassificationCount("ткань, лён"); got != 1 {
		t.Errorf("ClassificationCount = %d, want 1 after custom response", got)
	}
}

// TestProcessResponse_Unknown неизвестные идентификаторы вопросов
// игнорируются без ошибок.
func TestProcessResponse_Unknown(t *testing.T) {
	g := NewGenerator()
	result := g.ProcessResponse("p1", map[string]interface{}{
		"p1_unrelated": "value",
		"p1_other":     42,
	})
	if result.Classification != "" || result.Hierarchy != "" {
		t.Errorf("unknown responses leaked into result: %+v", result)
	}
}

func TestUnpackResponse_Flags(t *testing.T) {
	for _, key := range []string{"is_custom", "isCustom", "custom"} {
		_, isCustom := unpackResponse(map[string]interface{}{"value": "x", key: true})
		if !isCustom {
			t.Errorf("flag %q not recognized", key)
		}
	}
	if _, isCustom := unpackResponse("plain"); isCustom {
		t.Error("plain string marked custom")
	}
}
