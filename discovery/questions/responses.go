package questions

import (
	"strings"
	"time"
)

// Обработка ответов на анкету. Ответы сопоставляются с полями результата
// по подстрокам в идентификаторах вопросов; неизвестные виды ответов
// молча игнорируются и в результат не попадают.

// ProcessResponse разбирает карту ответов и обновляет обучаемые таблицы.
// Значение ответа - либо строка, либо объект {"value": ..., "is_custom":
// bool}; ответ с признаком is_custom записывается в таблицы обучения.
func (g *Generator) ProcessResponse(patternID string, responses map[string]interface{}) *ResponseResult {
	result := &ResponseResult{
		PatternID:   patternID,
		ProcessedAt: time.Now(),
	}

	for questionID, raw := range responses {
		value, isCustom := unpackResponse(raw)
		switch {
		case strings.Contains(questionID, "classification"):
			result.Classification = value
			result.IsCustom = isCustom
			if isCustom && value != "" {
				g.LearnCustomClassification(value)
			}
		case strings.Contains(questionID, "hierarchy"):
			result.Hierarchy = value
		case strings.Contains(questionID, "properties"):
			result.Properties = unpackList(raw)
		case strings.Contains(questionID, "expansion"):
			result.Expansion = unpackList(raw)
		case strings.Contains(questionID, "combinations"):
			result.Combinations = unpackList(raw)
		}
		// Прочие виды вопросов в результат не входят.
	}
	return result
}

// unpackResponse извлекает строковое значение и признак пользовательской
// классификации из сырого ответа.
func unpackResponse(raw interface{}) (string, bool) {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v), false
	case map[string]interface{}:
		value := ""
		if s, ok := v["value"].(string); ok {
			value = strings.TrimSpace(s)
		}
		isCustom := false
		for _, key := range []string{"is_custom", "isCustom", "custom"} {
			if flag, ok := v[key].(bool); ok && flag {
				isCustom = true
				break
			}
		}
		return value, isCustom
	default:
		return "", false
	}
}

// unpackList извлекает список строк из сырого ответа.
func unpackList(raw interface{}) []string {
	switch v := raw.(type) {
	case []string:
		return v
	case []interface{}:
		items := make([]string, 0, len(v))
		for _, item := range v {
			if s, _ := unpackResponse(item); s != "" {
				items = append(items, s)
			}
		}
		return items
	case string:
		if v == "" {
			return nil
		}
		parts := strings.Split(v, ",")
		items := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				items = append(items, trimmed)
			}
		}
		return items
	default:
		return nil
	}
}
