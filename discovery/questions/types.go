package questions

import "time"

// Типы структурированной анкеты второго слоя. Все структуры
// сериализуются в JSON как есть и пригодны для прямого рендеринга.

// Вид вопроса.
const (
	KindMultipleChoice = "multiple_choice"
	KindMultiSelect    = "multi_select"
	KindText           = "text"
	KindCheckboxList   = "checkbox_list"
)

// Option вариант ответа на вопрос.
type Option struct {
	Value      string  `json:"value"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence,omitempty"`
	IsCustom   bool    `json:"is_custom,omitempty"`
}

// Question один вопрос анкеты.
type Question struct {
	ID          string   `json:"id"`
	Kind        string   `json:"kind"`
	Text        string   `json:"text"`
	Options     []Option `json:"options,omitempty"`
	AllowCustom bool     `json:"allow_custom,omitempty"`
}

// QuestionSet анкета по одному утверждённому паттерну.
type QuestionSet struct {
	PatternID   string                 `json:"pattern_id"`
	PatternWord string                 `json:"pattern_word"`
	PatternType PatternType            `json:"pattern_type"`
	Questions   []Question             `json:"questions"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// Combination обнаруженная комбинация слов, предлагаемая к отслеживанию.
type Combination struct {
	Words []string `json:"words"`
	Count int      `json:"count"`
}

// SimilarClassification ранее использованная классификация, предлагаемая
// как похожая. Поле Similarity фиксировано значением 0.8: настоящая
// текстовая метрика не вычисляется, предлагается последняя многократно
// использованная классификация.
type SimilarClassification struct {
	Classification string  `json:"classification"`
	Count          int     `json:"count"`
	Similarity     float64 `json:"similarity"`
}

// ResponseResult результат обработки ответов на анкету.
type ResponseResult struct {
	PatternID      string    `json:"pattern_id"`
	Classification string    `json:"classification,omitempty"`
	IsCustom       bool      `json:"is_custom,omitempty"`
	Hierarchy      string    `json:"hierarchy,omitempty"`
	Properties     []string  `json:"properties,omitempty"`
	Expansion      []string  `json:"expansion,omitempty"`
	Combinations   []string  `json:"combinations,omitempty"`
	ProcessedAt    time.Time `json:"processed_at"`
}
