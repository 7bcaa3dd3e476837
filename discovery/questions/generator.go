package questions

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"retailserver/discovery"
)

// Generator генератор анкет второго слоя. Держит обучаемое состояние
// сессии: таблицу пользовательских классификаций с частотами и таблицу
// наблюдаемых пар тип/подтип. Состояние живёт между вызовами и смещает
// последующие подсказки; внешнего хранения нет, экспорт и импорт -
// явные вызовы (learning.go).
type Generator struct {
	customClassifications  map[string]int
	classificationPatterns map[string]map[string]struct{}
}

// NewGenerator создает генератор с пустым обучаемым состоянием.
func NewGenerator() *Generator {
	return &Generator{
		customClassifications:  make(map[string]int),
		classificationPatterns: make(map[string]map[string]struct{}),
	}
}

// GenerateQuestions собирает анкету по утверждённому паттерну.
// Единственная ошибка - отсутствие паттерна: это структурный параметр,
// обязательный для вызова.
func (g *Generator) GenerateQuestions(pattern *discovery.RankedPattern, combinations []Combination) (*QuestionSet, error) {
	if pattern == nil {
		return nil, fmt.Errorf("pattern is required")
	}

	patternID := "pattern-" + pattern.Word + "-" + uuid.New().String()[:8]
	patternType := DetectPatternType(pattern)

	set := &QuestionSet{
		PatternID:   patternID,
		PatternWord: pattern.Word,
		PatternType: patternType,
		Questions:   make([]Question, 0, 6),
	}

	// 1. Классификация: подсказки по типу, выученные пользовательские
	// классификации с частотой >= 2 и всегда - свободный ввод.
	set.Questions = append(set.Questions, g.classificationQuestion(patternID, pattern, patternType))

	// 2. Уточняющие вопросы, зависящие от типа.
	set.Questions = append(set.Questions, typeQuestions(patternID, pattern, patternType)...)

	// 3. Комбинации: только при непустом списке.
	if len(combinations) > 0 {
		set.Questions = append(set.Questions, combinationQuestion(patternID, combinations))
	}

	// 4. Стратегия расширения: всегда.
	set.Questions = append(set.Questions, expansionQuestion(patternID))

	// 5. Обучение: только если есть многократно использованная
	// классификация.
	similar := g.FindSimilarClassifications(pattern.Word)
	if len(similar) > 0 {
		set.Questions = append(set.Questions, learningQuestion(patternID, similar[0]))
	}

	set.Metadata = map[string]interface{}{
		"generated_at":            time.Now().Format(time.RFC3339),
		"detected_type":           string(patternType),
		"combination_count":       len(combinations),
		"learned_classifications": len(g.customClassifications),
		"confidence":              pattern.Confidence,
	}
	return set, nil
}

// classificationQuestion строит вопрос классификации с подсказками.
func (g *Generator) classificationQuestion(patternID string, pattern *discovery.RankedPattern, patternType PatternType) Question {
	options := suggestedClassifications(patternType)

	// Выученные пользовательские классификации, использованные >= 2 раз.
	for classification, count := range g.customClassifications {
		if count >= learnedMinUses {
			options = append(options, Option{
				Value:    classification,
				Label:    classification,
				IsCustom: true,
			})
		}
	}

	options = append(options, Option{Value: "custom", Label: "Другая классификация (свой вариант)", IsCustom: true})

	return Question{
		ID:          patternID + "_classification",
		Kind:        KindMultipleChoice,
		Text:        fmt.Sprintf("Как классифицировать «%s»?", pattern.Word),
		Options:     options,
		AllowCustom: true,
	}
}

// suggestedClassifications подсказки классификации по типу с весами.
func suggestedClassifications(patternType PatternType) []Option {
	switch patternType {
	case TypeMaterial:
		return []Option{
			{Value: "material", Label: "Материал", Confidence: 0.9},
			{Value: "fabric_blend", Label: "Состав ткани", Confidence: 0.6},
			{Value: "finish", Label: "Обработка", Confidence: 0.4},
		}
	case TypeColor:
		return []Option{
			{Value: "color", Label: "Цвет", Confidence: 0.9},
			{Value: "colorway", Label: "Расцветка", Confidence: 0.5},
		}
	case TypeSize:
		return []Option{
			{Value: "size", Label: "Размер", Confidence: 0.9},
			{Value: "fit", Label: "Посадка", Confidence: 0.5},
		}
	case TypeProduct:
		return []Option{
			{Value: "product_type", Label: "Тип товара", Confidence: 0.9},
			{Value: "category", Label: "Категория", Confidence: 0.6},
		}
	case TypeFeature:
		return []Option{
			{Value: "feature", Label: "Характеристика", Confidence: 0.8},
			{Value: "attribute", Label: "Атрибут", Confidence: 0.5},
		}
	case TypeBrand:
		return []Option{
			{Value: "brand", Label: "Бренд", Confidence: 0.8},
			{Value: "collection", Label: "Коллекция", Confidence: 0.5},
		}
	case TypeStyle:
		return []Option{
			{Value: "style", Label: "Стиль", Confidence: 0.7},
		}
	default:
		return []Option{
			{Value: "descriptor", Label: "Описательный признак", Confidence: 0.4},
		}
	}
}

// typeQuestions уточняющие вопросы для каждого типа паттерна.
func typeQuestions(patternID string, pattern *discovery.RankedPattern, patternType PatternType) []Question {
	word := pattern.Word
	switch patternType {
	case TypeMaterial:
		return []Question{
			{
				ID:   patternID + "_hierarchy",
				Kind: KindMultipleChoice,
				Text: fmt.Sprintf("Группировать товары по материалу «%s»?", word),
				Options: []Option{
					{Value: "group", Label: "Да, отдельная группа"},
					{Value: "subgroup", Label: "Да, подгруппа внутри категории"},
					{Value: "none", Label: "Нет, только фильтр"},
				},
			},
			{
				ID:   patternID + "_properties",
				Kind: KindMultiSelect,
				Text: fmt.Sprintf("Какие свойства относятся к «%s»?", word),
				Options: []Option{
					{Value: "durable", Label: "Износостойкий"},
					{Value: "breathable", Label: "Дышащий"},
					{Value: "waterproof", Label: "Водостойкий"},
					{Value: "stretch", Label: "Эластичный"},
					{Value: "organic", Label: "Органический"},
					{Value: "recycled", Label: "Переработанный"},
				},
				AllowCustom: true,
			},
		}
	case TypeProduct:
		return []Question{
			{
				ID:   patternID + "_hierarchy",
				Kind: KindMultipleChoice,
				Text: fmt.Sprintf("Куда в иерархии каталога отнести «%s»?", word),
				Options: []Option{
					{Value: "top_level", Label: "Категория верхнего уровня"},
					{Value: "subcategory", Label: "Подкатегория"},
					{Value: "variant", Label: "Вариант существующего товара"},
				},
			},
			{
				ID:   patternID + "_parent_category",
				Kind: KindMultipleChoice,
				Text: fmt.Sprintf("Родительская категория для «%s»?", word),
				Options: []Option{
					{Value: "tops", Label: "Верх"},
					{Value: "bottoms", Label: "Низ"},
					{Value: "outerwear", Label: "Верхняя одежда"},
					{Value: "footwear", Label: "Обувь"},
					{Value: "accessories", Label: "Аксессуары"},
					{Value: "other", Label: "Другое"},
				},
				AllowCustom: true,
			},
			{
				ID:   patternID + "_gender",
				Kind: KindMultipleChoice,
				Text: fmt.Sprintf("Для кого предназначен «%s»?", word),
				Options: []Option{
					{Value: "mens", Label: "Мужское"},
					{Value: "womens", Label: "Женское"},
					{Value: "unisex", Label: "Унисекс"},
					{Value: "kids", Label: "Детское"},
				},
			},
		}
	case TypeColor:
		return []Question{
			{
				ID:   patternID + "_color_family",
				Kind: KindMultipleChoice,
				Text: fmt.Sprintf("К какой цветовой семье относится «%s»?", word),
				Options: []Option{
					{Value: "neutral", Label: "Нейтральные"},
					{Value: "warm", Label: "Тёплые"},
					{Value: "cool", Label: "Холодные"},
					{Value: "bright", Label: "Яркие"},
					{Value: "dark", Label: "Тёмные"},
				},
			},
			{
				ID:   patternID + "_color_variants",
				Kind: KindText,
				Text: fmt.Sprintf("Какие написания цвета должны сопоставляться с «%s»? (через запятую)", word),
			},
		}
	case TypeSize:
		return []Question{
			{
				ID:   patternID + "_size_scale",
				Kind: KindMultipleChoice,
				Text: fmt.Sprintf("К какой шкале относится размер «%s»?", word),
				Options: []Option{
					{Value: "letter", Label: "Буквенная (XS-XXL)"},
					{Value: "numeric", Label: "Числовая"},
					{Value: "pant", Label: "Брючная (талия x длина)"},
					{Value: "one_size", Label: "Безразмерная"},
				},
			},
		}
	case TypeFeature:
		return []Question{
			{
				ID:   patternID + "_feature_type",
				Kind: KindMultipleChoice,
				Text: fmt.Sprintf("К какому виду характеристик относится «%s»?", word),
				Options: []Option{
					{Value: "performance", Label: "Функциональная"},
					{Value: "construction", Label: "Конструктивная"},
					{Value: "care", Label: "Уход"},
					{Value: "sustainability", Label: "Экологичность"},
				},
			},
			{
				ID:   patternID + "_applicable_products",
				Kind: KindMultiSelect,
				Text: fmt.Sprintf("К каким типам товаров применима характеристика «%s»?", word),
				Options: []Option{
					{Value: "tops", Label: "Верх"},
					{Value: "bottoms", Label: "Низ"},
					{Value: "outerwear", Label: "Верхняя одежда"},
					{Value: "footwear", Label: "Обувь"},
					{Value: "accessories", Label: "Аксессуары"},
				},
			},
		}
	case TypeBrand:
		return []Question{
			{
				ID:   patternID + "_brand_role",
				Kind: KindMultipleChoice,
				Text: fmt.Sprintf("«%s» - это бренд или коллекция?", word),
				Options: []Option{
					{Value: "brand", Label: "Бренд"},
					{Value: "collection", Label: "Коллекция/линейка"},
					{Value: "collab", Label: "Коллаборация"},
				},
			},
		}
	case TypeStyle:
		return []Question{
			{
				ID:   patternID + "_style_grouping",
				Kind: KindMultipleChoice,
				Text: fmt.Sprintf("Использовать «%s» как фильтр по стилю?", word),
				Options: []Option{
					{Value: "filter", Label: "Да, фильтр"},
					{Value: "tag", Label: "Да, как тег"},
					{Value: "ignore", Label: "Нет"},
				},
			},
		}
	default:
		return nil
	}
}

// combinationQuestion вопрос об отслеживании обнаруженных комбинаций.
func combinationQuestion(patternID string, combinations []Combination) Question {
	options := make([]Option, 0, len(combinations)+2)
	for _, combo := range combinations {
		value := strings.Join(combo.Words, " + ")
		options = append(options, Option{
			Value: value,
			Label: fmt.Sprintf("%s (%d товаров)", value, combo.Count),
		})
	}
	options = append(options,
		Option{Value: "track_all", Label: "Отслеживать все"},
		Option{Value: "track_none", Label: "Не отслеживать"},
	)
	return Question{
		ID:      patternID + "_combinations",
		Kind:    KindCheckboxList,
		Text:    "Какие комбинации отслеживать?",
		Options: options,
	}
}

// expansionQuestion вопрос о стратегии расширения, задаётся всегда.
func expansionQuestion(patternID string) Question {
	return Question{
		ID:   patternID + "_expansion",
		Kind: KindMultiSelect,
		Text: "Какие эвристики расширения запустить дальше?",
		Options: []Option{
			{Value: "synonyms", Label: "Синонимы"},
			{Value: "spelling_variants", Label: "Варианты написания"},
			{Value: "related_terms", Label: "Связанные термины"},
			{Value: "technical_specs", Label: "Технические характеристики"},
			{Value: "descriptive_modifiers", Label: "Описательные модификаторы"},
			{Value: "none", Label: "Ничего"},
		},
	}
}

// learningQuestion предлагает ранее использованную классификацию.
func learningQuestion(patternID string, similar SimilarClassification) Question {
	return Question{
		ID:   patternID + "_learning",
		Kind: KindMultipleChoice,
		Text: fmt.Sprintf("Применить ранее использованную классификацию «%s»?", similar.Classification),
		Options: []Option{
			{Value: "apply", Label: "Да, применить", Confidence: similar.Similarity},
			{Value: "skip", Label: "Нет"},
		},
	}
}
