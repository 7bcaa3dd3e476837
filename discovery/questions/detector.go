package questions

import (
	"unicode"

	"retailserver/discovery"
)

// Определение типа паттерна: независимые проверки принадлежности к
// фиксированным словарям в жёстком порядке приоритета. Первое совпадение
// выигрывает; при отсутствии совпадений тип general.

// brandMinProducts минимальное проникновение по товарам для бренда.
const brandMinProducts = 5

// DetectPatternType классифицирует слово паттерна в один из типов.
// Порядок приоритета: material -> color -> size -> product -> feature ->
// brand -> style -> general.
func DetectPatternType(pattern *discovery.RankedPattern) PatternType {
	if pattern == nil {
		return TypeGeneral
	}
	word := pattern.Word

	switch {
	case contains(MaterialWords, word):
		return TypeMaterial
	case contains(ColorWords, word):
		return TypeColor
	case contains(SizeWords, word):
		return TypeSize
	case contains(ProductWords, word):
		return TypeProduct
	case contains(FeatureWords, word):
		return TypeFeature
	case looksLikeBrand(pattern):
		return TypeBrand
	case contains(StyleWords, word):
		return TypeStyle
	default:
		return TypeGeneral
	}
}

// looksLikeBrand проверяет эвристику бренда: слово встречается минимум в
// пяти товарах, присутствует в заголовке, имеет хотя бы одно исходное
// написание, и это написание начинается с заглавной буквы.
func looksLikeBrand(pattern *discovery.RankedPattern) bool {
	if pattern.UniqueProducts < brandMinProducts {
		return false
	}
	inTitle := false
	for _, field := range pattern.Fields {
		if field == "title" {
			inTitle = true
			break
		}
	}
	if !inTitle {
		return false
	}
	for _, variation := range pattern.Variations {
		runes := []rune(variation)
		if len(runes) > 0 && unicode.IsUpper(runes[0]) {
			return true
		}
	}
	return false
}
