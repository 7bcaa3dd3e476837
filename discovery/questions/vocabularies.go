package questions

// Фиксированные словари для определения типа паттерна. Таблицы хранятся
// как данные: замена словаря не требует изменений в алгоритме детекции.

// PatternType тип паттерна, определяемый по словарям.
type PatternType string

const (
	TypeMaterial PatternType = "material"
	TypeColor    PatternType = "color"
	TypeSize     PatternType = "size"
	TypeProduct  PatternType = "product"
	TypeFeature  PatternType = "feature"
	TypeBrand    PatternType = "brand"
	TypeStyle    PatternType = "style"
	TypeGeneral  PatternType = "general"
)

// MaterialWords словарь материалов.
var MaterialWords = newVocabulary(
	"cotton", "canvas", "leather", "wool", "denim", "silk", "linen",
	"polyester", "nylon", "suede", "fleece", "cashmere", "corduroy",
	"twill", "jersey", "mesh", "down", "rubber", "flannel", "spandex",
	"velvet", "satin", "chambray", "hemp", "merino", "chino",
)

// ColorWords словарь цветов.
var ColorWords = newVocabulary(
	"black", "white", "navy", "blue", "red", "green", "olive", "grey",
	"gray", "charcoal", "brown", "tan", "khaki", "beige", "cream",
	"pink", "purple", "orange", "yellow", "burgundy", "maroon", "teal",
	"indigo", "natural", "ivory", "rust", "sage", "mustard",
)

// SizeWords словарь размеров.
var SizeWords = newVocabulary(
	"xxs", "xs", "s", "m", "l", "xl", "xxl", "small", "medium", "large",
	"petite", "tall", "regular", "slim", "wide", "narrow", "long",
	"short", "plus",
)

// ProductWords словарь типов товара.
var ProductWords = newVocabulary(
	"jacket", "shirt", "tee", "t-shirt", "hoodie", "sweater",
	"sweatshirt", "pant", "pants", "jean", "jeans", "shorts", "dress",
	"skirt", "vest", "coat", "parka", "blazer", "sock", "socks", "hat",
	"cap", "beanie", "scarf", "glove", "gloves", "belt", "bag", "tote",
	"backpack", "wallet", "boot", "boots", "shoe", "shoes", "sneaker",
	"sandal", "cardigan", "overalls", "jumpsuit",
)

// FeatureWords словарь характеристик.
var FeatureWords = newVocabulary(
	"waterproof", "windproof", "breathable", "insulated", "lined",
	"stretch", "organic", "recycled", "sustainable", "lightweight",
	"packable", "quilted", "ribbed", "fitted", "relaxed", "oversized",
	"cropped", "distressed", "washed", "raw", "selvedge", "reversible",
	"hooded", "pocketed", "adjustable",
)

// StyleWords словарь стилей.
var StyleWords = newVocabulary(
	"casual", "classic", "vintage", "modern", "minimalist", "athletic",
	"formal", "rugged", "preppy", "bohemian", "retro", "streetwear",
	"workwear", "heritage", "utility",
)

func newVocabulary(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// contains проверяет вхождение слова в словарь.
func contains(vocabulary map[string]struct{}, word string) bool {
	_, ok := vocabulary[word]
	return ok
}
