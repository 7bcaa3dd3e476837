package discovery

// Стоп-слова английского языка, исключаемые из кандидатов. Таблица
// намеренно хранится как данные, а не как поведение: словарь можно
// заменить, не трогая алгоритм извлечения.
var stopWords = map[string]struct{}{}

// stopWordList исходный список; собирается в множество при инициализации.
var stopWordList = []string{
	"a", "an", "and", "are", "as", "at", "be", "been", "but", "by",
	"can", "could", "did", "do", "does", "for", "from", "had", "has",
	"have", "he", "her", "here", "hers", "him", "his", "how", "i", "if",
	"in", "into", "is", "it", "its", "just", "me", "my", "no", "not",
	"of", "on", "or", "our", "ours", "out", "over", "own", "she", "so",
	"some", "such", "than", "that", "the", "their", "theirs", "them",
	"then", "there", "these", "they", "this", "those", "to", "too",
	"under", "until", "up", "us", "very", "was", "we", "were", "what",
	"when", "where", "which", "while", "who", "whom", "why", "will",
	"with", "would", "you", "your", "yours",
	// частый шум в карточках товаров
	"all", "also", "any", "each", "every", "more", "most", "new",
	"one", "other", "per", "via",
}

func init() {
	for _, w := range stopWordList {
		stopWords[w] = struct{}{}
	}
}

// IsStopWord сообщает, входит ли нормализованное слово в стоп-список.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}
