package discovery

import "strings"

// Семантические варианты слова: эвристические альтернативные написания,
// вычисляются один раз на слово за проход. Правила фиксированные:
// переключение конечной "s", британские/американские написания,
// отбрасывание приставки "un" и частых суффиксов, плюс стем Snowball,
// когда он отличается от исходного слова.

// spellingPairs пары британское/американское написание.
var spellingPairs = [][2]string{
	{"colour", "color"},
	{"grey", "gray"},
}

// strippableSuffixes суффиксы, отбрасываемые при выводе вариантов.
var strippableSuffixes = []string{"ing", "ed", "er", "ly"}

// SemanticVariants возвращает множество альтернативных написаний слова.
// Само слово в результат не входит.
func SemanticVariants(word string, stemmer *EnglishStemmer) []string {
	if word == "" {
		return nil
	}
	seen := make(map[string]struct{})
	add := func(v string) {
		if v != "" && v != word && len(v) >= minWordLen {
			seen[v] = struct{}{}
		}
	}

	// Переключение конечной "s": jackets <-> jacket.
	if strings.HasSuffix(word, "s") {
		add(strings.TrimSuffix(word, "s"))
	} else {
		add(word + "s")
	}

	// Британские/американские написания в обе стороны.
	for _, pair := range spellingPairs {
		if strings.Contains(word, pair[0]) {
			add(strings.ReplaceAll(word, pair[0], pair[1]))
		}
		if strings.Contains(word, pair[1]) {
			add(strings.ReplaceAll(word, pair[1], pair[0]))
		}
	}

	// Отбрасывание приставки "un": unwashed -> washed.
	if strings.HasPrefix(word, "un") && len(word) > 4 {
		add(strings.TrimPrefix(word, "un"))
	}

	// Отбрасывание частых суффиксов: washed -> wash, quickly -> quick.
	for _, suffix := range strippableSuffixes {
		if strings.HasSuffix(word, suffix) && len(word)-len(suffix) >= 3 {
			add(strings.TrimSuffix(word, suffix))
		}
	}

	// Стем Snowball как дополнительный вариант.
	if stemmer != nil {
		add(stemmer.Stem(word))
	}

	variants := make([]string, 0, len(seen))
	for v := range seen {
		variants = append(variants, v)
	}
	return variants
}
