package discovery

import (
	"strings"
	"sync"

	"github.com/kljensen/snowball"
)

// EnglishStemmer wraps the Snowball stemmer with a small cache. Catalog
// vocabulary repeats heavily across batches, so the cache hit rate is high.
type EnglishStemmer struct {
	language string
	cache    map[string]string
	mu       sync.RWMutex
}

// NewEnglishStemmer creates a cached English stemmer.
func NewEnglishStemmer() *EnglishStemmer {
	return &EnglishStemmer{
		language: "english",
		cache:    make(map[string]string),
	}
}

// Stem returns the stemmed form of a word.
// Example: "jackets" -> "jacket", "running" -> "run".
func (s *EnglishStemmer) Stem(word string) string {
	normalized := strings.ToLower(strings.TrimSpace(word))
	if normalized == "" {
		return ""
	}

	s.mu.RLock()
	if cached, found := s.cache[normalized]; found {
		s.mu.RUnlock()
		return cached
	}
	s.mu.RUnlock()

	stemmed, err := snowball.Stem(normalized, s.language, true)
	if err != nil {
		// If stemming fails, fall back to the normalized word.
		stemmed = normalized
	}

	s.mu.Lock()
	s.cache[normalized] = stemmed
	s.mu.Unlock()

	return stemmed
}
