package tokenizer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/kljensen/snowball"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// DefaultMinWordLength is the shortest letter run kept as a word.
// Shorter runs are mostly prepositions and particles.
const DefaultMinWordLength = 3

// Tokenizer turns free text into a set of normalized word stems.
type Tokenizer interface {
	Tokenize(text string) Set
}

// Set is an unordered, deduplicated collection of stems.
type Set map[string]struct{}

// NewSet builds a Set from the given stems.
func NewSet(stems ...string) Set {
	s := make(Set, len(stems))
	for _, stem := range stems {
		s[stem] = struct{}{}
	}
	return s
}

// Has reports whether the stem is in the set.
func (s Set) Has(stem string) bool {
	_, ok := s[stem]
	return ok
}

// Len returns the number of distinct stems.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the stems in lexicographic order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for stem := range s {
		out = append(out, stem)
	}
	sort.Strings(out)
	return out
}

// Russian tokenizes mixed Cyrillic/Latin text with the Russian stopword list
// and the Snowball Russian stemmer. It holds no mutable state and is safe for
// concurrent use.
type Russian struct {
	minWordLength int
	wordRegex     *regexp.Regexp
	stopwords     map[string]struct{}
}

// Option configures a Russian tokenizer.
type Option func(*Russian)

// WithMinWordLength overrides the minimum word length (in letters).
func WithMinWordLength(n int) Option {
	return func(r *Russian) {
		if n > 0 {
			r.minWordLength = n
		}
	}
}

// WithExtraStopwords adds words to the built-in stopword list.
// Words are lower-cased the same way Tokenize lower-cases text.
func WithExtraStopwords(words ...string) Option {
	return func(r *Russian) {
		for _, w := range words {
			r.stopwords[lower(w)] = struct{}{}
		}
	}
}

// NewRussian creates the Russian tokenizer.
func NewRussian(opts ...Option) *Russian {
	r := &Russian{
		minWordLength: DefaultMinWordLength,
		stopwords:     make(map[string]struct{}, len(russianStopwords)),
	}
	for _, w := range russianStopwords {
		r.stopwords[w] = struct{}{}
	}
	for _, opt := range opts {
		opt(r)
	}
	r.wordRegex = regexp.MustCompile(fmt.Sprintf(`[а-яёa-z]{%d,}`, r.minWordLength))
	return r
}

// MinWordLength returns the configured minimum word length.
func (r *Russian) MinWordLength() int {
	return r.minWordLength
}

// Tokenize lower-cases the text, extracts letter runs, drops stopwords and
// stems what is left.
func (r *Russian) Tokenize(text string) Set {
	// 1. Normalize and lowercase
	lowerText := lower(text)

	// 2. Extract letter runs; digits and punctuation act as separators
	words := r.wordRegex.FindAllString(lowerText, -1)

	stems := make(Set, len(words))
	for _, word := range words {
		// 3. Stopwords
		if r.IsStopword(word) {
			continue
		}
		// 4. Stem
		stems[stem(word)] = struct{}{}
	}
	return stems
}

// IsStopword reports whether the lower-cased word is on the stopword list.
func (r *Russian) IsStopword(word string) bool {
	_, ok := r.stopwords[word]
	return ok
}

// lower applies NFC normalization and Russian lower-casing.
// Casers are stateful, so one per call.
func lower(text string) string {
	return cases.Lower(language.Russian).String(norm.NFC.String(text))
}

// stem folds ё into е; the Snowball Russian stemmer does not treat ё as a vowel.
func stem(word string) string {
	word = strings.ReplaceAll(word, "ё", "е")
	stemmed, err := snowball.Stem(word, "russian", true)
	if err != nil || stemmed == "" {
		return word
	}
	return stemmed
}
