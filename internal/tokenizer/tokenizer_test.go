package tokenizer

import (
	"reflect"
	"testing"
)

func TestRussianTokenize_EmptyResults(t *testing.T) {
	tok := NewRussian()

	tests := []struct {
		name  string
		input string
	}{
		{"empty string", ""},
		{"only symbols", "!@#$%^ ... ,,,"},
		{"only numbers", "12345 67890"},
		{"only short words", "ул. д. 5, кв 7"},
		{"only stopwords", "и в на с для когда только"},
		{"stopwords in caps", "КОГДА ТОЛЬКО ДЛЯ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tok.Tokenize(tt.input)
			if got.Len() != 0 {
				t.Errorf("Tokenize(%q) = %v, want empty set", tt.input, got.Sorted())
			}
		})
	}
}

func TestRussianTokenize_SameStem(t *testing.T) {
	tok := NewRussian()

	tests := []struct {
		name string
		a    string
		b    string
	}{
		{"case insensitive", "ПАРК", "парк"},
		{"plural noun", "парки", "парк"},
		{"instrumental plural", "десертами", "десерт"},
		{"punctuation separates", "парк,десерт!", "парк десерт"},
		{"digits separate", "парк24десерт", "парк десерт"},
		{"composed and decomposed yo", "ёлка", "е\u0308лка"},
		{"word starting with yo inflects", "ёлки", "ёлка"},
		{"yo and ye spellings", "ёлка", "елки"},
		{"yo inside a word", "шёлковый", "шёлкового"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tok.Tokenize(tt.a)
			b := tok.Tokenize(tt.b)
			if a.Len() == 0 {
				t.Fatalf("Tokenize(%q) returned an empty set", tt.a)
			}
			if !reflect.DeepEqual(a.Sorted(), b.Sorted()) {
				t.Errorf("Tokenize(%q) = %v, Tokenize(%q) = %v, want equal", tt.a, a.Sorted(), tt.b, b.Sorted())
			}
		})
	}
}

func TestRussianTokenize_Deduplicates(t *testing.T) {
	tok := NewRussian()

	got := tok.Tokenize("парк парки парков ПАРК")
	if got.Len() != 1 {
		t.Errorf("expected a single stem, got %v", got.Sorted())
	}
}

func TestRussianTokenize_LatinWords(t *testing.T) {
	tok := NewRussian()

	got := tok.Tokenize("Coffee & Wine bar")
	for _, want := range []string{"coffee", "wine", "bar"} {
		if !got.Has(want) {
			t.Errorf("expected %q in %v", want, got.Sorted())
		}
	}
}

func TestRussianTokenize_Deterministic(t *testing.T) {
	tok := NewRussian()
	text := "Кафе Ромашка уютное кафе с десертами и свежей выпечкой"

	first := tok.Tokenize(text).Sorted()
	for i := 0; i < 20; i++ {
		if got := tok.Tokenize(text).Sorted(); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: got %v, want %v", i, got, first)
		}
	}
}

func TestRussianTokenize_Options(t *testing.T) {
	t.Run("min word length", func(t *testing.T) {
		tok := NewRussian(WithMinWordLength(5))
		if tok.MinWordLength() != 5 {
			t.Fatalf("MinWordLength() = %d, want 5", tok.MinWordLength())
		}
		if got := tok.Tokenize("парк"); got.Len() != 0 {
			t.Errorf("expected 4-letter word to be dropped, got %v", got.Sorted())
		}
		if got := tok.Tokenize("парки"); got.Len() != 1 {
			t.Errorf("expected 5-letter word to be kept, got %v", got.Sorted())
		}
	})

	t.Run("non-positive min word length is ignored", func(t *testing.T) {
		tok := NewRussian(WithMinWordLength(0))
		if tok.MinWordLength() != DefaultMinWordLength {
			t.Errorf("MinWordLength() = %d, want %d", tok.MinWordLength(), DefaultMinWordLength)
		}
	})

	t.Run("extra stopwords", func(t *testing.T) {
		tok := NewRussian(WithExtraStopwords("город"))
		if !tok.IsStopword("город") {
			t.Fatal("expected extra stopword to be registered")
		}
		if got := tok.Tokenize("город"); got.Len() != 0 {
			t.Errorf("expected extra stopword to be dropped, got %v", got.Sorted())
		}
	})

	t.Run("extra stopwords are lower-cased", func(t *testing.T) {
		tok := NewRussian(WithExtraStopwords("Город", "МУЗЕЙ"))
		if !tok.IsStopword("город") || !tok.IsStopword("музей") {
			t.Fatal("expected capitalised stopwords to be stored lower-cased")
		}
		if got := tok.Tokenize("Город МУЗЕЙ музей"); got.Len() != 0 {
			t.Errorf("expected extra stopwords to be dropped, got %v", got.Sorted())
		}
	})
}

func TestSet(t *testing.T) {
	s := NewSet("b", "a", "c", "a")

	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if !s.Has("a") || s.Has("z") {
		t.Errorf("Has() returned unexpected results for %v", s.Sorted())
	}
	if got, want := s.Sorted(), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Sorted() = %v, want %v", got, want)
	}
	if got := NewSet().Sorted(); got == nil || len(got) != 0 {
		t.Errorf("Sorted() on empty set = %#v, want empty non-nil slice", got)
	}
}
