package ranking

import (
	"math"
	"sort"

	"github.com/lleukocyte/travel-guide/internal/tokenizer"
)

// WeightTable maps stems from one user's favorites to their relevance weight.
// It is built per ranking call and must not be shared between users.
//
// For a stem t seen in freq(t) of N favorites:
//
//	w(t) = ln(N / freq(t))
//
// Stems present in every favorite get w(t) = 0 and are left out of the table.
type WeightTable struct {
	totalFavorites int
	frequency      map[string]int
	weight         map[string]float64
}

// NewWeightTable builds the table from the token sets of each favorite place.
// Each set counts once per favorite, so freq(t) is at most len(favoriteTokens).
func NewWeightTable(favoriteTokens []tokenizer.Set) *WeightTable {
	wt := &WeightTable{
		totalFavorites: len(favoriteTokens),
		frequency:      make(map[string]int),
		weight:         make(map[string]float64),
	}

	for _, tokens := range favoriteTokens {
		for stem := range tokens {
			wt.frequency[stem]++
		}
	}

	for stem, freq := range wt.frequency {
		w := calculateWeight(wt.totalFavorites, freq)
		if w > 0 {
			wt.weight[stem] = w
		}
	}

	return wt
}

// calculateWeight returns ln(total / freq). freq is in [1, total] by construction.
func calculateWeight(total, freq int) float64 {
	if total == 0 || freq == 0 {
		return 0.0
	}
	return math.Log(float64(total) / float64(freq))
}

// Vocabulary returns the number of distinct stems seen across favorites,
// including those with zero weight.
func (wt *WeightTable) Vocabulary() int {
	return len(wt.frequency)
}

// Len returns the number of stems with a positive weight.
func (wt *WeightTable) Len() int {
	return len(wt.weight)
}

// Weight returns w(t), or 0 when t is not in the table.
func (wt *WeightTable) Weight(stem string) float64 {
	return wt.weight[stem]
}

// Frequency returns the number of favorites containing t.
func (wt *WeightTable) Frequency(stem string) int {
	return wt.frequency[stem]
}

// Terms returns the weighted stems in lexicographic order.
func (wt *WeightTable) Terms() []string {
	terms := make([]string, 0, len(wt.weight))
	for stem := range wt.weight {
		terms = append(terms, stem)
	}
	sort.Strings(terms)
	return terms
}

// WeightedTerms lists the weighted stems with their frequency, ordered by stem.
func (wt *WeightTable) WeightedTerms() []WeightedTerm {
	terms := make([]WeightedTerm, 0, wt.Len())
	for _, stem := range wt.Terms() {
		terms = append(terms, WeightedTerm{
			Stem:      stem,
			Frequency: wt.Frequency(stem),
			Weight:    wt.Weight(stem),
		})
	}
	return terms
}

// Score sums freq(t) * w(t) over the stems shared by the candidate and the table.
// The favorites' frequency stands in for the term frequency on the candidate side.
// Stems are visited in sorted order so equal inputs produce identical floats.
func (wt *WeightTable) Score(candidate tokenizer.Set) (float64, []string) {
	score := 0.0
	matched := make([]string, 0)

	for _, stem := range candidate.Sorted() {
		w, ok := wt.weight[stem]
		if !ok {
			continue
		}
		score += float64(wt.frequency[stem]) * w
		matched = append(matched, stem)
	}

	return score, matched
}
