// Package ranking orders a place catalog for one user from the text of the
// places they favorited, falling back to popularity when there is nothing to
// personalize on.
package ranking

import (
	"sort"

	"github.com/lleukocyte/travel-guide/internal/tokenizer"
	"github.com/lleukocyte/travel-guide/model"
)

// Ranker is stateless apart from its tokenizer and may be shared between goroutines.
type Ranker struct {
	tokenizer tokenizer.Tokenizer
}

// NewRanker creates a ranker using the given tokenizer.
func NewRanker(tok tokenizer.Tokenizer) *Ranker {
	return &Ranker{tokenizer: tok}
}

// Rank orders all places for a user whose favorites are given.
// Favorites never appear in the result; they need not be members of all.
//
// Personalized candidates (score > 0) come first by descending score, ties
// broken by ascending place ID. The rest follow by descending popularity.
// With no favorites, or favorites without any significant words, the whole
// result is ordered by popularity.
func (r *Ranker) Rank(all []model.Place, favorites []model.Place) Result {
	favorites = uniqueByID(favorites)
	excluded := make(map[int64]struct{}, len(favorites))
	for _, f := range favorites {
		excluded[f.ID] = struct{}{}
	}

	candidates := make([]model.Place, 0, len(all))
	for _, p := range all {
		if _, fav := excluded[p.ID]; fav {
			continue
		}
		candidates = append(candidates, p)
	}

	if len(favorites) == 0 {
		return popularityResult(candidates)
	}

	table := r.buildWeightTable(favorites)
	if table.Vocabulary() == 0 {
		return popularityResult(candidates)
	}

	scored := make([]candidate, 0)
	unscored := make([]model.Place, 0)
	for _, p := range candidates {
		score, matched := table.Score(r.tokenizer.Tokenize(p.Text()))
		if score > 0 {
			scored = append(scored, candidate{place: p, score: score, matched: matched})
		} else {
			unscored = append(unscored, p)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].place.ID < scored[j].place.ID
	})
	sortByPopularity(unscored)

	result := Result{
		Places:   make([]model.Place, 0, len(candidates)),
		Scored:   make([]ScoredCandidate, 0, len(scored)),
		Terms:    table.WeightedTerms(),
		Strategy: StrategyPersonalized,
	}
	for _, c := range scored {
		result.Places = append(result.Places, c.place)
		result.Scored = append(result.Scored, ScoredCandidate{
			PlaceID: c.place.ID,
			Score:   c.score,
			Matched: c.matched,
		})
	}
	result.Places = append(result.Places, unscored...)

	return result
}

func (r *Ranker) buildWeightTable(favorites []model.Place) *WeightTable {
	sets := make([]tokenizer.Set, len(favorites))
	for i, f := range favorites {
		sets[i] = r.tokenizer.Tokenize(f.Text())
	}
	return NewWeightTable(sets)
}

func popularityResult(places []model.Place) Result {
	ordered := make([]model.Place, len(places))
	copy(ordered, places)
	sortByPopularity(ordered)
	return Result{
		Places:   ordered,
		Scored:   make([]ScoredCandidate, 0),
		Terms:    make([]WeightedTerm, 0),
		Strategy: StrategyPopularity,
	}
}

// sortByPopularity orders places by descending popularity, keeping input order on ties.
func sortByPopularity(places []model.Place) {
	sort.SliceStable(places, func(i, j int) bool {
		return places[i].Popularity() > places[j].Popularity()
	})
}

func uniqueByID(places []model.Place) []model.Place {
	seen := make(map[int64]struct{}, len(places))
	out := make([]model.Place, 0, len(places))
	for _, p := range places {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
