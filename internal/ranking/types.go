package ranking

import "github.com/lleukocyte/travel-guide/model"

// Strategy names how a ranking result was produced.
type Strategy string

const (
	// StrategyPersonalized means candidates were scored against the user's favorites.
	StrategyPersonalized Strategy = "personalized"
	// StrategyPopularity means the result is ordered by popularity only.
	StrategyPopularity Strategy = "popularity"
)

// ScoredCandidate is a non-favorite place with a positive relevance score.
type ScoredCandidate struct {
	PlaceID int64    `json:"place_id"`
	Score   float64  `json:"score"`
	Matched []string `json:"matched_terms"` // Stems shared with the favorites, sorted
}

// WeightedTerm is a favorite stem that carries a positive weight.
type WeightedTerm struct {
	Stem      string  `json:"stem"`
	Frequency int     `json:"frequency"`
	Weight    float64 `json:"weight"`
}

// Result is the ordered output of a ranking call.
type Result struct {
	Places   []model.Place     `json:"places"`
	Scored   []ScoredCandidate `json:"scored"` // Same order as the head of Places
	Terms    []WeightedTerm    `json:"weighted_terms"`
	Strategy Strategy          `json:"strategy"`
}

// IDs returns the ranked place identifiers.
func (r Result) IDs() []int64 {
	ids := make([]int64, len(r.Places))
	for i, p := range r.Places {
		ids[i] = p.ID
	}
	return ids
}

// candidate is a place being scored during one ranking call
type candidate struct {
	place   model.Place
	score   float64
	matched []string
}
