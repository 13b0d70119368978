package domain

import "strconv"

type Review struct {
	ID          int64
	PropertyID  int64
	Text        *string
	AspectsJSON []byte // {"Fasilitas":5.0,...}; nil until rated
}

// Rating is one of the three discrete aspect levels.
type Rating float64

const (
	RatingNegative Rating = 1.0
	RatingNeutral  Rating = 3.0
	RatingPositive Rating = 5.0
)

// MarshalJSON keeps the decimal point so clients see 5.0, not 5.
func (r Rating) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(r), 'f', 1, 64)), nil
}

// AspectRatings maps aspect name to rating. Aspects that were never
// mentioned are absent.
type AspectRatings map[string]Rating

// Analysis is the explain view of a single review.
type Analysis struct {
	Text    string           `json:"text"`
	Clauses []string         `json:"clauses"`
	Aspects []AspectAnalysis `json:"aspects"`
}

type AspectAnalysis struct {
	Aspect  string          `json:"aspect"`
	Score   int             `json:"score"`
	Rating  Rating          `json:"rating"`
	Clauses []ClauseVerdict `json:"clauses"`
}

type ClauseVerdict struct {
	Clause   string `json:"clause"`
	Polarity int    `json:"polarity"`
	Rule     string `json:"rule"`
}

// Ratings flattens the analysis into the public rating map.
func (a Analysis) Ratings() AspectRatings {
	out := make(AspectRatings, len(a.Aspects))
	for _, as := range a.Aspects {
		out[as.Aspect] = as.Rating
	}
	return out
}
