package sentiment

import "hotel_sentiment/internal/domain"

// Discretize maps a summed aspect score onto the three rating levels.
func Discretize(total int) domain.Rating {
	switch {
	case total > 0:
		return domain.RatingPositive
	case total < 0:
		return domain.RatingNegative
	default:
		return domain.RatingNeutral
	}
}

// aggregate sums clause polarities for one aspect. ok is false when no
// clause mentioned the aspect, in which case it must be left out of the result.
func aggregate(verdicts []Verdict) (rating domain.Rating, total int, ok bool) {
	if len(verdicts) == 0 {
		return 0, 0, false
	}
	for _, v := range verdicts {
		total += v.Polarity
	}
	return Discretize(total), total, true
}
