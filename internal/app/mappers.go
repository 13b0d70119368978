package app

import (
	"encoding/json"
	"fmt"

	"hotel_sentiment/internal/domain"
)

// encodeAspects renders ratings for the reviews.aspects column.
// Map keys are sorted by encoding/json, so equal ratings give equal bytes.
func encodeAspects(r domain.AspectRatings) ([]byte, error) {
	if r == nil {
		r = domain.AspectRatings{}
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode aspects: %w", err)
	}
	return b, nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
