package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_sentiment/internal/adapters/observability"
	"hotel_sentiment/internal/domain"
	"hotel_sentiment/internal/sentiment"
)

type PredictionService struct {
	rater       domain.Rater
	fingerprint string
	cache       domain.Cache
	cacheTTL    time.Duration
}

// NewPredictionService wires a rater to an optional cache (nil disables caching).
// fingerprint identifies the rater's vocabulary and scopes the cache keys.
func NewPredictionService(r domain.Rater, fingerprint string, c domain.Cache, ttl time.Duration) *PredictionService {
	return &PredictionService{rater: r, fingerprint: fingerprint, cache: c, cacheTTL: ttl}
}

// cacheKey is scoped by the lexicon fingerprint so a vocabulary change never
// serves ratings computed with the old one.
func (s *PredictionService) cacheKey(text string) string {
	sum := sha1.Sum([]byte(sentiment.Normalize(text)))
	return fmt.Sprintf("aspects:%s:%s", s.fingerprint, hex.EncodeToString(sum[:]))
}

// PredictAspects rates every aspect the review mentions.
func (s *PredictionService) PredictAspects(ctx context.Context, text string) (domain.AspectRatings, error) {
	var key string
	if s.cache != nil && strings.TrimSpace(text) != "" {
		key = s.cacheKey(text)
		var cached domain.AspectRatings
		if ok, err := s.cache.Get(ctx, key, &cached); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache get failed")
			// an unreadable entry would fail every lookup until it expires
			if err := s.cache.Del(ctx, key); err != nil {
				log.Debug().Err(err).Str("key", key).Msg("cache del failed")
			}
		} else if ok {
			observability.ObservePrediction("ok")
			observability.ObserveRatings(cached)
			return cached, nil
		}
	}

	a, err := s.rater.Explain(text)
	if err != nil {
		observability.ObservePrediction(outcome(err))
		return nil, err
	}
	out := a.Ratings()
	observability.ObservePrediction("ok")
	observability.ObserveRatings(out)
	observability.ObserveClauses(len(a.Clauses))

	if key != "" {
		if err := s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}
	return out, nil
}

// Analyze returns the clause-level breakdown. Not cached.
func (s *PredictionService) Analyze(ctx context.Context, text string) (domain.Analysis, error) {
	a, err := s.rater.Explain(text)
	if err != nil {
		observability.ObservePrediction(outcome(err))
		return domain.Analysis{}, err
	}
	observability.ObservePrediction("ok")
	return a, nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingInput):
		return "missing_input"
	case errors.Is(err, domain.ErrMalformedRequest):
		return "malformed"
	default:
		return "internal"
	}
}
