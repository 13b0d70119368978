// Package sentiment rates the topical aspects of a hotel review with a
// keyword vocabulary and a polarity lexicon.
//
// A review is lowercased, split into clauses, and every clause that mentions
// an aspect keyword contributes -1, 0 or +1 to that aspect. The summed score
// is discretized to 1.0, 3.0 or 5.0. Aspects no clause mentions are omitted.
//
// An Engine is compiled once from a Lexicon and is safe for concurrent use.
package sentiment

import (
	"fmt"
	"strings"

	"hotel_sentiment/internal/domain"
)

type compiledAspect struct {
	name     string
	keywords *phraseSet
}

type Engine struct {
	aspects     []compiledAspect
	scorer      *scorer
	fingerprint string
}

// NewEngine validates lex and compiles its phrase sets.
func NewEngine(lex Lexicon) (*Engine, error) {
	lex = lex.normalized()
	if err := lex.Validate(); err != nil {
		return nil, fmt.Errorf("invalid lexicon: %w", err)
	}
	sc, err := newScorer(lex.Sentiment)
	if err != nil {
		return nil, err
	}
	e := &Engine{scorer: sc, fingerprint: lex.Fingerprint()}
	for _, a := range lex.Aspects {
		kw, err := newPhraseSet(a.Keywords)
		if err != nil {
			return nil, fmt.Errorf("aspect %s: %w", a.Name, err)
		}
		e.aspects = append(e.aspects, compiledAspect{name: a.Name, keywords: kw})
	}
	return e, nil
}

// Fingerprint identifies the vocabulary the engine was built from.
func (e *Engine) Fingerprint() string { return e.fingerprint }

// Aspects lists aspect names in vocabulary order.
func (e *Engine) Aspects() []string {
	out := make([]string, len(e.aspects))
	for i, a := range e.aspects {
		out[i] = a.name
	}
	return out
}

// Normalize is the case folding applied before segmentation.
func Normalize(text string) string { return strings.ToLower(text) }

// Rate returns the rating of every aspect the review mentions.
func (e *Engine) Rate(text string) (domain.AspectRatings, error) {
	a, err := e.Explain(text)
	if err != nil {
		return nil, err
	}
	return a.Ratings(), nil
}

// Explain runs the pipeline and keeps the intermediate clauses and verdicts.
func (e *Engine) Explain(text string) (out domain.Analysis, err error) {
	norm := Normalize(text)
	if strings.TrimSpace(norm) == "" {
		return domain.Analysis{}, domain.ErrMissingInput
	}
	defer func() {
		if r := recover(); r != nil {
			out = domain.Analysis{}
			err = fmt.Errorf("%w: %v", domain.ErrInternal, r)
		}
	}()

	clauses := Segment(norm)
	out = domain.Analysis{Text: norm, Clauses: clauses, Aspects: []domain.AspectAnalysis{}}
	for _, a := range e.aspects {
		matched := MatchClauses(clauses, a.keywords)
		verdicts := make([]Verdict, len(matched))
		cv := make([]domain.ClauseVerdict, len(matched))
		for i, c := range matched {
			verdicts[i] = e.scorer.Score(c)
			cv[i] = domain.ClauseVerdict{Clause: c, Polarity: verdicts[i].Polarity, Rule: string(verdicts[i].Rule)}
		}
		rating, total, ok := aggregate(verdicts)
		if !ok {
			continue
		}
		out.Aspects = append(out.Aspects, domain.AspectAnalysis{
			Aspect:  a.name,
			Score:   total,
			Rating:  rating,
			Clauses: cv,
		})
	}
	return out, nil
}

// ScoreClause exposes the rule chain for a single, already-lowercased clause.
func (e *Engine) ScoreClause(clause string) Verdict { return e.scorer.Score(clause) }
