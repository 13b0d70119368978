package sentiment

// Rule names the step of the scoring chain that decided a clause.
type Rule string

const (
	RuleHardNegated Rule = "hard_negated_positive"
	RuleSoftNegated Rule = "soft_negated_positive"
	RuleNeutral     Rule = "neutral_marker"
	RuleConflict    Rule = "conflicting_polarity"
	RuleNegative    Rule = "negative"
	RulePositive    Rule = "positive"
	RuleNone        Rule = "no_sentiment"
)

// Verdict is the polarity contribution of one clause.
type Verdict struct {
	Polarity int
	Rule     Rule
}

// scorer holds the compiled phrase sets for the rule chain.
type scorer struct {
	hardNegated *phraseSet // "<hard_negation> <positive>"
	softNegated *phraseSet // "<soft_negation> <positive>"
	neutral     *phraseSet
	positive    *phraseSet
	negative    *phraseSet
}

func newScorer(s SentimentLexicon) (*scorer, error) {
	var (
		sc  scorer
		err error
	)
	if sc.hardNegated, err = newPhraseSet(joined(s.HardNegation, s.Positive)); err != nil {
		return nil, err
	}
	if sc.softNegated, err = newPhraseSet(joined(s.SoftNegation, s.Positive)); err != nil {
		return nil, err
	}
	if sc.neutral, err = newPhraseSet(s.Neutral); err != nil {
		return nil, err
	}
	if sc.positive, err = newPhraseSet(s.Positive); err != nil {
		return nil, err
	}
	if sc.negative, err = newPhraseSet(s.Negative); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Score runs the ordered rule chain; the first rule that applies wins.
// The fallback step rescans the whole clause, including words the negation
// rules looked at.
func (s *scorer) Score(clause string) Verdict {
	switch {
	case s.hardNegated.Contains(clause):
		return Verdict{Polarity: -1, Rule: RuleHardNegated}
	case s.softNegated.Contains(clause):
		return Verdict{Polarity: 0, Rule: RuleSoftNegated}
	case s.neutral.Contains(clause):
		return Verdict{Polarity: 0, Rule: RuleNeutral}
	}

	hasPos := s.positive.Contains(clause)
	hasNeg := s.negative.Contains(clause)
	switch {
	case hasPos && hasNeg:
		return Verdict{Polarity: 0, Rule: RuleConflict}
	case hasNeg:
		return Verdict{Polarity: -1, Rule: RuleNegative}
	case hasPos:
		return Verdict{Polarity: 1, Rule: RulePositive}
	default:
		return Verdict{Polarity: 0, Rule: RuleNone}
	}
}
