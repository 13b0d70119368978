package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_sentiment/internal/domain"
)

func TestScore_RuleChain(t *testing.T) {
	sc, err := newScorer(DefaultLexicon().Sentiment)
	require.NoError(t, err)

	tests := []struct {
		clause string
		want   Verdict
	}{
		{"kamar tidak bersih", Verdict{-1, RuleHardNegated}},
		{"pelayanan kurang ramah", Verdict{0, RuleSoftNegated}},
		{"sarapan biasa", Verdict{0, RuleNeutral}},
		{"kamar bersih tapi bau", Verdict{0, RuleConflict}},
		{"stafnya jutek", Verdict{-1, RuleNegative}},
		{"kamar bersih", Verdict{1, RulePositive}},
		{"kamar di lantai tiga", Verdict{0, RuleNone}},
		// hard negation is checked before neutral markers
		{"kamar tidak bersih sama sekali saja", Verdict{-1, RuleHardNegated}},
		// soft negation before neutral
		{"kurang bersih agak", Verdict{0, RuleSoftNegated}},
		// negation needs adjacency: an intervening word falls through to the unscoped scan
		{"tidak terlalu bersih", Verdict{1, RulePositive}},
		// "tidak ramah" is in both the negated pattern and the negative list
		{"petugas tidak ramah", Verdict{-1, RuleHardNegated}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sc.Score(tt.clause), "clause %q", tt.clause)
	}
}

func TestScore_SubstringFalsePositiveIsKept(t *testing.T) {
	sc, err := newScorer(DefaultLexicon().Sentiment)
	require.NoError(t, err)
	// "lama" hides inside "selama"
	assert.Equal(t, Verdict{-1, RuleNegative}, sc.Score("selama menginap"))
}

func TestScore_EmptyNegationSets(t *testing.T) {
	s := SentimentLexicon{Positive: []string{"bagus"}, Negative: []string{"buruk"}}
	sc, err := newScorer(s)
	require.NoError(t, err)
	assert.Equal(t, Verdict{1, RulePositive}, sc.Score("tidak bagus"))
	assert.Equal(t, Verdict{0, RuleNone}, sc.Score("biasa"))
}

func TestDiscretize(t *testing.T) {
	assert.Equal(t, domain.RatingPositive, Discretize(3))
	assert.Equal(t, domain.RatingPositive, Discretize(1))
	assert.Equal(t, domain.RatingNeutral, Discretize(0))
	assert.Equal(t, domain.RatingNegative, Discretize(-1))
	assert.Equal(t, domain.RatingNegative, Discretize(-7))
}

func TestAggregate(t *testing.T) {
	_, _, ok := aggregate(nil)
	assert.False(t, ok)

	r, total, ok := aggregate([]Verdict{{1, RulePositive}, {-1, RuleNegative}, {0, RuleNeutral}})
	assert.True(t, ok)
	assert.Equal(t, 0, total)
	assert.Equal(t, domain.RatingNeutral, r)
}

func TestMatchClauses(t *testing.T) {
	kw, err := newPhraseSet([]string{"kamar", "ac", "kamar"})
	require.NoError(t, err)
	got := MatchClauses([]string{"kamar luas", "staf ramah", "bacaan di lobi", "wifi"}, kw)
	// "ac" matches inside "bacaan"
	assert.Equal(t, []string{"kamar luas", "bacaan di lobi"}, got)

	empty, err := newPhraseSet(nil)
	require.NoError(t, err)
	assert.Empty(t, MatchClauses([]string{"kamar"}, empty))
}

func TestPhraseSet_Contains(t *testing.T) {
	ps, err := newPhraseSet([]string{"kamar mandi", "ac", "ac"})
	require.NoError(t, err)
	assert.True(t, ps.Contains("kamar mandi bersih"))
	assert.True(t, ps.Contains("tracking")) // raw substring
	assert.False(t, ps.Contains("kamar tidur"))
	assert.False(t, ps.Contains(""))

	empty, err := newPhraseSet(nil)
	require.NoError(t, err)
	assert.False(t, empty.Contains("kamar"))
	var nilSet *phraseSet
	assert.False(t, nilSet.Contains("kamar"))
}
