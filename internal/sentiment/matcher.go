package sentiment

import (
	"fmt"

	"github.com/coregx/ahocorasick"
)

// phraseSet answers "does s contain any of these phrases" in one pass.
// Matching is raw substring containment: no word boundaries, so a phrase
// also matches inside a longer word.
type phraseSet struct {
	ac *ahocorasick.Automaton
}

func newPhraseSet(phrases []string) (*phraseSet, error) {
	uniq := make([]string, 0, len(phrases))
	seen := make(map[string]struct{}, len(phrases))
	for _, p := range phrases {
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		uniq = append(uniq, p)
	}
	if len(uniq) == 0 {
		return &phraseSet{}, nil
	}
	ac, err := ahocorasick.NewBuilder().
		AddStrings(uniq).
		SetPrefilter(true).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build phrase automaton: %w", err)
	}
	return &phraseSet{ac: ac}, nil
}

// Contains reports whether s contains at least one phrase of the set.
func (p *phraseSet) Contains(s string) bool {
	if p == nil || p.ac == nil || s == "" {
		return false
	}
	return p.ac.IsMatch([]byte(s))
}

// MatchClauses keeps the clauses that mention at least one keyword, in order.
func MatchClauses(clauses []string, keywords *phraseSet) []string {
	var out []string
	for _, c := range clauses {
		if keywords.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

// joined builds every "<prefix> <phrase>" pair, e.g. "tidak bersih".
func joined(prefixes, phrases []string) []string {
	out := make([]string, 0, len(prefixes)*len(phrases))
	for _, pre := range prefixes {
		for _, ph := range phrases {
			out = append(out, pre+" "+ph)
		}
	}
	return out
}
