package sentiment

import (
	"regexp"
	"strings"
)

// clauseDelims: sentence terminators, the comma, and the space-bounded
// connectors "tapi", "namun" and "dan".
var clauseDelims = regexp.MustCompile(`[.!?]| tapi | namun | dan |,`)

// Segment splits already-lowercased review text into trimmed, non-empty
// clauses in left-to-right order.
func Segment(text string) []string {
	parts := clauseDelims.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if c := strings.TrimSpace(p); c != "" {
			out = append(out, c)
		}
	}
	return out
}
