package agent

import (
	"sort"
	"strings"
)

const (
	// MaxAllowedTerms caps the claim-constraint vocabulary hint.
	MaxAllowedTerms = 12

	// termPoolSize is how many of the most common tokens are considered
	// before the frequency cut, mirroring a Counter.most_common(80) pool.
	termPoolSize = 80

	// minTermFrequency drops one-off tokens from the allowed vocabulary.
	minTermFrequency = 2
)

// ExtractAllowedTerms mines frequent, non-generic terms from the condensed
// context. The result is advisory text embedded in the prompt, never a
// post-generation filter.
func ExtractAllowedTerms(condensedCtx string, maxTerms int) []string {
	if condensedCtx == "" {
		return nil
	}
	if maxTerms <= 0 {
		maxTerms = MaxAllowedTerms
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	var ordered []string

	for i, tok := range wordRe.FindAllString(strings.ToLower(condensedCtx), -1) {
		if isStopword(tok) {
			continue
		}
		if counts[tok] == 0 {
			firstSeen[tok] = i
			ordered = append(ordered, tok)
		}
		counts[tok]++
	}

	// Rank by descending frequency; ties keep first-seen order.
	sort.SliceStable(ordered, func(a, b int) bool {
		if counts[ordered[a]] != counts[ordered[b]] {
			return counts[ordered[a]] > counts[ordered[b]]
		}
		return firstSeen[ordered[a]] < firstSeen[ordered[b]]
	})

	if len(ordered) > termPoolSize {
		ordered = ordered[:termPoolSize]
	}

	var terms []string
	for _, tok := range ordered {
		if counts[tok] < minTermFrequency {
			continue
		}
		terms = append(terms, tok)
		if len(terms) >= maxTerms {
			break
		}
	}
	return terms
}
