package agent

import (
	"sort"
	"strings"
)

const (
	// MaxContextLines caps the condensed context passed to the generator.
	MaxContextLines = 10

	// rawContextFallbackChars bounds the degenerate fallback when the
	// retrieved block carries no "- " candidate lines.
	rawContextFallbackChars = 1200
)

// CondenseContext ranks the retrieved reference lines against the request and
// returns at most maxLines deduplicated lines, highest relevance first.
// Candidate lines are the "- "-prefixed ones; category headers and other
// noise are dropped. The sort is stable so that equal-score lines keep their
// original order and the output is deterministic for identical inputs.
func CondenseContext(prompt, ctx string, maxLines int) string {
	if ctx == "" {
		return ""
	}
	if maxLines <= 0 {
		maxLines = MaxContextLines
	}

	var lines []string
	for _, ln := range strings.Split(ctx, "\n") {
		ln = strings.TrimSpace(ln)
		if strings.HasPrefix(ln, "- ") {
			if s := strings.TrimSpace(ln[2:]); s != "" {
				lines = append(lines, s)
			}
		}
	}

	if len(lines) == 0 {
		if len(ctx) > rawContextFallbackChars {
			return ctx[:rawContextFallbackChars]
		}
		return ctx
	}

	queryToks := make(map[string]struct{})
	for _, tok := range significantTokens(strings.ToLower(prompt), 3) {
		queryToks[tok] = struct{}{}
	}

	score := func(s string) int {
		t := strings.ToLower(s)
		n := 0
		for tok := range queryToks {
			if strings.Contains(t, tok) {
				n++
			}
		}
		return n
	}

	scores := make([]int, len(lines))
	for i, s := range lines {
		scores[i] = score(s)
	}

	order := make([]int, len(lines))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	seen := make(map[string]struct{})
	var ranked []string
	for _, i := range order {
		key := strings.ToLower(strings.TrimSpace(lines[i]))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		ranked = append(ranked, lines[i])
		if len(ranked) >= maxLines {
			break
		}
	}

	var b strings.Builder
	for i, s := range ranked {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(s)
	}
	return b.String()
}
