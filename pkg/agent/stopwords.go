package agent

import "regexp"

// stopwords are generic/instructional tokens that would otherwise dominate
// lexical retrieval and term mining.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "for": {}, "to": {},
	"of": {}, "in": {}, "on": {}, "with": {}, "without": {}, "by": {},
	"include": {}, "includes": {}, "including": {}, "style": {}, "amazon": {},
	"ad": {}, "write": {}, "bullet": {}, "bullets": {}, "cta": {},
	"benefits": {}, "your": {}, "now": {}, "next": {}, "new": {},
	"please": {}, "make": {}, "create": {}, "this": {}, "that": {},
	"these": {}, "those": {}, "from": {}, "into": {}, "over": {},
	"under": {}, "best": {}, "top": {}, "high": {}, "quality": {},
	"premium": {}, "great": {},
}

var (
	alnumRe = regexp.MustCompile(`[a-z0-9]+`)
	wordRe  = regexp.MustCompile(`[a-zA-Z][a-zA-Z\-]{2,}`)
)

func isStopword(tok string) bool {
	_, ok := stopwords[tok]
	return ok
}

// significantTokens returns the lowercase alphanumeric tokens of text with
// length >= minLen, stopwords removed.
func significantTokens(text string, minLen int) []string {
	var out []string
	for _, tok := range alnumRe.FindAllString(text, -1) {
		if len(tok) >= minLen && !isStopword(tok) {
			out = append(out, tok)
		}
	}
	return out
}
