package agent

import "strings"

// MaxQueryTokens bounds the lexical search query length.
const MaxQueryTokens = 12

// RewriteQuery reduces a raw request into a short lexical search query.
// When the request carries both a Category: and a Product: line the query is
// built from those two values only, which biases retrieval toward the chosen
// category. Falls back to the raw prompt when nothing survives filtering.
func RewriteQuery(prompt string) string {
	var categoryPart, productPart string
	for _, line := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(line, "Category:") {
			categoryPart = strings.TrimSpace(line[len("Category:"):])
		} else if strings.HasPrefix(line, "Product:") {
			productPart = strings.TrimSpace(line[len("Product:"):])
		}
	}

	var text string
	if categoryPart != "" && productPart != "" {
		text = strings.ToLower("category " + categoryPart + " " + productPart)
	} else {
		text = strings.ToLower(prompt)
	}

	toks := significantTokens(text, 3)
	if len(toks) > MaxQueryTokens {
		toks = toks[:MaxQueryTokens]
	}

	q := strings.TrimSpace(strings.Join(toks, " "))
	if q == "" {
		return prompt
	}
	return q
}
