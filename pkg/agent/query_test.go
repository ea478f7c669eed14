package agent

import (
	"strings"
	"testing"
)

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{
			name: "structured prompt uses category and product only",
			prompt: "Product: red ceramic mug, 350ml\n" +
				"Category: Home & Kitchen\n" +
				"Constraints: friendly tone\n" +
				"Task: Write a full high-converting ad.",
			want: "category home kitchen red ceramic mug 350ml",
		},
		{
			name:   "stopwords and short tokens dropped",
			prompt: "write an ad for the best premium water bottle",
			want:   "water bottle",
		},
		{
			name:   "all stopwords falls back to raw prompt",
			prompt: "the and for",
			want:   "the and for",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RewriteQuery(tt.prompt); got != tt.want {
				t.Errorf("RewriteQuery(%q) = %q, want %q", tt.prompt, got, tt.want)
			}
		})
	}
}

func TestRewriteQueryTokenCap(t *testing.T) {
	prompt := "alpha bravo charlie delta echo foxtrot golf hotel india juliett kilo lima mike november"

	got := RewriteQuery(prompt)
	toks := strings.Fields(got)
	if len(toks) != MaxQueryTokens {
		t.Fatalf("query has %d tokens, want %d: %q", len(toks), MaxQueryTokens, got)
	}
	if toks[0] != "alpha" || toks[len(toks)-1] != "lima" {
		t.Errorf("cap should keep the first %d tokens in order, got %q", MaxQueryTokens, got)
	}
}
