package agent

import (
	"strings"
	"testing"
)

func TestShouldClarify(t *testing.T) {
	tests := []struct {
		name       string
		prompt     string
		wantAsk    bool
		wantReason string
	}{
		{
			name:       "empty prompt",
			prompt:     "",
			wantAsk:    true,
			wantReason: ReasonEmpty,
		},
		{
			name:       "whitespace only",
			prompt:     "   \n\t  ",
			wantAsk:    true,
			wantReason: ReasonEmpty,
		},
		{
			name:       "below char minimum",
			prompt:     "shoes",
			wantAsk:    true,
			wantReason: ReasonTooShort,
		},
		{
			name:       "intent without a product",
			prompt:     "write me an advertisement",
			wantAsk:    true,
			wantReason: ReasonMissingProduct,
		},
		{
			name:       "no intent and no product",
			prompt:     "the weather is nice where I live",
			wantAsk:    true,
			wantReason: ReasonNoIntentOrProduct,
		},
		{
			name:       "too few meaningful tokens",
			prompt:     "z y x w v u t s q p o n",
			wantAsk:    true,
			wantReason: ReasonTooFewTokens,
		},
		{
			// Product signal lets a short prompt through even below the
			// token minimum.
			name:    "product below token minimum passes",
			prompt:  "Product: mug",
			wantAsk: false,
		},
		{
			name:    "full request passes",
			prompt:  "Write me a full ad for a stainless steel water bottle with a leak-proof lid",
			wantAsk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShouldClarify(tt.prompt)
			if got.ShouldClarify != tt.wantAsk {
				t.Fatalf("ShouldClarify(%q).ShouldClarify = %v, want %v", tt.prompt, got.ShouldClarify, tt.wantAsk)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", got.Reason, tt.wantReason)
			}
		})
	}
}

func TestClarificationMessage(t *testing.T) {
	missing := ClarificationMessage(ReasonMissingProduct)
	if !strings.Contains(missing, "what product") {
		t.Errorf("missing_product message should ask for a product, got %q", missing)
	}

	generic := ClarificationMessage(ReasonNoIntentOrProduct)
	if !strings.Contains(generic, "Task:") {
		t.Errorf("generic message should show the structured template, got %q", generic)
	}
	if missing == generic {
		t.Error("missing_product should get a dedicated message")
	}
}
