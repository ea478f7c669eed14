package agent

import "strings"

// Thresholds for the free-text clarification gate. Wizard-built prompts skip
// the gate entirely.
const (
	MinPromptChars = 12
	MinTokens      = 3
)

// Clarification reasons, reported in the IntentGuard step.
const (
	ReasonEmpty             = "empty"
	ReasonTooShort          = "too_short"
	ReasonMissingProduct    = "missing_product"
	ReasonTooFewTokens      = "too_few_tokens"
	ReasonNoIntentOrProduct = "no_intent_or_product"
)

// intentHints signal that the user wants copy written; productHints signal
// that a concrete product is named. Both are substring checks.
var intentHints = []string{"write", "generate", "create", "headline", "keywords", "ad", "listing", "product"}

var productHints = []string{
	"bottle", "shoe", "watch", "backpack", "headphones", "laptop", "charger",
	"camera", "mug", "cup", "speaker", "mouse", "keyboard", "skincare",
	"perfume", "dress",
}

// ClarificationDecision is the outcome of the free-text intent gate.
type ClarificationDecision struct {
	ShouldClarify bool
	Reason        string
}

// ShouldClarify decides whether a free-form request carries enough signal to
// proceed. A request with a product signal is allowed through even when it is
// below the token minimum; that branch is exercised by short wizard-like
// prompts in practice.
func ShouldClarify(prompt string) ClarificationDecision {
	p := strings.TrimSpace(prompt)
	if p == "" {
		return ClarificationDecision{ShouldClarify: true, Reason: ReasonEmpty}
	}
	if len(p) < MinPromptChars {
		return ClarificationDecision{ShouldClarify: true, Reason: ReasonTooShort}
	}

	lower := strings.ToLower(p)

	var meaningful int
	for _, tok := range alnumRe.FindAllString(lower, -1) {
		if len(tok) >= 2 {
			meaningful++
		}
	}

	hasIntent := containsAny(lower, intentHints)
	hasProduct := containsAny(lower, productHints) || strings.Contains(lower, "product:")

	if hasIntent && !hasProduct {
		return ClarificationDecision{ShouldClarify: true, Reason: ReasonMissingProduct}
	}
	if meaningful < MinTokens {
		if hasProduct {
			return ClarificationDecision{}
		}
		return ClarificationDecision{ShouldClarify: true, Reason: ReasonTooFewTokens}
	}
	if !hasIntent && !hasProduct {
		return ClarificationDecision{ShouldClarify: true, Reason: ReasonNoIntentOrProduct}
	}

	return ClarificationDecision{}
}

// ClarificationMessage returns the canned follow-up question for a reason.
func ClarificationMessage(reason string) string {
	if reason == ReasonMissingProduct {
		return "Sure — what product should I write the ad copy for?\n\n" +
			"Try:\n" +
			"Product: ...\n" +
			"Category: ...\n" +
			"Constraints: ... (optional)\n" +
			"Task: Full ad / headline only / 5 keywords\n"
	}
	return "Hi! Please describe the product and what you want:\n\n" +
		"Product: ...\n" +
		"Category: ...\n" +
		"Constraints: ... (optional)\n" +
		"Task: Full ad / headline only / 5 keywords\n"
}

func containsAny(s string, hints []string) bool {
	for _, h := range hints {
		if strings.Contains(s, h) {
			return true
		}
	}
	return false
}
