package agent

import "strings"

const systemInstruction = "You are Ad-Wise, an expert performance copywriter. " +
	"Write high-converting ad copy using the provided inspiration examples. " +
	"Be concise, avoid fluff, and follow user constraints strictly."

const repairSystemInstruction = "You are a formatter. Rewrite the draft into the exact required format. " +
	"Do NOT add new facts. Return ONLY the formatted output."

// BuildMessages composes the system/user instruction pair for a mode,
// embedding the allow-listed terms and the condensed inspiration context.
func BuildMessages(prompt, condensedCtx string, allowedTerms []string, mode Mode) (string, string) {
	var b strings.Builder

	b.WriteString("USER REQUEST:\n")
	b.WriteString(prompt)
	b.WriteString("\n\n")

	if len(allowedTerms) > 0 {
		b.WriteString("ALLOWED CLAIM TERMS (use only if they appear in inspiration or user request): ")
		b.WriteString(strings.Join(allowedTerms, ", "))
		b.WriteString("\n\n")
	}

	b.WriteString("INSPIRATION EXAMPLES (most relevant excerpts):\n")
	if condensedCtx != "" {
		b.WriteString(condensedCtx)
	} else {
		b.WriteString("(none)")
	}
	b.WriteString("\n\n")

	b.WriteString(outputFormat(mode))

	return systemInstruction, b.String()
}

// BuildRepairMessages composes the single bounded repair call: reformat the
// existing draft into the exact required shape without new factual content.
func BuildRepairMessages(prompt, draft string, mode Mode) (string, string) {
	user := "Required format:\n" + requiredShape(mode) +
		"\n\nUser request:\n" + prompt +
		"\n\nDraft to fix:\n" + draft
	return repairSystemInstruction, user
}

func outputFormat(mode Mode) string {
	switch mode {
	case ModeHeadline:
		return "OUTPUT FORMAT (MUST be EXACT - return ONLY one line):\n" +
			"Headline: ...\n\n" +
			"CRITICAL RULES:\n" +
			"- Output ONLY the single line starting with 'Headline: '\n" +
			"- Do NOT add any other section\n" +
			"- Keep the entire line <= 160 characters\n" +
			"- Only use features from INSPIRATION EXAMPLES or USER REQUEST\n"
	case ModeKeywords5:
		return "OUTPUT FORMAT (MUST be EXACT - return ONLY one line):\n" +
			"Keywords: k1, k2, k3, k4, k5\n\n" +
			"CRITICAL RULES:\n" +
			"- Output ONLY the single line starting with 'Keywords: '\n" +
			"- Return EXACTLY 5 comma-separated keywords/phrases\n" +
			"- These MUST be suitable to include in the headline\n" +
			"- Do NOT add Headline, Bullets, Short description, or any other section\n" +
			"- Only use terms relevant to the product and category\n"
	default:
		return "OUTPUT FORMAT (MUST be EXACT, no extra text):\n" +
			"Headline: ...\n" +
			"Bullets:\n" +
			"- ...\n" +
			"- ...\n" +
			"- ...\n" +
			"- ...\n" +
			"- ...\n" +
			"Short description: ...\n" +
			"Keywords: k1, k2, ...\n" +
			"Publishing tips: ...\n\n" +
			"RULES:\n" +
			"1) Only mention features that appear in INSPIRATION EXAMPLES or explicitly in the USER REQUEST.\n" +
			"2) Do NOT invent numeric specs unless user provides them.\n" +
			"3) Keep Headline <= 160 characters.\n" +
			"4) Exactly 5 bullet lines, each starting with '- '.\n" +
			"5) Keywords: 8-15 comma-separated keywords; include long-tail phrases.\n" +
			"6) Publishing tips: 2-3 short actionable tips, no emojis.\n" +
			"7) Keep each section on a single line.\n"
	}
}

func requiredShape(mode Mode) string {
	switch mode {
	case ModeHeadline:
		return "Headline: ... (single line only)"
	case ModeKeywords5:
		return "Keywords: k1, k2, k3, k4, k5 (single line only, exactly 5)"
	default:
		return "Headline: ...\n" +
			"Bullets:\n" +
			"- ...\n" +
			"- ...\n" +
			"- ...\n" +
			"- ...\n" +
			"- ...\n" +
			"Short description: ...\n" +
			"Keywords: ...\n" +
			"Publishing tips: ..."
	}
}
