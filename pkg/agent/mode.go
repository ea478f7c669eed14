package agent

import "strings"

// Mode is the requested output shape for a generation request.
type Mode string

const (
	ModeFull      Mode = "full"
	ModeHeadline  Mode = "headline"
	ModeKeywords5 Mode = "keywords5"
)

// DetectMode classifies a raw request into an output mode.
// Wizard-built prompts carry a "Task:" marker; only the phrase after it is
// inspected so that product text cannot flip the mode.
func DetectMode(prompt string) Mode {
	p := strings.ToLower(prompt)

	if idx := strings.Index(p, "task:"); idx >= 0 {
		task := p[idx:]
		if (strings.Contains(task, "write only") && strings.Contains(task, "headline")) ||
			strings.Contains(task, "headline only") {
			return ModeHeadline
		}
		if strings.Contains(task, "5 keywords") ||
			strings.Contains(task, "five keywords") ||
			strings.Contains(task, "keywords that must be included") {
			return ModeKeywords5
		}
		return ModeFull
	}

	if strings.Contains(p, "headline only") ||
		(strings.Contains(p, "write only") && strings.Contains(p, "headline")) {
		return ModeHeadline
	}
	if strings.Contains(p, "5 keywords") || strings.Contains(p, "five keywords") {
		return ModeKeywords5
	}

	return ModeFull
}
