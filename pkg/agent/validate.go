package agent

import "strings"

// IsValidFormat decides structural validity of produced text for a mode.
// Checks are explicit per-mode grammar rules (prefix, line count, section
// order) rather than one opaque pattern, so each rule can fail precisely.
// The validator never mutates or fixes its input.
func IsValidFormat(text string, mode Mode) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return false
	}

	switch mode {
	case ModeHeadline:
		return validHeadlineOnly(t)
	case ModeKeywords5:
		return validKeywords5(t)
	default:
		return validFullAd(t)
	}
}

// validHeadlineOnly accepts exactly one "Headline: <3-200 chars>" line.
func validHeadlineOnly(t string) bool {
	if strings.Contains(t, "\n") {
		return false
	}
	if !strings.HasPrefix(t, "Headline: ") {
		return false
	}
	rest := t[len("Headline: "):]
	return len(rest) >= 3 && len(rest) <= 200
}

// validKeywords5 accepts one "Keywords:" line with exactly 5 comma-separated
// items of at least 2 characters each.
func validKeywords5(t string) bool {
	if strings.Contains(t, "\n") {
		return false
	}
	if !strings.HasPrefix(strings.ToLower(t), "keywords:") {
		return false
	}
	rest := strings.TrimSpace(t[strings.Index(t, ":")+1:])
	if rest == "" {
		return false
	}
	var parts []string
	for _, p := range strings.Split(rest, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) != 5 {
		return false
	}
	for _, p := range parts {
		if len(p) < 2 {
			return false
		}
	}
	return true
}

// validFullAd checks the five-section layout in strict order:
// Headline, Bullets (exactly 5 "- " lines), Short description, Keywords,
// Publishing tips. Each section is confined to a single line.
func validFullAd(t string) bool {
	lines := strings.Split(t, "\n")
	if len(lines) != 10 {
		return false
	}
	if !prefixedNonEmpty(lines[0], "Headline: ") {
		return false
	}
	if lines[1] != "Bullets:" {
		return false
	}
	for i := 2; i < 7; i++ {
		if !prefixedNonEmpty(lines[i], "- ") {
			return false
		}
	}
	if !prefixedNonEmpty(lines[7], "Short description: ") {
		return false
	}
	if !prefixedNonEmpty(lines[8], "Keywords: ") {
		return false
	}
	return prefixedNonEmpty(lines[9], "Publishing tips: ")
}

func prefixedNonEmpty(line, prefix string) bool {
	return strings.HasPrefix(line, prefix) && len(line) > len(prefix)
}
