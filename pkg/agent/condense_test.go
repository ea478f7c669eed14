package agent

import (
	"strings"
	"testing"
)

func TestCondenseContext(t *testing.T) {
	ctx := "[Category: home-kitchen]\n" +
		"- Stainless Steel Water Bottle 1L Insulated\n" +
		"- Ceramic Coffee Mug 350ml Red\n" +
		"- stainless steel water bottle 1l insulated\n" +
		"- Glass Teapot With Infuser"

	got := CondenseContext("insulated water bottle", ctx, 10)

	lines := strings.Split(got, "\n")
	for _, ln := range lines {
		if !strings.HasPrefix(ln, "- ") {
			t.Fatalf("every output line must be a candidate line, got %q", ln)
		}
	}
	if len(lines) != 3 {
		t.Fatalf("case-insensitive duplicate should be dropped, got %d lines:\n%s", len(lines), got)
	}
	if lines[0] != "- Stainless Steel Water Bottle 1L Insulated" {
		t.Errorf("highest-overlap line should rank first, got %q", lines[0])
	}
	if strings.Contains(got, "[Category:") {
		t.Error("category headers must not survive condensation")
	}
}

func TestCondenseContextTieOrderStable(t *testing.T) {
	// All lines score zero against the prompt; original order must hold.
	ctx := "- first line here\n- second line here\n- third line here"

	got := CondenseContext("unrelated query tokens", ctx, 10)
	want := "- first line here\n- second line here\n- third line here"
	if got != want {
		t.Errorf("equal-score lines must keep input order:\ngot  %q\nwant %q", got, want)
	}
}

func TestCondenseContextMaxLines(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 30; i++ {
		b.WriteString("- candidate line number ")
		b.WriteString(strings.Repeat("x", i+1))
		b.WriteString("\n")
	}

	got := CondenseContext("anything", b.String(), 10)
	if n := len(strings.Split(got, "\n")); n != 10 {
		t.Errorf("output has %d lines, want 10", n)
	}
}

func TestCondenseContextRawFallback(t *testing.T) {
	if got := CondenseContext("prompt", "", 10); got != "" {
		t.Errorf("empty context should stay empty, got %q", got)
	}

	// No "- " candidates at all: the raw block is passed through, capped.
	raw := strings.Repeat("z", 2000)
	got := CondenseContext("prompt", raw, 10)
	if len(got) != 1200 {
		t.Errorf("degenerate fallback should cap at 1200 chars, got %d", len(got))
	}

	short := "plain text without candidates"
	if got := CondenseContext("prompt", short, 10); got != short {
		t.Errorf("short degenerate context should pass through, got %q", got)
	}
}
