package agent

import (
	"context"
	"io"
	"log"
	"strings"
	"testing"

	"adwise-be/pkg/llm"
	"adwise-be/pkg/retrieval"
)

type fakeGenerator struct {
	replies []string
	err     error
	calls   int
}

func (f *fakeGenerator) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, *llm.Metadata, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	reply := f.replies[len(f.replies)-1]
	if f.calls < len(f.replies) {
		reply = f.replies[f.calls]
	}
	f.calls++
	return reply, &llm.Metadata{
		Provider:    "fake",
		Model:       "fake-model",
		UsedURL:     "fake://chat",
		TextPreview: llm.Preview(reply),
	}, nil
}

type fakeRetriever struct {
	ctxBlock string
	calls    int
	lastCat  string
}

func (f *fakeRetriever) Retrieve(ctx context.Context, query, categoryFilter string) (string, *retrieval.Trace) {
	f.calls++
	f.lastCat = categoryFilter
	return f.ctxBlock, &retrieval.Trace{
		Provider: "fake",
		TopK:     5,
		Matches:  3,
		AdsUsed:  3,
		Note:     "no_filter",
	}
}

type panickyRetriever struct{}

func (panickyRetriever) Retrieve(ctx context.Context, query, categoryFilter string) (string, *retrieval.Trace) {
	panic("vector store exploded")
}

const testCtxBlock = "[Category: home-kitchen]\n" +
	"- Stainless Steel Water Bottle 1L Insulated\n" +
	"- Insulated Steel Water Bottle Leak-Proof"

func newTestPipeline(gen llm.LLMProvider, ret Retriever, repair bool) *Pipeline {
	cfg := DefaultConfig()
	cfg.EnableRepair = repair
	return NewPipeline(gen, ret, cfg, log.New(io.Discard, "", 0))
}

func stepModules(steps []Step) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.Module
	}
	return out
}

func TestPipelineHappyPath(t *testing.T) {
	gen := &fakeGenerator{replies: []string{validFull()}}
	ret := &fakeRetriever{ctxBlock: testCtxBlock}
	p := newTestPipeline(gen, ret, false)

	res := p.Run(context.Background(), "Write me a full ad for an insulated steel water bottle", "home-kitchen")

	if res.Status != StatusOK {
		t.Fatalf("status = %q (%s), want ok", res.Status, res.Error)
	}
	if res.Response != validFull() {
		t.Errorf("response = %q, want generator draft", res.Response)
	}
	want := []string{"InputGuard", "IntentGuard", "AmazonInspirationRetriever", "AdCopyWriter", "FinalResponseComposer"}
	got := stepModules(res.Steps)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("step modules = %v, want %v", got, want)
	}
	if ret.lastCat != "home-kitchen" {
		t.Errorf("category filter = %q, want home-kitchen", ret.lastCat)
	}

	final := res.Steps[len(res.Steps)-1]
	if valid, _ := final.Response["format_valid"].(bool); !valid {
		t.Error("format_valid should be true for a well-formed draft")
	}
}

func TestPipelineInputGuards(t *testing.T) {
	gen := &fakeGenerator{replies: []string{validFull()}}
	ret := &fakeRetriever{ctxBlock: testCtxBlock}
	p := newTestPipeline(gen, ret, false)

	res := p.Run(context.Background(), "   ", "")
	if res.Status != StatusError || !strings.HasPrefix(res.Error, ErrKindEmptyInput) {
		t.Errorf("empty prompt: status=%q error=%q", res.Status, res.Error)
	}
	if len(res.Steps) != 1 || res.Steps[0].Module != "InputGuard" {
		t.Errorf("empty prompt should stop after InputGuard, steps=%v", stepModules(res.Steps))
	}

	long := strings.Repeat("x", 4001)
	res = p.Run(context.Background(), long, "")
	if res.Status != StatusError || !strings.HasPrefix(res.Error, ErrKindInputTooLong) {
		t.Errorf("long prompt: status=%q error=%q", res.Status, res.Error)
	}
	if ret.calls != 0 {
		t.Error("guarded prompts must never reach retrieval")
	}
}

func TestPipelineClarification(t *testing.T) {
	gen := &fakeGenerator{replies: []string{validFull()}}
	ret := &fakeRetriever{ctxBlock: testCtxBlock}
	p := newTestPipeline(gen, ret, false)

	res := p.Run(context.Background(), "write me an advertisement", "")

	if res.Status != StatusOK {
		t.Fatalf("clarification is a normal outcome, got status %q", res.Status)
	}
	if !strings.Contains(res.Response, "what product") {
		t.Errorf("expected the missing-product question, got %q", res.Response)
	}
	want := []string{"InputGuard", "IntentGuard"}
	if got := stepModules(res.Steps); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("steps = %v, want %v", got, want)
	}
	if ret.calls != 0 || gen.calls != 0 {
		t.Error("clarified requests must not retrieve or generate")
	}
}

func TestPipelineWizardBypassesClarification(t *testing.T) {
	gen := &fakeGenerator{replies: []string{validFull()}}
	ret := &fakeRetriever{ctxBlock: testCtxBlock}
	p := newTestPipeline(gen, ret, false)

	// Without the Task: marker this prompt would trip the intent gate.
	res := p.Run(context.Background(), "Task: write me an advertisement", "")

	if res.Status != StatusOK {
		t.Fatalf("status = %q (%s)", res.Status, res.Error)
	}
	if gen.calls != 1 {
		t.Errorf("generator calls = %d, want 1", gen.calls)
	}

	intentStep := res.Steps[1]
	if fw, _ := intentStep.Response["from_wizard"].(bool); !fw {
		t.Error("IntentGuard should report from_wizard=true")
	}
	if sc, _ := intentStep.Response["should_clarify"].(bool); sc {
		t.Error("wizard prompts must never clarify")
	}
}

func TestPipelineRepairSucceeds(t *testing.T) {
	bad := "here is your ad copy!"
	gen := &fakeGenerator{replies: []string{bad, "Headline: Insulated Steel Water Bottle"}}
	ret := &fakeRetriever{ctxBlock: testCtxBlock}
	p := newTestPipeline(gen, ret, true)

	res := p.Run(context.Background(), "headline only for an insulated steel water bottle", "")

	if res.Status != StatusOK {
		t.Fatalf("status = %q (%s)", res.Status, res.Error)
	}
	if res.Response != "Headline: Insulated Steel Water Bottle" {
		t.Errorf("response = %q, want repaired headline", res.Response)
	}
	if gen.calls != 2 {
		t.Errorf("generator calls = %d, want exactly 2 (one repair attempt)", gen.calls)
	}

	got := stepModules(res.Steps)
	want := []string{"InputGuard", "IntentGuard", "AmazonInspirationRetriever", "AdCopyWriter", "FormatRepair", "FinalResponseComposer"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("steps = %v, want %v", got, want)
	}
}

func TestPipelineRepairFailureKeepsDraft(t *testing.T) {
	bad := "here is your ad copy!"
	stillBad := "sorry, still chatty output"
	gen := &fakeGenerator{replies: []string{bad, stillBad}}
	ret := &fakeRetriever{ctxBlock: testCtxBlock}
	p := newTestPipeline(gen, ret, true)

	res := p.Run(context.Background(), "headline only for an insulated steel water bottle", "")

	if res.Status != StatusOK {
		t.Fatalf("a failed repair is not an error, got %q (%s)", res.Status, res.Error)
	}
	if res.Response != bad {
		t.Errorf("response = %q, want the original draft back", res.Response)
	}
	if gen.calls != 2 {
		t.Errorf("generator calls = %d, want exactly 2; repair never retries", gen.calls)
	}

	final := res.Steps[len(res.Steps)-1]
	if valid, _ := final.Response["format_valid"].(bool); valid {
		t.Error("format_valid should be false when both drafts are malformed")
	}
}

func TestPipelineRepairDisabled(t *testing.T) {
	bad := "chatty non-conforming output"
	gen := &fakeGenerator{replies: []string{bad}}
	ret := &fakeRetriever{ctxBlock: testCtxBlock}
	p := newTestPipeline(gen, ret, false)

	res := p.Run(context.Background(), "headline only for an insulated steel water bottle", "")

	if res.Status != StatusOK || res.Response != bad {
		t.Fatalf("invalid draft with repair off should pass through, got %q (%s)", res.Response, res.Error)
	}
	if gen.calls != 1 {
		t.Errorf("generator calls = %d, want 1", gen.calls)
	}
	for _, s := range res.Steps {
		if s.Module == "FormatRepair" {
			t.Error("FormatRepair step must not appear when repair is disabled")
		}
	}
}

func TestPipelineGenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: context.DeadlineExceeded}
	ret := &fakeRetriever{ctxBlock: testCtxBlock}
	p := newTestPipeline(gen, ret, false)

	res := p.Run(context.Background(), "Write me a full ad for an insulated steel water bottle", "")

	if res.Status != StatusError {
		t.Fatalf("status = %q, want error", res.Status)
	}
	if !strings.HasPrefix(res.Error, ErrKindGenerationFailure) {
		t.Errorf("error = %q, want %s kind", res.Error, ErrKindGenerationFailure)
	}
	// The trace up to the failure point is preserved.
	want := []string{"InputGuard", "IntentGuard", "AmazonInspirationRetriever"}
	if got := stepModules(res.Steps); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("steps = %v, want %v", got, want)
	}
}

func TestPipelinePanicBecomesInternalError(t *testing.T) {
	gen := &fakeGenerator{replies: []string{validFull()}}
	p := newTestPipeline(gen, panickyRetriever{}, false)

	res := p.Run(context.Background(), "Write me a full ad for an insulated steel water bottle", "")

	if res.Status != StatusError {
		t.Fatalf("status = %q, want error", res.Status)
	}
	if !strings.HasPrefix(res.Error, ErrKindInternal) {
		t.Errorf("error = %q, want %s kind", res.Error, ErrKindInternal)
	}
	if len(res.Steps) < 2 {
		t.Errorf("partial trace should survive the panic, got %v", stepModules(res.Steps))
	}
}

func validFull() string {
	return "Headline: Insulated Steel Water Bottle 1L\n" +
		"Bullets:\n" +
		"- keeps drinks cold for 24 hours\n" +
		"- keeps drinks hot for 12 hours\n" +
		"- leak-proof twist lid\n" +
		"- fits standard cup holders\n" +
		"- double-wall vacuum insulation\n" +
		"Short description: A daily-use insulated bottle.\n" +
		"Keywords: bottle, steel, insulated, leak-proof, 1l\n" +
		"Publishing tips: lead with the 24h cold claim."
}
