package service

import (
	"context"
	"io"
	"log"
	"strings"
	"testing"

	"adwise-be/internal/dto"
	"adwise-be/internal/repository/memory"
	"adwise-be/pkg/agent"
	"adwise-be/pkg/llm"
	"adwise-be/pkg/retrieval"
	"adwise-be/pkg/store"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type stubGenerator struct {
	reply string
}

func (s *stubGenerator) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, *llm.Metadata, error) {
	return s.reply, &llm.Metadata{Provider: "stub", Model: "stub"}, nil
}

type stubRetriever struct {
	lastCategory string
}

func (s *stubRetriever) Retrieve(ctx context.Context, query, categoryFilter string) (string, *retrieval.Trace) {
	s.lastCategory = categoryFilter
	return "[Category: home-kitchen]\n- Red Ceramic Mug 350ml", &retrieval.Trace{Provider: "stub", Note: "no_filter"}
}

func newTestService(reply string) (IAgentService, *stubRetriever) {
	ret := &stubRetriever{}
	pipeline := agent.NewPipeline(&stubGenerator{reply: reply}, ret, agent.DefaultConfig(), log.New(io.Discard, "", 0))
	return NewAgentService(pipeline, memory.NewSessionRepository(), noopLogger{}), ret
}

func TestExtractCategoryFilter(t *testing.T) {
	prompt := "Product: red ceramic mug\n" +
		"Category: Home & Kitchen\n" +
		"RAG Category Filter: home-kitchen\n" +
		"Task: Write a full high-converting ad."

	if got := extractCategoryFilter(prompt); got != "home-kitchen" {
		t.Errorf("filter = %q, want home-kitchen", got)
	}
	if got := extractCategoryFilter("free-form mug request"); got != "" {
		t.Errorf("free-form prompt should have no filter, got %q", got)
	}
}

func TestExecutePassesFilterToRetriever(t *testing.T) {
	svc, ret := newTestService("Headline: Red Ceramic Mug 350ml")

	res := svc.Execute(context.Background(),
		"Product: red ceramic mug, 350ml\n"+
			"RAG Category Filter: home-kitchen\n"+
			"Task: Write ONLY a high-converting headline for this product. Output only 'Headline: ...'.")

	if res.Status != agent.StatusOK {
		t.Fatalf("status = %q, error = %v", res.Status, res.Error)
	}
	if res.Error != nil {
		t.Errorf("error should be null on success, got %q", *res.Error)
	}
	if ret.lastCategory != "home-kitchen" {
		t.Errorf("retriever got filter %q, want home-kitchen", ret.lastCategory)
	}
}

func TestChatSessionRoundTrip(t *testing.T) {
	svc, _ := newTestService("Headline: Anything")

	// Turn 1: greeting, server mints a session id.
	first := svc.Chat(context.Background(), &dto.ChatRequest{Prompt: "hi"})
	if first.SessionId == "" {
		t.Fatal("a session id should be assigned")
	}
	if first.NextState == nil || first.NextState.Step != store.StepMenu {
		t.Fatalf("next_state = %+v, want MENU", first.NextState)
	}

	// Turn 2: thin client sends only the session id back.
	second := svc.Chat(context.Background(), &dto.ChatRequest{
		Prompt:    "full_ad",
		SessionId: first.SessionId,
	})
	if second.NextState.Step != store.StepCollectCategory {
		t.Errorf("stored state should resume the wizard, step = %q", second.NextState.Step)
	}
	if second.NextState.Action != "full_ad" {
		t.Errorf("action = %q, want full_ad", second.NextState.Action)
	}
	if len(second.Steps) != 1 || second.Steps[0].Module != "ConversationManager" {
		t.Errorf("non-ready turns carry a single ConversationManager step, got %+v", second.Steps)
	}
}

func TestChatExplicitStateWinsOverSession(t *testing.T) {
	svc, _ := newTestService("Headline: Anything")

	explicit := &store.WizardState{Step: store.StepCollectProduct, Action: "headline_only", Category: "pets"}
	res := svc.Chat(context.Background(), &dto.ChatRequest{
		Prompt: "orthopedic dog bed for large breeds",
		State:  explicit,
	})

	if res.NextState.Step != store.StepCollectConstraints {
		t.Errorf("explicit state should drive the transition, step = %q", res.NextState.Step)
	}
}

func TestChatReadyTurnRunsPipeline(t *testing.T) {
	svc, ret := newTestService("Headline: Orthopedic Dog Bed For Large Breeds")

	state := &store.WizardState{
		Step:     store.StepCollectConstraints,
		Action:   "headline_only",
		Category: "pets",
		Product:  "orthopedic dog bed for large breeds",
	}
	res := svc.Chat(context.Background(), &dto.ChatRequest{Prompt: "skip", State: state})

	if res.UIType != "result" {
		t.Fatalf("ui_type = %q, want result", res.UIType)
	}
	if res.Status != agent.StatusOK {
		t.Fatalf("status = %q", res.Status)
	}
	if res.Response == nil || !strings.HasPrefix(*res.Response, "Headline: ") {
		t.Errorf("response = %v, want the generated headline", res.Response)
	}
	if !strings.Contains(res.AgentPrompt, "Task: Write ONLY a high-converting headline") {
		t.Errorf("agent_prompt missing headline task:\n%s", res.AgentPrompt)
	}
	if ret.lastCategory != "pets" {
		t.Errorf("retriever filter = %q, want pets", ret.lastCategory)
	}
}
