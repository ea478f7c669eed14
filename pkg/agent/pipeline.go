package agent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"adwise-be/pkg/llm"
	"adwise-be/pkg/retrieval"
)

// Retriever is the external inspiration-corpus collaborator. It never fails;
// degraded retrieval is reported through the trace note.
type Retriever interface {
	Retrieve(ctx context.Context, query, categoryFilter string) (string, *retrieval.Trace)
}

// Config holds the pipeline limits and the repair switch.
type Config struct {
	MaxPromptChars  int
	EnableRepair    bool
	MaxContextLines int
	MaxAllowedTerms int
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		MaxPromptChars:  4000,
		EnableRepair:    false,
		MaxContextLines: MaxContextLines,
		MaxAllowedTerms: MaxAllowedTerms,
	}
}

// Pipeline orchestrates guard checks, retrieval, context condensation,
// prompt assembly, generation, format validation and the single bounded
// repair retry. All stages are synchronous; only retrieval and generation
// touch the network.
type Pipeline struct {
	generator llm.LLMProvider
	retriever Retriever
	config    Config
	logger    *log.Logger
}

// NewPipeline creates a new agent pipeline.
func NewPipeline(generator llm.LLMProvider, retriever Retriever, config Config, logger *log.Logger) *Pipeline {
	return &Pipeline{
		generator: generator,
		retriever: retriever,
		config:    config,
		logger:    logger,
	}
}

// wizardMarkers identify structured requests built by the guided wizard;
// such requests bypass the free-text clarification gate.
var wizardMarkers = []string{"RAG Category Filter:", "Category:", "Task:"}

// Run executes the pipeline for one request. It always returns a result:
// faults raised anywhere are converted at this boundary into a structured
// error result carrying the trace accumulated so far.
func (p *Pipeline) Run(ctx context.Context, userPrompt, categoryFilter string) (result *Result) {
	var steps []Step

	defer func() {
		if r := recover(); r != nil {
			p.logger.Printf("[ERROR] Pipeline panic: %v", r)
			result = &Result{
				Status: StatusError,
				Error:  fmt.Sprintf("%s: %v", ErrKindInternal, r),
				Steps:  steps,
			}
		}
	}()

	prompt := strings.TrimSpace(userPrompt)
	mode := DetectMode(prompt)

	empty := prompt == ""
	tooLong := len(prompt) > p.config.MaxPromptChars
	steps = append(steps, Step{
		Module: "InputGuard",
		Prompt: map[string]any{"user_prompt": userPrompt},
		Response: map[string]any{
			"empty":    empty,
			"too_long": tooLong,
			"length":   len(prompt),
			"max":      p.config.MaxPromptChars,
			"mode":     string(mode),
		},
	})

	if empty {
		return &Result{Status: StatusError, Error: ErrKindEmptyInput + ": Empty prompt", Steps: steps}
	}
	if tooLong {
		return &Result{Status: StatusError, Error: ErrKindInputTooLong + ": Prompt too long", Steps: steps}
	}

	fromWizard := containsAny(prompt, wizardMarkers)

	decision := ClarificationDecision{}
	if !fromWizard {
		decision = ShouldClarify(prompt)
	}

	steps = append(steps, Step{
		Module: "IntentGuard",
		Prompt: map[string]any{"user_prompt": prompt},
		Response: map[string]any{
			"should_clarify": decision.ShouldClarify,
			"reason":         decision.Reason,
			"from_wizard":    fromWizard,
			"mode":           string(mode),
		},
	})

	if decision.ShouldClarify {
		return &Result{
			Status:   StatusOK,
			Response: ClarificationMessage(decision.Reason),
			Steps:    steps,
		}
	}

	searchQuery := RewriteQuery(prompt)
	ctxBlock, trace := p.retriever.Retrieve(ctx, searchQuery, categoryFilter)

	steps = append(steps, Step{
		Module: "AmazonInspirationRetriever",
		Prompt: map[string]any{
			"query":           searchQuery,
			"original_prompt": prompt,
			"category_filter": categoryFilter,
		},
		Response: retrievalSnapshot(ctxBlock, trace),
	})

	condensed := CondenseContext(prompt, ctxBlock, p.config.MaxContextLines)
	allowedTerms := ExtractAllowedTerms(condensed, p.config.MaxAllowedTerms)

	systemMsg, userMsg := BuildMessages(prompt, condensed, allowedTerms, mode)

	llmText, meta, err := p.generate(ctx, systemMsg, userMsg)
	if err != nil {
		p.logger.Printf("[ERROR] Generation failed: %v", err)
		return &Result{
			Status: StatusError,
			Error:  fmt.Sprintf("%s: %v", ErrKindGenerationFailure, err),
			Steps:  steps,
		}
	}

	steps = append(steps, Step{
		Module:   "AdCopyWriter",
		Prompt:   map[string]any{"system": systemMsg, "user": userMsg},
		Response: metadataSnapshot(meta),
	})

	finalText := strings.TrimSpace(llmText)

	repaired := false
	if p.config.EnableRepair && !IsValidFormat(finalText, mode) {
		repairSystem, repairUser := BuildRepairMessages(prompt, finalText, mode)

		fixed, repairMeta, err := p.generate(ctx, repairSystem, repairUser)
		if err != nil {
			p.logger.Printf("[ERROR] Repair generation failed: %v", err)
			return &Result{
				Status: StatusError,
				Error:  fmt.Sprintf("%s: %v", ErrKindGenerationFailure, err),
				Steps:  steps,
			}
		}

		steps = append(steps, Step{
			Module:   "FormatRepair",
			Prompt:   map[string]any{"system": "formatter", "user": "(see above)", "mode": string(mode)},
			Response: metadataSnapshot(repairMeta),
		})

		// The repair is accepted only when it actually validates; otherwise
		// the original draft is returned unchanged. One attempt, never more.
		if IsValidFormat(strings.TrimSpace(fixed), mode) {
			finalText = strings.TrimSpace(fixed)
			repaired = true
		}
	}

	steps = append(steps, Step{
		Module: "FinalResponseComposer",
		Prompt: map[string]any{"repaired": repaired, "mode": string(mode)},
		Response: map[string]any{
			"format_valid": IsValidFormat(finalText, mode),
		},
	})

	return &Result{
		Status:   StatusOK,
		Response: finalText,
		Steps:    steps,
	}
}

func (p *Pipeline) generate(ctx context.Context, systemMsg, userMsg string) (string, *llm.Metadata, error) {
	history := []llm.Message{
		{Role: "system", Content: systemMsg},
		{Role: "user", Content: userMsg},
	}
	return p.generator.Chat(ctx, history)
}

func retrievalSnapshot(ctxBlock string, trace *retrieval.Trace) map[string]any {
	preview := ctxBlock
	if len(preview) > 1200 {
		preview = preview[:1200]
	}
	return map[string]any{
		"provider":    trace.Provider,
		"index":       trace.Index,
		"namespace":   trace.Namespace,
		"top_k":       trace.TopK,
		"matches":     trace.Matches,
		"categories":  trace.Categories,
		"ads_used":    trace.AdsUsed,
		"note":        trace.Note,
		"ctx_preview": preview,
	}
}

func metadataSnapshot(meta *llm.Metadata) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	snapshot := map[string]any{
		"provider":     meta.Provider,
		"model":        meta.Model,
		"used_url":     meta.UsedURL,
		"text_preview": meta.TextPreview,
	}
	if meta.Usage != nil {
		snapshot["raw_usage"] = map[string]any{
			"prompt_tokens":     meta.Usage.PromptTokens,
			"completion_tokens": meta.Usage.CompletionTokens,
			"total_tokens":      meta.Usage.TotalTokens,
		}
	}
	return snapshot
}
