package service

import (
	"context"
	"strings"

	"adwise-be/internal/dto"
	"adwise-be/internal/pkg/logger"
	"adwise-be/internal/repository/memory"
	"adwise-be/pkg/agent"
	"adwise-be/pkg/wizard"

	"github.com/google/uuid"
)

type IAgentService interface {
	Execute(ctx context.Context, prompt string) *dto.ExecuteResponse
	Chat(ctx context.Context, req *dto.ChatRequest) *dto.ChatResponse
	Info() *dto.AgentInfoResponse
}

type agentService struct {
	pipeline    *agent.Pipeline
	sessionRepo *memory.SessionRepository
	logger      logger.ILogger
}

func NewAgentService(
	pipeline *agent.Pipeline,
	sessionRepo *memory.SessionRepository,
	sysLogger logger.ILogger,
) IAgentService {
	return &agentService{
		pipeline:    pipeline,
		sessionRepo: sessionRepo,
		logger:      sysLogger,
	}
}

const categoryFilterMarker = "RAG Category Filter:"

// extractCategoryFilter pulls the retrieval filter out of a structured
// prompt. Free-form prompts have none and retrieve unfiltered.
func extractCategoryFilter(prompt string) string {
	for _, line := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(line, categoryFilterMarker) {
			return strings.TrimSpace(line[len(categoryFilterMarker):])
		}
	}
	return ""
}

func (s *agentService) Execute(ctx context.Context, prompt string) *dto.ExecuteResponse {
	categoryFilter := extractCategoryFilter(prompt)

	result := s.pipeline.Run(ctx, prompt, categoryFilter)

	s.logger.Info("AgentService", "Pipeline run finished", map[string]interface{}{
		"status":          result.Status,
		"steps":           len(result.Steps),
		"category_filter": categoryFilter,
	})

	return dto.NewExecuteResponse(result)
}

func (s *agentService) Chat(ctx context.Context, req *dto.ChatRequest) *dto.ChatResponse {
	// Explicit state wins; the session store only serves thin clients.
	state := req.State
	sessionID := req.SessionId
	if state == nil && sessionID != "" {
		if stored, found := s.sessionRepo.Get(sessionID); found {
			state = &stored
		}
	}

	newState, payload := wizard.ProcessMessage(req.Prompt, state)

	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	s.sessionRepo.Save(sessionID, newState)

	message := payload.Message

	if payload.Ready {
		executeRes := s.Execute(ctx, payload.AgentPrompt)
		return &dto.ChatResponse{
			ExecuteResponse: *executeRes,
			NextState:       &newState,
			UIType:          wizard.UITypeResult,
			Options:         nil,
			Message:         &message,
			AgentPrompt:     payload.AgentPrompt,
			SessionId:       sessionID,
		}
	}

	response := payload.Message
	return &dto.ChatResponse{
		ExecuteResponse: dto.ExecuteResponse{
			Status:   agent.StatusOK,
			Response: &response,
			Steps: []agent.Step{
				{
					Module: "ConversationManager",
					Prompt: map[string]any{"user_input": req.Prompt, "state": req.State},
					Response: map[string]any{
						"next_step": newState.Step,
						"ui_type":   payload.UIType,
					},
				},
			},
		},
		NextState: &newState,
		UIType:    payload.UIType,
		Options:   payload.Options,
		Message:   &message,
		SessionId: sessionID,
	}
}

func (s *agentService) Info() *dto.AgentInfoResponse {
	return &dto.AgentInfoResponse{
		Description: "Ad-Wise is an AI agent that generates high-converting ad copy using RAG over real product listing titles.",
		Purpose: "Help marketers produce (1) a full performance ad listing, " +
			"(2) a headline-only output, or (3) exactly 5 must-use keywords for the headline, " +
			"while returning a full execution trace (steps).",
		PromptTemplate: dto.PromptTemplate{
			Template: "You can write naturally (free-form) OR use this structured template:\n\n" +
				"Product: <describe the product>\n" +
				"Category: <optional>\n" +
				"RAG Category Filter: <optional>\n" +
				"Constraints: <optional>\n" +
				"Platform: E-commerce\n" +
				"Task: <Full ad / Headline only / 5 keywords>\n",
		},
		PromptExamples: []string{
			"I'm selling a matte black 1-liter stainless steel insulated water bottle with a leak-proof lid. " +
				"It keeps drinks cold about 24 hours and hot around 12. " +
				"Can you write me a full ad listing (headline + bullets + short description + keywords + publishing tips)?",
			"Write ONLY a high-converting headline for wireless noise-cancelling headphones with 40h battery life.",
			"Give me exactly 5 must-use keywords for an ergonomic office chair with lumbar support.",
		},
	}
}
