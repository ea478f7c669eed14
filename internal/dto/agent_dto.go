package dto

import (
	"adwise-be/pkg/agent"
	"adwise-be/pkg/store"
	"adwise-be/pkg/wizard"
)

type ExecuteRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// ExecuteResponse mirrors the pipeline result. Error and Response are
// pointers so absent values serialize as JSON null, not "".
type ExecuteResponse struct {
	Status   string       `json:"status"`
	Error    *string      `json:"error"`
	Response *string      `json:"response"`
	Steps    []agent.Step `json:"steps"`
}

// NewExecuteResponse maps a pipeline result onto the wire shape.
func NewExecuteResponse(result *agent.Result) *ExecuteResponse {
	res := &ExecuteResponse{
		Status: result.Status,
		Steps:  result.Steps,
	}
	if res.Steps == nil {
		res.Steps = []agent.Step{}
	}
	if result.Error != "" {
		e := result.Error
		res.Error = &e
	}
	if result.Response != "" {
		r := result.Response
		res.Response = &r
	}
	return res
}

type ChatRequest struct {
	Prompt    string             `json:"prompt"`
	State     *store.WizardState `json:"state"`
	SessionId string             `json:"session_id"`
}

// ChatResponse extends the execute shape with the wizard turn. NextState is
// echoed back so stateless clients can hold their own conversation state.
type ChatResponse struct {
	ExecuteResponse

	NextState   *store.WizardState `json:"next_state"`
	UIType      string             `json:"ui_type"`
	Options     []wizard.Option    `json:"options"`
	Message     *string            `json:"message"`
	AgentPrompt string             `json:"agent_prompt,omitempty"`
	SessionId   string             `json:"session_id,omitempty"`
}

type AgentInfoResponse struct {
	Description    string         `json:"description"`
	Purpose        string         `json:"purpose"`
	PromptTemplate PromptTemplate `json:"prompt_template"`
	PromptExamples []string       `json:"prompt_examples"`
}

type PromptTemplate struct {
	Template string `json:"template"`
}
