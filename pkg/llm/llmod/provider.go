package llmod

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"adwise-be/pkg/llm"
)

// DefaultBaseURL is the official API host. The UI host (app.llmod.ai) is
// sometimes pasted into configs by mistake and must be ignored.
const DefaultBaseURL = "https://api.llmod.ai"

// LLModProvider talks to an OpenAI-compatible chat-completions endpoint.
type LLModProvider struct {
	BaseURL   string
	APIKey    string
	ModelName string
	Client    *http.Client
}

var _ llm.LLMProvider = &LLModProvider{}

func NewLLModProvider(baseURL, apiKey, modelName string) *LLModProvider {
	if modelName == "" {
		modelName = "reasoning"
	}
	return &LLModProvider{
		BaseURL:   normalizeBaseURL(baseURL),
		APIKey:    apiKey,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// normalizeBaseURL reduces a configured base URL to its origin and swaps the
// UI host for the API host.
func normalizeBaseURL(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return DefaultBaseURL
	}

	origin := strings.TrimRight(base, "/")
	if parsed, err := url.Parse(base); err == nil && parsed.Scheme != "" && parsed.Host != "" {
		origin = parsed.Scheme + "://" + parsed.Host
	}

	if strings.Contains(origin, "app.llmod.ai") {
		return DefaultBaseURL
	}
	return origin
}

func chatCompletionsURL(base string) string {
	base = strings.TrimRight(base, "/")
	if strings.HasSuffix(base, "/v1") {
		return base + "/chat/completions"
	}
	return base + "/v1/chat/completions"
}

// --- Request/Response structs (Internal to this package) ---

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *llm.Usage `json:"usage"`
}

// --- Interface Implementation ---

func (p *LLModProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, *llm.Metadata, error) {
	if p.APIKey == "" {
		return "", nil, fmt.Errorf("missing LLM API key")
	}

	options := &llm.Options{}
	for _, opt := range opts {
		opt(options)
	}

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	messages := make([]chatMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		messages[i] = chatMessage{Role: role, Content: msg.Content}
	}

	reqPayload := chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: options.Temperature,
		MaxTokens:   options.MaxTokens,
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := chatCompletionsURL(p.BaseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("llm request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		body := string(bodyBytes)
		if len(body) > 2000 {
			body = body[:2000]
		}
		return "", nil, fmt.Errorf("llm call failed: status=%d url=%s model=%s body=%s",
			resp.StatusCode, endpoint, model, body)
	}

	var parsed chatResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return "", nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", nil, fmt.Errorf("llm response contained no choices")
	}

	text := parsed.Choices[0].Message.Content
	meta := &llm.Metadata{
		Provider:    "llmod",
		Model:       model,
		UsedURL:     endpoint,
		TextPreview: llm.Preview(text),
		Usage:       parsed.Usage,
	}
	return text, meta, nil
}
