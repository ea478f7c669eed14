package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Usage carries backend-reported token accounting, when available.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Metadata describes a single completed generation call. It ends up in the
// pipeline execution trace, so the text preview is truncated.
type Metadata struct {
	Provider    string `json:"provider"`
	Model       string `json:"model"`
	UsedURL     string `json:"used_url,omitempty"`
	TextPreview string `json:"text_preview"`
	Usage       *Usage `json:"raw_usage,omitempty"`
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for any generative text backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response text
	// plus call metadata
	Chat(ctx context.Context, history []Message, options ...Option) (string, *Metadata, error)
}

// previewChars bounds the metadata text preview.
const previewChars = 1200

// Preview truncates text for inclusion in trace metadata.
func Preview(text string) string {
	if len(text) <= previewChars {
		return text
	}
	return text[:previewChars]
}
