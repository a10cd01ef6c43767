package domain

import "context"

// LLMClient defines the capability to send prompts to a generative service
// and receive textual responses.
type LLMClient interface {
	Generate(ctx context.Context, req GenerateRequest) (*LLMResponse, error)
	Version() string
}

// GenerateRequest carries the prompt plus the generation knobs the service
// boundary exposes.
type GenerateRequest struct {
	Prompt       string
	SystemPrompt string
	Temperature  float32
	MaxTokens    int
}

// LLMResponse carries the generated text and whether generation finished.
type LLMResponse struct {
	Text string
	Done bool
}
