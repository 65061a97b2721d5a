package ports

import "context"

// UsageData is token accounting reported by the LLM provider
type UsageData struct {
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
	Model            string `json:"model"`
}

// LLMResponse is a completion with its usage data
type LLMResponse struct {
	Content      string
	FinishReason string
	Usage        *UsageData
}

// LLMClient is a chat-completion provider
type LLMClient interface {
	ChatCompletion(ctx context.Context, model, system, prompt string, maxTokens int) (*LLMResponse, error)
}
