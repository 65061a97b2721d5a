package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gosurvey/internal/errors"
	"gosurvey/ports"

	"github.com/tidwall/gjson"
)

// Config holds LLM adapter configuration
type Config struct {
	Model       string        // e.g., "gpt-4o-mini"
	APIKey      string        // OpenAI API key
	BaseURL     string        // Optional override (default: https://api.openai.com/v1)
	Temperature float64       // 0.0-1.0, lower = more deterministic
	MaxTokens   int           // Max tokens in response
	Timeout     time.Duration // Request timeout
}

// NewClient creates an LLM client based on config
func NewClient(config Config) (*OpenAIClient, error) {
	if strings.TrimSpace(config.APIKey) == "" {
		return nil, errors.ConfigInvalid("missing OpenAI API key")
	}

	baseURL := strings.TrimSpace(config.BaseURL)
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &OpenAIClient{
		APIKey:      config.APIKey,
		BaseURL:     baseURL,
		Temperature: config.Temperature,
		client:      &http.Client{Timeout: config.Timeout},
	}, nil
}

// OpenAIClient implements ports.LLMClient for the OpenAI chat completions API
type OpenAIClient struct {
	APIKey      string
	BaseURL     string
	Temperature float64
	client      *http.Client
}

var _ ports.LLMClient = (*OpenAIClient)(nil)

func (c *OpenAIClient) ChatCompletion(ctx context.Context, model, system, prompt string, maxTokens int) (*ports.LLMResponse, error) {
	if strings.TrimSpace(model) == "" {
		return nil, errors.InvalidInput("missing model")
	}
	if maxTokens <= 0 {
		maxTokens = 256
	}

	type msg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type reqBody struct {
		Model       string  `json:"model"`
		Messages    []msg   `json:"messages"`
		Temperature float64 `json:"temperature"`
		MaxTokens   int     `json:"max_tokens,omitempty"`
	}
	body := reqBody{
		Model: model,
		Messages: []msg{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature: c.Temperature,
		MaxTokens:   maxTokens,
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := strings.TrimRight(c.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, errors.ExternalServiceError("openai", err)
	}
	defer resp.Body.Close()

	respRaw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.ExternalServiceError("openai", fmt.Errorf("read response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiMsg := gjson.GetBytes(respRaw, "error.message").String()
		if apiMsg == "" {
			apiMsg = string(respRaw)
		}
		return nil, errors.ExternalServiceError("openai", fmt.Errorf("http %d: %s", resp.StatusCode, apiMsg))
	}
	if !gjson.ValidBytes(respRaw) {
		return nil, errors.ExternalServiceError("openai", fmt.Errorf("invalid JSON response"))
	}

	content := gjson.GetBytes(respRaw, "choices.0.message.content")
	if !content.Exists() {
		return nil, errors.ExternalServiceError("openai", fmt.Errorf("response missing choices"))
	}

	usage := gjson.GetManyBytes(respRaw, "usage.prompt_tokens", "usage.completion_tokens", "usage.total_tokens", "model")
	return &ports.LLMResponse{
		Content:      content.String(),
		FinishReason: gjson.GetBytes(respRaw, "choices.0.finish_reason").String(),
		Usage: &ports.UsageData{
			PromptTokens:     int(usage[0].Int()),
			CompletionTokens: int(usage[1].Int()),
			TotalTokens:      int(usage[2].Int()),
			Model:            usage[3].String(),
		},
	}, nil
}
