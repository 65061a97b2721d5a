package llm

import (
	"context"
	"fmt"
	"strings"

	"gosurvey/domain/core"
	"gosurvey/internal/logging"
	"gosurvey/internal/usage"
	"gosurvey/ports"
)

const summarizerSystemPrompt = "You condense survey analytics notes for a dashboard. " +
	"Reply with plain text only: no markdown, no quotes, no preamble."

// Summarizer implements ports.Summarizer with a chat-completion model
type Summarizer struct {
	client    ports.LLMClient
	model     string
	maxTokens int
	usage     *usage.Tracker
	logger    *logging.Logger
}

// NewSummarizer creates a summarizer backed by client
func NewSummarizer(client ports.LLMClient, model string, maxTokens int) *Summarizer {
	return &Summarizer{client: client, model: model, maxTokens: maxTokens, logger: logging.Default}
}

// WithUsage records token usage of every call in tracker
func (s *Summarizer) WithUsage(tracker *usage.Tracker) *Summarizer {
	s.usage = tracker
	return s
}

var _ ports.Summarizer = (*Summarizer)(nil)

// Summarize asks the model for a rendition of text no longer than maxLen
// characters. The length is not enforced here.
func (s *Summarizer) Summarize(ctx context.Context, text string, maxLen int) (string, error) {
	if s == nil || s.client == nil {
		return "", core.ErrSummarizerUnavailable
	}
	prompt := fmt.Sprintf("Rewrite the following in at most %d characters, keeping every number:\n\n%s", maxLen, text)

	resp, err := s.client.ChatCompletion(ctx, s.model, summarizerSystemPrompt, prompt, s.maxTokens)
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrSummarizerUnavailable, err)
	}
	if resp.Usage != nil {
		s.logger.Debug("[Summarizer] %s used %d tokens", s.model, resp.Usage.TotalTokens)
		s.usage.Record(s.model, resp.Usage)
	}
	return strings.Trim(strings.TrimSpace(resp.Content), `"`), nil
}
