package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gosurvey/domain/core"
	"gosurvey/internal/errors"
	"gosurvey/internal/usage"
	"gosurvey/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOpenAIClient_ChatCompletion(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"model": "gpt-4o-mini-2024",
			"choices": [{"message": {"role": "assistant", "content": "Half the cohort is done."}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 40, "completion_tokens": 7, "total_tokens": 47}
		}`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1/", Timeout: time.Second})
	require.NoError(t, err)

	resp, err := client.ChatCompletion(context.Background(), "gpt-4o-mini", "system", "prompt", 0)
	require.NoError(t, err)

	assert.Equal(t, "Half the cohort is done.", resp.Content)
	assert.Equal(t, "stop", resp.FinishReason)
	assert.Equal(t, 47, resp.Usage.TotalTokens)
	assert.Equal(t, "gpt-4o-mini-2024", resp.Usage.Model)
	assert.Equal(t, "gpt-4o-mini", got["model"])
	assert.EqualValues(t, 256, got["max_tokens"])
}

func TestOpenAIClient_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"api error", http.StatusTooManyRequests, `{"error": {"message": "Rate limit reached"}}`, "Rate limit reached"},
		{"no choices", http.StatusOK, `{"choices": []}`, "missing choices"},
		{"not json", http.StatusOK, `<html>`, "invalid JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client, err := NewClient(Config{APIKey: "k", BaseURL: srv.URL, Timeout: time.Second})
			require.NoError(t, err)

			_, err = client.ChatCompletion(context.Background(), "m", "s", "p", 10)
			require.Error(t, err)
			assert.Equal(t, errors.CodeExternalService, errors.GetCode(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

type mockLLMClient struct {
	mock.Mock
}

func (m *mockLLMClient) ChatCompletion(ctx context.Context, model, system, prompt string, maxTokens int) (*ports.LLMResponse, error) {
	args := m.Called(ctx, model, system, prompt, maxTokens)
	resp, _ := args.Get(0).(*ports.LLMResponse)
	return resp, args.Error(1)
}

func TestSummarizer(t *testing.T) {
	client := &mockLLMClient{}
	client.On("ChatCompletion", mock.Anything, "gpt-4o-mini", summarizerSystemPrompt, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "at most 150 characters")
	}), 200).Return(&ports.LLMResponse{
		Content: ` "Two in three organizations finished." `,
		Usage:   &ports.UsageData{PromptTokens: 60, CompletionTokens: 9, TotalTokens: 69},
	}, nil).Once()
	client.On("ChatCompletion", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.ExternalServiceError("openai", assert.AnError)).Once()

	tracker := usage.NewTracker()
	s := NewSummarizer(client, "gpt-4o-mini", 200).WithUsage(tracker)

	out, err := s.Summarize(context.Background(), "long text", 150)
	require.NoError(t, err)
	assert.Equal(t, "Two in three organizations finished.", out)
	assert.Equal(t, 69, tracker.Total().TotalTokens)

	_, err = s.Summarize(context.Background(), "long text", 150)
	assert.ErrorIs(t, err, core.ErrSummarizerUnavailable)

	var nilSummarizer *Summarizer
	_, err = nilSummarizer.Summarize(context.Background(), "x", 10)
	assert.ErrorIs(t, err, core.ErrSummarizerUnavailable)
	client.AssertExpectations(t)
}
