package usage

import (
	"sync"
	"time"

	"gosurvey/internal/logging"
	"gosurvey/internal/metrics"
	"gosurvey/ports"
)

// Summary is the accumulated token usage since start
type Summary struct {
	Calls            int       `json:"calls"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	TotalTokens      int       `json:"total_tokens"`
	LastCallAt       time.Time `json:"last_call_at,omitempty"`
}

// Tracker accumulates LLM token usage. The zero value is not usable; use
// NewTracker.
type Tracker struct {
	mu      sync.Mutex
	byModel map[string]Summary
	now     func() time.Time
	logger  *logging.Logger
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{byModel: map[string]Summary{}, now: time.Now, logger: logging.Default}
}

// Record adds one call's usage. Invalid counts are logged and dropped.
func (t *Tracker) Record(model string, u *ports.UsageData) {
	if t == nil || u == nil {
		return
	}
	if u.PromptTokens < 0 || u.CompletionTokens < 0 || u.TotalTokens < 0 {
		t.logger.Warn("[Usage] invalid token counts for %s: %+v", model, *u)
		return
	}
	if u.Model != "" {
		model = u.Model
	}
	total := u.TotalTokens
	if total == 0 {
		total = u.PromptTokens + u.CompletionTokens
	}

	metrics.LLMTokens.WithLabelValues(model, "prompt").Add(float64(u.PromptTokens))
	metrics.LLMTokens.WithLabelValues(model, "completion").Add(float64(u.CompletionTokens))

	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.byModel[model]
	s.Calls++
	s.PromptTokens += u.PromptTokens
	s.CompletionTokens += u.CompletionTokens
	s.TotalTokens += total
	s.LastCallAt = t.now()
	t.byModel[model] = s
}

// ByModel returns a copy of the per-model summaries
func (t *Tracker) ByModel() map[string]Summary {
	out := map[string]Summary{}
	if t == nil {
		return out
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for k, v := range t.byModel {
		out[k] = v
	}
	return out
}

// Total sums usage over every model
func (t *Tracker) Total() Summary {
	var total Summary
	for _, s := range t.ByModel() {
		total.Calls += s.Calls
		total.PromptTokens += s.PromptTokens
		total.CompletionTokens += s.CompletionTokens
		total.TotalTokens += s.TotalTokens
		if s.LastCallAt.After(total.LastCallAt) {
			total.LastCallAt = s.LastCallAt
		}
	}
	return total
}
