package usage

import (
	"sync"
	"testing"

	"gosurvey/ports"

	"github.com/stretchr/testify/assert"
)

func TestTracker_Record(t *testing.T) {
	tr := NewTracker()

	tr.Record("gpt-4o-mini", &ports.UsageData{PromptTokens: 40, CompletionTokens: 10, TotalTokens: 50})
	tr.Record("gpt-4o-mini", &ports.UsageData{PromptTokens: 30, CompletionTokens: 5})
	tr.Record("other", &ports.UsageData{PromptTokens: 1, CompletionTokens: 1, TotalTokens: 2, Model: "gpt-4o"})

	byModel := tr.ByModel()
	assert.Equal(t, 2, byModel["gpt-4o-mini"].Calls)
	assert.Equal(t, 85, byModel["gpt-4o-mini"].TotalTokens)
	assert.Equal(t, 1, byModel["gpt-4o"].Calls)
	assert.NotContains(t, byModel, "other")

	total := tr.Total()
	assert.Equal(t, 3, total.Calls)
	assert.Equal(t, 71, total.PromptTokens)
	assert.Equal(t, 87, total.TotalTokens)
	assert.False(t, total.LastCallAt.IsZero())
}

func TestTracker_IgnoresInvalid(t *testing.T) {
	tr := NewTracker()
	tr.Record("m", nil)
	tr.Record("m", &ports.UsageData{PromptTokens: -1})
	assert.Zero(t, tr.Total().Calls)

	var nilTracker *Tracker
	nilTracker.Record("m", &ports.UsageData{PromptTokens: 1})
	assert.Empty(t, nilTracker.ByModel())
}

func TestTracker_Concurrent(t *testing.T) {
	tr := NewTracker()
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Record("m", &ports.UsageData{PromptTokens: 1, CompletionTokens: 1})
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, tr.Total().Calls)
	assert.Equal(t, 40, tr.Total().TotalTokens)
}
