package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"ERROR":   LevelError,
		"warn":    LevelWarn,
		"Warning": LevelWarn,
		"INFO":    LevelInfo,
		" debug ": LevelDebug,
		"TRACE":   LevelTrace,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn, &buf)

	l.Info("[Refresh] fetched %d rows", 12)
	l.Debug("[Refresh] noise")
	assert.Empty(t, buf.String())

	l.Warn("[Refresh] tab %s empty", "Staff")
	assert.Contains(t, buf.String(), "[Refresh] tab Staff empty")
	assert.Contains(t, buf.String(), `"level":"warn"`)

	buf.Reset()
	l.Error("[Refresh] failed: %v", "timeout")
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Equal(t, LevelWarn, l.GetLevel())
}
