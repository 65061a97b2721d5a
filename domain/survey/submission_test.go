package survey

import (
	"testing"
	"unicode/utf8"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		raw      string
		want     time.Time
		dateOnly bool
	}{
		{"2025-10-03", time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC), true},
		{"10/3/2025 14:22:05", time.Date(2025, 10, 3, 14, 22, 5, 0, time.UTC), false},
		{"10/3/2025", time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC), true},
		{"2025-10-03 09:15", time.Date(2025, 10, 3, 9, 15, 0, 0, time.UTC), false},
		{"2025-10-03T09:15:00Z", time.Date(2025, 10, 3, 9, 15, 0, 0, time.UTC), false},
		{"October 3, 2025", time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC), true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, dateOnly := ParseTimestamp(tt.raw)
			assert.True(t, tt.want.Equal(got), "got %v", got)
			assert.Equal(t, tt.dateOnly, dateOnly)
		})
	}

	for _, bad := range []string{"", "   ", "last tuesday", "2025-13-45"} {
		got, _ := ParseTimestamp(bad)
		assert.True(t, got.IsZero(), "input %q", bad)
	}
}

func TestSubmissionDisplayTime(t *testing.T) {
	at, _ := ParseTimestamp("10/3/2025 14:22:05")
	assert.Equal(t, "2025-10-03 14:22", Submission{SubmittedAt: at}.DisplayTime())

	day, _ := ParseTimestamp("2025-10-03")
	assert.Equal(t, "2025-10-03", Submission{SubmittedAt: day, DateOnly: true}.DisplayTime())

	assert.Equal(t, "sometime in octo", Submission{RawDate: "sometime in october"}.DisplayTime())
	assert.Equal(t, "", Submission{}.DisplayTime())

	cut := Submission{RawDate: "fin de séptembre à midi"}.DisplayTime()
	assert.Equal(t, "fin de séptembre", cut)
	assert.True(t, utf8.ValidString(Submission{RawDate: "ééééééééééééééééé"}.DisplayTime()))
}

func TestParse(t *testing.T) {
	tab := Tab{
		Name:    "CEO",
		Stage:   StageCEO,
		Headers: []string{"Timestamp", "CEO Organization", "CEO Name", "CEO Email", "Biggest challenge", "Budget"},
		Rows: []Row{
			{"Timestamp": "10/1/2025 9:00:00", "CEO Organization": " Acme ", "CEO Name": "Ada", "CEO Email": "ada@acme.org", "Biggest challenge": "Hiring", "Budget": ""},
			{"Timestamp": "10/2/2025 9:00:00", "CEO Organization": "  ", "CEO Name": "Nobody"},
			{"Timestamp": "not a date", "CEO Organization": "Beta"},
		},
	}

	subs, skipped := Parse(tab, DefaultFieldMaps()[StageCEO])
	require.Len(t, subs, 2)
	assert.Equal(t, 1, skipped)

	acme := subs[0]
	assert.Equal(t, StageCEO, acme.Stage)
	assert.Equal(t, 0, acme.Row)
	assert.Equal(t, "Acme", acme.Organization)
	assert.Equal(t, "Ada", acme.Name)
	assert.Equal(t, "ada@acme.org", acme.Email)
	assert.True(t, acme.HasTime())
	assert.Equal(t, []Answer{{Question: "Biggest challenge", Value: "Hiring"}}, acme.Answers)

	beta := subs[1]
	assert.Equal(t, 2, beta.Row)
	assert.False(t, beta.HasTime())
	assert.Equal(t, "not a date", beta.RawDate)
}
