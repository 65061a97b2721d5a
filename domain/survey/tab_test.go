package survey

import (
	"testing"

	"gosurvey/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTabFromRecords(t *testing.T) {
	records := [][]string{
		{"\ufeffTimestamp", " Organization ", "", "Comment", "Comment"},
		{"2025-10-01", " Acme ", "ignored", "first", "second"},
		{"", "", "", "", ""},
		{"2025-10-02", "Beta"},
	}

	tab, err := TabFromRecords("Tech", records)
	require.NoError(t, err)

	assert.Equal(t, []string{"Timestamp", "Organization", "Comment", "Comment (2)"}, tab.Headers)
	require.Len(t, tab.Rows, 2, "blank row is dropped")
	assert.Equal(t, "Acme", tab.Rows[0]["Organization"])
	assert.Equal(t, "second", tab.Rows[0]["Comment (2)"])
	assert.NotContains(t, tab.Rows[0], "")
	assert.Equal(t, "Beta", tab.Rows[1]["Organization"])
	assert.Empty(t, tab.Rows[1]["Comment"], "short rows leave trailing columns empty")
}

func TestTabFromRecords_SuffixNeverCollides(t *testing.T) {
	records := [][]string{
		{"Q", "Q", "Q (2)", "Q"},
		{"a", "b", "c", "d"},
	}

	tab, err := TabFromRecords("Staff", records)
	require.NoError(t, err)

	assert.Equal(t, []string{"Q", "Q (2)", "Q (2) (2)", "Q (3)"}, tab.Headers)
	require.Len(t, tab.Rows, 1)
	assert.Equal(t, Row{"Q": "a", "Q (2)": "b", "Q (2) (2)": "c", "Q (3)": "d"}, tab.Rows[0])
}

func TestTabFromRecords_HeaderOnly(t *testing.T) {
	tab, err := TabFromRecords("Staff", [][]string{{"Timestamp", "Organization"}})
	require.NoError(t, err)
	assert.Empty(t, tab.Rows)
}

func TestTabFromRecords_Empty(t *testing.T) {
	_, err := TabFromRecords("Staff", nil)
	assert.ErrorIs(t, err, core.ErrEmptyTab)

	_, err = TabFromRecords("Staff", [][]string{{"", " "}})
	assert.ErrorIs(t, err, core.ErrEmptyTab)
}

func TestParseStage(t *testing.T) {
	s, ok := ParseStage("ceo")
	assert.True(t, ok)
	assert.Equal(t, StageCEO, s)

	s, ok = ParseStage(" Staff ")
	assert.True(t, ok)
	assert.Equal(t, StageStaff, s)

	_, ok = ParseStage("board")
	assert.False(t, ok)
}
