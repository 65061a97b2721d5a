package survey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSnapshot(t *testing.T) {
	fetched := time.Date(2025, 10, 5, 12, 0, 0, 0, time.UTC)
	tabs := []Tab{
		{Name: "Staff", Stage: StageStaff, Headers: []string{"Organization"}, Rows: []Row{{"Organization": "Acme"}}},
		{Name: "Intake", Stage: StageIntake, Headers: []string{"Organization Name:"}, Rows: []Row{{"Organization Name:": "Acme"}, {"Organization Name:": ""}}},
	}

	snap := NewSnapshot(tabs, nil, "test", fetched)

	assert.False(t, snap.ID.String() == "")
	assert.Equal(t, fetched, snap.FetchedAt)
	assert.Equal(t, 3, snap.RowCount())
	assert.Equal(t, 1, snap.Skipped(StageIntake))
	assert.Len(t, snap.Submissions(StageIntake), 1)
	assert.Empty(t, snap.Submissions(StageCEO))

	ordered := snap.Tabs()
	require.Len(t, ordered, 2)
	assert.Equal(t, StageIntake, ordered[0].Stage)
	assert.Equal(t, StageStaff, ordered[1].Stage)
}

func TestSnapshot_SubmissionsAreCopies(t *testing.T) {
	tabs := []Tab{{Name: "Intake", Stage: StageIntake, Headers: []string{"Organization"}, Rows: []Row{{"Organization": "Acme"}}}}
	snap := NewSnapshot(tabs, nil, "test", time.Now())

	subs := snap.Submissions(StageIntake)
	subs[0].Organization = "Mutated"

	assert.Equal(t, "Acme", snap.Submissions(StageIntake)[0].Organization)
}

func TestSnapshot_HashTracksContent(t *testing.T) {
	mk := func(org string) *Snapshot {
		return NewSnapshot([]Tab{{Name: "Intake", Stage: StageIntake, Headers: []string{"Organization"}, Rows: []Row{{"Organization": org}}}}, nil, "test", time.Now())
	}
	assert.Equal(t, mk("Acme").Hash, mk("Acme").Hash)
	assert.NotEqual(t, mk("Acme").Hash, mk("Beta").Hash)
	assert.NotEqual(t, mk("Acme").ID, mk("Acme").ID)
}

func TestEmptySnapshot(t *testing.T) {
	snap := EmptySnapshot()
	assert.True(t, snap.IsEmpty())
	assert.Zero(t, snap.RowCount())
	assert.Empty(t, snap.Submissions(StageIntake))
}
