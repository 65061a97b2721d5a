package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gosurvey/domain/survey"
)

func timestamps(entries []ActivityEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Timestamp
	}
	return out
}

func TestBuildActivityFeed_OrdersByParsedTime(t *testing.T) {
	snap := snapshotOf([][2]string{{"A", "2025-10-01"}, {"B", "2025-10-03"}, {"C", "2025-10-02"}}, nil, nil, nil)

	feed := BuildActivityFeed(snap, 0)

	assert.Equal(t, []string{"2025-10-03", "2025-10-02", "2025-10-01"}, timestamps(feed))
}

func TestBuildActivityFeed_MixedFormats(t *testing.T) {
	snap := snapshotOf(
		[][2]string{{"A", "9/5/2025 8:00:00"}, {"B", "2025-10-01"}},
		[][2]string{{"A", "10/12/2025 17:45:10"}},
		nil, nil,
	)

	feed := BuildActivityFeed(snap, 0)

	require.Len(t, feed, 3)
	assert.Equal(t, []string{"2025-10-12 17:45", "2025-10-01", "2025-09-05 08:00"}, timestamps(feed))
	assert.Equal(t, "CEO Survey Completed", feed[0].ActivityType)
	assert.Equal(t, "ceo", feed[0].Stage)
}

func TestBuildActivityFeed_UnknownTimesLast(t *testing.T) {
	snap := snapshotOf(
		[][2]string{{"A", "sometime last week, probably"}, {"B", "2025-01-01"}},
		[][2]string{{"C", ""}},
		nil,
		[][2]string{{"D", "2024-12-31"}},
	)

	feed := BuildActivityFeed(snap, 0)

	require.Len(t, feed, 4)
	assert.Equal(t, "B", feed[0].Organization)
	assert.Equal(t, "D", feed[1].Organization)
	assert.Equal(t, "A", feed[2].Organization)
	assert.Equal(t, "sometime last we", feed[2].Timestamp)
	assert.Equal(t, "C", feed[3].Organization)
}

func TestBuildActivityFeed_TiesKeepStageOrder(t *testing.T) {
	same := [][2]string{{"A", "2025-10-01"}}
	snap := snapshotOf(same, same, same, same)

	feed := BuildActivityFeed(snap, 0)

	require.Len(t, feed, 4)
	for i, stage := range survey.Stages {
		assert.Equal(t, stage.Key(), feed[i].Stage)
	}
}

func TestBuildActivityFeed_Limit(t *testing.T) {
	snap := snapshotOf(orgs("A", "B", "C", "D", "E"), nil, nil, nil)

	assert.Len(t, BuildActivityFeed(snap, 3), 3)
	assert.Len(t, BuildActivityFeed(snap, 10), 5)
	assert.NotNil(t, BuildActivityFeed(survey.EmptySnapshot(), DashboardActivityLimit))
}

func TestComputeTurnaround(t *testing.T) {
	snap := snapshotOf(
		[][2]string{{"A", "2025-10-01"}, {"B", "2025-10-01"}, {"C", "2025-10-05"}, {"D", ""}},
		[][2]string{{"A", "2025-10-03"}, {"B", "2025-10-05"}, {"C", "2025-10-01"}, {"D", "2025-10-09"}},
		[][2]string{{"A", "2025-10-11"}},
		nil,
	)

	got := ComputeTurnaround(snap)

	require.Len(t, got, 3)
	assert.Equal(t, "ceo", got[0].Stage)
	assert.Equal(t, 2, got[0].Count)
	assert.InDelta(t, 3.0, got[0].MedianDays, 0.001)
	assert.GreaterOrEqual(t, got[0].P90Days, 2.0)
	assert.LessOrEqual(t, got[0].P90Days, 4.0)
	assert.Equal(t, Turnaround{Stage: "tech", Count: 1, MedianDays: 10, P90Days: 10}, got[1])
	assert.Equal(t, Turnaround{Stage: "staff"}, got[2])
}
