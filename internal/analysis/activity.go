package analysis

import (
	"sort"
	"time"

	"gosurvey/domain/survey"
)

// Feed sizes used by the dashboard and the activity page.
const (
	DashboardActivityLimit = 10
	ActivityPageLimit      = 20
)

// ActivityEntry is one submission event in the activity feed.
type ActivityEntry struct {
	Organization string `json:"organization"`
	ActivityType string `json:"activity_type"`
	Timestamp    string `json:"timestamp"`
	Description  string `json:"description"`
	Stage        string `json:"stage"`

	at    time.Time
	order survey.Stage
	row   int
}

// BuildActivityFeed lists every submission across all tabs, most recent first,
// and keeps the first limit entries (all of them when limit <= 0). Entries
// without a parseable timestamp come after every dated entry; ties keep stage
// order and then row order.
func BuildActivityFeed(snap *survey.Snapshot, limit int) []ActivityEntry {
	var entries []ActivityEntry
	for _, stage := range survey.Stages {
		for _, sub := range snap.Submissions(stage) {
			entries = append(entries, ActivityEntry{
				Organization: sub.Organization,
				ActivityType: stage.ActivityLabel(),
				Timestamp:    sub.DisplayTime(),
				Description:  stage.Description(),
				Stage:        stage.Key(),
				at:           sub.SubmittedAt,
				order:        stage,
				row:          sub.Row,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		aKnown, bKnown := !a.at.IsZero(), !b.at.IsZero()
		if aKnown != bKnown {
			return aKnown
		}
		if aKnown && !a.at.Equal(b.at) {
			return a.at.After(b.at)
		}
		if a.order != b.order {
			return a.order < b.order
		}
		return a.row < b.row
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	if entries == nil {
		entries = []ActivityEntry{}
	}
	return entries
}
