package survey

import (
	"slices"
	"time"

	"gosurvey/domain/core"
)

// Snapshot is an immutable view of every tab at one point in time. A refresh
// builds a new Snapshot; nothing mutates a published one.
type Snapshot struct {
	ID        core.SnapshotID
	FetchedAt time.Time
	Source    string
	Hash      core.Hash

	tabs    map[Stage]Tab
	subs    map[Stage][]Submission
	skipped map[Stage]int
}

// NewSnapshot parses the given tabs with their stage's field map.
// A nil fields map means DefaultFieldMaps.
func NewSnapshot(tabs []Tab, fields map[Stage]FieldMap, source string, fetchedAt time.Time) *Snapshot {
	if fields == nil {
		fields = DefaultFieldMaps()
	}
	snap := &Snapshot{
		ID:        core.NewSnapshotID(),
		FetchedAt: fetchedAt,
		Source:    source,
		tabs:      make(map[Stage]Tab, len(tabs)),
		subs:      make(map[Stage][]Submission, len(tabs)),
		skipped:   make(map[Stage]int, len(tabs)),
	}
	var all []map[string]string
	for _, tab := range tabs {
		snap.tabs[tab.Stage] = tab
		subs, skipped := Parse(tab, fields[tab.Stage])
		snap.subs[tab.Stage] = subs
		snap.skipped[tab.Stage] = skipped
		all = append(all, map[string]string{"\x00tab": tab.Name})
		all = append(all, tab.Records()...)
	}
	snap.Hash = core.HashRecords(all)
	return snap
}

// EmptySnapshot is served before the first successful load.
func EmptySnapshot() *Snapshot {
	return NewSnapshot(nil, nil, "", time.Time{})
}

// Submissions returns a copy of the stage's parsed submissions in row order.
func (s *Snapshot) Submissions(stage Stage) []Submission {
	return slices.Clone(s.subs[stage])
}

// Tab returns the raw tab for a stage.
func (s *Snapshot) Tab(stage Stage) (Tab, bool) {
	t, ok := s.tabs[stage]
	return t, ok
}

// Tabs returns the raw tabs in stage order.
func (s *Snapshot) Tabs() []Tab {
	var out []Tab
	for _, stage := range Stages {
		if t, ok := s.tabs[stage]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Skipped is the number of rows of a stage's tab that had no organization key.
func (s *Snapshot) Skipped(stage Stage) int {
	return s.skipped[stage]
}

// RowCount is the number of raw rows across all tabs.
func (s *Snapshot) RowCount() int {
	n := 0
	for _, t := range s.tabs {
		n += len(t.Rows)
	}
	return n
}

// IsEmpty reports whether the snapshot holds no tabs at all.
func (s *Snapshot) IsEmpty() bool {
	return len(s.tabs) == 0
}
