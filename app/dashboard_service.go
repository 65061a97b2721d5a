package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gosurvey/domain/core"
	"gosurvey/domain/survey"
	"gosurvey/internal/analysis"
	"gosurvey/internal/errors"
	"gosurvey/internal/report"
	"gosurvey/internal/usage"
	"gosurvey/models"

	"golang.org/x/sync/singleflight"
)

// StateProvider exposes the published snapshot state
type StateProvider interface {
	Current() *State
	Runs(ctx context.Context, limit int) ([]models.RefreshRun, error)
}

// Freshness describes the served snapshot
type Freshness struct {
	SnapshotID    string    `json:"snapshot_id"`
	FetchedAt     time.Time `json:"fetched_at"`
	Source        string    `json:"source"`
	Stale         bool      `json:"stale"`
	FromCache     bool      `json:"from_cache"`
	LastError     string    `json:"last_error,omitempty"`
	LastAttemptAt time.Time `json:"last_attempt_at"`
	LastSuccessAt time.Time `json:"last_success_at"`
}

// DashboardView is everything the landing page shows
type DashboardView struct {
	Freshness  Freshness                `json:"freshness"`
	Metrics    analysis.Metrics         `json:"metrics"`
	Activity   []analysis.ActivityEntry `json:"activity"`
	Insights   []report.Insight         `json:"insights"`
	Turnaround []analysis.Turnaround    `json:"turnaround"`
}

// OrganizationView is the per-organization report page
type OrganizationView struct {
	Freshness Freshness                    `json:"freshness"`
	Report    *analysis.OrganizationReport `json:"report"`
	Summary   string                       `json:"summary"`
}

// TabStatus summarizes one tab of the served snapshot
type TabStatus struct {
	Stage   string `json:"stage"`
	Name    string `json:"name"`
	Rows    int    `json:"rows"`
	Skipped int    `json:"skipped"`
}

// StatusView is the refresh and cache status
type StatusView struct {
	Freshness Freshness           `json:"freshness"`
	Hash      string              `json:"hash"`
	Tabs      []TabStatus         `json:"tabs"`
	Runs      []models.RefreshRun `json:"runs"`
	LLMUsage  *usage.Summary      `json:"llm_usage,omitempty"`
}

// Activity feed limits
const (
	DefaultActivityLimit = analysis.ActivityPageLimit
	MaxActivityLimit     = 100
)

// InsightTimeout bounds the summarizer calls for one snapshot's insights
const InsightTimeout = 30 * time.Second

// DashboardService answers read requests from the published snapshot. Insight
// text is computed once per snapshot.
type DashboardService struct {
	states    StateProvider
	assembler *report.Assembler
	usage     *usage.Tracker

	mu       sync.Mutex
	cachedID core.SnapshotID
	cached   []report.Insight
	group    singleflight.Group
}

// NewDashboardService creates a dashboard service
func NewDashboardService(states StateProvider, assembler *report.Assembler) *DashboardService {
	return &DashboardService{states: states, assembler: assembler}
}

func freshness(st *State) Freshness {
	return Freshness{
		SnapshotID:    st.Snapshot.ID.String(),
		FetchedAt:     st.Snapshot.FetchedAt,
		Source:        st.Snapshot.Source,
		Stale:         st.Stale,
		FromCache:     st.FromCache,
		LastError:     st.LastError,
		LastAttemptAt: st.LastAttemptAt,
		LastSuccessAt: st.LastSuccessAt,
	}
}

// Dashboard builds the landing page view
func (s *DashboardService) Dashboard(ctx context.Context) DashboardView {
	st := s.states.Current()
	return DashboardView{
		Freshness:  freshness(st),
		Metrics:    analysis.ComputeMetrics(st.Snapshot),
		Activity:   analysis.BuildActivityFeed(st.Snapshot, analysis.DashboardActivityLimit),
		Insights:   s.insights(ctx, st.Snapshot),
		Turnaround: analysis.ComputeTurnaround(st.Snapshot),
	}
}

// WithUsage reports summarizer token usage on the status view
func (s *DashboardService) WithUsage(tracker *usage.Tracker) *DashboardService {
	s.usage = tracker
	return s
}

// Freshness describes the currently served snapshot
func (s *DashboardService) Freshness() Freshness {
	return freshness(s.states.Current())
}

// Metrics returns the aggregate completion metrics
func (s *DashboardService) Metrics() analysis.Metrics {
	return analysis.ComputeMetrics(s.states.Current().Snapshot)
}

// Organizations returns the status list
func (s *DashboardService) Organizations() []analysis.OrganizationStatus {
	return analysis.BuildStatusList(s.states.Current().Snapshot)
}

// Organization returns one organization's report
func (s *DashboardService) Organization(ctx context.Context, name string) (*OrganizationView, error) {
	st := s.states.Current()
	r, err := analysis.BuildOrganizationReport(st.Snapshot, name)
	if err != nil {
		return nil, errors.NotFound(fmt.Sprintf("organization %q", name), err)
	}
	return &OrganizationView{
		Freshness: freshness(st),
		Report:    r,
		Summary:   s.assembler.OrganizationSummary(ctx, r),
	}, nil
}

// Activity returns the newest limit entries; limit is clamped to
// [1, MaxActivityLimit] and defaults to DefaultActivityLimit.
func (s *DashboardService) Activity(limit int) []analysis.ActivityEntry {
	switch {
	case limit <= 0:
		limit = DefaultActivityLimit
	case limit > MaxActivityLimit:
		limit = MaxActivityLimit
	}
	return analysis.BuildActivityFeed(s.states.Current().Snapshot, limit)
}

// Insights returns the insight fragments of the current snapshot
func (s *DashboardService) Insights(ctx context.Context) []report.Insight {
	return s.insights(ctx, s.states.Current().Snapshot)
}

// Status returns freshness, per-tab counts and recent refresh runs
func (s *DashboardService) Status(ctx context.Context) (*StatusView, error) {
	st := s.states.Current()
	runs, err := s.states.Runs(ctx, 20)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list refresh runs")
	}
	view := &StatusView{
		Freshness: freshness(st),
		Hash:      st.Snapshot.Hash.String(),
		Tabs:      []TabStatus{},
		Runs:      runs,
	}
	if s.usage != nil {
		total := s.usage.Total()
		view.LLMUsage = &total
	}
	for _, tab := range st.Snapshot.Tabs() {
		view.Tabs = append(view.Tabs, TabStatus{
			Stage:   tab.Stage.Key(),
			Name:    tab.Name,
			Rows:    len(tab.Rows),
			Skipped: st.Snapshot.Skipped(tab.Stage),
		})
	}
	return view, nil
}

func (s *DashboardService) insights(ctx context.Context, snap *survey.Snapshot) []report.Insight {
	s.mu.Lock()
	if s.cachedID == snap.ID && s.cached != nil {
		out := s.cached
		s.mu.Unlock()
		return out
	}
	s.mu.Unlock()

	// The result is shared by every caller of this snapshot, so it must not
	// depend on the first caller's cancellation.
	v, _, _ := s.group.Do(snap.ID.String(), func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), InsightTimeout)
		defer cancel()
		insights := s.assembler.Insights(ctx, analysis.ComputeMetrics(snap), analysis.ComputeTurnaround(snap))
		s.mu.Lock()
		s.cachedID, s.cached = snap.ID, insights
		s.mu.Unlock()
		return insights, nil
	})
	return v.([]report.Insight)
}
