package app

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"time"

	"gosurvey/domain/core"
	"gosurvey/domain/survey"
	"gosurvey/internal/errors"
	"gosurvey/internal/logging"
	"gosurvey/internal/metrics"
	"gosurvey/models"
	"gosurvey/ports"

	"golang.org/x/sync/errgroup"
)

// State is what readers see: the served snapshot and how fresh it is.
// A published State is never modified.
type State struct {
	Snapshot      *survey.Snapshot
	Stale         bool
	FromCache     bool
	LastError     string
	LastAttemptAt time.Time
	LastSuccessAt time.Time
}

// Ready reports whether there is any snapshot to serve.
func (s *State) Ready() bool {
	return s.Snapshot != nil && !s.Snapshot.IsEmpty()
}

// SnapshotConfig controls fetching and refreshing.
type SnapshotConfig struct {
	Tabs            map[survey.Stage]string
	Fields          map[survey.Stage]survey.FieldMap
	FetchTimeout    time.Duration
	RefreshInterval time.Duration
}

// SnapshotService owns the current snapshot. Readers load it atomically; a
// refresh builds a replacement off to the side and publishes it with one store.
type SnapshotService struct {
	source ports.SheetSource
	tabs   ports.TabRepository
	runs   ports.RefreshRunRepository
	config SnapshotConfig

	state     atomic.Pointer[State]
	refreshMu sync.Mutex
	now       func() time.Time
	logger    *logging.Logger
}

// NewSnapshotService creates the service with an empty snapshot. The
// repositories are optional.
func NewSnapshotService(source ports.SheetSource, tabs ports.TabRepository, runs ports.RefreshRunRepository, config SnapshotConfig) *SnapshotService {
	if config.FetchTimeout <= 0 {
		config.FetchTimeout = 20 * time.Second
	}
	s := &SnapshotService{
		source: source,
		tabs:   tabs,
		runs:   runs,
		config: config,
		now:    time.Now,
		logger: logging.Default,
	}
	s.state.Store(&State{Snapshot: survey.EmptySnapshot()})
	return s
}

// Current returns the published state.
func (s *SnapshotService) Current() *State {
	return s.state.Load()
}

// Snapshot returns the published snapshot.
func (s *SnapshotService) Snapshot() *survey.Snapshot {
	return s.Current().Snapshot
}

// Ready implements ops.Readiness.
func (s *SnapshotService) Ready() (bool, bool, time.Time) {
	st := s.Current()
	return st.Ready(), st.Stale, st.LastSuccessAt
}

// Runs lists recent refresh attempts, newest first.
func (s *SnapshotService) Runs(ctx context.Context, limit int) ([]models.RefreshRun, error) {
	if s.runs == nil {
		return []models.RefreshRun{}, nil
	}
	return s.runs.ListRuns(ctx, limit)
}

// Refresh fetches every tab and publishes a new snapshot. When any tab fails
// the previous snapshot stays published and is marked stale. A refresh that
// starts while another is running returns core.ErrRefreshInProgress.
func (s *SnapshotService) Refresh(ctx context.Context) (*State, error) {
	if !s.refreshMu.TryLock() {
		metrics.RefreshTotal.WithLabelValues(metrics.ResultSkipped).Inc()
		return s.Current(), core.ErrRefreshInProgress
	}
	defer s.refreshMu.Unlock()

	startTime := s.now()
	timer := time.Now()
	runID := core.NewRunID()
	s.startRun(ctx, runID, startTime)

	tabs, err := s.fetchTabs(ctx)
	if err != nil {
		prev := s.Current()
		next := *prev
		next.Stale = true
		next.LastError = err.Error()
		next.LastAttemptAt = startTime
		s.publish(&next)

		metrics.RefreshTotal.WithLabelValues(metrics.ResultError).Inc()
		s.logger.Warn("[SnapshotService] refresh from %s failed, serving previous snapshot: %v", s.source.Describe(), err)
		s.finishRun(ctx, runID, models.RunFailed, prev.Snapshot, err)
		return &next, errors.Wrap(err, "refresh failed")
	}

	snap := survey.NewSnapshot(tabs, s.config.Fields, s.source.Describe(), startTime)
	next := &State{Snapshot: snap, LastAttemptAt: startTime, LastSuccessAt: startTime}
	s.publish(next)

	metrics.RefreshTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	metrics.RefreshDuration.Observe(time.Since(timer).Seconds())
	metrics.LastSuccess.Set(float64(startTime.Unix()))
	s.logger.Info("[SnapshotService] published snapshot %s (%d rows, hash %s) in %s",
		snap.ID, snap.RowCount(), snap.Hash.Short(), time.Since(timer).Round(time.Millisecond))

	if s.tabs != nil {
		if err := s.tabs.SaveTabs(ctx, snap.ID, startTime, snap.Tabs()); err != nil {
			s.logger.Error("[SnapshotService] failed to cache snapshot %s: %v", snap.ID, err)
			s.finishRun(ctx, runID, models.RunFailed, snap, err)
			return next, errors.Wrap(err, "snapshot published but not cached")
		}
	}
	s.finishRun(ctx, runID, models.RunSucceeded, snap, nil)
	return next, nil
}

// Bootstrap performs the first refresh. When it fails and the cache holds a
// previous snapshot, that snapshot is served, marked stale. It fails only
// when there is nothing to serve.
func (s *SnapshotService) Bootstrap(ctx context.Context) error {
	st, err := s.Refresh(ctx)
	if err == nil {
		return nil
	}
	if st.Ready() {
		s.logger.Warn("[SnapshotService] bootstrap: %v", err)
		return nil
	}
	if s.tabs == nil {
		return err
	}

	tabs, fetchedAt, cacheErr := s.tabs.LoadTabs(ctx)
	if cacheErr != nil {
		if !stderrors.Is(cacheErr, core.ErrNotFound) {
			s.logger.Error("[SnapshotService] failed to read cached snapshot: %v", cacheErr)
		}
		return err
	}

	snap := survey.NewSnapshot(tabs, s.config.Fields, "cache", fetchedAt)
	s.publish(&State{
		Snapshot:      snap,
		Stale:         true,
		FromCache:     true,
		LastError:     err.Error(),
		LastAttemptAt: st.LastAttemptAt,
	})
	s.logger.Warn("[SnapshotService] serving cached snapshot from %s (%d rows)", fetchedAt.Format(time.RFC3339), snap.RowCount())
	return nil
}

// Run refreshes on every tick of the refresh interval until ctx is done. A
// zero interval disables periodic refresh.
func (s *SnapshotService) Run(ctx context.Context) error {
	if s.config.RefreshInterval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}
	ticker := time.NewTicker(s.config.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.Refresh(ctx); err != nil && !stderrors.Is(err, core.ErrRefreshInProgress) {
				s.logger.Debug("[SnapshotService] periodic refresh: %v", err)
			}
		}
	}
}

func (s *SnapshotService) fetchTabs(ctx context.Context) ([]survey.Tab, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.FetchTimeout)
	defer cancel()

	stages := make([]survey.Stage, 0, len(survey.Stages))
	names := make([]string, 0, len(survey.Stages))
	for _, stage := range survey.Stages {
		name := s.config.Tabs[stage]
		if name == "" {
			name = stage.String()
		}
		stages = append(stages, stage)
		names = append(names, name)
	}

	var tabs []survey.Tab
	if wb, ok := s.source.(ports.WorkbookSource); ok {
		fetched, err := wb.FetchTabs(ctx, names)
		if err != nil {
			return nil, err
		}
		tabs = fetched
	} else {
		tabs = make([]survey.Tab, len(names))
		g, gctx := errgroup.WithContext(ctx)
		for i, name := range names {
			g.Go(func() error {
				tab, err := s.source.FetchTab(gctx, name)
				if err != nil {
					return err
				}
				tabs[i] = tab
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	for i := range tabs {
		tabs[i].Stage = stages[i]
	}
	return tabs, nil
}

func (s *SnapshotService) publish(st *State) {
	s.state.Store(st)

	if st.Stale {
		metrics.SnapshotStale.Set(1)
	} else {
		metrics.SnapshotStale.Set(0)
	}
	for _, stage := range survey.Stages {
		rows := 0
		if tab, ok := st.Snapshot.Tab(stage); ok {
			rows = len(tab.Rows)
		}
		metrics.TabRows.WithLabelValues(stage.Key()).Set(float64(rows))
		metrics.SkippedRows.WithLabelValues(stage.Key()).Set(float64(st.Snapshot.Skipped(stage)))
	}
}

func (s *SnapshotService) startRun(ctx context.Context, id core.RunID, at time.Time) {
	if s.runs == nil {
		return
	}
	if err := s.runs.StartRun(ctx, id, at); err != nil {
		s.logger.Warn("[SnapshotService] failed to record refresh run: %v", err)
	}
}

func (s *SnapshotService) finishRun(ctx context.Context, id core.RunID, status string, snap *survey.Snapshot, cause error) {
	if s.runs == nil {
		return
	}
	finished := s.now()
	run := models.RefreshRun{ID: id.String(), FinishedAt: &finished, Status: status}
	if snap != nil && status == models.RunSucceeded {
		run.RowCount = snap.RowCount()
		run.SnapshotHash = snap.Hash.String()
	}
	if cause != nil {
		run.Error.String, run.Error.Valid = cause.Error(), true
	}
	if err := s.runs.FinishRun(ctx, run); err != nil {
		s.logger.Warn("[SnapshotService] failed to record refresh outcome: %v", err)
	}
}
