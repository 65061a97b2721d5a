package ports

import (
	"context"
	"time"

	"gosurvey/domain/core"
	"gosurvey/domain/survey"
	"gosurvey/models"
)

// TabRepository persists the raw rows of the last published snapshot so the
// service can start while the spreadsheet is unreachable.
type TabRepository interface {
	// SaveTabs replaces every stored tab with the given ones
	SaveTabs(ctx context.Context, snapshotID core.SnapshotID, fetchedAt time.Time, tabs []survey.Tab) error
	LoadTab(ctx context.Context, stage survey.Stage) (survey.Tab, error)
	// LoadTabs returns every stored tab and the time they were fetched
	LoadTabs(ctx context.Context) ([]survey.Tab, time.Time, error)
}

// RefreshRunRepository records refresh attempts.
type RefreshRunRepository interface {
	StartRun(ctx context.Context, id core.RunID, startedAt time.Time) error
	FinishRun(ctx context.Context, run models.RefreshRun) error
	ListRuns(ctx context.Context, limit int) ([]models.RefreshRun, error)
}
