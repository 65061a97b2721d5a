package db

import (
	"context"
	"time"

	"gosurvey/domain/core"
	"gosurvey/internal/errors"
	"gosurvey/models"
	"gosurvey/ports"

	"github.com/jmoiron/sqlx"
)

// RefreshRunRepositoryImpl implements ports.RefreshRunRepository with sqlx
type RefreshRunRepositoryImpl struct {
	db *sqlx.DB
}

// NewRefreshRunRepository creates a new refresh run repository
func NewRefreshRunRepository(db *sqlx.DB) ports.RefreshRunRepository {
	return &RefreshRunRepositoryImpl{db: db}
}

// StartRun records a running refresh
func (r *RefreshRunRepositoryImpl) StartRun(ctx context.Context, id core.RunID, startedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO refresh_runs (id, started_at, status) VALUES (?, ?, ?)
	`), id.String(), startedAt.UTC(), models.RunRunning)
	if err != nil {
		return errors.DatabaseError("start refresh run", err)
	}
	return nil
}

// FinishRun stores the outcome of a refresh
func (r *RefreshRunRepositoryImpl) FinishRun(ctx context.Context, run models.RefreshRun) error {
	if run.FinishedAt != nil {
		finished := run.FinishedAt.UTC()
		run.FinishedAt = &finished
	}
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE refresh_runs
		SET finished_at = :finished_at, status = :status, row_count = :row_count,
		    snapshot_hash = :snapshot_hash, error_message = :error_message
		WHERE id = :id
	`, run)
	if err != nil {
		return errors.DatabaseError("finish refresh run", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.NotFound("refresh run "+run.ID, nil)
	}
	return nil
}

// ListRuns returns the most recent runs first
func (r *RefreshRunRepositoryImpl) ListRuns(ctx context.Context, limit int) ([]models.RefreshRun, error) {
	if limit <= 0 {
		limit = 20
	}
	runs := []models.RefreshRun{}
	err := r.db.SelectContext(ctx, &runs, r.db.Rebind(`
		SELECT id, started_at, finished_at, status, row_count, snapshot_hash, error_message
		FROM refresh_runs
		ORDER BY started_at DESC
		LIMIT ?
	`), limit)
	if err != nil {
		return nil, errors.DatabaseError("list refresh runs", err)
	}
	return runs, nil
}
