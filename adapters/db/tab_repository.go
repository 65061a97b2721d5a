package db

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"gosurvey/domain/core"
	"gosurvey/domain/survey"
	"gosurvey/internal/errors"
	"gosurvey/models"
	"gosurvey/ports"

	"github.com/jmoiron/sqlx"
)

// TabRepositoryImpl implements ports.TabRepository with sqlx
type TabRepositoryImpl struct {
	db *sqlx.DB
}

// NewTabRepository creates a new tab cache repository
func NewTabRepository(db *sqlx.DB) ports.TabRepository {
	return &TabRepositoryImpl{db: db}
}

// SaveTabs replaces the cached tabs in one transaction
func (r *TabRepositoryImpl) SaveTabs(ctx context.Context, snapshotID core.SnapshotID, fetchedAt time.Time, tabs []survey.Tab) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("begin save tabs", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sheet_rows`); err != nil {
		return errors.DatabaseError("clear sheet rows", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sheet_tabs`); err != nil {
		return errors.DatabaseError("clear sheet tabs", err)
	}

	insertRow := tx.Rebind(`INSERT INTO sheet_rows (stage, position, data) VALUES (?, ?, ?)`)
	for _, tab := range tabs {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO sheet_tabs (stage, name, headers, snapshot_id, fetched_at)
			VALUES (:stage, :name, :headers, :snapshot_id, :fetched_at)
		`, models.SheetTab{
			Stage:      tab.Stage.Key(),
			Name:       tab.Name,
			Headers:    models.Headers(tab.Headers),
			SnapshotID: snapshotID.String(),
			FetchedAt:  fetchedAt.UTC(),
		})
		if err != nil {
			return errors.DatabaseError(fmt.Sprintf("save tab %s", tab.Name), err)
		}
		for i, row := range tab.Rows {
			if _, err := tx.ExecContext(ctx, insertRow, tab.Stage.Key(), i, models.RowData(row)); err != nil {
				return errors.DatabaseError(fmt.Sprintf("save row %d of %s", i, tab.Name), err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("commit save tabs", err)
	}
	return nil
}

// LoadTab returns one cached tab
func (r *TabRepositoryImpl) LoadTab(ctx context.Context, stage survey.Stage) (survey.Tab, error) {
	var meta models.SheetTab
	err := r.db.GetContext(ctx, &meta, r.db.Rebind(`
		SELECT stage, name, headers, snapshot_id, fetched_at FROM sheet_tabs WHERE stage = ?
	`), stage.Key())
	if stderrors.Is(err, sql.ErrNoRows) {
		return survey.Tab{}, errors.NotFound("cached tab "+stage.String(), core.ErrTabNotFound)
	}
	if err != nil {
		return survey.Tab{}, errors.DatabaseError("load tab "+stage.String(), err)
	}
	return r.loadRows(ctx, stage, meta)
}

// LoadTabs returns every cached tab in stage order
func (r *TabRepositoryImpl) LoadTabs(ctx context.Context) ([]survey.Tab, time.Time, error) {
	var metas []models.SheetTab
	if err := r.db.SelectContext(ctx, &metas, `
		SELECT stage, name, headers, snapshot_id, fetched_at FROM sheet_tabs
	`); err != nil {
		return nil, time.Time{}, errors.DatabaseError("load tabs", err)
	}
	if len(metas) == 0 {
		return nil, time.Time{}, errors.NotFound("cached snapshot", core.ErrSnapshotNotFound)
	}

	byStage := make(map[survey.Stage]models.SheetTab, len(metas))
	for _, m := range metas {
		if stage, ok := survey.ParseStage(m.Stage); ok {
			byStage[stage] = m
		}
	}

	var (
		tabs      []survey.Tab
		fetchedAt time.Time
	)
	for _, stage := range survey.Stages {
		meta, ok := byStage[stage]
		if !ok {
			continue
		}
		tab, err := r.loadRows(ctx, stage, meta)
		if err != nil {
			return nil, time.Time{}, err
		}
		tabs = append(tabs, tab)
		if meta.FetchedAt.After(fetchedAt) {
			fetchedAt = meta.FetchedAt
		}
	}
	return tabs, fetchedAt, nil
}

func (r *TabRepositoryImpl) loadRows(ctx context.Context, stage survey.Stage, meta models.SheetTab) (survey.Tab, error) {
	var rows []models.SheetRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(`
		SELECT stage, position, data FROM sheet_rows WHERE stage = ? ORDER BY position
	`), stage.Key()); err != nil {
		return survey.Tab{}, errors.DatabaseError("load rows of "+meta.Name, err)
	}

	tab := survey.Tab{Name: meta.Name, Stage: stage, Headers: []string(meta.Headers)}
	for _, row := range rows {
		tab.Rows = append(tab.Rows, survey.Row(row.Data))
	}
	return tab, nil
}
