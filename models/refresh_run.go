package models

import (
	"database/sql"
	"time"
)

// Refresh run statuses
const (
	RunRunning   = "running"
	RunSucceeded = "succeeded"
	RunFailed    = "failed"
)

// RefreshRun is one attempt to fetch the spreadsheet and publish a snapshot
type RefreshRun struct {
	ID           string         `json:"id" db:"id"`
	StartedAt    time.Time      `json:"started_at" db:"started_at"`
	FinishedAt   *time.Time     `json:"finished_at,omitempty" db:"finished_at"`
	Status       string         `json:"status" db:"status"`
	RowCount     int            `json:"row_count" db:"row_count"`
	SnapshotHash string         `json:"snapshot_hash,omitempty" db:"snapshot_hash"`
	Error        sql.NullString `json:"-" db:"error_message"`
}

// Duration is the run's wall time, zero while it is still running
func (r RefreshRun) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// ErrorMessage returns the failure reason, empty on success
func (r RefreshRun) ErrorMessage() string {
	if r.Error.Valid {
		return r.Error.String
	}
	return ""
}
