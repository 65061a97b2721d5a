package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// RowData is a spreadsheet row stored as a JSON object column
type RowData map[string]string

// Value implements driver.Valuer interface
func (r RowData) Value() (driver.Value, error) {
	if r == nil {
		return "{}", nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner interface
func (r *RowData) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*r = RowData{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported row data type %T", value)
	}
	if len(raw) == 0 {
		*r = RowData{}
		return nil
	}
	result := make(RowData)
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*r = result
	return nil
}

// Headers is the ordered header list of a tab, stored as a JSON array column
type Headers []string

// Value implements driver.Valuer interface
func (h Headers) Value() (driver.Value, error) {
	if h == nil {
		return "[]", nil
	}
	b, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner interface
func (h *Headers) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*h = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported headers type %T", value)
	}
	if len(raw) == 0 {
		*h = nil
		return nil
	}
	return json.Unmarshal(raw, (*[]string)(h))
}

// SheetTab is the cached copy of one worksheet
type SheetTab struct {
	Stage      string    `db:"stage"`
	Name       string    `db:"name"`
	Headers    Headers   `db:"headers"`
	SnapshotID string    `db:"snapshot_id"`
	FetchedAt  time.Time `db:"fetched_at"`
}

// SheetRow is one cached worksheet row
type SheetRow struct {
	Stage    string  `db:"stage"`
	Position int     `db:"position"`
	Data     RowData `db:"data"`
}
