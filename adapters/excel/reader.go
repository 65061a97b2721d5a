package excel

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"gosurvey/domain/core"
	"gosurvey/domain/survey"
	"gosurvey/internal/errors"
	"gosurvey/internal/logging"

	"github.com/xuri/excelize/v2"
)

// WorkbookReader reads survey tabs out of an xlsx workbook
type WorkbookReader struct {
	config Config
	client *http.Client
	logger *logging.Logger
}

// NewWorkbookReader creates a reader for the configured workbook
func NewWorkbookReader(config Config) *WorkbookReader {
	return &WorkbookReader{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logging.Default,
	}
}

// Describe names the workbook for logs and snapshot metadata
func (r *WorkbookReader) Describe() string {
	if r.config.FilePath != "" {
		return "xlsx:" + r.config.FilePath
	}
	return "xlsx:" + r.config.SheetID
}

// FetchTab reads a single worksheet
func (r *WorkbookReader) FetchTab(ctx context.Context, name string) (survey.Tab, error) {
	tabs, err := r.FetchTabs(ctx, []string{name})
	if err != nil {
		return survey.Tab{}, err
	}
	return tabs[0], nil
}

// FetchTabs opens the workbook once and reads every named worksheet in order
func (r *WorkbookReader) FetchTabs(ctx context.Context, names []string) ([]survey.Tab, error) {
	startTime := time.Now()
	f, err := r.open(ctx)
	if err != nil {
		return nil, errors.SourceUnavailable(r.Describe(), fmt.Errorf("%w: %v", core.ErrSourceUnavailable, err))
	}
	defer f.Close()
	r.logger.Debug("[WorkbookReader] workbook opened in %.2fms", float64(time.Since(startTime).Nanoseconds())/1e6)

	tabs := make([]survey.Tab, 0, len(names))
	for _, name := range names {
		if idx, _ := f.GetSheetIndex(name); idx < 0 {
			return nil, errors.SourceUnavailable("worksheet "+name, fmt.Errorf("%w: %s", core.ErrTabNotFound, name))
		}
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, errors.SourceUnavailable("worksheet "+name, fmt.Errorf("%w: %v", core.ErrSourceUnavailable, err))
		}
		tab, err := survey.TabFromRecords(name, rows)
		if err != nil {
			return nil, errors.SourceUnavailable("worksheet "+name, err)
		}
		r.logger.Debug("[WorkbookReader] %s read (%d columns, %d rows)", name, len(tab.Headers), len(tab.Rows))
		tabs = append(tabs, tab)
	}
	return tabs, nil
}

func (r *WorkbookReader) open(ctx context.Context) (*excelize.File, error) {
	if r.config.FilePath != "" {
		if _, err := os.Stat(r.config.FilePath); err != nil {
			return nil, err
		}
		return excelize.OpenFile(r.config.FilePath)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.config.ExportURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download workbook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("download workbook: http %d: %s", resp.StatusCode, body)
	}
	return excelize.OpenReader(resp.Body)
}
