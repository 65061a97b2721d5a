// Package sheets reads Google Sheets worksheets through the public CSV export.
package sheets

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gosurvey/domain/core"
	"gosurvey/domain/survey"
	"gosurvey/internal/errors"
	"gosurvey/internal/logging"
)

// Config identifies the spreadsheet
type Config struct {
	SheetID string
	BaseURL string
	Timeout time.Duration
}

// CSVReader fetches one worksheet per request as CSV
type CSVReader struct {
	config Config
	client *http.Client
	logger *logging.Logger
}

// NewCSVReader creates a reader for the configured spreadsheet
func NewCSVReader(config Config) *CSVReader {
	return &CSVReader{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logging.Default,
	}
}

// Describe names the spreadsheet for logs and snapshot metadata
func (r *CSVReader) Describe() string {
	return "gsheet:" + r.config.SheetID
}

// TabURL is the CSV export address of one worksheet
func (r *CSVReader) TabURL(name string) string {
	q := url.Values{}
	q.Set("tqx", "out:csv")
	q.Set("sheet", name)
	return strings.TrimRight(r.config.BaseURL, "/") + "/" + url.PathEscape(r.config.SheetID) + "/gviz/tq?" + q.Encode()
}

// FetchTab downloads and parses one worksheet
func (r *CSVReader) FetchTab(ctx context.Context, name string) (survey.Tab, error) {
	startTime := time.Now()
	records, err := r.download(ctx, name)
	if err != nil {
		return survey.Tab{}, errors.SourceUnavailable("worksheet "+name, fmt.Errorf("%w: %v", core.ErrSourceUnavailable, err))
	}
	tab, err := survey.TabFromRecords(name, records)
	if err != nil {
		return survey.Tab{}, errors.SourceUnavailable("worksheet "+name, err)
	}
	r.logger.Debug("[CSVReader] %s fetched in %.2fms (%d columns, %d rows)",
		name, float64(time.Since(startTime).Nanoseconds())/1e6, len(tab.Headers), len(tab.Rows))
	return tab, nil
}

func (r *CSVReader) download(ctx context.Context, name string) ([][]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.TabURL(name), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	// A private or missing sheet answers 200 with a sign-in page.
	if ct := resp.Header.Get("Content-Type"); strings.HasPrefix(ct, "text/html") {
		return nil, fmt.Errorf("unexpected content type %q", ct)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return records, nil
}
