package survey

import (
	"fmt"
	"strings"

	"gosurvey/domain/core"
)

// Row is one spreadsheet row keyed by column header.
type Row map[string]string

// Tab is one worksheet: its header order and every data row.
type Tab struct {
	Name    string
	Stage   Stage
	Headers []string
	Rows    []Row
}

// Records returns the rows as plain maps, e.g. for hashing or persistence.
func (t Tab) Records() []map[string]string {
	out := make([]map[string]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r
	}
	return out
}

// TabFromRecords turns raw cell records into a Tab using the first record as
// the header row. Blank headers drop their column, repeated headers get a
// numeric suffix, and rows with no non-blank cell are skipped.
func TabFromRecords(name string, records [][]string) (Tab, error) {
	if len(records) == 0 {
		return Tab{}, fmt.Errorf("%w: %s", core.ErrEmptyTab, name)
	}

	headerRow := records[0]
	headers := make([]string, len(headerRow))
	used := make(map[string]bool, len(headerRow))
	var ordered []string
	for i, h := range headerRow {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			continue
		}
		name := h
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s (%d)", h, n)
		}
		used[name] = true
		headers[i] = name
		ordered = append(ordered, name)
	}
	if len(ordered) == 0 {
		return Tab{}, fmt.Errorf("%w: %s", core.ErrEmptyTab, name)
	}

	tab := Tab{Name: name, Headers: ordered}
	for _, record := range records[1:] {
		row := make(Row, len(ordered))
		blank := true
		for j, cell := range record {
			if j >= len(headers) || headers[j] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell != "" {
				blank = false
			}
			row[headers[j]] = cell
		}
		if blank {
			continue
		}
		tab.Rows = append(tab.Rows, row)
	}
	return tab, nil
}
