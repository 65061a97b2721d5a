package excel

import "time"

// Config locates a survey workbook: a local file, or a Google Sheets
// spreadsheet downloaded in xlsx format.
type Config struct {
	FilePath string
	SheetID  string
	BaseURL  string
	Timeout  time.Duration
}

// ExportURL is the xlsx download address of the spreadsheet.
func (c Config) ExportURL() string {
	return trimSlash(c.BaseURL) + "/" + c.SheetID + "/export?format=xlsx"
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
