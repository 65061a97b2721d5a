package survey

import (
	"strings"
	"time"
)

// Answer is one question/answer pair of a submission, in column order.
type Answer struct {
	Question string `json:"question"`
	Value    string `json:"value"`
}

// Submission is a parsed tab row: one organization's response to one survey.
type Submission struct {
	Stage        Stage
	Row          int // position within the tab, zero-based
	Organization string
	SubmittedAt  time.Time // zero when RawDate is empty or unparseable
	DateOnly     bool
	RawDate      string
	Name         string
	Email        string
	Answers      []Answer
}

// HasTime reports whether the submission carries a parseable timestamp.
func (s Submission) HasTime() bool {
	return !s.SubmittedAt.IsZero()
}

// DisplayTime renders the submission time for listings: the date alone for
// date-only values, minute precision otherwise, and the first 16 characters of
// the raw cell when it could not be parsed.
func (s Submission) DisplayTime() string {
	if !s.HasTime() {
		if raw := []rune(s.RawDate); len(raw) > 16 {
			return string(raw[:16])
		}
		return s.RawDate
	}
	if s.DateOnly {
		return s.SubmittedAt.Format("2006-01-02")
	}
	return s.SubmittedAt.Format("2006-01-02 15:04")
}

// Google Forms writes "1/2/2006 15:04:05"; hand-entered rows use ISO dates.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04:05 PM",
}

var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseTimestamp parses a spreadsheet date cell. The boolean result reports a
// date-only value. Unparseable input yields the zero time.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, false
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Parse converts a tab's rows into submissions. Rows without an organization
// key are not submissions; their count is returned as skipped.
func Parse(tab Tab, fields FieldMap) (subs []Submission, skipped int) {
	for i, row := range tab.Rows {
		org, orgCol := row.lookup(fields.Organization)
		if org == "" {
			skipped++
			continue
		}
		rawDate, dateCol := row.lookup(fields.SubmittedAt)
		name, nameCol := row.lookup(fields.Name)
		email, emailCol := row.lookup(fields.Email)

		sub := Submission{
			Stage:        tab.Stage,
			Row:          i,
			Organization: org,
			RawDate:      rawDate,
			Name:         name,
			Email:        email,
		}
		sub.SubmittedAt, sub.DateOnly = ParseTimestamp(rawDate)

		identity := map[string]bool{orgCol: true, dateCol: true, nameCol: true, emailCol: true}
		for _, h := range tab.Headers {
			if identity[h] {
				continue
			}
			if v := row[h]; v != "" {
				sub.Answers = append(sub.Answers, Answer{Question: h, Value: v})
			}
		}
		subs = append(subs, sub)
	}
	return subs, skipped
}
