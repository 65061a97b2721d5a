package survey

import "strings"

// FieldMap names the candidate columns for each identity field of a tab.
// The first candidate present with a non-blank value wins.
type FieldMap struct {
	Organization []string
	SubmittedAt  []string
	Name         []string
	Email        []string
}

var timestampColumns = []string{"Timestamp", "Date", "Submitted At", "Submission Date"}

// DefaultFieldMaps returns the column names used by the survey forms.
func DefaultFieldMaps() map[Stage]FieldMap {
	return map[Stage]FieldMap{
		StageIntake: {
			Organization: []string{"Organization Name:", "Organization Name", "Organization"},
			SubmittedAt:  timestampColumns,
			Name:         []string{"Name:", "Contact Name", "Your Name", "Name"},
			Email:        []string{"Email:", "Contact Email", "Email Address", "Email"},
		},
		StageCEO: {
			Organization: []string{"CEO Organization", "Organization"},
			SubmittedAt:  timestampColumns,
			Name:         []string{"CEO Name", "Name"},
			Email:        []string{"CEO Email", "Email Address", "Email"},
		},
		StageTech: {
			Organization: []string{"Organization"},
			SubmittedAt:  timestampColumns,
			Name:         []string{"Tech Lead Name", "Name"},
			Email:        []string{"Tech Lead Email", "Email Address", "Email"},
		},
		StageStaff: {
			Organization: []string{"Organization"},
			SubmittedAt:  timestampColumns,
			Name:         []string{"Name"},
			Email:        []string{"Email Address", "Email"},
		},
	}
}

// lookup returns the first non-blank value among candidates and the column it came from.
func (r Row) lookup(candidates []string) (string, string) {
	for _, c := range candidates {
		if v := strings.TrimSpace(r[c]); v != "" {
			return v, c
		}
	}
	return "", ""
}

// OrganizationKey extracts the trimmed organization name of a row.
func (f FieldMap) OrganizationKey(r Row) string {
	v, _ := r.lookup(f.Organization)
	return v
}
