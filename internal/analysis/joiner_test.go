package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gosurvey/domain/core"
	"gosurvey/domain/survey"
)

func TestBuildOrganizationReport_AllStages(t *testing.T) {
	snap := snapshotOf(orgs("Acme"), orgs("Acme"), orgs("Acme"), orgs("Acme"))

	r, err := BuildOrganizationReport(snap, "Acme")
	require.NoError(t, err)

	assert.Equal(t, StatusComplete, r.OverallStatus)
	assert.Equal(t, 100, r.CompletionPercentage)
	assert.Equal(t, 4, r.StagesComplete)
	require.Len(t, r.Contacts, 4)
	assert.Equal(t, "CEO", r.Contacts[1].Role)
	assert.Equal(t, "Technology Survey", r.Contacts[2].SurveyType)
}

func TestBuildOrganizationReport_Partial(t *testing.T) {
	snap := snapshotOf(orgs("Acme", "Beta"), orgs("Acme"), nil, orgs("Acme"))

	acme, err := BuildOrganizationReport(snap, "Acme")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, acme.OverallStatus)
	assert.Equal(t, 75, acme.CompletionPercentage)
	assert.False(t, acme.Stage(survey.StageTech).Complete)

	beta, err := BuildOrganizationReport(snap, " Beta ")
	require.NoError(t, err)
	assert.Equal(t, StatusNotStarted, beta.OverallStatus)
	assert.Equal(t, 25, beta.CompletionPercentage)
	assert.Len(t, beta.Contacts, 1)
}

func TestBuildOrganizationReport_NotFound(t *testing.T) {
	snap := snapshotOf(orgs("Acme"), orgs("Ghost"), nil, nil)

	for _, name := range []string{"Ghost", "", "acme"} {
		r, err := BuildOrganizationReport(snap, name)
		assert.Nil(t, r)
		assert.ErrorIs(t, err, core.ErrOrganizationNotFound, name)
	}
}

func TestBuildOrganizationReport_DuplicateRowsPickMostRecent(t *testing.T) {
	ceo := tabOf(survey.StageCEO,
		[2]string{"Acme", "2025-10-01"},
		[2]string{"Acme", "not a date"},
		[2]string{"Acme", "2025-10-03 14:30:00"},
		[2]string{"Acme", "2025-10-02"},
	)
	ceo.Rows[2]["Name"] = "Latest"
	snap := survey.NewSnapshot([]survey.Tab{tabOf(survey.StageIntake, orgs("Acme")...), ceo}, nil, "test", fixedFetch)

	r, err := BuildOrganizationReport(snap, "Acme")
	require.NoError(t, err)

	entry := r.Stage(survey.StageCEO)
	assert.Equal(t, "Latest", entry.Name)
	assert.Equal(t, "2025-10-03 14:30", entry.SubmittedAt)
	assert.Equal(t, 4, entry.Duplicates)
}

func TestPick_TieBreak(t *testing.T) {
	dated, _ := survey.ParseTimestamp("2025-10-01")
	tests := []struct {
		name    string
		matches []survey.Submission
		wantRow int
	}{
		{"undated ties go to earliest row", []survey.Submission{{Row: 3}, {Row: 1}, {Row: 2}}, 1},
		{"dated beats undated", []survey.Submission{{Row: 0}, {Row: 5, SubmittedAt: dated}}, 5},
		{"equal times go to earliest row", []survey.Submission{{Row: 4, SubmittedAt: dated}, {Row: 2, SubmittedAt: dated}}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pick(tt.matches)
			require.True(t, ok)
			assert.Equal(t, tt.wantRow, got.Row)
		})
	}

	_, ok := pick(nil)
	assert.False(t, ok)
}

func TestBuildStatusList(t *testing.T) {
	snap := snapshotOf(
		[][2]string{{"Gamma", "2025-09-30"}, {"Acme", "2025-09-01 10:00:00"}, {"Beta", ""}},
		orgs("Acme", "Gamma"), orgs("Acme"), orgs("Acme"),
	)

	list := BuildStatusList(snap)

	require.Len(t, list, 3)
	assert.Equal(t, OrganizationStatus{
		Organization:  "Acme",
		IntakeDate:    "2025-09-01 10:00",
		CEOStatus:     StatusComplete,
		TechStatus:    StatusComplete,
		StaffStatus:   StatusComplete,
		OverallStatus: StatusComplete,
	}, list[0])
	assert.Equal(t, "Beta", list[1].Organization)
	assert.Equal(t, StatusNotStarted, list[1].OverallStatus)
	assert.Equal(t, StatusPending, list[1].CEOStatus)
	assert.Equal(t, "Gamma", list[2].Organization)
	assert.Equal(t, "2025-09-30", list[2].IntakeDate)
	assert.Equal(t, StatusInProgress, list[2].OverallStatus)
}
