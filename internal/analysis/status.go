package analysis

import (
	"sort"

	"gosurvey/domain/survey"
)

// OrganizationStatus is one line of the organization status list.
type OrganizationStatus struct {
	Organization  string `json:"organization"`
	IntakeDate    string `json:"intake_date"`
	CEOStatus     string `json:"ceo_status"`
	TechStatus    string `json:"tech_status"`
	StaffStatus   string `json:"staff_status"`
	OverallStatus string `json:"overall_status"`
}

// BuildStatusList returns one status line per distinct intake organization,
// ordered by organization name.
func BuildStatusList(snap *survey.Snapshot) []OrganizationStatus {
	idx := buildIndex(snap)

	orgs := make([]string, 0, len(idx[survey.StageIntake]))
	for org := range idx[survey.StageIntake] {
		orgs = append(orgs, org)
	}
	sort.Strings(orgs)

	out := make([]OrganizationStatus, 0, len(orgs))
	for _, org := range orgs {
		report := joinOrganization(idx, org)
		out = append(out, OrganizationStatus{
			Organization:  org,
			IntakeDate:    report.Stage(survey.StageIntake).SubmittedAt,
			CEOStatus:     stageStatus(report, survey.StageCEO),
			TechStatus:    stageStatus(report, survey.StageTech),
			StaffStatus:   stageStatus(report, survey.StageStaff),
			OverallStatus: report.OverallStatus,
		})
	}
	return out
}

func stageStatus(r *OrganizationReport, stage survey.Stage) string {
	if r.Stage(stage).Complete {
		return StatusComplete
	}
	return StatusPending
}
