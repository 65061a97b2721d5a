package analysis

import (
	"fmt"
	"strings"
	"time"

	"gosurvey/domain/core"
	"gosurvey/domain/survey"
)

// Overall statuses of an organization across the follow-up surveys.
const (
	StatusComplete   = "complete"
	StatusInProgress = "in_progress"
	StatusNotStarted = "not_started"
	StatusPending    = "pending"
)

// StageEntry is one survey's state for one organization.
type StageEntry struct {
	Stage       string          `json:"stage"`
	SurveyType  string          `json:"survey_type"`
	Complete    bool            `json:"complete"`
	SubmittedAt string          `json:"submitted_at,omitempty"`
	Name        string          `json:"name,omitempty"`
	Email       string          `json:"email,omitempty"`
	Duplicates  int             `json:"duplicates"`
	Answers     []survey.Answer `json:"answers,omitempty"`

	submittedAt time.Time
}

// Contact is a person reachable at the organization, tagged with the survey
// they submitted.
type Contact struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	SurveyType string `json:"survey_type"`
}

// OrganizationReport is the merged view of one organization across all tabs.
type OrganizationReport struct {
	Organization         string       `json:"organization"`
	Stages               []StageEntry `json:"stages"`
	StagesComplete       int          `json:"stages_complete"`
	CompletionPercentage int          `json:"completion_percentage"`
	OverallStatus        string       `json:"overall_status"`
	Contacts             []Contact    `json:"contacts"`
}

// Stage returns the entry for one stage.
func (r *OrganizationReport) Stage(stage survey.Stage) StageEntry {
	for _, e := range r.Stages {
		if e.Stage == stage.Key() {
			return e
		}
	}
	return StageEntry{Stage: stage.Key(), SurveyType: stage.SurveyType()}
}

// BuildOrganizationReport joins the organization's row from every tab. An
// organization without an intake row is reported as core.ErrOrganizationNotFound.
func BuildOrganizationReport(snap *survey.Snapshot, organization string) (*OrganizationReport, error) {
	org := strings.TrimSpace(organization)
	idx := buildIndex(snap)
	if _, _, ok := idx.lookup(survey.StageIntake, org); org == "" || !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrOrganizationNotFound, org)
	}
	return joinOrganization(idx, org), nil
}

func joinOrganization(idx snapshotIndex, org string) *OrganizationReport {
	report := &OrganizationReport{Organization: org, Contacts: []Contact{}}
	for _, stage := range survey.Stages {
		entry := StageEntry{Stage: stage.Key(), SurveyType: stage.SurveyType()}
		if sub, n, ok := idx.lookup(stage, org); ok {
			entry.Complete = true
			entry.SubmittedAt = sub.DisplayTime()
			entry.Name = sub.Name
			entry.Email = sub.Email
			entry.Duplicates = n
			entry.Answers = sub.Answers
			entry.submittedAt = sub.SubmittedAt
			report.StagesComplete++
			report.Contacts = append(report.Contacts, Contact{
				Name:       sub.Name,
				Email:      sub.Email,
				Role:       stage.Role(),
				SurveyType: stage.SurveyType(),
			})
		}
		report.Stages = append(report.Stages, entry)
	}
	report.CompletionPercentage = report.StagesComplete * 100 / len(survey.Stages)
	report.OverallStatus = overallStatus(followUpsComplete(report))
	return report
}

func followUpsComplete(r *OrganizationReport) int {
	n := 0
	for _, stage := range survey.FollowUps {
		if r.Stage(stage).Complete {
			n++
		}
	}
	return n
}

func overallStatus(followUps int) string {
	switch {
	case followUps == len(survey.FollowUps):
		return StatusComplete
	case followUps > 0:
		return StatusInProgress
	default:
		return StatusNotStarted
	}
}
