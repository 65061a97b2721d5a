package analysis

import (
	"github.com/montanaflynn/stats"

	"gosurvey/domain/survey"
)

// Metrics is the aggregate completion picture across the four surveys.
type Metrics struct {
	TotalOrganizations int     `json:"total_organizations"`
	CEOComplete        int     `json:"ceo_complete"`
	CEOPercent         float64 `json:"ceo_percent"`
	TechComplete       int     `json:"tech_complete"`
	TechPercent        float64 `json:"tech_percent"`
	StaffComplete      int     `json:"staff_complete"`
	StaffPercent       float64 `json:"staff_percent"`
	FullyComplete      int     `json:"fully_complete"`
	FullyPercent       float64 `json:"fully_complete_percent"`
	NotStarted         int     `json:"not_started"`
	NotStartedPercent  float64 `json:"not_started_percent"`
}

type keySet map[string]struct{}

func organizations(subs []survey.Submission) keySet {
	set := make(keySet, len(subs))
	for _, s := range subs {
		if s.Organization != "" {
			set[s.Organization] = struct{}{}
		}
	}
	return set
}

func (k keySet) has(org string) bool {
	_, ok := k[org]
	return ok
}

// ComputeMetrics counts, for every organization that submitted an intake form,
// which follow-up surveys it completed. Organizations that appear only in
// follow-up tabs are not counted anywhere.
func ComputeMetrics(snap *survey.Snapshot) Metrics {
	intake := organizations(snap.Submissions(survey.StageIntake))
	ceo := organizations(snap.Submissions(survey.StageCEO))
	tech := organizations(snap.Submissions(survey.StageTech))
	staff := organizations(snap.Submissions(survey.StageStaff))

	m := Metrics{TotalOrganizations: len(intake)}
	for org := range intake {
		inCEO, inTech, inStaff := ceo.has(org), tech.has(org), staff.has(org)
		if inCEO {
			m.CEOComplete++
		}
		if inTech {
			m.TechComplete++
		}
		if inStaff {
			m.StaffComplete++
		}
		if inCEO && inTech && inStaff {
			m.FullyComplete++
		}
		if !inCEO && !inTech && !inStaff {
			m.NotStarted++
		}
	}

	m.CEOPercent = Percent(m.CEOComplete, m.TotalOrganizations)
	m.TechPercent = Percent(m.TechComplete, m.TotalOrganizations)
	m.StaffPercent = Percent(m.StaffComplete, m.TotalOrganizations)
	m.FullyPercent = Percent(m.FullyComplete, m.TotalOrganizations)
	m.NotStartedPercent = Percent(m.NotStarted, m.TotalOrganizations)
	return m
}

// Percent is 100*count/total rounded to one decimal; an empty total yields 0.
func Percent(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	p, err := stats.Round(100*float64(count)/float64(total), 1)
	if err != nil {
		return 0
	}
	return p
}
