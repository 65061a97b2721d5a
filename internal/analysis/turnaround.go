package analysis

import (
	"github.com/montanaflynn/stats"

	"gosurvey/domain/survey"
)

// Turnaround describes how many days organizations took to submit one
// follow-up survey after their intake form.
type Turnaround struct {
	Stage      string  `json:"stage"`
	Count      int     `json:"count"`
	MedianDays float64 `json:"median_days"`
	P90Days    float64 `json:"p90_days"`
}

// ComputeTurnaround measures intake-to-follow-up delays for every follow-up
// stage. Pairs missing a parseable timestamp on either side, and follow-ups
// dated before their intake, are left out.
func ComputeTurnaround(snap *survey.Snapshot) []Turnaround {
	idx := buildIndex(snap)
	out := make([]Turnaround, 0, len(survey.FollowUps))
	for _, stage := range survey.FollowUps {
		var days stats.Float64Data
		for org := range idx[survey.StageIntake] {
			intake, _, _ := idx.lookup(survey.StageIntake, org)
			follow, _, ok := idx.lookup(stage, org)
			if !ok || !intake.HasTime() || !follow.HasTime() {
				continue
			}
			d := follow.SubmittedAt.Sub(intake.SubmittedAt).Hours() / 24
			if d < 0 {
				continue
			}
			days = append(days, d)
		}
		t := Turnaround{Stage: stage.Key(), Count: days.Len()}
		if t.Count > 0 {
			median, _ := days.Median()
			p90, err := days.Percentile(90)
			if err != nil {
				p90 = median
			}
			t.MedianDays, _ = stats.Round(median, 1)
			t.P90Days, _ = stats.Round(p90, 1)
		}
		out = append(out, t)
	}
	return out
}
