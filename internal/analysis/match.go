package analysis

import "gosurvey/domain/survey"

// pick resolves several rows for one organization in one tab: the most recent
// parseable timestamp wins, rows without one rank below every dated row, and
// remaining ties go to the earliest row.
func pick(matches []survey.Submission) (survey.Submission, bool) {
	if len(matches) == 0 {
		return survey.Submission{}, false
	}
	best := matches[0]
	for _, m := range matches[1:] {
		if newer(m, best) {
			best = m
		}
	}
	return best, true
}

func newer(a, b survey.Submission) bool {
	switch {
	case a.HasTime() && !b.HasTime():
		return true
	case !a.HasTime() && b.HasTime():
		return false
	case a.HasTime() && b.HasTime() && !a.SubmittedAt.Equal(b.SubmittedAt):
		return a.SubmittedAt.After(b.SubmittedAt)
	default:
		return a.Row < b.Row
	}
}

// index groups a stage's submissions by organization.
type index map[string][]survey.Submission

func indexByOrganization(subs []survey.Submission) index {
	idx := make(index)
	for _, s := range subs {
		idx[s.Organization] = append(idx[s.Organization], s)
	}
	return idx
}

// snapshotIndex is every stage's index, built once per call.
type snapshotIndex map[survey.Stage]index

func buildIndex(snap *survey.Snapshot) snapshotIndex {
	out := make(snapshotIndex, len(survey.Stages))
	for _, stage := range survey.Stages {
		out[stage] = indexByOrganization(snap.Submissions(stage))
	}
	return out
}

func (si snapshotIndex) lookup(stage survey.Stage, org string) (survey.Submission, int, bool) {
	matches := si[stage][org]
	sub, ok := pick(matches)
	return sub, len(matches), ok
}
