package analysis

import (
	"time"

	"gosurvey/domain/survey"
)

var fixedFetch = time.Date(2025, 10, 6, 9, 0, 0, 0, time.UTC)

// tabOf builds a tab whose rows carry an organization and an optional timestamp.
func tabOf(stage survey.Stage, rows ...[2]string) survey.Tab {
	orgCol := survey.DefaultFieldMaps()[stage].Organization[0]
	tab := survey.Tab{Name: stage.String(), Stage: stage, Headers: []string{"Timestamp", orgCol, "Name", "Email"}}
	for _, r := range rows {
		tab.Rows = append(tab.Rows, survey.Row{
			"Timestamp": r[1],
			orgCol:      r[0],
			"Name":      "Contact " + r[0],
			"Email":     "contact@" + r[0] + ".org",
		})
	}
	return tab
}

func orgs(names ...string) [][2]string {
	out := make([][2]string, len(names))
	for i, n := range names {
		out[i] = [2]string{n, ""}
	}
	return out
}

func snapshotOf(intake, ceo, tech, staff [][2]string) *survey.Snapshot {
	return survey.NewSnapshot([]survey.Tab{
		tabOf(survey.StageIntake, intake...),
		tabOf(survey.StageCEO, ceo...),
		tabOf(survey.StageTech, tech...),
		tabOf(survey.StageStaff, staff...),
	}, nil, "test", fixedFetch)
}
