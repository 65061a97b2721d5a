package survey

import "strings"

// Stage is one completion stage; each stage is backed by one spreadsheet tab.
type Stage int

const (
	StageIntake Stage = iota
	StageCEO
	StageTech
	StageStaff
)

// Stages lists every stage in pipeline order.
var Stages = []Stage{StageIntake, StageCEO, StageTech, StageStaff}

// FollowUps lists the surveys an organization completes after intake.
var FollowUps = []Stage{StageCEO, StageTech, StageStaff}

type stageInfo struct {
	name        string
	key         string
	surveyType  string
	role        string
	activity    string
	description string
}

var stageInfos = map[Stage]stageInfo{
	StageIntake: {
		name:        "Intake",
		key:         "intake",
		surveyType:  "Intake Form",
		role:        "Primary Contact",
		activity:    "Intake Submitted",
		description: "Organization registered and completed the intake form",
	},
	StageCEO: {
		name:        "CEO",
		key:         "ceo",
		surveyType:  "CEO Survey",
		role:        "CEO",
		activity:    "CEO Survey Completed",
		description: "Executive leadership survey submitted",
	},
	StageTech: {
		name:        "Tech",
		key:         "tech",
		surveyType:  "Technology Survey",
		role:        "Technology Lead",
		activity:    "Tech Survey Completed",
		description: "Technology infrastructure survey submitted",
	},
	StageStaff: {
		name:        "Staff",
		key:         "staff",
		surveyType:  "Staff Survey",
		role:        "Staff Member",
		activity:    "Staff Survey Completed",
		description: "Staff experience survey submitted",
	},
}

func (s Stage) String() string {
	if info, ok := stageInfos[s]; ok {
		return info.name
	}
	return "Unknown"
}

// Key is the lower-case identifier used in JSON payloads and URLs.
func (s Stage) Key() string { return stageInfos[s].key }

// SurveyType is the human label of the survey behind the stage.
func (s Stage) SurveyType() string { return stageInfos[s].surveyType }

// Role is the contact role of whoever submits the stage's survey.
func (s Stage) Role() string { return stageInfos[s].role }

// ActivityLabel labels the stage's rows in the activity feed.
func (s Stage) ActivityLabel() string { return stageInfos[s].activity }

// Description is the static activity description for the stage.
func (s Stage) Description() string { return stageInfos[s].description }

// ParseStage accepts a stage name or key, case-insensitively.
func ParseStage(v string) (Stage, bool) {
	v = strings.TrimSpace(v)
	for _, s := range Stages {
		if strings.EqualFold(v, s.String()) || strings.EqualFold(v, s.Key()) {
			return s, true
		}
	}
	return 0, false
}
