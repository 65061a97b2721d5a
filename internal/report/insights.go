package report

import (
	"context"
	"fmt"
	"strings"

	"gosurvey/internal/analysis"
)

// Insight dimensions
const (
	DimensionParticipation = "participation"
	DimensionCEO           = "ceo_engagement"
	DimensionTechnology    = "technology"
	DimensionStaff         = "staff_voice"
	DimensionPipeline      = "pipeline"
)

// Insight is one short narrative fragment about the cohort.
type Insight struct {
	Dimension string `json:"dimension"`
	Title     string `json:"title"`
	Text      string `json:"text"`
}

// Paragraphs derives the full-length narrative for every dimension from the
// completion metrics and turnaround statistics.
func Paragraphs(m analysis.Metrics, turnaround []analysis.Turnaround) []Insight {
	if m.TotalOrganizations == 0 {
		return []Insight{{
			Dimension: DimensionParticipation,
			Title:     "Participation",
			Text:      "No organizations have submitted the intake form yet, so there is no survey participation to report.",
		}}
	}
	return []Insight{
		{DimensionParticipation, "Participation", participation(m)},
		{DimensionCEO, "CEO engagement", followUp("CEO survey", "Executive engagement", m.CEOComplete, m.CEOPercent, m.TotalOrganizations)},
		{DimensionTechnology, "Technology", followUp("technology survey", "Technology assessment coverage", m.TechComplete, m.TechPercent, m.TotalOrganizations)},
		{DimensionStaff, "Staff voice", followUp("staff survey", "Staff representation", m.StaffComplete, m.StaffPercent, m.TotalOrganizations)},
		{DimensionPipeline, "Pipeline", pipeline(turnaround)},
	}
}

func participation(m analysis.Metrics) string {
	return fmt.Sprintf(
		"%d organizations have completed intake. %d (%.1f%%) have finished all three follow-up surveys, while %d (%.1f%%) have not started any follow-up survey yet.",
		m.TotalOrganizations, m.FullyComplete, m.FullyPercent, m.NotStarted, m.NotStartedPercent,
	)
}

func followUp(survey, subject string, count int, percent float64, total int) string {
	var verdict string
	switch {
	case percent >= 75:
		verdict = "is strong across the cohort."
	case percent >= 40:
		verdict = "is moderate; targeted reminders to the remaining organizations would close the gap."
	case count > 0:
		verdict = "is lagging and should be the first priority for follow-up outreach."
	default:
		verdict = "has not begun; no organization has submitted this survey."
	}
	return fmt.Sprintf("%d of %d organizations (%.1f%%) completed the %s. %s %s", count, total, percent, survey, subject, verdict)
}

func pipeline(turnaround []analysis.Turnaround) string {
	var parts []string
	for _, t := range turnaround {
		if t.Count == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %.1f days (p90 %.1f, n=%d)", t.Stage, t.MedianDays, t.P90Days, t.Count))
	}
	if len(parts) == 0 {
		return "There are not enough dated submissions yet to measure how long organizations take to move from intake to the follow-up surveys."
	}
	return "Median time from intake to each follow-up survey: " + strings.Join(parts, "; ") + "."
}

// Insights shortens every paragraph to the assembler's band.
func (a *Assembler) Insights(ctx context.Context, m analysis.Metrics, turnaround []analysis.Turnaround) []Insight {
	paragraphs := Paragraphs(m, turnaround)
	out := make([]Insight, len(paragraphs))
	for i, p := range paragraphs {
		p.Text = a.Shorten(ctx, p.Dimension, p.Text)
		out[i] = p
	}
	return out
}

// OrganizationSummary is a markdown paragraph describing one organization's
// progress, shortened to the assembler's band.
func (a *Assembler) OrganizationSummary(ctx context.Context, r *analysis.OrganizationReport) string {
	var done, pending []string
	for _, e := range r.Stages {
		if e.Complete {
			done = append(done, e.SurveyType)
		} else {
			pending = append(pending, e.SurveyType)
		}
	}
	text := fmt.Sprintf("**%s** has completed %d of %d surveys (%d%%).", EscapeMarkdown(r.Organization), r.StagesComplete, len(r.Stages), r.CompletionPercentage)
	if len(pending) > 0 {
		text += " Still pending: " + strings.Join(pending, ", ") + "."
	} else {
		text += " Every survey is in."
	}
	if len(done) > 0 && len(pending) > 0 {
		text += " Received: " + strings.Join(done, ", ") + "."
	}
	return a.Shorten(ctx, "organization", text)
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`,
	"(", `\(`, ")", `\)`, "<", `\<`, ">", `\>`, "!", `\!`, "~", `\~`, "|", `\|`,
)

// EscapeMarkdown makes free text render literally inside markdown.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
