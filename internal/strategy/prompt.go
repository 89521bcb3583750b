package strategy

import (
	_ "embed"
	"strings"
	"time"

	"tradecase-backend/internal/intake"
)

//go:embed prompts/strategy_v1.txt
var strategyPromptV1 string

// BuildPrompt renders the generation prompt from intake fields. The output is
// deterministic for a given intake.
func BuildPrompt(in intake.CaseIntake) string {
	replacer := strings.NewReplacer(
		"{{CLIENT_NAME}}", orDefault(in.ClientName, "Not provided"),
		"{{CASE_TITLE}}", orDefault(in.CaseTitle, "Not provided"),
		"{{ISSUE_TYPE}}", string(in.IssueType),
		"{{URGENCY}}", string(in.Urgency),
		"{{AMOUNT}}", intake.FormatAmount(in.DisputedAmount),
		"{{INCIDENT_DATE}}", formatDate(in.IncidentDate),
		"{{DISCOVERY_DATE}}", formatDate(in.DiscoveryDate),
		"{{DEADLINE_DATE}}", formatDate(in.DeadlineDate),
		"{{DESCRIPTION}}", strings.TrimSpace(in.Description),
		"{{SUPPORTING_TEXT}}", truncate(strings.TrimSpace(in.SupportingText), maxSupportingChars),
	)
	return replacer.Replace(strategyPromptV1)
}

const maxSupportingChars = 12000

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return strings.TrimSpace(s)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "Not specified"
	}
	return t.UTC().Format("2 January 2006")
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
