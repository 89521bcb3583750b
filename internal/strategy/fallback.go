package strategy

import (
	"fmt"
	"strings"

	"tradecase-backend/internal/intake"
)

// FallbackContent builds the fixed content object used when the model is
// unavailable. Every field is templated deterministically from the intake so
// the pipeline can always progress.
func FallbackContent(in intake.CaseIntake) GeneratedContent {
	amount := intake.FormatAmount(in.DisputedAmount)
	label := intake.IssueLabel(in.IssueType)

	welcome := fmt.Sprintf(
		"Welcome, and thank you for providing the details of your %s (%s). Based on the disputed amount of %s, we have prepared an initial action plan while your case is assigned to a caseworker.",
		strings.ToLower(label), in.IssueType, amount,
	)

	analysis := fmt.Sprintf(
		"Your matter has been categorized as a %s with %s urgency. The disputed amount on record is %s. "+
			"A caseworker will review the description you provided and the documents you uploaded before confirming the legal position. "+
			"In the meantime, the steps below preserve your rights and keep evidence intact. %s",
		strings.ToLower(label), in.Urgency, amount, fallbackAnalysisNote(in.IssueType),
	)

	content := GeneratedContent{
		WelcomeMessage: welcome,
		Analysis:       analysis,
		Steps: []ActionStep{
			{Step: 1, Title: "Gather your records", Description: "Collect contracts, quotes, variations, invoices, photos and all correspondence relating to the dispute.", Timeframe: "1-2 days", Priority: "high"},
			{Step: 2, Title: "Write a dated summary", Description: "Record what happened in date order while it is fresh, including names of everyone involved.", Timeframe: "1 day", Priority: "high"},
			{Step: 3, Title: "Stop informal negotiation in writing only", Description: "Keep any further contact with the other party in writing; do not agree to variations verbally.", Timeframe: "ongoing", Priority: "medium"},
			{Step: 4, Title: "Await caseworker contact", Description: "A caseworker will confirm the recommended legal pathway and any formal notices required.", Timeframe: "2-3 business days", Priority: "medium"},
		},
		Timeline: []TimelineEntry{
			{Label: "Day 1", Milestone: "Case received and intake recorded"},
			{Label: "Day 3", Milestone: "Caseworker review of your documents"},
			{Label: "Day 7", Milestone: "Confirmed strategy and formal next step issued", Deadline: in.DeadlineDate != nil},
		},
		Assessment: CostAssessment{
			SuccessProbability: "To be assessed",
			EstimatedCost:      "To be confirmed after review",
			CostBasis:          "Depends on the formal pathway required",
		},
		NextSteps: []string{
			"Upload any missing documents to your case file",
			"Confirm your preferred contact details",
		},
		Fallback: true,
	}
	return content
}

func fallbackAnalysisNote(t intake.IssueType) string {
	switch t {
	case intake.IssuePaymentDispute:
		return "For unpaid work, statutory security-of-payment adjudication is often the fastest route to a binding decision."
	case intake.IssueDefectiveWork:
		return "For defect allegations, an independent inspection report is usually the decisive piece of evidence."
	case intake.IssueDelayClaim:
		return "For delay claims, contemporaneous site records and notices drive the outcome."
	default:
		return "Formal written notice to the other party is usually the first required step."
	}
}
