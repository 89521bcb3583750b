package intake

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// IssueType classifies the dispute described by an intake.
type IssueType string

const (
	IssuePaymentDispute IssueType = "payment_dispute"
	IssueContractBreach IssueType = "contract_breach"
	IssueDefectiveWork  IssueType = "defective_work"
	IssueScopeChange    IssueType = "scope_change"
	IssueDelayClaim     IssueType = "delay_claim"
	IssueWarranty       IssueType = "warranty"
	IssueLicensing      IssueType = "licensing"
	IssueSafety         IssueType = "safety"
	IssueOther          IssueType = "other"
)

// Urgency ranks how quickly a case needs attention.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// CaseIntake captures the client-supplied facts used to generate strategy
// content. It is immutable once submitted.
type CaseIntake struct {
	ClientName     string     `json:"clientName"`
	ClientEmail    string     `json:"clientEmail"`
	CaseTitle      string     `json:"caseTitle"`
	IssueType      IssueType  `json:"issueType"`
	Description    string     `json:"description"`
	DisputedAmount *float64   `json:"disputedAmount,omitempty"`
	Urgency        Urgency    `json:"urgency"`
	IncidentDate   *time.Time `json:"incidentDate,omitempty"`
	DiscoveryDate  *time.Time `json:"discoveryDate,omitempty"`
	DeadlineDate   *time.Time `json:"deadlineDate,omitempty"`
	SupportingText string     `json:"supportingText,omitempty"`
}

// Validate checks the required intake fields. Unknown issue types are
// normalized to "other" rather than rejected.
func (i *CaseIntake) Validate() error {
	if strings.TrimSpace(i.Description) == "" {
		return errors.New("description is required")
	}
	i.IssueType = NormalizeIssueType(string(i.IssueType))
	i.Urgency = NormalizeUrgency(string(i.Urgency))
	return nil
}

// NormalizeIssueType maps a raw value onto the known categories, falling back
// to "other" for anything unrecognized.
func NormalizeIssueType(raw string) IssueType {
	switch IssueType(strings.ToLower(strings.TrimSpace(raw))) {
	case IssuePaymentDispute, IssueContractBreach, IssueDefectiveWork,
		IssueScopeChange, IssueDelayClaim, IssueWarranty,
		IssueLicensing, IssueSafety:
		return IssueType(strings.ToLower(strings.TrimSpace(raw)))
	default:
		return IssueOther
	}
}

// NormalizeUrgency maps a raw value onto the known levels, defaulting to medium.
func NormalizeUrgency(raw string) Urgency {
	switch Urgency(strings.ToLower(strings.TrimSpace(raw))) {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return Urgency(strings.ToLower(strings.TrimSpace(raw)))
	default:
		return UrgencyMedium
	}
}

// IssueLabel returns a human-readable label for the issue type.
func IssueLabel(t IssueType) string {
	switch t {
	case IssuePaymentDispute:
		return "Payment Dispute"
	case IssueContractBreach:
		return "Contract Breach"
	case IssueDefectiveWork:
		return "Defective Work Claim"
	case IssueScopeChange:
		return "Scope Change Dispute"
	case IssueDelayClaim:
		return "Delay Claim"
	case IssueWarranty:
		return "Warranty Dispute"
	case IssueLicensing:
		return "Licensing Matter"
	case IssueSafety:
		return "Safety Compliance Matter"
	default:
		return "General Dispute"
	}
}

// AmountUndetermined is rendered wherever a disputed amount was not supplied.
const AmountUndetermined = "Amount to be determined"

// FormatAmount renders a disputed amount with a dollar prefix and thousands
// separators, or the explicit placeholder when unset. Never "0" or "null".
func FormatAmount(amount *float64) string {
	if amount == nil || *amount <= 0 {
		return AmountUndetermined
	}

	whole := int64(math.Floor(*amount))
	cents := int64(math.Round((*amount - float64(whole)) * 100))
	if cents >= 100 {
		whole++
		cents -= 100
	}

	grouped := groupThousands(whole)
	if cents > 0 {
		return fmt.Sprintf("$%s.%02d", grouped, cents)
	}
	return "$" + grouped
}

func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
