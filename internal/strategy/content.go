package strategy

import (
	"errors"
	"fmt"
	"strings"
)

// ActionStep is one entry of the recommended action plan.
type ActionStep struct {
	Step        int    `json:"step"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Timeframe   string `json:"timeframe"`
	Priority    string `json:"priority"`
}

// TimelineEntry is one milestone on the case timeline. Label is either a
// concrete date or a relative day marker ("Day 7").
type TimelineEntry struct {
	Label     string `json:"label"`
	Milestone string `json:"milestone"`
	Deadline  bool   `json:"deadline,omitempty"`
}

// CostAssessment summarizes the risk and cost outlook for the case.
type CostAssessment struct {
	SuccessProbability string `json:"successProbability"`
	EstimatedCost      string `json:"estimatedCost"`
	CostBasis          string `json:"costBasis,omitempty"`
}

// GeneratedContent is the structured output of the content generator. Admin
// edits replace the whole object; partial patches are not supported.
type GeneratedContent struct {
	WelcomeMessage string          `json:"welcomeMessage"`
	Analysis       string          `json:"analysis"`
	Steps          []ActionStep    `json:"steps"`
	Timeline       []TimelineEntry `json:"timeline"`
	Assessment     CostAssessment  `json:"assessment"`
	NextSteps      []string        `json:"nextSteps,omitempty"`
	Fallback       bool            `json:"fallback,omitempty"`
}

// ErrInvalidContent indicates a content object that fails schema validation.
var ErrInvalidContent = errors.New("invalid content")

// Validate checks the content object against the schema expected by the
// renderer and the review workflow.
func (c GeneratedContent) Validate() error {
	if strings.TrimSpace(c.WelcomeMessage) == "" {
		return fmt.Errorf("%w: welcomeMessage is required", ErrInvalidContent)
	}
	if strings.TrimSpace(c.Analysis) == "" {
		return fmt.Errorf("%w: analysis is required", ErrInvalidContent)
	}
	for i, step := range c.Steps {
		if step.Step <= 0 {
			return fmt.Errorf("%w: steps[%d].step must be positive", ErrInvalidContent, i)
		}
		if strings.TrimSpace(step.Title) == "" {
			return fmt.Errorf("%w: steps[%d].title is required", ErrInvalidContent, i)
		}
	}
	for i, entry := range c.Timeline {
		if strings.TrimSpace(entry.Label) == "" {
			return fmt.Errorf("%w: timeline[%d].label is required", ErrInvalidContent, i)
		}
		if strings.TrimSpace(entry.Milestone) == "" {
			return fmt.Errorf("%w: timeline[%d].milestone is required", ErrInvalidContent, i)
		}
	}
	return nil
}
