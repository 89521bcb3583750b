package strategy

import (
	"context"
	"encoding/json"
	"time"

	"tradecase-backend/internal/intake"
	"tradecase-backend/internal/llm"
	"tradecase-backend/internal/shared/telemetry"
)

const defaultGenerateTimeout = 30 * time.Second

// Service generates strategy content from case intake data.
type Service struct {
	LLM     llm.Client
	Timeout time.Duration
}

// Generate produces content for the intake. It never returns an error on the
// primary path: any model failure (unconfigured provider, network error,
// timeout, malformed response) degrades to the templated fallback content.
func (s *Service) Generate(ctx context.Context, in intake.CaseIntake) GeneratedContent {
	client := s.LLM
	if client == nil {
		client = llm.PlaceholderClient{}
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultGenerateTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := client.GenerateStrategy(callCtx, BuildPrompt(in))
	if err != nil {
		telemetry.Error("strategy.generate.degraded", map[string]any{
			"issue_type": string(in.IssueType),
			"reason":     err.Error(),
		})
		return FallbackContent(in)
	}

	var content GeneratedContent
	if err := json.Unmarshal(raw, &content); err != nil {
		telemetry.Error("strategy.generate.degraded", map[string]any{
			"issue_type": string(in.IssueType),
			"reason":     "unparseable model output: " + err.Error(),
		})
		return FallbackContent(in)
	}
	if err := content.Validate(); err != nil {
		telemetry.Error("strategy.generate.degraded", map[string]any{
			"issue_type": string(in.IssueType),
			"reason":     err.Error(),
		})
		return FallbackContent(in)
	}

	content.Fallback = false
	return content
}
