package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts LLM providers for strategy content generation. The returned
// payload is a JSON object shaped like strategy.GeneratedContent.
type Client interface {
	GenerateStrategy(ctx context.Context, prompt string) (json.RawMessage, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM not configured")

// PlaceholderClient is the stub used when no provider is wired. Callers fall
// back to templated content when it is in play.
type PlaceholderClient struct{}

// GenerateStrategy returns ErrNotConfigured.
func (PlaceholderClient) GenerateStrategy(ctx context.Context, prompt string) (json.RawMessage, error) {
	_ = ctx
	_ = prompt
	return nil, ErrNotConfigured
}
